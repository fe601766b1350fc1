package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/siddhardha-create/lifeOS/controllers"
	"github.com/siddhardha-create/lifeOS/middleware"
)

func SetupRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.Register())
		auth.POST("/login", controllers.Login())
	}

	protected := router.Group("/")
	protected.Use(middleware.Authenticate())
	{
		protected.GET("/auth/me", controllers.GetMe())
		protected.PUT("/auth/update", controllers.UpdateProfile())
		protected.PUT("/auth/change-password", controllers.ChangePassword())

		food := protected.Group("/food")
		{
			food.GET("/week", controllers.GetFoodWeek())
			food.GET("/day/:date", controllers.GetFoodDay())
			food.POST("/nutrition-lookup", controllers.NutritionLookup())
			food.POST("/entry", controllers.AddFoodItems())
			food.PUT("/entry", controllers.SetFoodMeal())
			food.DELETE("/entry/:entryId/meal/:meal/item/:itemId", controllers.DeleteFoodItem())
			food.DELETE("/entry/:entryId", controllers.DeleteFoodEntry())
		}

		workout := protected.Group("/workout")
		{
			workout.GET("/week", controllers.GetWorkoutWeek())
			workout.GET("/stats", controllers.GetWorkoutStats())
			workout.GET("/met-lookup", controllers.METLookup())
			workout.POST("/entry", controllers.AddExercise())
			workout.PUT("/entry", controllers.SetWorkoutDay())
			workout.DELETE("/entry/:entryId/exercise/:exerciseId", controllers.DeleteExercise())
			workout.DELETE("/entry/:entryId", controllers.DeleteWorkoutEntry())
		}

		study := protected.Group("/study")
		{
			study.GET("/week", controllers.GetStudyWeek())
			study.GET("/day/:date", controllers.GetStudyDay())
			study.GET("/stats", controllers.GetStudyStats())
			study.POST("/entry/session", controllers.AddStudySession())
			study.PUT("/entry", controllers.SetStudyDay())
			study.DELETE("/entry/:entryId", controllers.DeleteStudyEntry())
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/overview", controllers.GetOverview())
			dashboard.GET("/trends", controllers.GetTrends())
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/csv/:type", controllers.ExportCSV())
			reports.GET("/monthly-pdf", controllers.ExportMonthlyPDF())
			reports.POST("/weekly-summary", controllers.BuildWeeklySummary())
			reports.DELETE("/cleanup", controllers.CleanupOldData())
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.Authorize("ADMIN"))
		{
			admin.GET("/users", controllers.AdminListUsers())
			admin.GET("/users/:userId", controllers.AdminUserDetail())
			admin.GET("/stats", controllers.AdminPlatformStats())
			admin.DELETE("/users/:userId", controllers.AdminDeleteUser())
			admin.PATCH("/users/:userId/toggle-admin", controllers.AdminToggleAdmin())
		}
	}
}
