package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/siddhardha-create/lifeOS/helpers"
	"github.com/siddhardha-create/lifeOS/services"
)

var validate = validator.New()

var (
	foodService      *services.FoodService
	workoutService   *services.WorkoutService
	studyService     *services.StudyService
	dashboardService *services.DashboardService
	reportService    *services.ReportService
	adminService     *services.AdminService
)

// Init wires the services. Call once from main after the database is up.
func Init() {
	foodStore := services.NewMongoFoodStore()
	workoutStore := services.NewMongoWorkoutStore()
	studyStore := services.NewMongoStudyStore()

	foodService = services.NewFoodService(foodStore, services.NewDefaultNutritionResolver())
	workoutService = services.NewWorkoutService(workoutStore, services.NewExerciseEstimator(nil))
	studyService = services.NewStudyService(studyStore)
	dashboardService = services.NewDashboardService(foodStore, workoutStore, studyStore)
	reportService = services.NewReportService(foodStore, workoutStore, studyStore)
	adminService = services.NewAdminService()
}

func getClaims(c *gin.Context) *helpers.Claims {
	claimsVal, ok := c.Get("claims")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
		return nil
	}
	claims, ok := claimsVal.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid claims"})
		return nil
	}
	return claims
}

func getUserID(c *gin.Context) string {
	claims := getClaims(c)
	if claims == nil {
		return ""
	}
	return claims.UserID
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Entry not found"})
	case errors.Is(err, services.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Conflicting write, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
	}
}
