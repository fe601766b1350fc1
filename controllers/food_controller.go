package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siddhardha-create/lifeOS/models"
	"github.com/siddhardha-create/lifeOS/services"
)

type foodEntryRequest struct {
	Date        string            `json:"date" validate:"required"`
	Meal        string            `json:"meal" validate:"omitempty,oneof=breakfast lunch dinner snacks"`
	Items       []models.FoodItem `json:"items" validate:"dive"`
	WaterIntake *float64          `json:"waterIntake"`
	Notes       string            `json:"notes" validate:"max=500"`
}

func bindFoodUpsert(c *gin.Context, mode services.MergeMode) (services.FoodUpsert, bool) {
	var body foodEntryRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return services.FoodUpsert{}, false
	}
	if err := validate.Struct(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return services.FoodUpsert{}, false
	}
	date, err := services.ParseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date"})
		return services.FoodUpsert{}, false
	}
	return services.FoodUpsert{
		Date:        date,
		Meal:        body.Meal,
		Items:       body.Items,
		Mode:        mode,
		WaterIntake: body.WaterIntake,
		Notes:       body.Notes,
	}, true
}

// AddFoodItems appends items to a meal slot; items already logged for the
// day are kept.
func AddFoodItems() gin.HandlerFunc {
	return upsertFood(services.MergeAppend)
}

// SetFoodMeal replaces a meal slot's item list wholesale.
func SetFoodMeal() gin.HandlerFunc {
	return upsertFood(services.MergeReplace)
}

func upsertFood(mode services.MergeMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		req, ok := bindFoodUpsert(c, mode)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		entry, err := foodService.UpsertDay(ctx, userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

func GetFoodDay() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		date, err := services.ParseDate(c.Param("date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entry, err := foodService.GetDay(ctx, userID, date)
		if err == services.ErrNotFound {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

func GetFoodWeek() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		anchor := time.Now().UTC()
		if d := c.Query("date"); d != "" {
			parsed, err := services.ParseDate(d)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date"})
				return
			}
			anchor = parsed
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entries, weekStart, weekEnd, err := foodService.GetWeek(ctx, userID, anchor)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entries, "weekStart": weekStart, "weekEnd": weekEnd})
	}
}

// NutritionLookup previews macros for a food before it is saved.
func NutritionLookup() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			FoodName string  `json:"foodName" validate:"required"`
			Quantity float64 `json:"quantity"`
			Unit     string  `json:"unit"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := validate.Struct(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Food name required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		nutrition := foodService.LookupNutrition(ctx, body.FoodName, body.Quantity, body.Unit)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": nutrition})
	}
}

func DeleteFoodItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entry, err := foodService.RemoveItem(ctx, userID, c.Param("entryId"), c.Param("meal"), c.Param("itemId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

func DeleteFoodEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := foodService.DeleteEntry(ctx, userID, c.Param("entryId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Entry deleted"})
	}
}
