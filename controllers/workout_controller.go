package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siddhardha-create/lifeOS/models"
	"github.com/siddhardha-create/lifeOS/services"
)

// AddExercise appends a single exercise to the day's workout. It must not
// replace exercises already logged.
func AddExercise() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Date       string          `json:"date" validate:"required"`
			Exercise   models.Exercise `json:"exercise"`
			UserWeight float64         `json:"userWeight"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := validate.Struct(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		date, err := services.ParseDate(body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entry, err := workoutService.UpsertDay(ctx, userID, services.WorkoutUpsert{
			Date:       date,
			Exercises:  []models.Exercise{body.Exercise},
			Mode:       services.MergeAppend,
			UserWeight: body.UserWeight,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

// SetWorkoutDay replaces the whole day: exercise list and scalar fields.
func SetWorkoutDay() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Date        string            `json:"date" validate:"required"`
			Exercises   []models.Exercise `json:"exercises" validate:"dive"`
			UserWeight  float64           `json:"userWeight"`
			WorkoutType string            `json:"workoutType"`
			Intensity   string            `json:"intensity" validate:"omitempty,oneof=low medium high"`
			Notes       string            `json:"notes" validate:"max=500"`
			Completed   *bool             `json:"completed"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := validate.Struct(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		date, err := services.ParseDate(body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entry, err := workoutService.UpsertDay(ctx, userID, services.WorkoutUpsert{
			Date:        date,
			Exercises:   body.Exercises,
			Mode:        services.MergeReplace,
			UserWeight:  body.UserWeight,
			WorkoutType: body.WorkoutType,
			Intensity:   body.Intensity,
			Notes:       body.Notes,
			Completed:   body.Completed,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

func GetWorkoutWeek() gin.HandlerFunc {
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

		entries, err := workoutService.GetWeek(ctx, userID, anchor)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
	}
}

func GetWorkoutStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stats, err := workoutService.Stats(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
	}
}

// METLookup lets the client preview estimated calories before saving.
func METLookup() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		exercise := c.Query("exercise")
		duration := 30.0
		if d := c.Query("duration"); d != "" {
			if v, err := strconv.ParseFloat(d, 64); err == nil && v > 0 {
				duration = v
			}
		}
		weight := services.DefaultBodyWeightKg
		if w := c.Query("weight"); w != "" {
			if v, err := strconv.ParseFloat(w, 64); err == nil && v > 0 {
				weight = v
			}
		}

		calories, met := workoutService.PreviewCalories(exercise, duration, weight)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"met": met, "calories": calories, "exercise": exercise, "duration": duration, "weight": weight,
		}})
	}
}

func DeleteExercise() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		entry, err := workoutService.RemoveExercise(ctx, userID, c.Param("entryId"), c.Param("exerciseId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

func DeleteWorkoutEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := workoutService.DeleteEntry(ctx, userID, c.Param("entryId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Entry deleted"})
	}
}
