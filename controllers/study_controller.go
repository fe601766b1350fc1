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

// SetStudyDay replaces the day's session list wholesale.
func SetStudyDay() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Date     string                `json:"date" validate:"required"`
			Sessions []models.StudySession `json:"sessions" validate:"dive"`
			Notes    string                `json:"notes" validate:"max=500"`
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

		entry, err := studyService.UpsertDay(ctx, userID, services.StudyUpsert{
			Date:     date,
			Sessions: body.Sessions,
			Mode:     services.MergeReplace,
			Notes:    body.Notes,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

// AddStudySession appends one session to the day without touching the
// others.
func AddStudySession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body struct {
			Date    string              `json:"date" validate:"required"`
			Session models.StudySession `json:"session"`
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

		entry, err := studyService.UpsertDay(ctx, userID, services.StudyUpsert{
			Date:     date,
			Sessions: []models.StudySession{body.Session},
			Mode:     services.MergeAppend,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
	}
}

func GetStudyDay() gin.HandlerFunc {
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

		entry, err := studyService.GetDay(ctx, userID, date)
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

func GetStudyWeek() gin.HandlerFunc {
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

		entries, weekStart, weekEnd, err := studyService.GetWeek(ctx, userID, anchor)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entries, "weekStart": weekStart, "weekEnd": weekEnd})
	}
}

func GetStudyStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		days := 30
		if d := c.Query("days"); d != "" {
			if n, err := strconv.Atoi(d); err == nil && n > 0 {
				days = n
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stats, err := studyService.Stats(ctx, userID, days)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
	}
}

func DeleteStudyEntry() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := studyService.DeleteEntry(ctx, userID, c.Param("entryId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Entry deleted"})
	}
}
