package controllers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/siddhardha-create/lifeOS/config"
	"github.com/siddhardha-create/lifeOS/models"
	"github.com/siddhardha-create/lifeOS/services"
)

func ExportCSV() gin.HandlerFunc {
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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var buf bytes.Buffer
		filename, err := reportService.WriteCSV(ctx, &buf, userID, c.Param("type"), days)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	}
}

func ExportMonthlyPDF() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := getClaims(c)
		if claims == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var user models.User
		if err := config.OpenCollection("users").FindOne(ctx, bson.M{"user_id": claims.UserID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		month, _ := strconv.Atoi(c.Query("month"))
		year, _ := strconv.Atoi(c.Query("year"))
		clearAfter := c.Query("clearAfter") == "true"

		var buf bytes.Buffer
		filename, err := reportService.MonthlyPDF(ctx, &buf, claims.UserID, user.Name, month, year, clearAfter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}

func CleanupOldData() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deleted, err := reportService.Cleanup(ctx, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Old data cleaned up", "deleted": deleted})
	}
}

// BuildWeeklySummary recomputes and stores the rollup for the week around
// the given date (default: this week).
func BuildWeeklySummary() gin.HandlerFunc {
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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var user models.User
		if err := config.OpenCollection("users").FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		summary, err := reportService.UpsertWeeklySummary(ctx, userID, user.Goals, anchor)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
	}
}
