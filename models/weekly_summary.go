package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubjectHours struct {
	Subject string  `bson:"subject" json:"subject"`
	Hours   float64 `bson:"hours" json:"hours"`
}

type FoodSummary struct {
	TotalCalories    float64 `bson:"total_calories" json:"totalCalories"`
	AvgDailyCalories float64 `bson:"avg_daily_calories" json:"avgDailyCalories"`
	TotalProtein     float64 `bson:"total_protein" json:"totalProtein"`
	TotalCarbs       float64 `bson:"total_carbs" json:"totalCarbs"`
	TotalFat         float64 `bson:"total_fat" json:"totalFat"`
}

type WorkoutSummary struct {
	TotalCaloriesBurned float64 `bson:"total_calories_burned" json:"totalCaloriesBurned"`
	TotalDuration       float64 `bson:"total_duration" json:"totalDuration"`
	DaysWorkedOut       int     `bson:"days_worked_out" json:"daysWorkedOut"`
	TotalExercises      int     `bson:"total_exercises" json:"totalExercises"`
}

type StudySummary struct {
	TotalHours        float64        `bson:"total_hours" json:"totalHours"`
	AvgDailyHours     float64        `bson:"avg_daily_hours" json:"avgDailyHours"`
	CompletedSessions int            `bson:"completed_sessions" json:"completedSessions"`
	SubjectBreakdown  []SubjectHours `bson:"subject_breakdown" json:"subjectBreakdown"`
}

// WeeklySummary is a per-user rollup of one Monday-to-Sunday week, unique on
// (user_id, week_start).
type WeeklySummary struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"user_id" json:"user_id"`
	WeekStart    time.Time          `bson:"week_start" json:"weekStart"`
	WeekEnd      time.Time          `bson:"week_end" json:"weekEnd"`
	Food         FoodSummary        `bson:"food" json:"food"`
	Workout      WorkoutSummary     `bson:"workout" json:"workout"`
	Study        StudySummary       `bson:"study" json:"study"`
	OverallScore float64            `bson:"overall_score" json:"overallScore"` // 0-100
	ExportedAt   *time.Time         `bson:"exported_at,omitempty" json:"exportedAt,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
