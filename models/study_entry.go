package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudySession is one planned block of study. CompletionPercentage and
// Completed are derived from planned vs actual duration on every write;
// whatever the caller sent for them is overwritten.
type StudySession struct {
	ItemID               string   `bson:"item_id" json:"item_id"`
	Subject              string   `bson:"subject" json:"subject" validate:"required"`
	Topic                string   `bson:"topic" json:"topic" validate:"required"`
	PlannedDuration      float64  `bson:"planned_duration" json:"plannedDuration" validate:"gte=0"` // minutes
	ActualDuration       float64  `bson:"actual_duration" json:"actualDuration" validate:"gte=0"`   // minutes
	Completed            bool     `bson:"completed" json:"completed"`
	CompletionPercentage float64  `bson:"completion_percentage" json:"completionPercentage"`
	Difficulty           string   `bson:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Notes                string   `bson:"notes" json:"notes" validate:"max=500"`
	Resources            []string `bson:"resources,omitempty" json:"resources,omitempty"`
}

type StudyEntry struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID                 string             `bson:"user_id" json:"user_id"`
	Date                   time.Time          `bson:"date" json:"date"`
	Sessions               []StudySession     `bson:"sessions" json:"sessions"`
	TotalPlannedHours      float64            `bson:"total_planned_hours" json:"totalPlannedHours"`
	TotalActualHours       float64            `bson:"total_actual_hours" json:"totalActualHours"`
	TotalCompletedSessions int                `bson:"total_completed_sessions" json:"totalCompletedSessions"`
	ProductivityScore      float64            `bson:"productivity_score" json:"productivityScore"` // 0-100
	Notes                  string             `bson:"notes" json:"notes" validate:"max=500"`
	CreatedAt              time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt              time.Time          `bson:"updated_at" json:"updated_at"`
}
