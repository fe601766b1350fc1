package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is one logged exercise. CaloriesBurned is either user-supplied
// or derived from the MET table, in which case IsAutoCalculated is set and
// MET records the value used.
type Exercise struct {
	ItemID           string  `bson:"item_id" json:"item_id"`
	Name             string  `bson:"name" json:"name" validate:"required"`
	Category         string  `bson:"category" json:"category" validate:"omitempty,oneof=strength cardio flexibility sports other"`
	Sets             int     `bson:"sets" json:"sets" validate:"gte=0"`
	Reps             int     `bson:"reps" json:"reps" validate:"gte=0"`
	Weight           float64 `bson:"weight" json:"weight" validate:"gte=0"`     // kg
	Duration         float64 `bson:"duration" json:"duration" validate:"gte=0"` // minutes
	CaloriesBurned   float64 `bson:"calories_burned" json:"caloriesBurned"`
	MET              float64 `bson:"met,omitempty" json:"met,omitempty"`
	IsAutoCalculated bool    `bson:"is_auto_calculated" json:"isAutoCalculated"`
	Notes            string  `bson:"notes" json:"notes" validate:"max=200"`
}

type WorkoutEntry struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID              string             `bson:"user_id" json:"user_id"`
	Date                time.Time          `bson:"date" json:"date"`
	Exercises           []Exercise         `bson:"exercises" json:"exercises"`
	TotalCaloriesBurned float64            `bson:"total_calories_burned" json:"totalCaloriesBurned"`
	TotalDuration       float64            `bson:"total_duration" json:"totalDuration"` // minutes
	WorkoutType         string             `bson:"workout_type" json:"workoutType"`
	Intensity           string             `bson:"intensity" json:"intensity" validate:"omitempty,oneof=low medium high"`
	Notes               string             `bson:"notes" json:"notes" validate:"max=500"`
	Completed           bool               `bson:"completed" json:"completed"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}
