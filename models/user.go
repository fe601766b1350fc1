package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goals hold the display-side targets shown against daily totals. They are
// never enforced by the entry services.
type Goals struct {
	DailyCalorieIntake int `bson:"daily_calorie_intake" json:"dailyCalorieIntake"`
	DailyCalorieBurn   int `bson:"daily_calorie_burn" json:"dailyCalorieBurn"`
	DailyStudyHours    int `bson:"daily_study_hours" json:"dailyStudyHours"`
	WeeklyWorkoutDays  int `bson:"weekly_workout_days" json:"weeklyWorkoutDays"`
}

type Preferences struct {
	Theme string `bson:"theme" json:"theme" validate:"omitempty,oneof=light dark"`
	Units string `bson:"units" json:"units" validate:"omitempty,oneof=metric imperial"`
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name" validate:"required,min=2,max=50"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Password    string             `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	IsAdmin     bool               `bson:"is_admin" json:"isAdmin"`
	Goals       Goals              `bson:"goals" json:"goals"`
	Preferences Preferences        `bson:"preferences" json:"preferences"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

func DefaultGoals() Goals {
	return Goals{
		DailyCalorieIntake: 2000,
		DailyCalorieBurn:   500,
		DailyStudyHours:    4,
		WeeklyWorkoutDays:  5,
	}
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: "dark", Units: "metric"}
}
