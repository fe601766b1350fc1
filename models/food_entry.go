package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodItem is one logged food. Macros are either user-supplied or filled in
// by the nutrition lookup, in which case IsAutoFetched is set.
type FoodItem struct {
	ItemID        string  `bson:"item_id" json:"item_id"`
	Name          string  `bson:"name" json:"name" validate:"required"`
	Quantity      float64 `bson:"quantity" json:"quantity" validate:"gte=0"`
	Unit          string  `bson:"unit" json:"unit" validate:"omitempty,oneof=g ml oz serving cup tbsp tsp piece"`
	Calories      float64 `bson:"calories" json:"calories"`
	Protein       float64 `bson:"protein" json:"protein"`
	Carbs         float64 `bson:"carbs" json:"carbs"`
	Fat           float64 `bson:"fat" json:"fat"`
	Fiber         float64 `bson:"fiber" json:"fiber"`
	Sugar         float64 `bson:"sugar" json:"sugar"`
	IsAutoFetched bool    `bson:"is_auto_fetched" json:"isAutoFetched"`
}

// Meal is one slot of a day (breakfast/lunch/dinner/snacks). The totals are
// derived from Items and recomputed on every write.
type Meal struct {
	Items         []FoodItem `bson:"items" json:"items"`
	TotalCalories float64    `bson:"total_calories" json:"totalCalories"`
	TotalProtein  float64    `bson:"total_protein" json:"totalProtein"`
	TotalCarbs    float64    `bson:"total_carbs" json:"totalCarbs"`
	TotalFat      float64    `bson:"total_fat" json:"totalFat"`
}

type FoodEntry struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	Date             time.Time          `bson:"date" json:"date"`
	Breakfast        Meal               `bson:"breakfast" json:"breakfast"`
	Lunch            Meal               `bson:"lunch" json:"lunch"`
	Dinner           Meal               `bson:"dinner" json:"dinner"`
	Snacks           Meal               `bson:"snacks" json:"snacks"`
	TotalDayCalories float64            `bson:"total_day_calories" json:"totalDayCalories"`
	TotalDayProtein  float64            `bson:"total_day_protein" json:"totalDayProtein"`
	TotalDayCarbs    float64            `bson:"total_day_carbs" json:"totalDayCarbs"`
	TotalDayFat      float64            `bson:"total_day_fat" json:"totalDayFat"`
	WaterIntake      float64            `bson:"water_intake" json:"waterIntake"` // ml
	Notes            string             `bson:"notes" json:"notes" validate:"max=500"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// MealSlots is the canonical slot order, used by the aggregator and the
// merge logic so no slot is ever skipped.
var MealSlots = []string{"breakfast", "lunch", "dinner", "snacks"}

// MealBySlot returns a pointer to the named slot, or nil for an unknown one.
func (e *FoodEntry) MealBySlot(slot string) *Meal {
	switch slot {
	case "breakfast":
		return &e.Breakfast
	case "lunch":
		return &e.Lunch
	case "dinner":
		return &e.Dinner
	case "snacks":
		return &e.Snacks
	}
	return nil
}
