package services

import (
	"math"

	"github.com/siddhardha-create/lifeOS/models"
)

// The Recalc functions rebuild every derived total on an entry from its
// current sub-records. They are idempotent and run as the final step before
// every persist, so cached totals can never drift from the items they
// summarize.

func RecalcFoodTotals(e *models.FoodEntry) {
	var dayCals, dayProt, dayCarbs, dayFat float64

	for _, slot := range models.MealSlots {
		meal := e.MealBySlot(slot)
		var cals, prot, carbs, fat float64
		for _, item := range meal.Items {
			cals += item.Calories
			prot += item.Protein
			carbs += item.Carbs
			fat += item.Fat
		}
		meal.TotalCalories = cals
		meal.TotalProtein = prot
		meal.TotalCarbs = carbs
		meal.TotalFat = fat

		dayCals += cals
		dayProt += prot
		dayCarbs += carbs
		dayFat += fat
	}

	e.TotalDayCalories = dayCals
	e.TotalDayProtein = dayProt
	e.TotalDayCarbs = dayCarbs
	e.TotalDayFat = dayFat
}

func RecalcWorkoutTotals(e *models.WorkoutEntry) {
	var cals, dur float64
	for _, ex := range e.Exercises {
		cals += ex.CaloriesBurned
		dur += ex.Duration
	}
	e.TotalCaloriesBurned = cals
	e.TotalDuration = dur
}

func RecalcStudyTotals(e *models.StudyEntry) {
	var plannedTotal, actualTotal float64
	completedCount := 0

	for i := range e.Sessions {
		s := &e.Sessions[i]
		plannedTotal += s.PlannedDuration
		actualTotal += s.ActualDuration

		// Derived fields win over whatever the caller supplied. A session
		// with no planned duration is 0% and incomplete, never a division
		// error.
		if s.PlannedDuration > 0 {
			s.CompletionPercentage = math.Min(100, math.Round(s.ActualDuration/s.PlannedDuration*100))
			s.Completed = s.CompletionPercentage >= 80
		} else {
			s.CompletionPercentage = 0
			s.Completed = false
		}
		if s.Completed {
			completedCount++
		}
	}

	e.TotalPlannedHours = plannedTotal / 60
	e.TotalActualHours = actualTotal / 60
	e.TotalCompletedSessions = completedCount
	if plannedTotal > 0 {
		e.ProductivityScore = math.Min(100, math.Round(actualTotal/plannedTotal*100))
	} else {
		e.ProductivityScore = 0
	}
}
