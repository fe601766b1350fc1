package services

import (
	"context"
	"time"

	"github.com/siddhardha-create/lifeOS/models"
)

// DashboardService assembles the read-only overview and trend views from
// the three entry stores. It never writes.
type DashboardService struct {
	food    FoodStore
	workout WorkoutStore
	study   StudyStore
}

func NewDashboardService(food FoodStore, workout WorkoutStore, study StudyStore) *DashboardService {
	return &DashboardService{food: food, workout: workout, study: study}
}

type TodayFood struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type TodayWorkout struct {
	CaloriesBurned float64 `json:"caloriesBurned"`
	Duration       float64 `json:"duration"`
	Exercises      int     `json:"exercises"`
}

type TodayStudy struct {
	Hours    float64 `json:"hours"`
	Sessions int     `json:"sessions"`
	Score    float64 `json:"score"`
}

type DayFoodPoint struct {
	Date     time.Time `json:"date"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs,omitempty"`
	Fat      float64   `json:"fat,omitempty"`
}

type DayWorkoutPoint struct {
	Date           time.Time `json:"date"`
	CaloriesBurned float64   `json:"caloriesBurned"`
	Duration       float64   `json:"duration"`
}

type DayStudyPoint struct {
	Date  time.Time `json:"date"`
	Hours float64   `json:"hours"`
	Score float64   `json:"score"`
}

type Overview struct {
	Today struct {
		Food    *TodayFood    `json:"food"`
		Workout *TodayWorkout `json:"workout"`
		Study   *TodayStudy   `json:"study"`
	} `json:"today"`
	Weekly struct {
		Food        []DayFoodPoint    `json:"food"`
		Workout     []DayWorkoutPoint `json:"workout"`
		Study       []DayStudyPoint   `json:"study"`
		WorkoutDays int               `json:"workoutDays"`
	} `json:"weekly"`
	Goals models.Goals `json:"goals"`
}

func (s *DashboardService) Overview(ctx context.Context, userID string, goals models.Goals) (*Overview, error) {
	now := time.Now().UTC()
	weekStart, weekEnd := WeekBounds(now)

	out := &Overview{Goals: goals}

	if entry, err := s.food.FindByDay(ctx, userID, now); err == nil {
		out.Today.Food = &TodayFood{
			Calories: entry.TotalDayCalories,
			Protein:  entry.TotalDayProtein,
			Carbs:    entry.TotalDayCarbs,
			Fat:      entry.TotalDayFat,
		}
	} else if err != ErrNotFound {
		return nil, err
	}

	if entry, err := s.workout.FindByDay(ctx, userID, now); err == nil {
		out.Today.Workout = &TodayWorkout{
			CaloriesBurned: entry.TotalCaloriesBurned,
			Duration:       entry.TotalDuration,
			Exercises:      len(entry.Exercises),
		}
	} else if err != ErrNotFound {
		return nil, err
	}

	if entry, err := s.study.FindByDay(ctx, userID, now); err == nil {
		out.Today.Study = &TodayStudy{
			Hours:    entry.TotalActualHours,
			Sessions: len(entry.Sessions),
			Score:    entry.ProductivityScore,
		}
	} else if err != ErrNotFound {
		return nil, err
	}

	weekFood, err := s.food.FindRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	for _, e := range weekFood {
		out.Weekly.Food = append(out.Weekly.Food, DayFoodPoint{
			Date: e.Date, Calories: e.TotalDayCalories, Protein: e.TotalDayProtein,
			Carbs: e.TotalDayCarbs, Fat: e.TotalDayFat,
		})
	}

	weekWorkout, err := s.workout.FindRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	for _, e := range weekWorkout {
		out.Weekly.Workout = append(out.Weekly.Workout, DayWorkoutPoint{
			Date: e.Date, CaloriesBurned: e.TotalCaloriesBurned, Duration: e.TotalDuration,
		})
	}
	out.Weekly.WorkoutDays = len(weekWorkout)

	weekStudy, err := s.study.FindRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	for _, e := range weekStudy {
		out.Weekly.Study = append(out.Weekly.Study, DayStudyPoint{
			Date: e.Date, Hours: e.TotalActualHours, Score: e.ProductivityScore,
		})
	}

	return out, nil
}

type Trends struct {
	Food    []DayFoodPoint    `json:"food"`
	Workout []DayWorkoutPoint `json:"workout"`
	Study   []DayStudyPoint   `json:"study"`
}

// Trends returns the trailing 30 days of daily totals per domain.
func (s *DashboardService) Trends(ctx context.Context, userID string) (*Trends, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)

	out := &Trends{}

	food, err := s.food.FindRange(ctx, userID, from, now)
	if err != nil {
		return nil, err
	}
	for _, e := range food {
		out.Food = append(out.Food, DayFoodPoint{Date: e.Date, Calories: e.TotalDayCalories, Protein: e.TotalDayProtein})
	}

	workout, err := s.workout.FindRange(ctx, userID, from, now)
	if err != nil {
		return nil, err
	}
	for _, e := range workout {
		out.Workout = append(out.Workout, DayWorkoutPoint{Date: e.Date, CaloriesBurned: e.TotalCaloriesBurned, Duration: e.TotalDuration})
	}

	study, err := s.study.FindRange(ctx, userID, from, now)
	if err != nil {
		return nil, err
	}
	for _, e := range study {
		out.Study = append(out.Study, DayStudyPoint{Date: e.Date, Hours: e.TotalActualHours, Score: e.ProductivityScore})
	}

	return out, nil
}
