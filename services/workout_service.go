package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siddhardha-create/lifeOS/models"
)

// WorkoutService coordinates upserts of the one-per-(user, day) workout
// entry. Adding a single exercise appends; it must never wipe exercises
// already logged for the day.
type WorkoutService struct {
	store     WorkoutStore
	estimator *ExerciseEstimator
	locks     *dayLock
}

func NewWorkoutService(store WorkoutStore, estimator *ExerciseEstimator) *WorkoutService {
	return &WorkoutService{store: store, estimator: estimator, locks: newDayLock()}
}

type WorkoutUpsert struct {
	Date        time.Time
	Exercises   []models.Exercise
	Mode        MergeMode
	UserWeight  float64
	WorkoutType string
	Intensity   string
	Notes       string
	Completed   *bool
}

func (s *WorkoutService) UpsertDay(ctx context.Context, userID string, req WorkoutUpsert) (*models.WorkoutEntry, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	day := DayOf(req.Date)
	unlock := s.locks.Lock(userID, day)
	defer unlock()

	exercises := s.processExercises(req.Exercises, req.UserWeight)

	entry, err := s.store.FindByDay(ctx, userID, day)
	switch err {
	case nil:
		s.applyUpdate(entry, req, exercises)
		RecalcWorkoutTotals(entry)
		entry.UpdatedAt = time.Now().UTC()
		if err := s.store.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	case ErrNotFound:
		entry = s.newEntry(userID, req, exercises)
		RecalcWorkoutTotals(entry)
		err = s.store.Insert(ctx, entry)
		if err == nil {
			return entry, nil
		}
		if err != ErrDuplicateEntry {
			return nil, err
		}
		entry, err = s.store.FindByDay(ctx, userID, day)
		if err != nil {
			return nil, fmt.Errorf("conflict on concurrent create: %w", err)
		}
		s.applyUpdate(entry, req, exercises)
		RecalcWorkoutTotals(entry)
		entry.UpdatedAt = time.Now().UTC()
		if err := s.store.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	default:
		return nil, err
	}
}

// processExercises stamps ids and derives calories via the MET formula for
// exercises the caller logged without a calorie figure.
func (s *WorkoutService) processExercises(exercises []models.Exercise, weightKg float64) []models.Exercise {
	out := make([]models.Exercise, len(exercises))
	for i, ex := range exercises {
		if ex.ItemID == "" {
			ex.ItemID = uuid.NewString()
		}
		if ex.CaloriesBurned == 0 && ex.Name != "" && ex.Duration > 0 {
			ex.CaloriesBurned, ex.MET = s.estimator.Estimate(ex.Name, ex.Duration, weightKg)
			ex.IsAutoCalculated = true
		}
		out[i] = ex
	}
	return out
}

func (s *WorkoutService) applyUpdate(entry *models.WorkoutEntry, req WorkoutUpsert, exercises []models.Exercise) {
	if len(exercises) > 0 {
		switch req.Mode {
		case MergeReplace:
			entry.Exercises = exercises
		default:
			entry.Exercises = append(entry.Exercises, exercises...)
		}
	}
	if req.WorkoutType != "" {
		entry.WorkoutType = req.WorkoutType
	}
	if req.Intensity != "" {
		entry.Intensity = req.Intensity
	}
	if req.Notes != "" {
		entry.Notes = req.Notes
	}
	if req.Completed != nil {
		entry.Completed = *req.Completed
	}
}

func (s *WorkoutService) newEntry(userID string, req WorkoutUpsert, exercises []models.Exercise) *models.WorkoutEntry {
	now := time.Now().UTC()
	entry := &models.WorkoutEntry{
		UserID:      userID,
		Date:        NoonOf(req.Date),
		Exercises:   exercises,
		WorkoutType: req.WorkoutType,
		Intensity:   req.Intensity,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if entry.WorkoutType == "" {
		entry.WorkoutType = "mixed"
	}
	if entry.Intensity == "" {
		entry.Intensity = "medium"
	}
	if req.Completed != nil {
		entry.Completed = *req.Completed
	}
	return entry
}

// RemoveExercise deletes one exercise by id and recomputes totals.
func (s *WorkoutService) RemoveExercise(ctx context.Context, userID, entryID, exerciseID string) (*models.WorkoutEntry, error) {
	located, err := s.store.FindByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID, DayOf(located.Date))
	defer unlock()

	// The read above only located the day; re-read under the lock so a
	// write that landed in between is not overwritten by a stale snapshot.
	entry, err := s.store.FindByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	kept := entry.Exercises[:0]
	for _, ex := range entry.Exercises {
		if ex.ItemID != exerciseID {
			kept = append(kept, ex)
		}
	}
	entry.Exercises = kept

	RecalcWorkoutTotals(entry)
	entry.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *WorkoutService) GetWeek(ctx context.Context, userID string, anchor time.Time) ([]models.WorkoutEntry, error) {
	monday, sunday := WeekBounds(anchor)
	return s.store.FindRange(ctx, userID, monday, sunday)
}

// Stats summarizes the trailing 30 days.
type WorkoutStats struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalDuration float64 `json:"totalDuration"`
	TotalSessions int     `json:"totalSessions"`
}

func (s *WorkoutService) Stats(ctx context.Context, userID string) (*WorkoutStats, error) {
	now := time.Now().UTC()
	entries, err := s.store.FindRange(ctx, userID, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}
	stats := &WorkoutStats{TotalSessions: len(entries)}
	for _, e := range entries {
		stats.TotalCalories += e.TotalCaloriesBurned
		stats.TotalDuration += e.TotalDuration
	}
	return stats, nil
}

// PreviewCalories backs the met-lookup endpoint so the client can show an
// estimate before saving.
func (s *WorkoutService) PreviewCalories(name string, durationMinutes, weightKg float64) (calories, met float64) {
	return s.estimator.Estimate(name, durationMinutes, weightKg)
}

func (s *WorkoutService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return s.store.Delete(ctx, userID, entryID)
}
