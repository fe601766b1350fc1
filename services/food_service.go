package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siddhardha-create/lifeOS/models"
)

// FoodService coordinates upserts of the one-per-(user, day) food entry:
// normalize the date, find or create, merge per MergeMode, recompute
// totals, persist.
type FoodService struct {
	store     FoodStore
	nutrition *NutritionResolver
	locks     *dayLock
}

func NewFoodService(store FoodStore, nutrition *NutritionResolver) *FoodService {
	return &FoodService{store: store, nutrition: nutrition, locks: newDayLock()}
}

// FoodUpsert is one logical write against a day. Meal/Items may be empty
// when only scalar fields (water, notes) change.
type FoodUpsert struct {
	Date        time.Time
	Meal        string
	Items       []models.FoodItem
	Mode        MergeMode
	WaterIntake *float64
	Notes       string
}

func (s *FoodService) UpsertDay(ctx context.Context, userID string, req FoodUpsert) (*models.FoodEntry, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if len(req.Items) > 0 {
		if m := (&models.FoodEntry{}).MealBySlot(req.Meal); m == nil {
			return nil, fmt.Errorf("%w: unknown meal slot %q", ErrValidation, req.Meal)
		}
	}

	day := DayOf(req.Date)
	unlock := s.locks.Lock(userID, day)
	defer unlock()

	items := s.processItems(ctx, req.Items)

	entry, err := s.store.FindByDay(ctx, userID, day)
	switch err {
	case nil:
		s.applyUpdate(entry, req, items)
		RecalcFoodTotals(entry)
		entry.UpdatedAt = time.Now().UTC()
		if err := s.store.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	case ErrNotFound:
		entry = s.newEntry(userID, req, items)
		RecalcFoodTotals(entry)
		err = s.store.Insert(ctx, entry)
		if err == nil {
			return entry, nil
		}
		if err != ErrDuplicateEntry {
			return nil, err
		}
		// Another writer created the day between our find and insert.
		// Re-fetch and merge into the winning document instead of failing.
		entry, err = s.store.FindByDay(ctx, userID, day)
		if err != nil {
			return nil, fmt.Errorf("conflict on concurrent create: %w", err)
		}
		s.applyUpdate(entry, req, items)
		RecalcFoodTotals(entry)
		entry.UpdatedAt = time.Now().UTC()
		if err := s.store.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	default:
		return nil, err
	}
}

// processItems fills in macros for items the caller left blank and stamps
// each item with an id so it can be deleted later.
func (s *FoodService) processItems(ctx context.Context, items []models.FoodItem) []models.FoodItem {
	out := make([]models.FoodItem, len(items))
	for i, item := range items {
		if item.ItemID == "" {
			item.ItemID = uuid.NewString()
		}
		if item.Calories == 0 && item.Name != "" {
			n := s.nutrition.Lookup(ctx, item.Name, item.Quantity, item.Unit)
			item.Calories = n.Calories
			item.Protein = n.Protein
			item.Carbs = n.Carbs
			item.Fat = n.Fat
			item.Fiber = n.Fiber
			item.Sugar = n.Sugar
			item.IsAutoFetched = true
		}
		out[i] = item
	}
	return out
}

func (s *FoodService) applyUpdate(entry *models.FoodEntry, req FoodUpsert, items []models.FoodItem) {
	if len(items) > 0 {
		meal := entry.MealBySlot(req.Meal)
		switch req.Mode {
		case MergeReplace:
			meal.Items = items
		default:
			meal.Items = append(meal.Items, items...)
		}
	}
	if req.WaterIntake != nil {
		entry.WaterIntake = *req.WaterIntake
	}
	if req.Notes != "" {
		entry.Notes = req.Notes
	}
}

func (s *FoodService) newEntry(userID string, req FoodUpsert, items []models.FoodItem) *models.FoodEntry {
	now := time.Now().UTC()
	entry := &models.FoodEntry{
		UserID:    userID,
		Date:      NoonOf(req.Date),
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.WaterIntake != nil {
		entry.WaterIntake = *req.WaterIntake
	}
	if len(items) > 0 {
		entry.MealBySlot(req.Meal).Items = items
	}
	return entry
}

// RemoveItem deletes one item from a meal slot and recomputes totals.
func (s *FoodService) RemoveItem(ctx context.Context, userID, entryID, mealSlot, itemID string) (*models.FoodEntry, error) {
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

	meal := entry.MealBySlot(mealSlot)
	if meal == nil {
		return nil, fmt.Errorf("%w: unknown meal slot %q", ErrValidation, mealSlot)
	}

	kept := meal.Items[:0]
	for _, item := range meal.Items {
		if item.ItemID != itemID {
			kept = append(kept, item)
		}
	}
	meal.Items = kept

	RecalcFoodTotals(entry)
	entry.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *FoodService) GetDay(ctx context.Context, userID string, day time.Time) (*models.FoodEntry, error) {
	return s.store.FindByDay(ctx, userID, day)
}

func (s *FoodService) GetWeek(ctx context.Context, userID string, anchor time.Time) ([]models.FoodEntry, time.Time, time.Time, error) {
	monday, sunday := WeekBounds(anchor)
	entries, err := s.store.FindRange(ctx, userID, monday, sunday)
	return entries, monday, sunday, err
}

func (s *FoodService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return s.store.Delete(ctx, userID, entryID)
}

// LookupNutrition exposes the provider chain for the pre-save preview
// endpoint.
func (s *FoodService) LookupNutrition(ctx context.Context, foodName string, quantity float64, unit string) Nutrition {
	return s.nutrition.Lookup(ctx, foodName, quantity, unit)
}
