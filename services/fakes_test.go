package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddhardha-create/lifeOS/models"
)

// In-memory stores mirroring the storage contract: Insert fails with
// ErrDuplicateEntry when a document for the same (user, day) exists, and
// reads return copies so mutations are invisible until Update.

type fakeFoodStore struct {
	mu      sync.Mutex
	entries []models.FoodEntry

	// conflictOnInsert, when set, is slipped into the store just before the
	// next Insert to simulate a concurrent writer winning the create.
	conflictOnInsert *models.FoodEntry

	// afterFindByID runs once, after the next FindByID has read its
	// snapshot, to simulate a writer landing in that window.
	afterFindByID func()
}

func (f *fakeFoodStore) takeAfterFindByID() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	hook := f.afterFindByID
	f.afterFindByID = nil
	return hook
}

func sameDay(entryDate, day time.Time) bool {
	start, end := DayBounds(day)
	return !entryDate.Before(start) && !entryDate.After(end)
}

func (f *fakeFoodStore) FindByDay(ctx context.Context, userID string, day time.Time) (*models.FoodEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID == userID && sameDay(e.Date, day) {
			out := e
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeFoodStore) FindByID(ctx context.Context, userID, entryID string) (*models.FoodEntry, error) {
	f.mu.Lock()
	var found *models.FoodEntry
	for _, e := range f.entries {
		if e.UserID == userID && e.ID.Hex() == entryID {
			out := e
			found = &out
			break
		}
	}
	f.mu.Unlock()
	if found == nil {
		return nil, ErrNotFound
	}
	if hook := f.takeAfterFindByID(); hook != nil {
		hook()
	}
	return found, nil
}

func (f *fakeFoodStore) FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.FoodEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FoodEntry
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeFoodStore) Insert(ctx context.Context, entry *models.FoodEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c := f.conflictOnInsert; c != nil {
		f.conflictOnInsert = nil
		c.ID = primitive.NewObjectID()
		f.entries = append(f.entries, *c)
	}
	for _, e := range f.entries {
		if e.UserID == entry.UserID && sameDay(e.Date, entry.Date) {
			return ErrDuplicateEntry
		}
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeFoodStore) Update(ctx context.Context, entry *models.FoodEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == entry.ID {
			f.entries[i] = *entry
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeFoodStore) Delete(ctx context.Context, userID, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.UserID == userID && e.ID.Hex() == entryID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeFoodStore) DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.FoodEntry
	var deleted int64
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}

type fakeWorkoutStore struct {
	mu      sync.Mutex
	entries []models.WorkoutEntry

	afterFindByID func()
}

func (f *fakeWorkoutStore) takeAfterFindByID() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	hook := f.afterFindByID
	f.afterFindByID = nil
	return hook
}

func (f *fakeWorkoutStore) FindByDay(ctx context.Context, userID string, day time.Time) (*models.WorkoutEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID == userID && sameDay(e.Date, day) {
			out := e
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeWorkoutStore) FindByID(ctx context.Context, userID, entryID string) (*models.WorkoutEntry, error) {
	f.mu.Lock()
	var found *models.WorkoutEntry
	for _, e := range f.entries {
		if e.UserID == userID && e.ID.Hex() == entryID {
			out := e
			found = &out
			break
		}
	}
	f.mu.Unlock()
	if found == nil {
		return nil, ErrNotFound
	}
	if hook := f.takeAfterFindByID(); hook != nil {
		hook()
	}
	return found, nil
}

func (f *fakeWorkoutStore) FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.WorkoutEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WorkoutEntry
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWorkoutStore) Insert(ctx context.Context, entry *models.WorkoutEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID == entry.UserID && sameDay(e.Date, entry.Date) {
			return ErrDuplicateEntry
		}
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeWorkoutStore) Update(ctx context.Context, entry *models.WorkoutEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == entry.ID {
			f.entries[i] = *entry
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeWorkoutStore) Delete(ctx context.Context, userID, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.UserID == userID && e.ID.Hex() == entryID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeWorkoutStore) DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.WorkoutEntry
	var deleted int64
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}

type fakeStudyStore struct {
	mu      sync.Mutex
	entries []models.StudyEntry
}

func (f *fakeStudyStore) FindByDay(ctx context.Context, userID string, day time.Time) (*models.StudyEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID == userID && sameDay(e.Date, day) {
			out := e
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStudyStore) FindByID(ctx context.Context, userID, entryID string) (*models.StudyEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID == userID && e.ID.Hex() == entryID {
			out := e
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStudyStore) FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.StudyEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.StudyEntry
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStudyStore) Insert(ctx context.Context, entry *models.StudyEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.UserID == entry.UserID && sameDay(e.Date, entry.Date) {
			return ErrDuplicateEntry
		}
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeStudyStore) Update(ctx context.Context, entry *models.StudyEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == entry.ID {
			f.entries[i] = *entry
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStudyStore) Delete(ctx context.Context, userID, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.UserID == userID && e.ID.Hex() == entryID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStudyStore) DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.StudyEntry
	var deleted int64
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}
