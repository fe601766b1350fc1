package services

import (
	"errors"
	"sync"
	"time"
)

// MergeMode controls how an incoming sub-record list combines with what is
// already stored for the day. Add-one endpoints use MergeAppend so logging a
// single item never wipes the rest of the slot; set-the-day endpoints use
// MergeReplace.
type MergeMode int

const (
	MergeAppend MergeMode = iota
	MergeReplace
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// DayOf truncates t to its UTC calendar day. Entry identity is date-only;
// time-of-day in the input is ignored for matching.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NoonOf returns the representative timestamp stored when a new entry is
// created: noon keeps the document inside its day under small timezone
// shifts at either boundary.
func NoonOf(t time.Time) time.Time {
	return DayOf(t).Add(12 * time.Hour)
}

// DayBounds returns the inclusive range used to match a stored entry to a
// calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := DayOf(t)
	return start, start.Add(24*time.Hour - time.Millisecond)
}

// WeekBounds returns the Monday 00:00 and Sunday end-of-day around t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := DayOf(t)
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7).Add(-time.Millisecond)
}

// ParseDate accepts the date formats clients send: a bare calendar date or
// a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrValidation
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return t, nil
}

// dayLock serializes writes to the same (user, day) key within this
// process. Cross-process races are caught by the storage unique index and
// the duplicate-key retry in the coordinators.
type dayLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDayLock() *dayLock {
	return &dayLock{locks: make(map[string]*sync.Mutex)}
}

func (d *dayLock) Lock(userID string, day time.Time) func() {
	key := userID + "|" + day.Format("2006-01-02")
	d.mu.Lock()
	m, ok := d.locks[key]
	if !ok {
		m = &sync.Mutex{}
		d.locks[key] = m
	}
	d.mu.Unlock()
	m.Lock()
	return m.Unlock
}
