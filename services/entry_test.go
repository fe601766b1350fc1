package services

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	in := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := DayOf(in); !got.Equal(want) {
		t.Errorf("DayOf = %v, want %v", got, want)
	}

	// Non-UTC input truncates on the UTC calendar.
	ist := time.FixedZone("IST", 5*3600+1800)
	in = time.Date(2026, 3, 16, 2, 0, 0, 0, ist) // 20:30 UTC on the 15th
	if got := DayOf(in); !got.Equal(want) {
		t.Errorf("DayOf(non-UTC) = %v, want %v", got, want)
	}
}

func TestNoonOf(t *testing.T) {
	in := time.Date(2026, 3, 15, 0, 30, 0, 0, time.UTC)
	want := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if got := NoonOf(in); !got.Equal(want) {
		t.Errorf("NoonOf = %v, want %v", got, want)
	}
}

func TestDayBounds_ContainNoon(t *testing.T) {
	day := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	start, end := DayBounds(day)
	noon := NoonOf(day)
	if noon.Before(start) || noon.After(end) {
		t.Errorf("noon %v outside bounds %v .. %v", noon, start, end)
	}
	if !end.Before(start.AddDate(0, 0, 1)) {
		t.Errorf("end %v spills into the next day", end)
	}
}

func TestWeekBounds(t *testing.T) {
	cases := []struct {
		name   string
		anchor time.Time
		monday time.Time
	}{
		{"wednesday", time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC), time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
		{"monday", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
		{"sunday", time.Date(2026, 3, 22, 23, 0, 0, 0, time.UTC), time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			monday, sunday := WeekBounds(tc.anchor)
			if !monday.Equal(tc.monday) {
				t.Errorf("monday = %v, want %v", monday, tc.monday)
			}
			if sunday.Before(monday) || sunday.Sub(monday) >= 7*24*time.Hour {
				t.Errorf("sunday = %v out of range for monday %v", sunday, monday)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if got, err := ParseDate("2026-03-15"); err != nil || got.Day() != 15 {
		t.Errorf("ParseDate(date) = %v, %v", got, err)
	}
	if got, err := ParseDate("2026-03-15T18:30:00Z"); err != nil || got.Hour() != 18 {
		t.Errorf("ParseDate(rfc3339) = %v, %v", got, err)
	}
	for _, bad := range []string{"", "15/03/2026", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseDate(%q) err = %v, want ErrValidation", bad, err)
		}
	}
}

func TestDayLock_SerializesSameKey(t *testing.T) {
	locks := newDayLock()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	var counter, max, cur int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("u1", day)
			defer unlock()
			mu.Lock()
			cur++
			if cur > max {
				max = cur
			}
			mu.Unlock()
			counter++
			mu.Lock()
			cur--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if counter != 20 {
		t.Errorf("counter = %d, want 20", counter)
	}
	if max != 1 {
		t.Errorf("max concurrent holders = %d, want 1", max)
	}
}

func TestDayLock_DistinctKeysIndependent(t *testing.T) {
	locks := newDayLock()
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	unlockA := locks.Lock("u1", day)
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("u2", day)
		unlockB()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for a different user blocked")
	}
	unlockA()
}
