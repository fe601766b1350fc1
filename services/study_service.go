package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siddhardha-create/lifeOS/models"
)

// StudyService coordinates upserts of the one-per-(user, day) study entry.
// Setting the day replaces the session list; logging a single session
// appends.
type StudyService struct {
	store StudyStore
	locks *dayLock
}

func NewStudyService(store StudyStore) *StudyService {
	return &StudyService{store: store, locks: newDayLock()}
}

type StudyUpsert struct {
	Date     time.Time
	Sessions []models.StudySession
	Mode     MergeMode
	Notes    string
}

func (s *StudyService) UpsertDay(ctx context.Context, userID string, req StudyUpsert) (*models.StudyEntry, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	day := DayOf(req.Date)
	unlock := s.locks.Lock(userID, day)
	defer unlock()

	sessions := stampSessions(req.Sessions)

	entry, err := s.store.FindByDay(ctx, userID, day)
	switch err {
	case nil:
		s.applyUpdate(entry, req, sessions)
		RecalcStudyTotals(entry)
		entry.UpdatedAt = time.Now().UTC()
		if err := s.store.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	case ErrNotFound:
		now := time.Now().UTC()
		entry = &models.StudyEntry{
			UserID:    userID,
			Date:      NoonOf(req.Date),
			Sessions:  sessions,
			Notes:     req.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		RecalcStudyTotals(entry)
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
		s.applyUpdate(entry, req, sessions)
		RecalcStudyTotals(entry)
		entry.UpdatedAt = time.Now().UTC()
		if err := s.store.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	default:
		return nil, err
	}
}

func stampSessions(sessions []models.StudySession) []models.StudySession {
	out := make([]models.StudySession, len(sessions))
	for i, sess := range sessions {
		if sess.ItemID == "" {
			sess.ItemID = uuid.NewString()
		}
		out[i] = sess
	}
	return out
}

func (s *StudyService) applyUpdate(entry *models.StudyEntry, req StudyUpsert, sessions []models.StudySession) {
	if len(sessions) > 0 {
		switch req.Mode {
		case MergeReplace:
			entry.Sessions = sessions
		default:
			entry.Sessions = append(entry.Sessions, sessions...)
		}
	}
	if req.Notes != "" {
		entry.Notes = req.Notes
	}
}

func (s *StudyService) GetDay(ctx context.Context, userID string, day time.Time) (*models.StudyEntry, error) {
	return s.store.FindByDay(ctx, userID, day)
}

func (s *StudyService) GetWeek(ctx context.Context, userID string, anchor time.Time) ([]models.StudyEntry, time.Time, time.Time, error) {
	monday, sunday := WeekBounds(anchor)
	entries, err := s.store.FindRange(ctx, userID, monday, sunday)
	return entries, monday, sunday, err
}

func (s *StudyService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return s.store.Delete(ctx, userID, entryID)
}

// StudyStats summarizes the trailing window with an hours-per-subject
// breakdown.
type StudyStats struct {
	Entries          []models.StudyEntry   `json:"entries"`
	TotalHours       float64               `json:"totalHours"`
	AvgDailyHours    float64               `json:"avgDailyHours"`
	SubjectBreakdown []models.SubjectHours `json:"subjectBreakdown"`
}

func (s *StudyService) Stats(ctx context.Context, userID string, days int) (*StudyStats, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now().UTC()
	entries, err := s.store.FindRange(ctx, userID, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}

	stats := &StudyStats{Entries: entries}
	subjectHours := make(map[string]float64)
	var subjects []string
	for _, e := range entries {
		stats.TotalHours += e.TotalActualHours
		for _, sess := range e.Sessions {
			if _, seen := subjectHours[sess.Subject]; !seen {
				subjects = append(subjects, sess.Subject)
			}
			subjectHours[sess.Subject] += sess.ActualDuration / 60
		}
	}
	stats.TotalHours = round1(stats.TotalHours)
	if len(entries) > 0 {
		stats.AvgDailyHours = round1(stats.TotalHours / float64(len(entries)))
	}
	for _, subject := range subjects {
		stats.SubjectBreakdown = append(stats.SubjectBreakdown, models.SubjectHours{
			Subject: subject,
			Hours:   round1(subjectHours[subject]),
		})
	}
	return stats, nil
}
