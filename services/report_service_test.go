package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/siddhardha-create/lifeOS/models"
)

func TestBuildWeeklySummary(t *testing.T) {
	weekStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Millisecond)

	food := []models.FoodEntry{
		{TotalDayCalories: 2000, TotalDayProtein: 80},
		{TotalDayCalories: 1800, TotalDayProtein: 70},
	}
	workout := []models.WorkoutEntry{
		{TotalCaloriesBurned: 600, TotalDuration: 45, Exercises: []models.Exercise{{}, {}}},
		{TotalCaloriesBurned: 600, TotalDuration: 60, Exercises: []models.Exercise{{}}},
		{TotalCaloriesBurned: 550, TotalDuration: 30, Exercises: []models.Exercise{{}}},
	}
	study := []models.StudyEntry{
		{TotalActualHours: 7, TotalCompletedSessions: 1, Sessions: []models.StudySession{
			{Subject: "Math", ActualDuration: 420},
		}},
		{TotalActualHours: 7, TotalCompletedSessions: 2, Sessions: []models.StudySession{
			{Subject: "Math", ActualDuration: 180},
			{Subject: "Physics", ActualDuration: 240},
		}},
	}

	sum := BuildWeeklySummary("u1", weekStart, weekEnd, models.DefaultGoals(), food, workout, study)

	if sum.Food.TotalCalories != 3800 {
		t.Errorf("food calories = %v, want 3800", sum.Food.TotalCalories)
	}
	if sum.Food.AvgDailyCalories != 1900 {
		t.Errorf("avg calories = %v, want 1900", sum.Food.AvgDailyCalories)
	}
	if sum.Workout.DaysWorkedOut != 3 {
		t.Errorf("days worked out = %d, want 3", sum.Workout.DaysWorkedOut)
	}
	if sum.Workout.TotalCaloriesBurned != 1750 {
		t.Errorf("burned = %v, want 1750", sum.Workout.TotalCaloriesBurned)
	}
	if sum.Workout.TotalExercises != 4 {
		t.Errorf("exercises = %d, want 4", sum.Workout.TotalExercises)
	}
	if sum.Study.TotalHours != 14 {
		t.Errorf("study hours = %v, want 14", sum.Study.TotalHours)
	}
	if sum.Study.CompletedSessions != 3 {
		t.Errorf("completed sessions = %d, want 3", sum.Study.CompletedSessions)
	}

	hours := make(map[string]float64)
	for _, s := range sum.Study.SubjectBreakdown {
		hours[s.Subject] = s.Hours
	}
	if hours["Math"] != 10 || hours["Physics"] != 4 {
		t.Errorf("subject breakdown = %v", hours)
	}

	// Burn 1750/3500 = 50, days 3/5 = 60, hours 14/28 = 50: round(160/3).
	if sum.OverallScore != 53 {
		t.Errorf("overall score = %v, want 53", sum.OverallScore)
	}
}

func TestBuildWeeklySummary_EmptyWeek(t *testing.T) {
	weekStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	sum := BuildWeeklySummary("u1", weekStart, weekStart.AddDate(0, 0, 7), models.DefaultGoals(), nil, nil, nil)

	if sum.OverallScore != 0 {
		t.Errorf("score = %v, want 0 for empty week", sum.OverallScore)
	}
	if sum.Food.AvgDailyCalories != 0 || sum.Study.AvgDailyHours != 0 {
		t.Errorf("averages not zero for empty week: %+v", sum)
	}
}

func TestBuildWeeklySummary_ScoreCapsAt100(t *testing.T) {
	weekStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	workout := []models.WorkoutEntry{
		{TotalCaloriesBurned: 9000}, {}, {}, {}, {}, {}, {},
	}
	study := []models.StudyEntry{{TotalActualHours: 100}}

	sum := BuildWeeklySummary("u1", weekStart, weekStart.AddDate(0, 0, 7), models.DefaultGoals(), nil, workout, study)
	if sum.OverallScore != 100 {
		t.Errorf("score = %v, want 100 cap", sum.OverallScore)
	}
}

func newTestReportService() (*ReportService, *fakeFoodStore, *fakeWorkoutStore, *fakeStudyStore) {
	food := &fakeFoodStore{}
	workout := &fakeWorkoutStore{}
	study := &fakeStudyStore{}
	return NewReportService(food, workout, study), food, workout, study
}

func TestWriteCSV_Food(t *testing.T) {
	svc, food, _, _ := newTestReportService()
	now := time.Now().UTC()
	food.entries = []models.FoodEntry{
		{UserID: "u1", Date: NoonOf(now.AddDate(0, 0, -1)), TotalDayCalories: 1900, TotalDayProtein: 80.4, WaterIntake: 1500},
		{UserID: "u1", Date: NoonOf(now.AddDate(0, 0, -2)), TotalDayCalories: 2100},
		{UserID: "u2", Date: NoonOf(now), TotalDayCalories: 999},
	}

	var buf bytes.Buffer
	filename, err := svc.WriteCSV(context.Background(), &buf, "u1", "food", 30)
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if filename != "food_data.csv" {
		t.Errorf("filename = %q", filename)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][1] != "Total Calories" {
		t.Errorf("header = %v", rows[0])
	}
	for _, row := range rows[1:] {
		if row[1] == "999" {
			t.Error("export leaked another user's entry")
		}
	}
}

func TestWriteCSV_UnknownDomain(t *testing.T) {
	svc, _, _, _ := newTestReportService()

	var buf bytes.Buffer
	_, err := svc.WriteCSV(context.Background(), &buf, "u1", "sleep", 30)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestMonthlyPDF(t *testing.T) {
	svc, food, workout, study := newTestReportService()
	food.entries = []models.FoodEntry{
		{UserID: "u1", Date: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), TotalDayCalories: 1900},
	}
	workout.entries = []models.WorkoutEntry{
		{UserID: "u1", Date: time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), TotalCaloriesBurned: 400, TotalDuration: 40},
	}
	study.entries = []models.StudyEntry{
		{UserID: "u1", Date: time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC), TotalActualHours: 2,
			Sessions: []models.StudySession{{Subject: "Math", ActualDuration: 120}}},
	}

	var buf bytes.Buffer
	filename, err := svc.MonthlyPDF(context.Background(), &buf, "u1", "Asha", 3, 2026, false)
	if err != nil {
		t.Fatalf("monthly pdf: %v", err)
	}
	if filename != "LifeOS_Report_March_2026.pdf" {
		t.Errorf("filename = %q", filename)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Error("output is not a PDF")
	}
	if len(food.entries) != 1 {
		t.Error("entries deleted without clearAfter")
	}
}

func TestMonthlyPDF_ClearAfter(t *testing.T) {
	svc, food, workout, study := newTestReportService()
	food.entries = []models.FoodEntry{
		{UserID: "u1", Date: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)},
		{UserID: "u1", Date: time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)},
	}
	workout.entries = []models.WorkoutEntry{
		{UserID: "u1", Date: time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)},
	}
	study.entries = []models.StudyEntry{
		{UserID: "u1", Date: time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	if _, err := svc.MonthlyPDF(context.Background(), &buf, "u1", "Asha", 3, 2026, true); err != nil {
		t.Fatalf("monthly pdf: %v", err)
	}

	if len(food.entries) != 1 {
		t.Errorf("food entries after clear = %d, want only the April one", len(food.entries))
	}
	if len(workout.entries) != 0 || len(study.entries) != 0 {
		t.Errorf("march workout/study entries survived clear: %d/%d", len(workout.entries), len(study.entries))
	}
}

func TestCleanup_RespectsRetentionWindow(t *testing.T) {
	svc, food, workout, study := newTestReportService()
	now := time.Now().UTC()
	food.entries = []models.FoodEntry{
		{UserID: "u1", Date: now.AddDate(0, 0, -45)},
		{UserID: "u1", Date: now.AddDate(0, 0, -5)},
	}
	workout.entries = []models.WorkoutEntry{
		{UserID: "u1", Date: now.AddDate(0, 0, -60)},
	}
	study.entries = []models.StudyEntry{
		{UserID: "u1", Date: now.AddDate(0, 0, -2)},
	}

	res, err := svc.Cleanup(context.Background(), "u1")
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if res.Food != 1 || res.Workout != 1 || res.Study != 0 {
		t.Errorf("deleted food/workout/study = %d/%d/%d, want 1/1/0", res.Food, res.Workout, res.Study)
	}
	if len(food.entries) != 1 {
		t.Errorf("recent food entry was deleted")
	}
}
