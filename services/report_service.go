package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddhardha-create/lifeOS/config"
	"github.com/siddhardha-create/lifeOS/models"
)

// RetentionDays is how long raw entries are kept before cleanup removes
// them. Monthly exports exist so nothing is lost when users clear.
const RetentionDays = 30

// ReportService renders exports (CSV, monthly PDF), rolls up weekly
// summaries, and handles retention cleanup.
type ReportService struct {
	food    FoodStore
	workout WorkoutStore
	study   StudyStore
}

func NewReportService(food FoodStore, workout WorkoutStore, study StudyStore) *ReportService {
	return &ReportService{food: food, workout: workout, study: study}
}

// WriteCSV streams one domain's trailing entries as CSV.
func (s *ReportService) WriteCSV(ctx context.Context, w io.Writer, userID, domain string, days int) (filename string, err error) {
	if days <= 0 {
		days = RetentionDays
	}
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -days)
	cw := csv.NewWriter(w)
	defer cw.Flush()

	switch domain {
	case "food":
		entries, err := s.food.FindRange(ctx, userID, from, now)
		if err != nil {
			return "", err
		}
		cw.Write([]string{"Date", "Total Calories", "Protein (g)", "Carbs (g)", "Fat (g)", "Water (ml)"})
		for _, e := range entries {
			cw.Write([]string{
				e.Date.Format("2006-01-02"),
				strconv.FormatFloat(e.TotalDayCalories, 'f', 0, 64),
				strconv.FormatFloat(math.Round(e.TotalDayProtein), 'f', 0, 64),
				strconv.FormatFloat(math.Round(e.TotalDayCarbs), 'f', 0, 64),
				strconv.FormatFloat(math.Round(e.TotalDayFat), 'f', 0, 64),
				strconv.FormatFloat(e.WaterIntake, 'f', 0, 64),
			})
		}
		return "food_data.csv", cw.Error()
	case "workout":
		entries, err := s.workout.FindRange(ctx, userID, from, now)
		if err != nil {
			return "", err
		}
		cw.Write([]string{"Date", "Calories Burned", "Duration (min)", "Exercises Count"})
		for _, e := range entries {
			cw.Write([]string{
				e.Date.Format("2006-01-02"),
				strconv.FormatFloat(e.TotalCaloriesBurned, 'f', 0, 64),
				strconv.FormatFloat(e.TotalDuration, 'f', 0, 64),
				strconv.Itoa(len(e.Exercises)),
			})
		}
		return "workout_data.csv", cw.Error()
	case "study":
		entries, err := s.study.FindRange(ctx, userID, from, now)
		if err != nil {
			return "", err
		}
		cw.Write([]string{"Date", "Planned Hours", "Actual Hours", "Sessions", "Productivity Score"})
		for _, e := range entries {
			cw.Write([]string{
				e.Date.Format("2006-01-02"),
				strconv.FormatFloat(e.TotalPlannedHours, 'f', 1, 64),
				strconv.FormatFloat(e.TotalActualHours, 'f', 1, 64),
				strconv.Itoa(len(e.Sessions)),
				strconv.FormatFloat(e.ProductivityScore, 'f', 0, 64),
			})
		}
		return "study_data.csv", cw.Error()
	}
	return "", fmt.Errorf("%w: unknown export type %q", ErrValidation, domain)
}

// MonthlyPDF renders a month's activity to w and optionally deletes the
// exported range afterwards (export-and-clear).
func (s *ReportService) MonthlyPDF(ctx context.Context, w io.Writer, userID, userName string, month, year int, clearAfter bool) (filename string, err error) {
	now := time.Now().UTC()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	foodEntries, err := s.food.FindRange(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	workoutEntries, err := s.workout.FindRange(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	studyEntries, err := s.study.FindRange(ctx, userID, start, end)
	if err != nil {
		return "", err
	}

	var totalFoodCalories, totalProtein, totalCarbs, totalFat float64
	for _, e := range foodEntries {
		totalFoodCalories += e.TotalDayCalories
		totalProtein += e.TotalDayProtein
		totalCarbs += e.TotalDayCarbs
		totalFat += e.TotalDayFat
	}
	var totalBurned, totalWorkoutMinutes float64
	for _, e := range workoutEntries {
		totalBurned += e.TotalCaloriesBurned
		totalWorkoutMinutes += e.TotalDuration
	}
	var totalStudyHours float64
	subjectHours := make(map[string]float64)
	var subjects []string
	for _, e := range studyEntries {
		totalStudyHours += e.TotalActualHours
		for _, sess := range e.Sessions {
			if _, seen := subjectHours[sess.Subject]; !seen {
				subjects = append(subjects, sess.Subject)
			}
			subjectHours[sess.Subject] += sess.ActualDuration / 60
		}
	}

	monthName := start.Format("January")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFillColor(26, 26, 46)
	pdf.Rect(0, 0, 210, 34, "F")
	pdf.SetTextColor(226, 232, 240)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(12, 8)
	pdf.Cell(0, 10, "LifeOS Monthly Report")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(12, 20)
	pdf.Cell(0, 8, fmt.Sprintf("%s %d | %s", monthName, year, userName))

	pdf.SetTextColor(30, 41, 59)
	pdf.SetY(42)

	summary := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(60, 8, label)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, value)
		pdf.Ln(8)
	}
	summary("Calories Consumed", fmt.Sprintf("%.0f kcal", totalFoodCalories))
	summary("Calories Burned", fmt.Sprintf("%.0f kcal", totalBurned))
	summary("Study Hours", fmt.Sprintf("%.1f hrs", totalStudyHours))
	summary("Workout Days", strconv.Itoa(len(workoutEntries)))
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 15)
		pdf.Cell(0, 9, title)
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 10)
	}

	section("Food Tracking")
	avgCalories := 0.0
	if len(foodEntries) > 0 {
		avgCalories = math.Round(totalFoodCalories / float64(len(foodEntries)))
	}
	pdf.Cell(0, 6, fmt.Sprintf("Days Tracked: %d  |  Avg Daily Calories: %.0f kcal", len(foodEntries), avgCalories))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Protein: %.0fg  |  Total Carbs: %.0fg  |  Total Fat: %.0fg",
		math.Round(totalProtein), math.Round(totalCarbs), math.Round(totalFat)))
	pdf.Ln(8)
	for i, e := range foodEntries {
		if i >= 10 {
			break
		}
		pdf.Cell(0, 5, fmt.Sprintf("%s: %.0f kcal | P: %.0fg | C: %.0fg | F: %.0fg",
			e.Date.Format("Mon Jan 2"), e.TotalDayCalories,
			math.Round(e.TotalDayProtein), math.Round(e.TotalDayCarbs), math.Round(e.TotalDayFat)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	section("Workout Tracking")
	pdf.Cell(0, 6, fmt.Sprintf("Workout Days: %d  |  Total Duration: %.0f hours  |  Total Burned: %.0f kcal",
		len(workoutEntries), math.Round(totalWorkoutMinutes/60), totalBurned))
	pdf.Ln(8)
	for i, e := range workoutEntries {
		if i >= 10 {
			break
		}
		pdf.Cell(0, 5, fmt.Sprintf("%s: %.0f kcal burned | %.0f min | %d exercises",
			e.Date.Format("Mon Jan 2"), e.TotalCaloriesBurned, e.TotalDuration, len(e.Exercises)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	section("Study Tracking")
	pdf.Cell(0, 6, fmt.Sprintf("Study Days: %d  |  Total Hours: %.1f hrs", len(studyEntries), totalStudyHours))
	pdf.Ln(8)
	for _, subject := range subjects {
		pdf.Cell(0, 5, fmt.Sprintf("  %s: %.1f hours", subject, subjectHours[subject]))
		pdf.Ln(5)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(148, 163, 184)
	pdf.Cell(0, 5, fmt.Sprintf("Generated by LifeOS on %s | Data retained for %d days",
		now.Format("2006-01-02"), RetentionDays))

	if err := pdf.Output(w); err != nil {
		return "", err
	}

	if clearAfter {
		if _, err := s.food.DeleteRange(ctx, userID, start, end); err != nil {
			return "", err
		}
		if _, err := s.workout.DeleteRange(ctx, userID, start, end); err != nil {
			return "", err
		}
		if _, err := s.study.DeleteRange(ctx, userID, start, end); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("LifeOS_Report_%s_%d.pdf", monthName, year), nil
}

type CleanupResult struct {
	Food    int64 `json:"food"`
	Workout int64 `json:"workout"`
	Study   int64 `json:"study"`
}

// Cleanup deletes the user's entries older than the retention window.
func (s *ReportService) Cleanup(ctx context.Context, userID string) (*CleanupResult, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -RetentionDays)
	epoch := time.Unix(0, 0).UTC()

	res := &CleanupResult{}
	var err error
	if res.Food, err = s.food.DeleteRange(ctx, userID, epoch, cutoff); err != nil {
		return nil, err
	}
	if res.Workout, err = s.workout.DeleteRange(ctx, userID, epoch, cutoff); err != nil {
		return nil, err
	}
	if res.Study, err = s.study.DeleteRange(ctx, userID, epoch, cutoff); err != nil {
		return nil, err
	}
	return res, nil
}

// BuildWeeklySummary computes the rollup for the week around anchor from
// entries already in hand. Pure, so it is testable without a store.
func BuildWeeklySummary(userID string, weekStart, weekEnd time.Time, goals models.Goals,
	food []models.FoodEntry, workout []models.WorkoutEntry, study []models.StudyEntry) *models.WeeklySummary {

	sum := &models.WeeklySummary{
		UserID:    userID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
	}

	for _, e := range food {
		sum.Food.TotalCalories += e.TotalDayCalories
		sum.Food.TotalProtein += e.TotalDayProtein
		sum.Food.TotalCarbs += e.TotalDayCarbs
		sum.Food.TotalFat += e.TotalDayFat
	}
	if len(food) > 0 {
		sum.Food.AvgDailyCalories = math.Round(sum.Food.TotalCalories / float64(len(food)))
	}

	sum.Workout.DaysWorkedOut = len(workout)
	for _, e := range workout {
		sum.Workout.TotalCaloriesBurned += e.TotalCaloriesBurned
		sum.Workout.TotalDuration += e.TotalDuration
		sum.Workout.TotalExercises += len(e.Exercises)
	}

	subjectHours := make(map[string]float64)
	var subjects []string
	for _, e := range study {
		sum.Study.TotalHours += e.TotalActualHours
		sum.Study.CompletedSessions += e.TotalCompletedSessions
		for _, sess := range e.Sessions {
			if _, seen := subjectHours[sess.Subject]; !seen {
				subjects = append(subjects, sess.Subject)
			}
			subjectHours[sess.Subject] += sess.ActualDuration / 60
		}
	}
	sum.Study.TotalHours = round1(sum.Study.TotalHours)
	if len(study) > 0 {
		sum.Study.AvgDailyHours = round1(sum.Study.TotalHours / float64(len(study)))
	}
	for _, subject := range subjects {
		sum.Study.SubjectBreakdown = append(sum.Study.SubjectBreakdown, models.SubjectHours{
			Subject: subject,
			Hours:   round1(subjectHours[subject]),
		})
	}

	sum.OverallScore = weeklyScore(goals, sum)
	return sum
}

// weeklyScore grades the week against the user's goals: each domain
// contributes its attainment ratio capped at 100, averaged across the
// three.
func weeklyScore(goals models.Goals, sum *models.WeeklySummary) float64 {
	ratio := func(actual, target float64) float64 {
		if target <= 0 {
			return 0
		}
		return math.Min(100, actual/target*100)
	}
	burn := ratio(sum.Workout.TotalCaloriesBurned, float64(goals.DailyCalorieBurn)*7)
	workoutDays := ratio(float64(sum.Workout.DaysWorkedOut), float64(goals.WeeklyWorkoutDays))
	studyHours := ratio(sum.Study.TotalHours, float64(goals.DailyStudyHours)*7)
	return math.Round((burn + workoutDays + studyHours) / 3)
}

// UpsertWeeklySummary recomputes and stores the rollup for the week around
// anchor. The (user_id, week_start) unique index makes the upsert safe.
func (s *ReportService) UpsertWeeklySummary(ctx context.Context, userID string, goals models.Goals, anchor time.Time) (*models.WeeklySummary, error) {
	weekStart, weekEnd := WeekBounds(anchor)

	food, err := s.food.FindRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	workout, err := s.workout.FindRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	study, err := s.study.FindRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	sum := BuildWeeklySummary(userID, weekStart, weekEnd, goals, food, workout, study)
	sum.UpdatedAt = time.Now().UTC()

	coll := config.OpenCollection("weekly_summaries")
	filter := bson.M{"user_id": userID, "week_start": weekStart}
	update := bson.M{
		"$set": bson.M{
			"week_end":      sum.WeekEnd,
			"food":          sum.Food,
			"workout":       sum.Workout,
			"study":         sum.Study,
			"overall_score": sum.OverallScore,
			"updated_at":    sum.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": sum.UpdatedAt},
	}
	if _, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return nil, err
	}
	return sum, nil
}
