package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddhardha-create/lifeOS/config"
	"github.com/siddhardha-create/lifeOS/models"
)

// AdminService backs the admin panel: user listings with activity stats,
// platform-wide counters, cascade deletes. It works on the collections
// directly since its queries cut across users.
type AdminService struct{}

func NewAdminService() *AdminService { return &AdminService{} }

var entryCollections = []string{"food_entries", "workout_entries", "study_entries"}

type UserStats struct {
	FoodEntries    int64 `json:"foodEntries"`
	WorkoutEntries int64 `json:"workoutEntries"`
	StudyEntries   int64 `json:"studyEntries"`
	TotalEntries   int64 `json:"totalEntries"`
}

type AdminUser struct {
	ID         primitive.ObjectID `json:"id"`
	UserID     string             `json:"user_id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	IsAdmin    bool               `json:"isAdmin"`
	CreatedAt  time.Time          `json:"created_at"`
	LastActive *time.Time         `json:"lastActive"`
	Stats      UserStats          `json:"stats"`
	Goals      models.Goals       `json:"goals"`
}

func (s *AdminService) ListUsers(ctx context.Context) ([]AdminUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := config.OpenCollection("users").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		au := AdminUser{
			ID:        u.ID,
			UserID:    u.UserID,
			Name:      u.Name,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt,
			Goals:     u.Goals,
		}

		counts := make([]int64, len(entryCollections))
		for i, coll := range entryCollections {
			n, err := config.OpenCollection(coll).CountDocuments(ctx, bson.M{"user_id": u.UserID})
			if err != nil {
				return nil, err
			}
			counts[i] = n
		}
		au.Stats = UserStats{
			FoodEntries:    counts[0],
			WorkoutEntries: counts[1],
			StudyEntries:   counts[2],
			TotalEntries:   counts[0] + counts[1] + counts[2],
		}

		if last, err := s.lastActivity(ctx, u.UserID); err != nil {
			return nil, err
		} else if !last.IsZero() {
			au.LastActive = &last
		}

		out = append(out, au)
	}
	return out, nil
}

// lastActivity returns the newest entry date for a user across the three
// domains, zero when they have never logged anything.
func (s *AdminService) lastActivity(ctx context.Context, userID string) (time.Time, error) {
	var latest time.Time
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}}).
		SetProjection(bson.M{"date": 1})
	for _, coll := range entryCollections {
		var doc struct {
			Date time.Time `bson:"date"`
		}
		err := config.OpenCollection(coll).FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			continue
		}
		if err != nil {
			return time.Time{}, err
		}
		if doc.Date.After(latest) {
			latest = doc.Date
		}
	}
	return latest, nil
}

type AllTimeStats struct {
	TotalCaloriesConsumed float64 `json:"totalCaloriesConsumed"`
	TotalCaloriesBurned   float64 `json:"totalCaloriesBurned"`
	TotalStudyHours       float64 `json:"totalStudyHours"`
	TotalFoodDays         int     `json:"totalFoodDays"`
	TotalWorkoutDays      int     `json:"totalWorkoutDays"`
	TotalStudyDays        int     `json:"totalStudyDays"`
}

type RecentActivity struct {
	Food    []models.FoodEntry    `json:"food"`
	Workout []models.WorkoutEntry `json:"workout"`
	Study   []models.StudyEntry   `json:"study"`
}

type UserDetail struct {
	User           models.User    `json:"user"`
	AllTimeStats   AllTimeStats   `json:"allTimeStats"`
	RecentActivity RecentActivity `json:"recentActivity"`
}

func (s *AdminService) UserDetail(ctx context.Context, userID string) (*UserDetail, error) {
	var user models.User
	err := config.OpenCollection("users").FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Password = ""

	detail := &UserDetail{User: user}

	sevenDaysAgo := time.Now().UTC().AddDate(0, 0, -7)
	recentOpts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	recentFilter := bson.M{"user_id": userID, "date": bson.M{"$gte": sevenDaysAgo}}

	foodCur, err := config.OpenCollection("food_entries").Find(ctx, recentFilter, recentOpts)
	if err != nil {
		return nil, err
	}
	if err := foodCur.All(ctx, &detail.RecentActivity.Food); err != nil {
		return nil, err
	}
	workoutCur, err := config.OpenCollection("workout_entries").Find(ctx, recentFilter, recentOpts)
	if err != nil {
		return nil, err
	}
	if err := workoutCur.All(ctx, &detail.RecentActivity.Workout); err != nil {
		return nil, err
	}
	studyCur, err := config.OpenCollection("study_entries").Find(ctx, recentFilter, recentOpts)
	if err != nil {
		return nil, err
	}
	if err := studyCur.All(ctx, &detail.RecentActivity.Study); err != nil {
		return nil, err
	}

	userFilter := bson.M{"user_id": userID}

	allFoodCur, err := config.OpenCollection("food_entries").Find(ctx, userFilter)
	if err != nil {
		return nil, err
	}
	var allFood []models.FoodEntry
	if err := allFoodCur.All(ctx, &allFood); err != nil {
		return nil, err
	}
	allWorkoutCur, err := config.OpenCollection("workout_entries").Find(ctx, userFilter)
	if err != nil {
		return nil, err
	}
	var allWorkout []models.WorkoutEntry
	if err := allWorkoutCur.All(ctx, &allWorkout); err != nil {
		return nil, err
	}
	allStudyCur, err := config.OpenCollection("study_entries").Find(ctx, userFilter)
	if err != nil {
		return nil, err
	}
	var allStudy []models.StudyEntry
	if err := allStudyCur.All(ctx, &allStudy); err != nil {
		return nil, err
	}

	var consumed, burned, studyHours float64
	for _, e := range allFood {
		consumed += e.TotalDayCalories
	}
	for _, e := range allWorkout {
		burned += e.TotalCaloriesBurned
	}
	for _, e := range allStudy {
		studyHours += e.TotalActualHours
	}
	detail.AllTimeStats = AllTimeStats{
		TotalCaloriesConsumed: math.Round(consumed),
		TotalCaloriesBurned:   math.Round(burned),
		TotalStudyHours:       math.Round(studyHours),
		TotalFoodDays:         len(allFood),
		TotalWorkoutDays:      len(allWorkout),
		TotalStudyDays:        len(allStudy),
	}

	return detail, nil
}

type PlatformStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalFoodEntries    int64 `json:"totalFoodEntries"`
	TotalWorkoutEntries int64 `json:"totalWorkoutEntries"`
	TotalStudyEntries   int64 `json:"totalStudyEntries"`
	NewUsersThisWeek    int64 `json:"newUsersThisWeek"`
	ActiveUsersThisWeek int   `json:"activeUsersThisWeek"`
}

func (s *AdminService) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	var err error

	if stats.TotalUsers, err = config.OpenCollection("users").CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalFoodEntries, err = config.OpenCollection("food_entries").CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalWorkoutEntries, err = config.OpenCollection("workout_entries").CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalStudyEntries, err = config.OpenCollection("study_entries").CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	if stats.NewUsersThisWeek, err = config.OpenCollection("users").CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": weekAgo}}); err != nil {
		return nil, err
	}

	active := make(map[string]struct{})
	for _, coll := range []string{"food_entries", "workout_entries"} {
		ids, err := config.OpenCollection(coll).Distinct(ctx, "user_id", bson.M{"date": bson.M{"$gte": weekAgo}})
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if str, ok := id.(string); ok {
				active[str] = struct{}{}
			}
		}
	}
	stats.ActiveUsersThisWeek = len(active)

	return stats, nil
}

// DeleteUser removes the user and every entry they own.
func (s *AdminService) DeleteUser(ctx context.Context, requestingUserID, targetUserID string) error {
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: cannot delete your own account from the admin panel", ErrValidation)
	}

	res, err := config.OpenCollection("users").DeleteOne(ctx, bson.M{"user_id": targetUserID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	for _, coll := range append(entryCollections, "weekly_summaries") {
		if _, err := config.OpenCollection(coll).DeleteMany(ctx, bson.M{"user_id": targetUserID}); err != nil {
			return err
		}
	}
	return nil
}

// ToggleAdmin flips the admin flag and returns the new value.
func (s *AdminService) ToggleAdmin(ctx context.Context, userID string) (bool, string, error) {
	var user models.User
	coll := config.OpenCollection("users")
	err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return false, "", ErrNotFound
	}
	if err != nil {
		return false, "", err
	}

	newVal := !user.IsAdmin
	_, err = coll.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{"is_admin": newVal, "updated_at": time.Now().UTC()}})
	if err != nil {
		return false, "", err
	}
	return newVal, user.Name, nil
}
