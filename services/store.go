package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddhardha-create/lifeOS/config"
	"github.com/siddhardha-create/lifeOS/models"
)

// The entry stores are the persistence seam for the upsert coordinators.
// Insert must fail with ErrDuplicateEntry when a document for the same
// (user, day) already exists; the unique compound index enforces that at
// the storage layer independent of any application check.

type FoodStore interface {
	FindByDay(ctx context.Context, userID string, day time.Time) (*models.FoodEntry, error)
	FindByID(ctx context.Context, userID, entryID string) (*models.FoodEntry, error)
	FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.FoodEntry, error)
	Insert(ctx context.Context, entry *models.FoodEntry) error
	Update(ctx context.Context, entry *models.FoodEntry) error
	Delete(ctx context.Context, userID, entryID string) error
	DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error)
}

type WorkoutStore interface {
	FindByDay(ctx context.Context, userID string, day time.Time) (*models.WorkoutEntry, error)
	FindByID(ctx context.Context, userID, entryID string) (*models.WorkoutEntry, error)
	FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.WorkoutEntry, error)
	Insert(ctx context.Context, entry *models.WorkoutEntry) error
	Update(ctx context.Context, entry *models.WorkoutEntry) error
	Delete(ctx context.Context, userID, entryID string) error
	DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error)
}

type StudyStore interface {
	FindByDay(ctx context.Context, userID string, day time.Time) (*models.StudyEntry, error)
	FindByID(ctx context.Context, userID, entryID string) (*models.StudyEntry, error)
	FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.StudyEntry, error)
	Insert(ctx context.Context, entry *models.StudyEntry) error
	Update(ctx context.Context, entry *models.StudyEntry) error
	Delete(ctx context.Context, userID, entryID string) error
	DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error)
}

func dayFilter(userID string, day time.Time) bson.M {
	start, end := DayBounds(day)
	return bson.M{"user_id": userID, "date": bson.M{"$gte": start, "$lte": end}}
}

func idFilter(userID, entryID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad entry id", ErrValidation)
	}
	return bson.M{"_id": oid, "user_id": userID}, nil
}

func mapInsertErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEntry
	}
	return err
}

// ---- Food ----

type mongoFoodStore struct{}

func NewMongoFoodStore() FoodStore { return mongoFoodStore{} }

func (mongoFoodStore) coll() *mongo.Collection { return config.OpenCollection("food_entries") }

func (s mongoFoodStore) FindByDay(ctx context.Context, userID string, day time.Time) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := s.coll().FindOne(ctx, dayFilter(userID, day)).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s mongoFoodStore) FindByID(ctx context.Context, userID, entryID string) (*models.FoodEntry, error) {
	filter, err := idFilter(userID, entryID)
	if err != nil {
		return nil, err
	}
	var entry models.FoodEntry
	if err := s.coll().FindOne(ctx, filter).Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s mongoFoodStore) FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.FoodEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.coll().Find(ctx, bson.M{"user_id": userID, "date": bson.M{"$gte": from, "$lte": to}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.FoodEntry
	err = cursor.All(ctx, &out)
	return out, err
}

func (s mongoFoodStore) Insert(ctx context.Context, entry *models.FoodEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := s.coll().InsertOne(ctx, entry)
	return mapInsertErr(err)
}

func (s mongoFoodStore) Update(ctx context.Context, entry *models.FoodEntry) error {
	_, err := s.coll().ReplaceOne(ctx, bson.M{"_id": entry.ID, "user_id": entry.UserID}, entry)
	return err
}

func (s mongoFoodStore) Delete(ctx context.Context, userID, entryID string) error {
	filter, err := idFilter(userID, entryID)
	if err != nil {
		return err
	}
	res, err := s.coll().DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s mongoFoodStore) DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	res, err := s.coll().DeleteMany(ctx, bson.M{"user_id": userID, "date": bson.M{"$gte": from, "$lte": to}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ---- Workout ----

type mongoWorkoutStore struct{}

func NewMongoWorkoutStore() WorkoutStore { return mongoWorkoutStore{} }

func (mongoWorkoutStore) coll() *mongo.Collection { return config.OpenCollection("workout_entries") }

func (s mongoWorkoutStore) FindByDay(ctx context.Context, userID string, day time.Time) (*models.WorkoutEntry, error) {
	var entry models.WorkoutEntry
	err := s.coll().FindOne(ctx, dayFilter(userID, day)).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s mongoWorkoutStore) FindByID(ctx context.Context, userID, entryID string) (*models.WorkoutEntry, error) {
	filter, err := idFilter(userID, entryID)
	if err != nil {
		return nil, err
	}
	var entry models.WorkoutEntry
	if err := s.coll().FindOne(ctx, filter).Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s mongoWorkoutStore) FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.WorkoutEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.coll().Find(ctx, bson.M{"user_id": userID, "date": bson.M{"$gte": from, "$lte": to}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.WorkoutEntry
	err = cursor.All(ctx, &out)
	return out, err
}

func (s mongoWorkoutStore) Insert(ctx context.Context, entry *models.WorkoutEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := s.coll().InsertOne(ctx, entry)
	return mapInsertErr(err)
}

func (s mongoWorkoutStore) Update(ctx context.Context, entry *models.WorkoutEntry) error {
	_, err := s.coll().ReplaceOne(ctx, bson.M{"_id": entry.ID, "user_id": entry.UserID}, entry)
	return err
}

func (s mongoWorkoutStore) Delete(ctx context.Context, userID, entryID string) error {
	filter, err := idFilter(userID, entryID)
	if err != nil {
		return err
	}
	res, err := s.coll().DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s mongoWorkoutStore) DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	res, err := s.coll().DeleteMany(ctx, bson.M{"user_id": userID, "date": bson.M{"$gte": from, "$lte": to}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ---- Study ----

type mongoStudyStore struct{}

func NewMongoStudyStore() StudyStore { return mongoStudyStore{} }

func (mongoStudyStore) coll() *mongo.Collection { return config.OpenCollection("study_entries") }

func (s mongoStudyStore) FindByDay(ctx context.Context, userID string, day time.Time) (*models.StudyEntry, error) {
	var entry models.StudyEntry
	err := s.coll().FindOne(ctx, dayFilter(userID, day)).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s mongoStudyStore) FindByID(ctx context.Context, userID, entryID string) (*models.StudyEntry, error) {
	filter, err := idFilter(userID, entryID)
	if err != nil {
		return nil, err
	}
	var entry models.StudyEntry
	if err := s.coll().FindOne(ctx, filter).Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s mongoStudyStore) FindRange(ctx context.Context, userID string, from, to time.Time) ([]models.StudyEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.coll().Find(ctx, bson.M{"user_id": userID, "date": bson.M{"$gte": from, "$lte": to}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.StudyEntry
	err = cursor.All(ctx, &out)
	return out, err
}

func (s mongoStudyStore) Insert(ctx context.Context, entry *models.StudyEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := s.coll().InsertOne(ctx, entry)
	return mapInsertErr(err)
}

func (s mongoStudyStore) Update(ctx context.Context, entry *models.StudyEntry) error {
	_, err := s.coll().ReplaceOne(ctx, bson.M{"_id": entry.ID, "user_id": entry.UserID}, entry)
	return err
}

func (s mongoStudyStore) Delete(ctx context.Context, userID, entryID string) error {
	filter, err := idFilter(userID, entryID)
	if err != nil {
		return err
	}
	res, err := s.coll().DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s mongoStudyStore) DeleteRange(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	res, err := s.coll().DeleteMany(ctx, bson.M{"user_id": userID, "date": bson.M{"$gte": from, "$lte": to}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
