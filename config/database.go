package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

// InitDB loads the environment, connects to MongoDB, and creates the
// indexes the upsert logic relies on. Call once from main before serving.
func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	log.Println("Attempting to connect to MongoDB...")

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("MongoDB is not reachable: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")
	Client = client

	ensureIndexes()
}

func OpenCollection(collectionName string) *mongo.Collection {

	if Client == nil {
		log.Fatal("MongoDB client is not initialized.")
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "lifeos"
	}

	return Client.Database(dbName).Collection(collectionName)
}

// ensureIndexes creates the uniqueness constraints. The (user_id, date)
// compound index is what guarantees at most one entry document per user per
// day even when two creates race.
func ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userDate := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, name := range []string{"food_entries", "workout_entries", "study_entries"} {
		if _, err := OpenCollection(name).Indexes().CreateOne(ctx, userDate); err != nil {
			log.Fatalf("Failed to create (user_id, date) index on %s: %v", name, err)
		}
	}

	userWeek := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "week_start", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := OpenCollection("weekly_summaries").Indexes().CreateOne(ctx, userWeek); err != nil {
		log.Fatalf("Failed to create (user_id, week_start) index: %v", err)
	}

	uniqueEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := OpenCollection("users").Indexes().CreateOne(ctx, uniqueEmail); err != nil {
		log.Fatalf("Failed to create unique email index: %v", err)
	}
}
