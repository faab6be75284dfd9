package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the owner-scoped indexes every listing query relies on.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	todosIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("user_todos_date"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "completed", Value: 1},
			},
			Options: options.Index().SetName("user_todos_completed"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "priority", Value: 1},
			},
			Options: options.Index().SetName("user_todos_priority"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "due_date", Value: 1},
			},
			Options: options.Index().SetName("user_todos_due_date"),
		},
	}

	threadsIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("user_threads_date"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("user_threads_status"),
		},
	}

	messagesIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "thread_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("thread_messages_date"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_messages"),
		},
	}

	preferencesIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_preferences").SetUnique(true),
		},
	}

	collections := []struct {
		name    string
		indexes []mongo.IndexModel
	}{
		{os.Getenv("TODOS_COLLECTION"), todosIndexes},
		{os.Getenv("THREADS_COLLECTION"), threadsIndexes},
		{os.Getenv("MESSAGES_COLLECTION"), messagesIndexes},
		{os.Getenv("PREFERENCES_COLLECTION"), preferencesIndexes},
	}

	for _, coll := range collections {
		if _, err := db.Collection(coll.name).Indexes().CreateMany(ctx, coll.indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll.name, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
