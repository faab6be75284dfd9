package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessagesRepo owns the conversation messages collection.
type MessagesRepo struct {
	MongoCollection *mongo.Collection
}

func GetMessagesRepo(client *mongo.Client) *MessagesRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("MESSAGES_COLLECTION")
	return &MessagesRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateMessage appends a message to a thread.
func (r *MessagesRepo) CreateMessage(ctx context.Context, message *model.Message) error {
	timer := utils.TrackDBOperation("insert", "messages")
	defer timer.ObserveDuration()

	message.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, message)
	if err != nil {
		utils.TrackError("database", "message_creation_failed")
		return err
	}
	return nil
}

// GetThreadMessages returns a thread's messages in conversation order,
// oldest first.
func (r *MessagesRepo) GetThreadMessages(ctx context.Context, threadID string) ([]*model.Message, error) {
	timer := utils.TrackDBOperation("find", "messages")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"thread_id": threadID}, opts)
	if err != nil {
		utils.TrackError("database", "message_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.Message
	if err = cursor.All(ctx, &messages); err != nil {
		utils.TrackError("database", "message_decode_failed")
		return nil, err
	}
	return messages, nil
}

// CountUserMessages counts the user's messages without loading them.
func (r *MessagesRepo) CountUserMessages(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "messages")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "message_count_failed")
		return 0, err
	}
	return int(count), nil
}
