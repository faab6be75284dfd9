package repository

import (
	"context"
	"os"
	"time"

	"main/apperrors"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ThreadsRepo owns the conversation threads collection.
type ThreadsRepo struct {
	MongoCollection *mongo.Collection
}

func GetThreadsRepo(client *mongo.Client) *ThreadsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("THREADS_COLLECTION")
	return &ThreadsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateThread inserts a new active thread.
func (r *ThreadsRepo) CreateThread(ctx context.Context, thread *model.Thread) error {
	timer := utils.TrackDBOperation("insert", "threads")
	defer timer.ObserveDuration()

	now := time.Now()
	thread.Status = model.ThreadActive
	thread.CreatedAt = now
	thread.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(ctx, thread)
	if err != nil {
		utils.TrackError("database", "thread_creation_failed")
		return err
	}
	return nil
}

func (r *ThreadsRepo) GetThreadByID(ctx context.Context, threadID string) (*model.Thread, error) {
	timer := utils.TrackDBOperation("find_one", "threads")
	defer timer.ObserveDuration()

	var thread model.Thread
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": threadID}).Decode(&thread)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		utils.TrackError("database", "thread_fetch_failed")
		return nil, err
	}
	return &thread, nil
}

// GetUserThreads returns all of a user's threads, newest created first.
func (r *ThreadsRepo) GetUserThreads(ctx context.Context, userID string) ([]*model.Thread, error) {
	return r.findThreads(ctx, bson.M{"user_id": userID})
}

// GetThreadsByStatus returns a user's threads filtered by status.
func (r *ThreadsRepo) GetThreadsByStatus(ctx context.Context, userID string, status model.ThreadStatus) ([]*model.Thread, error) {
	return r.findThreads(ctx, bson.M{"user_id": userID, "status": status})
}

// SetThreadStatus updates the thread status and refreshes updated_at.
func (r *ThreadsRepo) SetThreadStatus(ctx context.Context, threadID string, status model.ThreadStatus) error {
	timer := utils.TrackDBOperation("update", "threads")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": threadID}, update)
	if err != nil {
		utils.TrackError("database", "thread_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TouchThread refreshes the thread's updated_at, used when a message arrives.
func (r *ThreadsRepo) TouchThread(ctx context.Context, threadID string) error {
	timer := utils.TrackDBOperation("update", "threads")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{"updated_at": time.Now()}}
	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": threadID}, update)
	if err != nil {
		utils.TrackError("database", "thread_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountUserThreads counts the user's threads without loading them.
func (r *ThreadsRepo) CountUserThreads(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "threads")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "thread_count_failed")
		return 0, err
	}
	return int(count), nil
}

func (r *ThreadsRepo) findThreads(ctx context.Context, filter bson.M) ([]*model.Thread, error) {
	timer := utils.TrackDBOperation("find", "threads")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "thread_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var threads []*model.Thread
	if err = cursor.All(ctx, &threads); err != nil {
		utils.TrackError("database", "thread_decode_failed")
		return nil, err
	}
	return threads, nil
}
