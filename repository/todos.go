package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/apperrors"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TodosRepo is the sole owner of the todos collection. It trusts the caller's
// user id and enforces no authorization itself.
type TodosRepo struct {
	MongoCollection *mongo.Collection
}

func GetTodosRepo(client *mongo.Client) *TodosRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("TODOS_COLLECTION")
	return &TodosRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateTodo inserts a new todo. Completion is forced to false and both
// timestamps are set to the same creation instant.
func (r *TodosRepo) CreateTodo(ctx context.Context, todo *model.Todo) error {
	timer := utils.TrackDBOperation("insert", "todos")
	defer timer.ObserveDuration()

	if todo.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	now := time.Now()
	todo.Completed = false
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(ctx, todo)
	if err != nil {
		utils.TrackError("database", "todo_creation_failed")
		return err
	}
	return nil
}

// GetTodoByID fetches one todo by id with no ownership filter; callers must
// check ownership themselves.
func (r *TodosRepo) GetTodoByID(ctx context.Context, todoID string) (*model.Todo, error) {
	timer := utils.TrackDBOperation("find_one", "todos")
	defer timer.ObserveDuration()

	var todo model.Todo
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": todoID}).Decode(&todo)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, err
	}
	return &todo, nil
}

// GetUserTodos returns all of a user's todos, newest created first.
func (r *TodosRepo) GetUserTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	return r.findTodos(ctx, bson.M{"user_id": userID})
}

// GetTodosByCompletion returns a user's todos filtered by completion status.
func (r *TodosRepo) GetTodosByCompletion(ctx context.Context, userID string, completed bool) ([]*model.Todo, error) {
	return r.findTodos(ctx, bson.M{"user_id": userID, "completed": completed})
}

// GetTodosByPriority returns a user's todos filtered by priority.
func (r *TodosRepo) GetTodosByPriority(ctx context.Context, userID string, priority model.Priority) ([]*model.Todo, error) {
	return r.findTodos(ctx, bson.M{"user_id": userID, "priority": priority})
}

// GetOverdueTodos returns incomplete todos whose due date has passed.
func (r *TodosRepo) GetOverdueTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	filter := bson.M{
		"user_id":   userID,
		"completed": false,
		"due_date":  bson.M{"$exists": true, "$ne": nil, "$lt": time.Now()},
	}
	return r.findTodos(ctx, filter)
}

// UpdateTodo applies only the supplied patch fields and refreshes updated_at.
// The owner id and creation timestamp are never touched.
func (r *TodosRepo) UpdateTodo(ctx context.Context, todoID string, patch *model.TodoPatch) error {
	timer := utils.TrackDBOperation("update", "todos")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.DueDate != nil {
		set["due_date"] = *patch.DueDate
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": todoID}, bson.M{"$set": set})
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "todo_not_found")
		return apperrors.ErrNotFound
	}

	if patch.Completed != nil && *patch.Completed {
		utils.TrackTodoCompletion()
	}
	return nil
}

// DeleteTodo removes one todo. Deleting an id that is already absent is not
// an error at this layer.
func (r *TodosRepo) DeleteTodo(ctx context.Context, todoID string) error {
	timer := utils.TrackDBOperation("delete", "todos")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": todoID})
	if err != nil {
		utils.TrackError("database", "todo_deletion_failed")
		return err
	}
	return nil
}

// DeleteCompletedTodos removes every completed todo for the user and returns
// how many were removed.
func (r *TodosRepo) DeleteCompletedTodos(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("delete_many", "todos")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID, "completed": true})
	if err != nil {
		utils.TrackError("database", "todo_bulk_deletion_failed")
		return 0, err
	}
	return int(result.DeletedCount), nil
}

// GetTodoStats computes the user's counts by scanning their todos.
func (r *TodosRepo) GetTodoStats(ctx context.Context, userID string) (*model.TodoStats, error) {
	todos, err := r.GetUserTodos(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.TodoStats{Total: len(todos)}
	for _, todo := range todos {
		if todo.Completed {
			stats.Completed++
			continue
		}
		if todo.Priority == model.PriorityHigh {
			stats.HighPriority++
		}
	}
	stats.Active = stats.Total - stats.Completed
	return stats, nil
}

// CountUserTodos counts the user's todos without loading them.
func (r *TodosRepo) CountUserTodos(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "todos")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "todo_count_failed")
		return 0, err
	}
	return int(count), nil
}

func (r *TodosRepo) findTodos(ctx context.Context, filter bson.M) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find", "todos")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var todos []*model.Todo
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, err
	}
	return todos, nil
}
