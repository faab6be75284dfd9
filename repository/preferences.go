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
)

// PreferencesRepo owns the user preferences collection, one document per user.
type PreferencesRepo struct {
	MongoCollection *mongo.Collection
}

func GetPreferencesRepo(client *mongo.Client) *PreferencesRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("PREFERENCES_COLLECTION")
	return &PreferencesRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreatePreferences inserts a preferences document for a user.
func (r *PreferencesRepo) CreatePreferences(ctx context.Context, prefs *model.Preferences) error {
	timer := utils.TrackDBOperation("insert", "user_preferences")
	defer timer.ObserveDuration()

	now := time.Now()
	prefs.CreatedAt = now
	prefs.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(ctx, prefs)
	if err != nil {
		utils.TrackError("database", "preferences_creation_failed")
		return err
	}
	return nil
}

// GetUserPreferences fetches the preferences document for a user.
func (r *PreferencesRepo) GetUserPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	timer := utils.TrackDBOperation("find_one", "user_preferences")
	defer timer.ObserveDuration()

	var prefs model.Preferences
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prefs)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		utils.TrackError("database", "preferences_fetch_failed")
		return nil, err
	}
	return &prefs, nil
}

// UpdatePreferences applies only the supplied patch fields and refreshes
// updated_at.
func (r *PreferencesRepo) UpdatePreferences(ctx context.Context, userID string, patch *model.PreferencesPatch) error {
	timer := utils.TrackDBOperation("update", "user_preferences")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now()}
	if patch.Theme != nil {
		set["theme"] = *patch.Theme
	}
	if patch.EmailNotifications != nil {
		set["email_notifications"] = *patch.EmailNotifications
	}
	if patch.PushNotifications != nil {
		set["push_notifications"] = *patch.PushNotifications
	}
	if patch.DefaultPriority != nil {
		set["default_priority"] = *patch.DefaultPriority
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		utils.TrackError("database", "preferences_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountUserPreferences counts the user's preference documents (0 or 1).
func (r *PreferencesRepo) CountUserPreferences(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "user_preferences")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "preferences_count_failed")
		return 0, err
	}
	return int(count), nil
}
