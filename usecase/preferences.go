package usecase

import (
	"context"
	"errors"

	"main/apperrors"
	"main/model"
	"main/utils"

	"github.com/google/uuid"
)

// PreferencesStore is the data-access contract for user preferences.
// *repository.PreferencesRepo satisfies it.
type PreferencesStore interface {
	CreatePreferences(ctx context.Context, prefs *model.Preferences) error
	GetUserPreferences(ctx context.Context, userID string) (*model.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, patch *model.PreferencesPatch) error
}

type PreferencesService struct {
	store PreferencesStore
}

func NewPreferencesService(store PreferencesStore) *PreferencesService {
	return &PreferencesService{store: store}
}

// GetPreferences returns the user's preferences, creating the defaults on
// first access.
func (svc *PreferencesService) GetPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	prefs, err := svc.store.GetUserPreferences(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return svc.Initialize(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

// Initialize creates default preferences for the user if none exist yet.
func (svc *PreferencesService) Initialize(ctx context.Context, userID string) (*model.Preferences, error) {
	existing, err := svc.store.GetUserPreferences(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	prefs := model.DefaultPreferences(userID)
	prefs.PreferencesID = uuid.New().String()
	if err := svc.store.CreatePreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// UpdatePreferences validates and applies a partial settings update, creating
// the defaults first if the user has none.
func (svc *PreferencesService) UpdatePreferences(ctx context.Context, userID string, patch *model.PreferencesPatch) (*model.Preferences, error) {
	if patch.Theme != nil && !utils.IsValidTheme(string(*patch.Theme)) {
		return nil, apperrors.InvalidInput("theme", "must be light, dark or system")
	}
	if patch.DefaultPriority != nil && !utils.IsValidPriority(string(*patch.DefaultPriority)) {
		return nil, apperrors.InvalidInput("default_priority", "must be low, medium or high")
	}

	if _, err := svc.Initialize(ctx, userID); err != nil {
		return nil, err
	}
	if err := svc.store.UpdatePreferences(ctx, userID, patch); err != nil {
		return nil, err
	}
	return svc.store.GetUserPreferences(ctx, userID)
}
