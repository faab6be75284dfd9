package dto

import (
	"time"

	"main/model"
)

type PreferencesResponse struct {
	Theme              model.Theme    `json:"theme"`
	EmailNotifications bool           `json:"email_notifications"`
	PushNotifications  bool           `json:"push_notifications"`
	DefaultPriority    model.Priority `json:"default_priority"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func ToPreferencesResponse(prefs *model.Preferences) PreferencesResponse {
	return PreferencesResponse{
		Theme:              prefs.Theme,
		EmailNotifications: prefs.EmailNotifications,
		PushNotifications:  prefs.PushNotifications,
		DefaultPriority:    prefs.DefaultPriority,
		UpdatedAt:          prefs.UpdatedAt,
	}
}

// UpdatePreferencesRequest is the client payload for preferences.update.
type UpdatePreferencesRequest struct {
	Theme              *string `json:"theme" binding:"omitempty,theme"`
	EmailNotifications *bool   `json:"email_notifications"`
	PushNotifications  *bool   `json:"push_notifications"`
	DefaultPriority    *string `json:"default_priority" binding:"omitempty,priority"`
}

func (r *UpdatePreferencesRequest) ToPatch() *model.PreferencesPatch {
	patch := &model.PreferencesPatch{
		EmailNotifications: r.EmailNotifications,
		PushNotifications:  r.PushNotifications,
	}
	if r.Theme != nil {
		theme := model.Theme(*r.Theme)
		patch.Theme = &theme
	}
	if r.DefaultPriority != nil {
		priority := model.Priority(*r.DefaultPriority)
		patch.DefaultPriority = &priority
	}
	return patch
}
