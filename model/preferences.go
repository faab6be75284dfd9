package model

import "time"

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences holds per-user application settings. One document per user.
type Preferences struct {
	PreferencesID      string    `bson:"_id,omitempty" json:"id"`
	UserID             string    `bson:"user_id" json:"user_id"`
	Theme              Theme     `bson:"theme" json:"theme"`
	EmailNotifications bool      `bson:"email_notifications" json:"email_notifications"`
	PushNotifications  bool      `bson:"push_notifications" json:"push_notifications"`
	DefaultPriority    Priority  `bson:"default_priority" json:"default_priority"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// PreferencesPatch carries the fields a partial update may set.
type PreferencesPatch struct {
	Theme              *Theme
	EmailNotifications *bool
	PushNotifications  *bool
	DefaultPriority    *Priority
}

// DefaultPreferences returns the settings a new user starts with.
func DefaultPreferences(userID string) *Preferences {
	return &Preferences{
		UserID:             userID,
		Theme:              ThemeSystem,
		EmailNotifications: true,
		PushNotifications:  false,
		DefaultPriority:    PriorityMedium,
	}
}
