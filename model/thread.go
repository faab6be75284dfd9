package model

import "time"

type ThreadStatus string

const (
	ThreadActive   ThreadStatus = "active"
	ThreadArchived ThreadStatus = "archived"
)

// Thread is one conversation between a user and the assistant.
type Thread struct {
	ThreadID  string       `bson:"_id,omitempty" json:"id"`
	UserID    string       `bson:"user_id" json:"user_id"`
	Title     string       `bson:"title,omitempty" json:"title,omitempty"`
	Status    ThreadStatus `bson:"status" json:"status"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`
}
