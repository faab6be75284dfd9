package model

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry in a conversation thread.
type Message struct {
	MessageID string      `bson:"_id,omitempty" json:"id"`
	ThreadID  string      `bson:"thread_id" json:"thread_id"`
	UserID    string      `bson:"user_id" json:"user_id"`
	Role      MessageRole `bson:"role" json:"role"`
	Content   string      `bson:"content" json:"content"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
}
