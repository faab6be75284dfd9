package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Todo is one task owned by exactly one user. UserID is immutable after
// creation and UpdatedAt never precedes CreatedAt.
type Todo struct {
	TodoID      string     `bson:"_id,omitempty" json:"id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Title       string     `bson:"title" json:"title" binding:"required"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Completed   bool       `bson:"completed" json:"completed"`
	Priority    Priority   `bson:"priority" json:"priority"`
	DueDate     *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// TodoPatch carries the fields a partial update may set. Nil means "leave as is".
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
	DueDate     *time.Time
}

// IsEmpty reports whether the patch would change nothing.
func (p *TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.DueDate == nil
}
