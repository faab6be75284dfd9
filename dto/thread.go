package dto

import (
	"time"

	"main/model"
)

type ThreadResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title,omitempty"`
	Status    model.ThreadStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func ToThreadResponse(thread *model.Thread) ThreadResponse {
	return ThreadResponse{
		ID:        thread.ThreadID,
		Title:     thread.Title,
		Status:    thread.Status,
		CreatedAt: thread.CreatedAt,
		UpdatedAt: thread.UpdatedAt,
	}
}

func ToThreadResponses(threads []*model.Thread) []ThreadResponse {
	responses := make([]ThreadResponse, len(threads))
	for i, thread := range threads {
		responses[i] = ToThreadResponse(thread)
	}
	return responses
}

type MessageResponse struct {
	ID        string            `json:"id"`
	ThreadID  string            `json:"thread_id"`
	Role      model.MessageRole `json:"role"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
}

func ToMessageResponse(message *model.Message) MessageResponse {
	return MessageResponse{
		ID:        message.MessageID,
		ThreadID:  message.ThreadID,
		Role:      message.Role,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}

func ToMessageResponses(messages []*model.Message) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = ToMessageResponse(message)
	}
	return responses
}

type CreateThreadRequest struct {
	Title string `json:"title"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
