package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"main/apperrors"
	"main/model"
	"main/utils"

	"github.com/google/uuid"
)

// ThreadStore is the data-access contract for conversation threads.
// *repository.ThreadsRepo satisfies it.
type ThreadStore interface {
	CreateThread(ctx context.Context, thread *model.Thread) error
	GetThreadByID(ctx context.Context, threadID string) (*model.Thread, error)
	GetUserThreads(ctx context.Context, userID string) ([]*model.Thread, error)
	GetThreadsByStatus(ctx context.Context, userID string, status model.ThreadStatus) ([]*model.Thread, error)
	SetThreadStatus(ctx context.Context, threadID string, status model.ThreadStatus) error
	TouchThread(ctx context.Context, threadID string) error
}

// MessageStore is the data-access contract for thread messages.
// *repository.MessagesRepo satisfies it.
type MessageStore interface {
	CreateMessage(ctx context.Context, message *model.Message) error
	GetThreadMessages(ctx context.Context, threadID string) ([]*model.Message, error)
}

type ThreadsService struct {
	threads  ThreadStore
	messages MessageStore
}

func NewThreadsService(threads ThreadStore, messages MessageStore) *ThreadsService {
	return &ThreadsService{threads: threads, messages: messages}
}

// CreateThread starts a new active conversation thread for the user.
func (svc *ThreadsService) CreateThread(ctx context.Context, userID, title string) (*model.Thread, error) {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) > utils.TitleMaxLen {
		return nil, apperrors.InvalidInput("title", "must be at most 200 characters")
	}

	thread := &model.Thread{
		ThreadID: uuid.New().String(),
		UserID:   userID,
		Title:    title,
	}
	if err := svc.threads.CreateThread(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (svc *ThreadsService) GetUserThreads(ctx context.Context, userID string) ([]*model.Thread, error) {
	return svc.threads.GetUserThreads(ctx, userID)
}

// ArchiveThread marks an owned thread archived.
func (svc *ThreadsService) ArchiveThread(ctx context.Context, threadID, userID string) (*model.Thread, error) {
	if _, err := svc.ownedThread(ctx, threadID, userID); err != nil {
		return nil, err
	}
	if err := svc.threads.SetThreadStatus(ctx, threadID, model.ThreadArchived); err != nil {
		return nil, err
	}
	return svc.threads.GetThreadByID(ctx, threadID)
}

// SendMessage appends a user message to an owned thread and refreshes the
// thread's updated_at. Assistant replies are produced by the external agent
// runtime, not here.
func (svc *ThreadsService) SendMessage(ctx context.Context, threadID, userID, content string) (*model.Message, error) {
	content = utils.SanitizeInput(content)
	if content == "" {
		return nil, apperrors.InvalidInput("content", "must not be empty")
	}

	if _, err := svc.ownedThread(ctx, threadID, userID); err != nil {
		return nil, err
	}

	message := &model.Message{
		MessageID: uuid.New().String(),
		ThreadID:  threadID,
		UserID:    userID,
		Role:      model.RoleUser,
		Content:   content,
	}
	if err := svc.messages.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	if err := svc.threads.TouchThread(ctx, threadID); err != nil {
		return nil, err
	}
	return message, nil
}

// GetThreadMessages returns the messages of an owned thread in order.
func (svc *ThreadsService) GetThreadMessages(ctx context.Context, threadID, userID string) ([]*model.Message, error) {
	if _, err := svc.ownedThread(ctx, threadID, userID); err != nil {
		return nil, err
	}
	return svc.messages.GetThreadMessages(ctx, threadID)
}

func (svc *ThreadsService) ownedThread(ctx context.Context, threadID, userID string) (*model.Thread, error) {
	thread, err := svc.threads.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return thread, nil
}
