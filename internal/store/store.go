package store

import (
	"context"
	"errors"

	db_models "convospace-backend/internal/models"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// e.g. two signups racing on the same email.
var ErrDuplicate = errors.New("record already exists")

// CreateConversationParams contains parameters for creating a conversation.
// Title must already be defaulted and truncated by the caller; the store
// persists it as given.
type CreateConversationParams struct {
	UserID int64
	Title  string
}

// AddMessageParams contains parameters for appending a message to a
// conversation. Appending does not bump the parent conversation's
// updated_at; that is the caller's call via TouchConversation.
type AddMessageParams struct {
	ConversationID int64
	Role           db_models.Role
	Content        string
}

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
// No Store operation performs authorization; callers validate ownership first.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *db_models.User) error
	GetUserByEmail(ctx context.Context, email string) (*db_models.User, error)
	GetUserByID(ctx context.Context, id int64) (*db_models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Conversation operations
	CreateConversation(ctx context.Context, arg CreateConversationParams) (*db_models.Conversation, error)
	GetConversationByID(ctx context.Context, id int64) (*db_models.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]db_models.ConversationListItem, error)
	DeleteConversation(ctx context.Context, id int64) error
	RenameConversation(ctx context.Context, id int64, title string) (*db_models.Conversation, error)
	// RenameConversationIfTitle renames only while the current title still
	// equals currentTitle, and reports whether a row changed. Used by the
	// first-message auto-title policy so concurrent first messages cannot
	// both rename.
	RenameConversationIfTitle(ctx context.Context, id int64, title, currentTitle string) (bool, error)
	TouchConversation(ctx context.Context, id int64) error

	// Message operations
	AddMessage(ctx context.Context, arg AddMessageParams) (*db_models.Message, error)
	ListMessages(ctx context.Context, conversationID int64) ([]db_models.Message, error)
}
