package models

import (
	"time"
)

// DefaultConversationTitle is the title given to conversations created without one.
// The first user message replaces it via the auto-title policy.
const DefaultConversationTitle = "New Chat"

// MaxTitleLength is the upper bound on conversation titles. Enforced at the
// service layer before anything reaches the store.
const MaxTitleLength = 50

// PreviewLength is the maximum length of the last-message preview shown in
// conversation lists.
const PreviewLength = 100

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// User represents a user in the database.
type User struct {
	ID             int64     `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
}

// Conversation represents a titled message thread owned by exactly one user.
// Deleting a user cascades to its conversations; deleting a conversation
// cascades to its messages. Both cascades live in the database schema.
type Conversation struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Message is a single immutable utterance within a conversation. Messages are
// created once and only ever removed by the conversation cascade.
type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	Role           Role      `db:"role"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}
