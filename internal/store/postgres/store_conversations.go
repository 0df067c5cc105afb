package postgres

import (
	"context"
	"errors"
	"fmt"

	db_models "convospace-backend/internal/models"
	"convospace-backend/internal/store"

	"github.com/jackc/pgx/v5"
)

// --- Conversation Methods ---

const createConversation = `-- name: CreateConversation :one
INSERT INTO conversations (user_id, title)
VALUES ($1, $2)
RETURNING id, user_id, title, created_at, updated_at;
`

func (s *PostgresStore) CreateConversation(ctx context.Context, arg store.CreateConversationParams) (*db_models.Conversation, error) {
	row := s.db.QueryRow(ctx, createConversation, arg.UserID, arg.Title)

	var conv db_models.Conversation
	err := row.Scan(
		&conv.ID,
		&conv.UserID,
		&conv.Title,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error scanning conversation: %w", err)
	}
	return &conv, nil
}

const getConversationByID = `-- name: GetConversationByID :one
SELECT id, user_id, title, created_at, updated_at
FROM conversations
WHERE id = $1;
`

// GetConversationByID is a plain lookup. Ownership checks belong to the caller.
func (s *PostgresStore) GetConversationByID(ctx context.Context, id int64) (*db_models.Conversation, error) {
	row := s.db.QueryRow(ctx, getConversationByID, id)

	var conv db_models.Conversation
	err := row.Scan(
		&conv.ID,
		&conv.UserID,
		&conv.Title,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning conversation: %w", err)
	}
	return &conv, nil
}

const listConversations = `-- name: ListConversations :many
SELECT c.id, c.title, c.created_at, LEFT(m.content, 100) AS last_message_preview
FROM conversations c
LEFT JOIN LATERAL (
    SELECT content
    FROM messages
    WHERE conversation_id = c.id
    ORDER BY created_at DESC
    LIMIT 1
) m ON TRUE
WHERE c.user_id = $1
ORDER BY c.updated_at DESC;
`

// ListConversations returns the owner's conversations as preview projections,
// most recently active first. The preview is the latest message's content
// truncated to 100 characters, NULL when the conversation is empty.
func (s *PostgresStore) ListConversations(ctx context.Context, userID int64) ([]db_models.ConversationListItem, error) {
	rows, err := s.db.Query(ctx, listConversations, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %w", err)
	}
	defer rows.Close()

	var items []db_models.ConversationListItem
	for rows.Next() {
		var i db_models.ConversationListItem
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.CreatedAt,
			&i.LastMessagePreview,
		); err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		items = append(items, i)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}

	return items, nil
}

const deleteConversation = `-- name: DeleteConversation :exec
DELETE FROM conversations
WHERE id = $1;
`

// DeleteConversation removes a conversation; the schema cascades the delete to
// its messages. Deleting a missing conversation is a deliberate no-op.
func (s *PostgresStore) DeleteConversation(ctx context.Context, id int64) error {
	if _, err := s.db.Exec(ctx, deleteConversation, id); err != nil {
		return fmt.Errorf("error executing delete conversation: %w", err)
	}
	return nil
}

const renameConversation = `-- name: RenameConversation :one
UPDATE conversations
SET title = $1, updated_at = NOW()
WHERE id = $2
RETURNING id, user_id, title, created_at, updated_at;
`

// RenameConversation sets the title as given; callers are responsible for
// truncation. Renaming counts as activity, so updated_at moves too.
// Returns store.ErrNotFound when the conversation does not exist.
func (s *PostgresStore) RenameConversation(ctx context.Context, id int64, title string) (*db_models.Conversation, error) {
	row := s.db.QueryRow(ctx, renameConversation, title, id)

	var conv db_models.Conversation
	err := row.Scan(
		&conv.ID,
		&conv.UserID,
		&conv.Title,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning renamed conversation: %w", err)
	}
	return &conv, nil
}

const renameConversationIfTitle = `-- name: RenameConversationIfTitle :exec
UPDATE conversations
SET title = $1
WHERE id = $2 AND title = $3;
`

// RenameConversationIfTitle renames in a single conditional update so two
// concurrent first messages cannot both win the auto-title. Reports whether
// the rename happened.
func (s *PostgresStore) RenameConversationIfTitle(ctx context.Context, id int64, title, currentTitle string) (bool, error) {
	tag, err := s.db.Exec(ctx, renameConversationIfTitle, title, id, currentTitle)
	if err != nil {
		return false, fmt.Errorf("error executing conditional rename: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const touchConversation = `-- name: TouchConversation :exec
UPDATE conversations
SET updated_at = NOW()
WHERE id = $1;
`

// TouchConversation bumps updated_at to now. Touching a missing conversation
// is a no-op.
func (s *PostgresStore) TouchConversation(ctx context.Context, id int64) error {
	if _, err := s.db.Exec(ctx, touchConversation, id); err != nil {
		return fmt.Errorf("error executing touch conversation: %w", err)
	}
	return nil
}

// --- Message Methods ---

const addMessage = `-- name: AddMessage :one
INSERT INTO messages (conversation_id, role, content)
VALUES ($1, $2, $3)
RETURNING id, conversation_id, role, content, created_at;
`

// AddMessage inserts a message and returns it with generated fields. It does
// not bump the parent conversation's updated_at; callers do that explicitly.
func (s *PostgresStore) AddMessage(ctx context.Context, arg store.AddMessageParams) (*db_models.Message, error) {
	row := s.db.QueryRow(ctx, addMessage, arg.ConversationID, arg.Role, arg.Content)

	var msg db_models.Message
	err := row.Scan(
		&msg.ID,
		&msg.ConversationID,
		&msg.Role,
		&msg.Content,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error scanning message: %w", err)
	}
	return &msg, nil
}

const listMessages = `-- name: ListMessages :many
SELECT id, conversation_id, role, content, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY created_at ASC;
`

// ListMessages returns a conversation's messages oldest first, chronological
// reading order.
func (s *PostgresStore) ListMessages(ctx context.Context, conversationID int64) ([]db_models.Message, error) {
	rows, err := s.db.Query(ctx, listMessages, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []db_models.Message
	for rows.Next() {
		var msg db_models.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.Role,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		msgs = append(msgs, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return msgs, nil
}
