package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"convospace-backend/internal/models"
	"convospace-backend/internal/store"
)

// Custom errors for the conversation service
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotOwner             = errors.New("you do not own this conversation")
)

// ConversationService orchestrates conversation and message operations,
// enforcing ownership before every read or mutation and applying the
// title default/truncate and auto-title policies.
type ConversationService struct {
	store store.Store
}

func NewConversationService(s store.Store) *ConversationService {
	return &ConversationService{store: s}
}

// truncateTitle enforces the title length bound. Truncation happens here and
// only here; the store persists titles as given.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > models.MaxTitleLength {
		return string(runes[:models.MaxTitleLength])
	}
	return title
}

// verifyOwnership returns the conversation when it exists and belongs to
// userID. ErrConversationNotFound when no such conversation exists,
// ErrNotOwner when it belongs to someone else.
func (s *ConversationService) verifyOwnership(ctx context.Context, conversationID, userID int64) (*models.Conversation, error) {
	conv, err := s.store.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to get conversation from store: %w", err)
	}
	if conv.UserID != userID {
		return nil, ErrNotOwner
	}
	return conv, nil
}

// CreateConversation creates a conversation for the user. An empty or absent
// title falls back to the default; any title is truncated before storage.
func (s *ConversationService) CreateConversation(ctx context.Context, userID int64, req models.CreateConversationRequest) (*models.ConversationResponse, error) {
	title := models.DefaultConversationTitle
	if req.Title != nil && *req.Title != "" {
		title = truncateTitle(*req.Title)
	}

	conv, err := s.store.CreateConversation(ctx, store.CreateConversationParams{
		UserID: userID,
		Title:  title,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation in store: %w", err)
	}

	log.Printf("Created conversation %d for user %d", conv.ID, userID)
	return mapConversationToResponse(conv), nil
}

// ListConversations returns the user's conversations as preview projections,
// most recently active first.
func (s *ConversationService) ListConversations(ctx context.Context, userID int64) ([]models.ConversationListItem, error) {
	items, err := s.store.ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations from store: %w", err)
	}
	if items == nil {
		items = []models.ConversationListItem{}
	}
	return items, nil
}

// ListMessages returns a conversation's messages in chronological order.
// Verifies ownership.
func (s *ConversationService) ListMessages(ctx context.Context, userID, conversationID int64) ([]models.MessageResponse, error) {
	if _, err := s.verifyOwnership(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	msgs, err := s.store.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages from store: %w", err)
	}

	resp := make([]models.MessageResponse, 0, len(msgs))
	for i := range msgs {
		resp = append(resp, *mapMessageToResponse(&msgs[i]))
	}
	return resp, nil
}

// DeleteConversation deletes a conversation and, via the schema cascade, all
// its messages. Verifies ownership.
func (s *ConversationService) DeleteConversation(ctx context.Context, userID, conversationID int64) error {
	if _, err := s.verifyOwnership(ctx, conversationID, userID); err != nil {
		return err
	}

	if err := s.store.DeleteConversation(ctx, conversationID); err != nil {
		return fmt.Errorf("failed to delete conversation in store: %w", err)
	}

	log.Printf("Deleted conversation %d for user %d", conversationID, userID)
	return nil
}

// RenameConversation sets a new title, truncated before storage. Verifies
// ownership.
func (s *ConversationService) RenameConversation(ctx context.Context, userID, conversationID int64, title string) (*models.ConversationResponse, error) {
	if _, err := s.verifyOwnership(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	conv, err := s.store.RenameConversation(ctx, conversationID, truncateTitle(title))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between the ownership check and the rename.
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to rename conversation in store: %w", err)
	}

	return mapConversationToResponse(conv), nil
}

// AddUserMessage appends a user message to the conversation. If the
// conversation still carries the default title, it is renamed to the first
// 50 characters of this message's content; the conditional store update
// guarantees the rename applies at most once. Bumps the conversation's
// updated_at. Verifies ownership.
func (s *ConversationService) AddUserMessage(ctx context.Context, userID, conversationID int64, content string) (*models.MessageResponse, error) {
	conv, err := s.verifyOwnership(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	msg, err := s.store.AddMessage(ctx, store.AddMessageParams{
		ConversationID: conversationID,
		Role:           models.RoleUser,
		Content:        content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add user message to store: %w", err)
	}

	// Auto-generate title from the first user message (first 50 chars).
	if conv.Title == models.DefaultConversationTitle {
		renamed, err := s.store.RenameConversationIfTitle(ctx, conversationID, truncateTitle(content), models.DefaultConversationTitle)
		if err != nil {
			return nil, fmt.Errorf("failed to auto-title conversation: %w", err)
		}
		if renamed {
			log.Printf("Auto-titled conversation %d from first user message", conversationID)
		}
	}

	if err := s.store.TouchConversation(ctx, conversationID); err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	return mapMessageToResponse(msg), nil
}

// AddAssistantMessage appends an assistant message and bumps the
// conversation's updated_at. Never auto-titles. Verifies ownership.
func (s *ConversationService) AddAssistantMessage(ctx context.Context, userID, conversationID int64, content string) (*models.MessageResponse, error) {
	if _, err := s.verifyOwnership(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	msg, err := s.store.AddMessage(ctx, store.AddMessageParams{
		ConversationID: conversationID,
		Role:           models.RoleAssistant,
		Content:        content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add assistant message to store: %w", err)
	}

	if err := s.store.TouchConversation(ctx, conversationID); err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	return mapMessageToResponse(msg), nil
}

// mapConversationToResponse converts a DB conversation to an API response DTO.
func mapConversationToResponse(conv *models.Conversation) *models.ConversationResponse {
	return &models.ConversationResponse{
		ID:        conv.ID,
		UserID:    conv.UserID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}

// mapMessageToResponse converts a DB message to an API response DTO.
func mapMessageToResponse(msg *models.Message) *models.MessageResponse {
	return &models.MessageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Role:           msg.Role,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}
