package models

import (
	"time"
)

// --- Request Structs ---

// SignupRequest defines the expected body for the signup endpoint.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateConversationRequest defines the body for creating a conversation.
// Title is optional; empty or absent falls back to DefaultConversationTitle.
type CreateConversationRequest struct {
	Title *string `json:"title,omitempty"`
}

// RenameConversationRequest defines the body for renaming a conversation.
type RenameConversationRequest struct {
	Title string `json:"title" validate:"required"`
}

// CreateMessageRequest defines the body for appending a user message.
type CreateMessageRequest struct {
	ConversationID int64  `json:"conversation_id" validate:"required"`
	Content        string `json:"content" validate:"required"`
}

// CreateAssistantMessageRequest defines the body for saving an assistant reply.
type CreateAssistantMessageRequest struct {
	ConversationID int64  `json:"conversation_id" validate:"required"`
	Content        string `json:"content" validate:"required"`
}

// SendEmailRequest defines the body for the outbound email relay.
type SendEmailRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
	Subject   string `json:"subject" validate:"required"`
	Body      string `json:"body" validate:"required"`
}

// --- Response Structs ---

// UserResponse defines the user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ConversationResponse defines the full conversation entity returned on
// create and rename.
type ConversationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationListItem is the read-optimized projection used by the
// conversation list. It intentionally carries neither updated_at nor user_id.
type ConversationListItem struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	CreatedAt          time.Time `json:"created_at"`
	LastMessagePreview *string   `json:"last_message_preview"`
}

// MessageResponse defines a persisted message returned by the API.
type MessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// SendEmailResponse reports the outcome of an email relay attempt. Failures
// carry the underlying reason in Message.
type SendEmailResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
