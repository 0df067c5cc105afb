package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"convospace-backend/internal/auth"
	"convospace-backend/internal/models"
	"convospace-backend/internal/services"
	"convospace-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

// ConversationService defines the interface expected from the conversation
// service.
type ConversationService interface {
	CreateConversation(ctx context.Context, userID int64, req models.CreateConversationRequest) (*models.ConversationResponse, error)
	ListConversations(ctx context.Context, userID int64) ([]models.ConversationListItem, error)
	ListMessages(ctx context.Context, userID, conversationID int64) ([]models.MessageResponse, error)
	DeleteConversation(ctx context.Context, userID, conversationID int64) error
	RenameConversation(ctx context.Context, userID, conversationID int64, title string) (*models.ConversationResponse, error)
	AddUserMessage(ctx context.Context, userID, conversationID int64, content string) (*models.MessageResponse, error)
	AddAssistantMessage(ctx context.Context, userID, conversationID int64, content string) (*models.MessageResponse, error)
}

// ConversationHandlers handles HTTP requests for conversations and messages.
type ConversationHandlers struct {
	conversationService ConversationService
}

func NewConversationHandlers(svc ConversationService) *ConversationHandlers {
	return &ConversationHandlers{
		conversationService: svc,
	}
}

// respondConversationError maps conversation service errors to status codes.
// NotFound and Forbidden stay distinct so legitimate clients can tell a stale
// id from someone else's conversation.
func respondConversationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrConversationNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Conversation not found")
	case errors.Is(err, services.ErrNotOwner):
		httputil.RespondError(w, http.StatusForbidden, "You do not own this conversation")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// userIDOr401 pulls the authenticated identity the middleware injected.
func userIDOr401(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	return userID, true
}

// conversationIDParam parses the {conversationID} URL parameter.
func conversationIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "conversationID"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid conversation ID")
		return 0, false
	}
	return id, true
}

// HandleCreateConversation handles POST /api/conversations/create.
func (h *ConversationHandlers) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOr401(w, r)
	if !ok {
		return
	}

	var req models.CreateConversationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		defer r.Body.Close()
	}

	conv, err := h.conversationService.CreateConversation(r.Context(), userID, req)
	if err != nil {
		respondConversationError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, conv)
}

// HandleListConversations handles GET /api/conversations/list.
func (h *ConversationHandlers) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOr401(w, r)
	if !ok {
		return
	}

	items, err := h.conversationService.ListConversations(r.Context(), userID)
	if err != nil {
		respondConversationError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// HandleListMessages handles GET /api/conversations/{conversationID}/messages.
func (h *ConversationHandlers) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOr401(w, r)
	if !ok {
		return
	}
	conversationID, ok := conversationIDParam(w, r)
	if !ok {
		return
	}

	msgs, err := h.conversationService.ListMessages(r.Context(), userID, conversationID)
	if err != nil {
		respondConversationError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, msgs)
}

// HandleDeleteConversation handles DELETE /api/conversations/{conversationID}.
func (h *ConversationHandlers) HandleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOr401(w, r)
	if !ok {
		return
	}
	conversationID, ok := conversationIDParam(w, r)
	if !ok {
		return
	}

	if err := h.conversationService.DeleteConversation(r.Context(), userID, conversationID); err != nil {
		respondConversationError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRenameConversation handles PATCH /api/conversations/{conversationID}/rename.
func (h *ConversationHandlers) HandleRenameConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOr401(w, r)
	if !ok {
		return
	}
	conversationID, ok := conversationIDParam(w, r)
	if !ok {
		return
	}

	var req models.RenameConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	conv, err := h.conversationService.RenameConversation(r.Context(), userID, conversationID, req.Title)
	if err != nil {
		respondConversationError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// HandleCreateUserMessage handles POST /api/messages/create.
func (h *ConversationHandlers) HandleCreateUserMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOr401(w, r)
	if !ok {
		return
	}

	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	msg, err := h.conversationService.AddUserMessage(r.Context(), userID, req.ConversationID, req.Content)
	if err != nil {
		respondConversationError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, msg)
}

// HandleSaveAssistantMessage handles POST /api/messages/save-assistant.
func (h *ConversationHandlers) HandleSaveAssistantMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOr401(w, r)
	if !ok {
		return
	}

	var req models.CreateAssistantMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	msg, err := h.conversationService.AddAssistantMessage(r.Context(), userID, req.ConversationID, req.Content)
	if err != nil {
		respondConversationError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, msg)
}
