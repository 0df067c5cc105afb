package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"convospace-backend/internal/models"
	"convospace-backend/pkg/httputil"
)

// EmailService defines the interface expected from the email relay service.
type EmailService interface {
	SendEmail(ctx context.Context, recipient, subject, body string) error
}

// EmailHandler handles the outbound email relay endpoint.
type EmailHandler struct {
	emailService EmailService
}

func NewEmailHandler(svc EmailService) *EmailHandler {
	return &EmailHandler{
		emailService: svc,
	}
}

// HandleSendEmail handles POST /send-email. Failures come back as a
// structured {status, message} payload carrying the underlying reason.
func (h *EmailHandler) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req models.SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := h.emailService.SendEmail(r.Context(), req.Recipient, req.Subject, req.Body); err != nil {
		log.Printf("SendEmail handler failed for recipient %s: %v", req.Recipient, err)
		httputil.RespondJSON(w, http.StatusInternalServerError, models.SendEmailResponse{
			Status:  "failed",
			Message: fmt.Sprintf("Failed to send email: %v", err),
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.SendEmailResponse{
		Status:  "success",
		Message: "Email sent successfully!",
	})
}
