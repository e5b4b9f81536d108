package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nwachie/skillswap/backend/internal/api/middleware"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// MessageService defines the interface for message thread operations
type MessageService interface {
	Send(ctx context.Context, dealID, senderID, content string, replyToID *string) (*entities.Message, error)
	ListByDeal(ctx context.Context, dealID, actorID string) ([]*entities.Message, error)
	ListInbox(ctx context.Context, receiverID string, limit, offset int) ([]*entities.Message, error)
	MarkRead(ctx context.Context, messageID, actorID string) error
	MarkAllRead(ctx context.Context, receiverID string) (int64, error)
}

// MessageHandler handles message thread requests
type MessageHandler struct {
	service MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(service MessageService) *MessageHandler {
	return &MessageHandler{
		service: service,
	}
}

// SendMessage handles POST /api/deals/{id}/messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	dealID := r.PathValue("id")
	if dealID == "" {
		respondWithError(w, http.StatusBadRequest, "deal ID is required")
		return
	}

	var payload struct {
		Content   string  `json:"content"`
		ReplyToID *string `json:"reply_to_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	message, err := h.service.Send(r.Context(), dealID, middleware.UserIDFromContext(r.Context()), payload.Content, payload.ReplyToID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, message)
}

// ListDealMessages handles GET /api/deals/{id}/messages
func (h *MessageHandler) ListDealMessages(w http.ResponseWriter, r *http.Request) {
	dealID := r.PathValue("id")
	if dealID == "" {
		respondWithError(w, http.StatusBadRequest, "deal ID is required")
		return
	}

	messages, err := h.service.ListByDeal(r.Context(), dealID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

// ListInbox handles GET /api/messages
func (h *MessageHandler) ListInbox(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())
	query := r.URL.Query()

	messages, err := h.service.ListInbox(r.Context(), actorID,
		parseIntParam(query.Get("limit"), 50),
		parseIntParam(query.Get("offset"), 0))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

// MarkMessageRead handles POST /api/messages/{id}/read
func (h *MessageHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	messageID := r.PathValue("id")
	if messageID == "" {
		respondWithError(w, http.StatusBadRequest, "message ID is required")
		return
	}

	if err := h.service.MarkRead(r.Context(), messageID, middleware.UserIDFromContext(r.Context())); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// MarkAllRead handles POST /api/messages/read-all
func (h *MessageHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.MarkAllRead(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"marked_read": count,
	})
}
