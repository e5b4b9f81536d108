package handlers

import (
	"context"
	"net/http"

	"github.com/nwachie/skillswap/backend/internal/api/middleware"
	"github.com/nwachie/skillswap/backend/internal/application/services"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
)

// NotificationService defines the interface for dashboard badge reads
type NotificationService interface {
	UnreadCount(ctx context.Context, userID string) (int64, error)
	DealCounts(ctx context.Context, userID string) ([]repositories.DealStatusCount, error)
	Summary(ctx context.Context, userID string) (*services.DashboardSummary, error)
}

// NotificationHandler handles dashboard badge requests
type NotificationHandler struct {
	service NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// GetSummary handles GET /api/notifications/summary
func (h *NotificationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// GetUnreadCount handles GET /api/notifications/unread
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.UnreadCount(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{
		"unread_messages": count,
	})
}

// GetDealCounts handles GET /api/notifications/deal-counts
func (h *NotificationHandler) GetDealCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.DealCounts(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"deal_counts": counts,
	})
}
