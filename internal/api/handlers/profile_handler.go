package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nwachie/skillswap/backend/internal/api/middleware"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// ProfileService defines the interface for profile and balance reads
type ProfileService interface {
	Create(ctx context.Context, userID, displayName, location, bio string) (*entities.UserProfile, error)
	Get(ctx context.Context, userID string) (*entities.UserProfile, error)
	Balance(ctx context.Context, userID string) (int64, error)
	ListTransfers(ctx context.Context, userID string, limit int) ([]*entities.CreditTransfer, error)
}

// ProfileHandler handles profile and credit-balance requests
type ProfileHandler struct {
	service ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// CreateProfile handles POST /api/profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())

	var payload struct {
		DisplayName string `json:"display_name"`
		Location    string `json:"location"`
		Bio         string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := h.service.Create(r.Context(), actorID, payload.DisplayName, payload.Location, payload.Bio)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, profile)
}

// GetProfile handles GET /api/profiles/me
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// GetBalance handles GET /api/profiles/me/balance
func (h *ProfileHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.Balance(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{
		"credits": balance,
	})
}

// ListTransfers handles GET /api/profiles/me/transfers
func (h *ProfileHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())
	limit := parseIntParam(r.URL.Query().Get("limit"), 50)

	transfers, err := h.service.ListTransfers(r.Context(), actorID, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"transfers": transfers,
		"count":     len(transfers),
	})
}
