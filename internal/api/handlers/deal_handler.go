package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nwachie/skillswap/backend/internal/api/middleware"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
)

// DealService defines the interface for deal lifecycle operations
type DealService interface {
	Create(ctx context.Context, skillID, requesterID string) (*entities.SkillDeal, error)
	Accept(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error)
	Complete(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error)
	Cancel(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error)
	Get(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error)
	ListForUser(ctx context.Context, userID string, filter repositories.DealFilter) ([]*entities.SkillDeal, error)
}

// DealHandler handles deal lifecycle requests
type DealHandler struct {
	service DealService
}

// NewDealHandler creates a new deal handler
func NewDealHandler(service DealService) *DealHandler {
	return &DealHandler{
		service: service,
	}
}

// CreateDeal handles POST /api/deals
func (h *DealHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())

	var payload struct {
		SkillID string `json:"skill_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.SkillID == "" {
		respondWithError(w, http.StatusBadRequest, "skill_id is required")
		return
	}

	deal, err := h.service.Create(r.Context(), payload.SkillID, actorID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, deal)
}

// GetDeal handles GET /api/deals/{id}
func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	dealID := r.PathValue("id")
	if dealID == "" {
		respondWithError(w, http.StatusBadRequest, "deal ID is required")
		return
	}

	deal, err := h.service.Get(r.Context(), dealID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, deal)
}

// ListDeals handles GET /api/deals
func (h *DealHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())
	query := r.URL.Query()

	filter := repositories.DealFilter{
		Limit:  parseIntParam(query.Get("limit"), 50),
		Offset: parseIntParam(query.Get("offset"), 0),
	}

	switch query.Get("role") {
	case "provided":
		filter.Role = entities.DealRoleProvider
	case "requested":
		filter.Role = entities.DealRoleRequester
	case "", "all":
	default:
		respondWithError(w, http.StatusBadRequest, "role must be all, provided or requested")
		return
	}

	if status := query.Get("status"); status != "" {
		filter.Status = entities.DealStatus(status)
	}

	deals, err := h.service.ListForUser(r.Context(), actorID, filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"deals": deals,
		"count": len(deals),
	})
}

// AcceptDeal handles POST /api/deals/{id}/accept
func (h *DealHandler) AcceptDeal(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Accept)
}

// CompleteDeal handles POST /api/deals/{id}/complete
func (h *DealHandler) CompleteDeal(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Complete)
}

// CancelDeal handles POST /api/deals/{id}/cancel
func (h *DealHandler) CancelDeal(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Cancel)
}

func (h *DealHandler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, string, string) (*entities.SkillDeal, error)) {
	dealID := r.PathValue("id")
	if dealID == "" {
		respondWithError(w, http.StatusBadRequest, "deal ID is required")
		return
	}

	deal, err := op(r.Context(), dealID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, deal)
}
