package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nwachie/skillswap/backend/internal/api/middleware"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// ReviewService defines the interface for review operations
type ReviewService interface {
	CanReview(ctx context.Context, skillID, userID string) (bool, error)
	Submit(ctx context.Context, skillID, reviewerID string, rating int, comment string) (*entities.Review, error)
	ListBySkill(ctx context.Context, skillID string) ([]*entities.Review, error)
}

// ReviewHandler handles review requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

// SubmitReview handles POST /api/skills/{id}/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	skillID := r.PathValue("id")
	if skillID == "" {
		respondWithError(w, http.StatusBadRequest, "skill ID is required")
		return
	}

	var payload struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review, err := h.service.Submit(r.Context(), skillID, middleware.UserIDFromContext(r.Context()), payload.Rating, payload.Comment)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// GetReviewEligibility handles GET /api/skills/{id}/reviews/eligibility
func (h *ReviewHandler) GetReviewEligibility(w http.ResponseWriter, r *http.Request) {
	skillID := r.PathValue("id")
	if skillID == "" {
		respondWithError(w, http.StatusBadRequest, "skill ID is required")
		return
	}

	canReview, err := h.service.CanReview(r.Context(), skillID, middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{
		"can_review": canReview,
	})
}

// ListSkillReviews handles GET /api/skills/{id}/reviews
func (h *ReviewHandler) ListSkillReviews(w http.ResponseWriter, r *http.Request) {
	skillID := r.PathValue("id")
	if skillID == "" {
		respondWithError(w, http.StatusBadRequest, "skill ID is required")
		return
	}

	reviews, err := h.service.ListBySkill(r.Context(), skillID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
