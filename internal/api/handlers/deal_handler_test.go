package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nwachie/skillswap/backend/internal/api/handlers"
	"github.com/nwachie/skillswap/backend/internal/api/middleware"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

type stubDealService struct {
	deal *entities.SkillDeal
	err  error

	lastSkillID string
	lastActorID string
}

func (s *stubDealService) Create(ctx context.Context, skillID, requesterID string) (*entities.SkillDeal, error) {
	s.lastSkillID = skillID
	s.lastActorID = requesterID
	return s.deal, s.err
}

func (s *stubDealService) Accept(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error) {
	s.lastActorID = actorID
	return s.deal, s.err
}

func (s *stubDealService) Complete(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error) {
	s.lastActorID = actorID
	return s.deal, s.err
}

func (s *stubDealService) Cancel(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error) {
	s.lastActorID = actorID
	return s.deal, s.err
}

func (s *stubDealService) Get(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error) {
	return s.deal, s.err
}

func (s *stubDealService) ListForUser(ctx context.Context, userID string, filter repositories.DealFilter) ([]*entities.SkillDeal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*entities.SkillDeal{s.deal}, nil
}

func requestAs(method, target, body, userID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestDealHandler_CreateDeal(t *testing.T) {
	service := &stubDealService{deal: &entities.SkillDeal{
		ID:     "deal-1",
		Status: entities.DealStatusPending,
	}}
	handler := handlers.NewDealHandler(service)

	req := requestAs("POST", "/api/deals", `{"skill_id":"skill-1"}`, "requester-1")
	w := httptest.NewRecorder()

	handler.CreateDeal(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "skill-1", service.lastSkillID)
	assert.Equal(t, "requester-1", service.lastActorID)

	var response entities.SkillDeal
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "deal-1", response.ID)
}

func TestDealHandler_CreateDeal_MissingSkill(t *testing.T) {
	handler := handlers.NewDealHandler(&stubDealService{})

	req := requestAs("POST", "/api/deals", `{}`, "requester-1")
	w := httptest.NewRecorder()

	handler.CreateDeal(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDealHandler_AcceptDeal_LostRace(t *testing.T) {
	service := &stubDealService{err: apperrors.NewInvalidTransitionError("deal is no longer pending")}
	handler := handlers.NewDealHandler(service)

	req := requestAs("POST", "/api/deals/deal-1/accept", "", "provider-1")
	req.SetPathValue("id", "deal-1")
	w := httptest.NewRecorder()

	handler.AcceptDeal(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDealHandler_CompleteDeal_NotParty(t *testing.T) {
	service := &stubDealService{err: apperrors.NewUnauthorizedError("only a deal party can complete a deal")}
	handler := handlers.NewDealHandler(service)

	req := requestAs("POST", "/api/deals/deal-1/complete", "", "someone-else")
	req.SetPathValue("id", "deal-1")
	w := httptest.NewRecorder()

	handler.CompleteDeal(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDealHandler_GetDeal_NotFound(t *testing.T) {
	service := &stubDealService{err: apperrors.NewNotFoundError("deal not found")}
	handler := handlers.NewDealHandler(service)

	req := requestAs("GET", "/api/deals/missing", "", "provider-1")
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.GetDeal(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDealHandler_ListDeals_BadRole(t *testing.T) {
	handler := handlers.NewDealHandler(&stubDealService{})

	req := requestAs("GET", "/api/deals?role=owner", "", "provider-1")
	w := httptest.NewRecorder()

	handler.ListDeals(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
