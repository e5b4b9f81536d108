package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nwachie/skillswap/backend/internal/application/services"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
	"github.com/nwachie/skillswap/backend/tests/mocks"
)

func newReviewService(t *testing.T) (*services.ReviewService, *mocks.StubTxRepositories, *mocks.MockDealRepository, *mocks.MockReviewRepository) {
	repos := mocks.NewStubTxRepositories(t)
	dealRepo := mocks.NewMockDealRepository(t)
	reviewRepo := mocks.NewMockReviewRepository(t)
	service := services.NewReviewService(reviewRepo, dealRepo, mocks.NewStubUnitOfWork(repos))
	return service, repos, dealRepo, reviewRepo
}

func TestReviewService_CanReview(t *testing.T) {
	ctx := context.Background()

	t.Run("false without a completed deal", func(t *testing.T) {
		service, _, dealRepo, _ := newReviewService(t)

		dealRepo.On("HasCompletedDeal", mock.Anything, "skill-1", "user-1").Return(false, nil)

		ok, err := service.CanReview(ctx, "skill-1", "user-1")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("true once a completed deal exists", func(t *testing.T) {
		service, _, dealRepo, reviewRepo := newReviewService(t)

		dealRepo.On("HasCompletedDeal", mock.Anything, "skill-1", "user-1").Return(true, nil)
		reviewRepo.On("Exists", mock.Anything, "skill-1", "user-1").Return(false, nil)

		ok, err := service.CanReview(ctx, "skill-1", "user-1")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("false again after submitting", func(t *testing.T) {
		service, _, dealRepo, reviewRepo := newReviewService(t)

		dealRepo.On("HasCompletedDeal", mock.Anything, "skill-1", "user-1").Return(true, nil)
		reviewRepo.On("Exists", mock.Anything, "skill-1", "user-1").Return(true, nil)

		ok, err := service.CanReview(ctx, "skill-1", "user-1")

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestReviewService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("folds the rating into the skill's running average", func(t *testing.T) {
		service, repos, _, _ := newReviewService(t)

		skill := guitarSkill()
		skill.Rating = 5.0
		repos.SkillRepo.On("GetByID", mock.Anything, "skill-1").Return(skill, nil)
		repos.DealRepo.On("HasCompletedDeal", mock.Anything, "skill-1", "user-1").Return(true, nil)
		repos.ReviewRepo.On("Exists", mock.Anything, "skill-1", "user-1").Return(false, nil)
		repos.ReviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
			return r.SkillID == "skill-1" && r.ReviewerID == "user-1" && r.Rating == 1
		})).Return(nil)
		// (5.0*4 + 1) / 5 = 4.2
		repos.SkillRepo.On("UpdateRating", mock.Anything, "skill-1", mock.MatchedBy(func(r float64) bool {
			return r > 4.1999 && r < 4.2001
		})).Return(nil)

		review, err := service.Submit(ctx, "skill-1", "user-1", 1, "not great")

		require.NoError(t, err)
		assert.Equal(t, 1, review.Rating)
	})

	t.Run("rejects a reviewer without a completed deal", func(t *testing.T) {
		service, repos, _, _ := newReviewService(t)

		repos.SkillRepo.On("GetByID", mock.Anything, "skill-1").Return(guitarSkill(), nil)
		repos.DealRepo.On("HasCompletedDeal", mock.Anything, "skill-1", "user-1").Return(false, nil)

		_, err := service.Submit(ctx, "skill-1", "user-1", 5, "great")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("rejects a second review of the same skill", func(t *testing.T) {
		service, repos, _, _ := newReviewService(t)

		repos.SkillRepo.On("GetByID", mock.Anything, "skill-1").Return(guitarSkill(), nil)
		repos.DealRepo.On("HasCompletedDeal", mock.Anything, "skill-1", "user-1").Return(true, nil)
		repos.ReviewRepo.On("Exists", mock.Anything, "skill-1", "user-1").Return(true, nil)

		_, err := service.Submit(ctx, "skill-1", "user-1", 5, "again")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("rejects an out-of-range rating", func(t *testing.T) {
		service, _, _, _ := newReviewService(t)

		_, err := service.Submit(ctx, "skill-1", "user-1", 6, "too good")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
