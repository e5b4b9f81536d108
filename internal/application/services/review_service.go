package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/observability"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

// ReviewService guards review submission behind the completed-deal gate and
// folds each accepted review into the skill's running rating. The gate and
// the rating update run in one transaction so a review can never land
// without its rating effect, or twice.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	dealRepo   repositories.DealRepository
	uow        repositories.UnitOfWork
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	dealRepo repositories.DealRepository,
	uow repositories.UnitOfWork,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		dealRepo:   dealRepo,
		uow:        uow,
	}
}

// CanReview reports whether the user may review the skill: they must have a
// completed deal for it as the requester and no review of it yet
func (s *ReviewService) CanReview(ctx context.Context, skillID, userID string) (bool, error) {
	completed, err := s.dealRepo.HasCompletedDeal(ctx, skillID, userID)
	if err != nil {
		return false, err
	}
	if !completed {
		return false, nil
	}

	reviewed, err := s.reviewRepo.Exists(ctx, skillID, userID)
	if err != nil {
		return false, err
	}
	return !reviewed, nil
}

// Submit creates a review and applies it to the skill's rating. The rating
// moves by a weighted running average, one fifth of the weight on the new
// review, so the order of submissions matters.
func (s *ReviewService) Submit(ctx context.Context, skillID, reviewerID string, rating int, comment string) (*entities.Review, error) {
	ctx, span := observability.StartSpan(ctx, "ReviewService.Submit")
	defer span.End()

	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	var review *entities.Review
	err := s.uow.Execute(ctx, func(tx repositories.TxRepositories) error {
		skill, err := tx.Skills().GetByID(ctx, skillID)
		if err != nil {
			return err
		}

		completed, err := tx.Deals().HasCompletedDeal(ctx, skillID, reviewerID)
		if err != nil {
			return err
		}
		if !completed {
			return apperrors.NewUnauthorizedError("only requesters with a completed deal can review a skill")
		}

		reviewed, err := tx.Reviews().Exists(ctx, skillID, reviewerID)
		if err != nil {
			return err
		}
		if reviewed {
			return apperrors.NewConflictError("skill already reviewed by this user")
		}

		review = &entities.Review{
			ID:         uuid.New().String(),
			SkillID:    skillID,
			ReviewerID: reviewerID,
			Rating:     rating,
			Comment:    strings.TrimSpace(comment),
			CreatedAt:  time.Now(),
		}
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return err
		}

		return tx.Skills().UpdateRating(ctx, skillID, skill.NextRating(rating))
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("skill_id", skillID).
		Str("reviewer_id", reviewerID).
		Int("rating", rating).
		Msg("review submitted")

	return review, nil
}

// ListBySkill retrieves a skill's reviews, newest first
func (s *ReviewService) ListBySkill(ctx context.Context, skillID string) ([]*entities.Review, error) {
	return s.reviewRepo.ListBySkill(ctx, skillID)
}
