package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

var reviewColumns = []any{
	"id", "skill_id", "reviewer_id", "rating", "comment", "created_at",
}

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	run runner
}

// NewReviewAdapter creates a new review adapter on the pooled connection
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{run: client.DB()}
}

func newReviewAdapter(run runner) *ReviewAdapter {
	return &ReviewAdapter{run: run}
}

// Create creates a new review. The unique (skill_id, reviewer_id) index
// turns a duplicate-review race into a conflict for the second writer.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":          review.ID,
		"skill_id":    review.SkillID,
		"reviewer_id": review.ReviewerID,
		"rating":      review.Rating,
		"comment":     review.Comment,
		"created_at":  review.CreatedAt,
	}

	query, args, err := builder.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("skill already reviewed by this user")
		}
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// Exists reports whether the reviewer has already reviewed the skill
func (a *ReviewAdapter) Exists(ctx context.Context, skillID, reviewerID string) (bool, error) {
	query, args, err := builder.Select(goqu.COUNT("*")).
		From("reviews").
		Where(goqu.Ex{"skill_id": skillID, "reviewer_id": reviewerID}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int64
	if err := a.run.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check review existence", err)
	}

	return count > 0, nil
}

// ListBySkill retrieves a skill's reviews, newest first
func (a *ReviewAdapter) ListBySkill(ctx context.Context, skillID string) ([]*entities.Review, error) {
	query, args, err := builder.Select(reviewColumns...).
		From("reviews").
		Where(goqu.Ex{"skill_id": skillID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review := &entities.Review{}
		err := rows.Scan(
			&review.ID,
			&review.SkillID,
			&review.ReviewerID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}
