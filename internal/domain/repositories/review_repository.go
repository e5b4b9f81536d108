package repositories

import (
	"context"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// Exists reports whether the reviewer has already reviewed the skill
	Exists(ctx context.Context, skillID, reviewerID string) (bool, error)

	// ListBySkill retrieves a skill's reviews, newest first
	ListBySkill(ctx context.Context, skillID string) ([]*entities.Review, error)
}
