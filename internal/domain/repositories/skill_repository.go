package repositories

import (
	"context"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// SkillRepository defines the interface for skill data operations. The core
// only needs enough of the catalog to snapshot providers, adjust aggregate
// ratings, and seed data; catalog editing lives outside this service.
type SkillRepository interface {
	// Create creates a new skill
	Create(ctx context.Context, skill *entities.Skill) error

	// GetByID retrieves a skill by ID
	GetByID(ctx context.Context, id string) (*entities.Skill, error)

	// UpdateRating overwrites the skill's aggregate rating
	UpdateRating(ctx context.Context, id string, rating float64) error

	// ListByOwner retrieves skills owned by a user
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Skill, error)
}
