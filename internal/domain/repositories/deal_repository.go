package repositories

import (
	"context"
	"time"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// DealRepository defines the interface for skill deal data operations
type DealRepository interface {
	// Create creates a new deal
	Create(ctx context.Context, deal *entities.SkillDeal) error

	// GetByID retrieves a deal by ID
	GetByID(ctx context.Context, id string) (*entities.SkillDeal, error)

	// PendingExists reports whether a pending deal already exists for the
	// (skill, provider, requester) triple
	PendingExists(ctx context.Context, skillID, providerID, requesterID string) (bool, error)

	// UpdateStatus moves a deal from one status to another with a
	// compare-and-swap on the current status, optionally setting the start
	// and end dates. It returns false when the deal no longer has the
	// expected status; the caller lost a race and must not apply any
	// further effects.
	UpdateStatus(ctx context.Context, id string, from, to entities.DealStatus, startDate, endDate *time.Time) (bool, error)

	// ListForUser retrieves deals the user participates in
	ListForUser(ctx context.Context, userID string, filter DealFilter) ([]*entities.SkillDeal, error)

	// HasCompletedDeal reports whether the user has a completed deal for
	// the skill as the requester
	HasCompletedDeal(ctx context.Context, skillID, requesterID string) (bool, error)

	// CountByStatusAndRole returns per-(status, role) deal counts for a user
	CountByStatusAndRole(ctx context.Context, userID string) ([]DealStatusCount, error)
}

// DealFilter defines filters for listing deals
type DealFilter struct {
	Role   entities.DealRole // empty means both roles
	Status entities.DealStatus
	Limit  int
	Offset int
}

// DealStatusCount is one row of the dashboard deal aggregation
type DealStatusCount struct {
	Status entities.DealStatus `json:"status"`
	Role   entities.DealRole   `json:"role"`
	Count  int64               `json:"count"`
}
