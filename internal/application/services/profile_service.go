package services

import (
	"context"
	"strings"
	"time"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

// ProfileService handles profile creation and the credit-balance reads the
// dashboard shows. Balances are only ever written by deal completion;
// nothing here mutates them.
type ProfileService struct {
	profileRepo repositories.ProfileRepository
	ledgerRepo  repositories.LedgerRepository
}

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo repositories.ProfileRepository,
	ledgerRepo repositories.LedgerRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Create creates a profile for the user with a zero starting balance
func (s *ProfileService) Create(ctx context.Context, userID, displayName, location, bio string) (*entities.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	now := time.Now()
	profile := &entities.UserProfile{
		UserID:      userID,
		DisplayName: strings.TrimSpace(displayName),
		Location:    strings.TrimSpace(location),
		Bio:         strings.TrimSpace(bio),
		Credits:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get retrieves a profile by user ID
func (s *ProfileService) Get(ctx context.Context, userID string) (*entities.UserProfile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// Balance returns the user's current credit balance
func (s *ProfileService) Balance(ctx context.Context, userID string) (int64, error) {
	return s.ledgerRepo.Balance(ctx, userID)
}

// ListTransfers retrieves the user's transfer history, newest first
func (s *ProfileService) ListTransfers(ctx context.Context, userID string, limit int) ([]*entities.CreditTransfer, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.ledgerRepo.ListTransfersForUser(ctx, userID, limit)
}
