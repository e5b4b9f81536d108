package repositories

import (
	"context"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// ProfileRepository defines the interface for user profile operations
type ProfileRepository interface {
	// Create creates a new profile with its starting credit balance
	Create(ctx context.Context, profile *entities.UserProfile) error

	// GetByUserID retrieves a profile by user ID
	GetByUserID(ctx context.Context, userID string) (*entities.UserProfile, error)
}

// LedgerRepository defines the credit-balance operations. Balances live on
// the user profile row; only the completion transfer writes them.
type LedgerRepository interface {
	// Balance returns the user's current credit balance
	Balance(ctx context.Context, userID string) (int64, error)

	// LockBalances acquires row locks on both users' balances in ascending
	// user-id order, so concurrent completions between the same pair of
	// users never deadlock
	LockBalances(ctx context.Context, userA, userB string) error

	// AdjustBalance adds delta (possibly negative) to the user's balance.
	// No floor: the result may go negative.
	AdjustBalance(ctx context.Context, userID string, delta int64) error

	// RecordTransfer writes the completion's audit row
	RecordTransfer(ctx context.Context, transfer *entities.CreditTransfer) error

	// ListTransfersForUser retrieves transfers the user participated in,
	// newest first
	ListTransfersForUser(ctx context.Context, userID string, limit int) ([]*entities.CreditTransfer, error)
}
