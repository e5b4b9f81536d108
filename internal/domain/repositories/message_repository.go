package repositories

import (
	"context"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// MessageRepository defines the interface for message thread operations.
// The log is append-only: messages are created and their read flag flips
// false→true, nothing else ever changes.
type MessageRepository interface {
	// Create appends a message
	Create(ctx context.Context, message *entities.Message) error

	// GetByID retrieves a message by ID
	GetByID(ctx context.Context, id string) (*entities.Message, error)

	// ListByDeal retrieves a deal's thread in timestamp order
	ListByDeal(ctx context.Context, dealID string) ([]*entities.Message, error)

	// ListByReceiver retrieves a user's inbox, newest first
	ListByReceiver(ctx context.Context, receiverID string, limit, offset int) ([]*entities.Message, error)

	// MarkRead flips a single message's read flag
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead flips the read flag on every unread message for the
	// receiver and returns how many were flipped
	MarkAllRead(ctx context.Context, receiverID string) (int64, error)

	// CountUnread counts unread messages for the receiver
	CountUnread(ctx context.Context, receiverID string) (int64, error)
}
