package providers

import (
	"context"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to deal
// lifecycle events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.DealEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.DealEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event streams
const (
	// EventChannelDealUpdates is the firehose channel for all deal updates
	EventChannelDealUpdates = "deals:updates"

	// EventChannelUserPrefix is the prefix for per-user channels
	EventChannelUserPrefix = "user:"
)

// GetUserChannel returns the channel name carrying events relevant to one
// user (both sides of their deals)
func GetUserChannel(userID string) string {
	return EventChannelUserPrefix + userID
}
