package entities

import (
	"time"
)

// Message is one entry in a deal's append-only conversation thread. Both
// user-authored messages and the fixed notices emitted by deal transitions
// are stored here; ReplyToID, when set, references an earlier message on the
// same thread. Messages are never re-parented, so reply chains cannot cycle.
type Message struct {
	ID         string    `json:"id" db:"id"`
	SenderID   string    `json:"sender_id" db:"sender_id"`
	ReceiverID string    `json:"receiver_id" db:"receiver_id"`
	Content    string    `json:"content" db:"content"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
	DealID     *string   `json:"deal_id,omitempty" db:"skill_deal_id"`
	ReplyToID  *string   `json:"reply_to_id,omitempty" db:"reply_to_id"`
}
