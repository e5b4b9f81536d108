package entities

import (
	"time"
)

// UserProfile holds the per-user state the core owns, most importantly the
// credit balance. Credits are mutated only by the completion transfer; the
// balance has no floor and may go negative.
type UserProfile struct {
	UserID      string    `json:"user_id" db:"user_id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Location    string    `json:"location" db:"location"`
	Bio         string    `json:"bio" db:"bio"`
	Credits     int64     `json:"credits" db:"credits"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreditTransfer is the audit record written by each deal completion. The
// amount is credited to the provider and debited from the requester in the
// same transaction that completes the deal, so the two deltas always sum
// to zero.
type CreditTransfer struct {
	ID         string    `json:"id" db:"id"`
	DealID     string    `json:"deal_id" db:"deal_id"`
	FromUserID string    `json:"from_user_id" db:"from_user_id"`
	ToUserID   string    `json:"to_user_id" db:"to_user_id"`
	Amount     int64     `json:"amount" db:"amount"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
