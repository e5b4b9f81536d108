package entities

import (
	"time"
)

// DealStatus represents the lifecycle status of a skill deal
type DealStatus string

const (
	DealStatusPending   DealStatus = "pending"
	DealStatusActive    DealStatus = "active"
	DealStatusCompleted DealStatus = "completed"
	DealStatusCancelled DealStatus = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions
func (s DealStatus) IsTerminal() bool {
	return s == DealStatusCompleted || s == DealStatusCancelled
}

// CanTransitionTo reports whether the lifecycle permits moving from s to
// target. Legal moves: pending→active, pending→cancelled, active→completed,
// active→cancelled. Everything else, including self-transitions, is illegal.
func (s DealStatus) CanTransitionTo(target DealStatus) bool {
	switch s {
	case DealStatusPending:
		return target == DealStatusActive || target == DealStatusCancelled
	case DealStatusActive:
		return target == DealStatusCompleted || target == DealStatusCancelled
	default:
		return false
	}
}

// DealRole identifies which side of a deal a user is on
type DealRole string

const (
	DealRoleProvider  DealRole = "provider"
	DealRoleRequester DealRole = "requester"
)

// SkillDeal tracks one exchange of a skill between a requester and the
// skill's provider. ProviderID is a snapshot of the skill's owner at
// creation time; a later change of skill ownership does not affect the deal.
type SkillDeal struct {
	ID          string     `json:"id" db:"id"`
	SkillID     string     `json:"skill_id" db:"skill_id"`
	RequesterID string     `json:"requester_id" db:"requester_id"`
	ProviderID  string     `json:"provider_id" db:"provider_id"`
	Status      DealStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	StartDate   *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsParty reports whether the user is one of the deal's two parties
func (d *SkillDeal) IsParty(userID string) bool {
	return userID == d.ProviderID || userID == d.RequesterID
}

// OtherParty returns the counterpart of the given party. The caller must
// already have checked IsParty.
func (d *SkillDeal) OtherParty(userID string) string {
	if userID == d.ProviderID {
		return d.RequesterID
	}
	return d.ProviderID
}

// RoleOf returns the user's role on the deal, and false when the user is
// not a party to it
func (d *SkillDeal) RoleOf(userID string) (DealRole, bool) {
	switch userID {
	case d.ProviderID:
		return DealRoleProvider, true
	case d.RequesterID:
		return DealRoleRequester, true
	default:
		return "", false
	}
}
