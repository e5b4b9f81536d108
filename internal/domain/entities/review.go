package entities

import (
	"time"
)

// Review represents a requester's review of a skill after a completed deal.
// At most one review exists per (skill, reviewer) pair.
type Review struct {
	ID         string    `json:"id" db:"id"`
	SkillID    string    `json:"skill_id" db:"skill_id"`
	ReviewerID string    `json:"reviewer_id" db:"reviewer_id"`
	Rating     int       `json:"rating" db:"rating"` // 1-5
	Comment    string    `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
