package entities

import (
	"time"
)

// SkillType distinguishes skills a user offers from skills they are looking for
type SkillType string

const (
	SkillTypeOffered SkillType = "offered"
	SkillTypeWanted  SkillType = "wanted"
)

// DefaultSkillRating is the aggregate rating a skill starts with before any
// review has been submitted
const DefaultSkillRating = 5.0

// Skill represents a skill listed by a user
type Skill struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Level       string    `json:"level" db:"level"`
	Description string    `json:"description" db:"description"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	SkillType   SkillType `json:"skill_type" db:"skill_type"`
	Rating      float64   `json:"rating" db:"rating"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NextRating folds a newly submitted review rating into the skill's aggregate
// rating. The aggregate is an exponentially weighted moving average with
// weight 1/5 on the incoming rating, so the result depends on submission
// order, not just the set of ratings.
func (s *Skill) NextRating(submitted int) float64 {
	return (s.Rating*4 + float64(submitted)) / 5
}
