package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
)

func TestDealStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from entities.DealStatus
		to   entities.DealStatus
		want bool
	}{
		{"pending to active", entities.DealStatusPending, entities.DealStatusActive, true},
		{"pending to cancelled", entities.DealStatusPending, entities.DealStatusCancelled, true},
		{"pending to completed skips acceptance", entities.DealStatusPending, entities.DealStatusCompleted, false},
		{"active to completed", entities.DealStatusActive, entities.DealStatusCompleted, true},
		{"active to cancelled", entities.DealStatusActive, entities.DealStatusCancelled, true},
		{"active back to pending", entities.DealStatusActive, entities.DealStatusPending, false},
		{"completed is terminal", entities.DealStatusCompleted, entities.DealStatusCancelled, false},
		{"cancelled is terminal", entities.DealStatusCancelled, entities.DealStatusActive, false},
		{"no self transition", entities.DealStatusPending, entities.DealStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestDealStatus_IsTerminal(t *testing.T) {
	assert.False(t, entities.DealStatusPending.IsTerminal())
	assert.False(t, entities.DealStatusActive.IsTerminal())
	assert.True(t, entities.DealStatusCompleted.IsTerminal())
	assert.True(t, entities.DealStatusCancelled.IsTerminal())
}

func TestSkillDeal_Parties(t *testing.T) {
	deal := &entities.SkillDeal{
		ID:          "deal-1",
		ProviderID:  "provider-1",
		RequesterID: "requester-1",
	}

	assert.True(t, deal.IsParty("provider-1"))
	assert.True(t, deal.IsParty("requester-1"))
	assert.False(t, deal.IsParty("stranger"))

	assert.Equal(t, "requester-1", deal.OtherParty("provider-1"))
	assert.Equal(t, "provider-1", deal.OtherParty("requester-1"))

	role, ok := deal.RoleOf("provider-1")
	assert.True(t, ok)
	assert.Equal(t, entities.DealRoleProvider, role)

	role, ok = deal.RoleOf("requester-1")
	assert.True(t, ok)
	assert.Equal(t, entities.DealRoleRequester, role)

	_, ok = deal.RoleOf("stranger")
	assert.False(t, ok)
}

func TestSkill_NextRating(t *testing.T) {
	skill := &entities.Skill{Rating: entities.DefaultSkillRating}

	// Successive ratings 5, 1, 5 starting from 5.0 must give the exact
	// order-dependent sequence 5.0, 4.2, 4.36.
	skill.Rating = skill.NextRating(5)
	assert.InDelta(t, 5.0, skill.Rating, 1e-9)

	skill.Rating = skill.NextRating(1)
	assert.InDelta(t, 4.2, skill.Rating, 1e-9)

	skill.Rating = skill.NextRating(5)
	assert.InDelta(t, 4.36, skill.Rating, 1e-9)
}
