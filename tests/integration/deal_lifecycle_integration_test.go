//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwachie/skillswap/backend/internal/adapters/database"
	"github.com/nwachie/skillswap/backend/internal/application/services"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

type lifecycleFixture struct {
	dealService    *services.DealService
	reviewService  *services.ReviewService
	profileAdapter *database.ProfileAdapter

	providerID  string
	requesterID string
	skillID     string
}

func setupLifecycle(t *testing.T) *lifecycleFixture {
	t.Helper()

	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST not set")
	}

	client := newTestPostgresClient(t)
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	suffix := uuid.New().String()[:8]

	profileAdapter := database.NewProfileAdapter(client)
	skillAdapter := database.NewSkillAdapter(client)
	dealAdapter := database.NewDealAdapter(client)
	reviewAdapter := database.NewReviewAdapter(client)
	uow := database.NewUnitOfWork(client)

	providerID := "it-provider-" + suffix
	requesterID := "it-requester-" + suffix
	now := time.Now()
	for _, userID := range []string{providerID, requesterID} {
		require.NoError(t, profileAdapter.Create(ctx, &entities.UserProfile{
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}))
	}

	skillID := uuid.New().String()
	require.NoError(t, skillAdapter.Create(ctx, &entities.Skill{
		ID:        skillID,
		Name:      "Integration Guitar " + suffix,
		Category:  "music",
		OwnerID:   providerID,
		SkillType: entities.SkillTypeOffered,
		Rating:    entities.DefaultSkillRating,
		CreatedAt: now,
	}))

	return &lifecycleFixture{
		dealService:    services.NewDealService(dealAdapter, uow, nil, nil),
		reviewService:  services.NewReviewService(reviewAdapter, dealAdapter, uow),
		profileAdapter: profileAdapter,
		providerID:     providerID,
		requesterID:    requesterID,
		skillID:        skillID,
	}
}

func TestDealLifecycle_EndToEnd(t *testing.T) {
	f := setupLifecycle(t)
	ctx := context.Background()

	// Create: requester opens a pending deal
	deal, err := f.dealService.Create(ctx, f.skillID, f.requesterID)
	require.NoError(t, err)
	assert.Equal(t, entities.DealStatusPending, deal.Status)

	// A duplicate pending request is rejected
	_, err = f.dealService.Create(ctx, f.skillID, f.requesterID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	// Review gate is closed before completion
	canReview, err := f.reviewService.CanReview(ctx, f.skillID, f.requesterID)
	require.NoError(t, err)
	assert.False(t, canReview)

	// Accept: provider only
	_, err = f.dealService.Accept(ctx, deal.ID, f.requesterID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	deal, err = f.dealService.Accept(ctx, deal.ID, f.providerID)
	require.NoError(t, err)
	assert.Equal(t, entities.DealStatusActive, deal.Status)
	require.NotNil(t, deal.StartDate)

	// A second accept loses the state check
	_, err = f.dealService.Accept(ctx, deal.ID, f.providerID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))

	providerBefore, err := f.profileAdapter.Balance(ctx, f.providerID)
	require.NoError(t, err)
	requesterBefore, err := f.profileAdapter.Balance(ctx, f.requesterID)
	require.NoError(t, err)

	// Complete: credits move from requester to provider
	deal, err = f.dealService.Complete(ctx, deal.ID, f.providerID)
	require.NoError(t, err)
	assert.Equal(t, entities.DealStatusCompleted, deal.Status)
	require.NotNil(t, deal.EndDate)
	assert.False(t, deal.EndDate.Before(*deal.StartDate))

	providerAfter, err := f.profileAdapter.Balance(ctx, f.providerID)
	require.NoError(t, err)
	requesterAfter, err := f.profileAdapter.Balance(ctx, f.requesterID)
	require.NoError(t, err)

	// Conservation: the two deltas cancel out
	providerDelta := providerAfter - providerBefore
	requesterDelta := requesterAfter - requesterBefore
	assert.Equal(t, int64(0), providerDelta+requesterDelta)
	assert.GreaterOrEqual(t, providerDelta, int64(0))

	transfers, err := f.profileAdapter.ListTransfersForUser(ctx, f.providerID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, transfers)
	assert.Equal(t, deal.ID, transfers[0].DealID)
	assert.Equal(t, providerDelta, transfers[0].Amount)

	// Completed is terminal
	_, err = f.dealService.Cancel(ctx, deal.ID, f.providerID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))

	// Review gate opens for the requester, closes after one review
	canReview, err = f.reviewService.CanReview(ctx, f.skillID, f.requesterID)
	require.NoError(t, err)
	assert.True(t, canReview)

	_, err = f.reviewService.Submit(ctx, f.skillID, f.requesterID, 4, "great session")
	require.NoError(t, err)

	canReview, err = f.reviewService.CanReview(ctx, f.skillID, f.requesterID)
	require.NoError(t, err)
	assert.False(t, canReview)

	// Provider never gains review rights from their own deal
	canReview, err = f.reviewService.CanReview(ctx, f.skillID, f.providerID)
	require.NoError(t, err)
	assert.False(t, canReview)
}

func TestDealLifecycle_CancelMovesNoCredits(t *testing.T) {
	f := setupLifecycle(t)
	ctx := context.Background()

	deal, err := f.dealService.Create(ctx, f.skillID, f.requesterID)
	require.NoError(t, err)

	providerBefore, err := f.profileAdapter.Balance(ctx, f.providerID)
	require.NoError(t, err)

	deal, err = f.dealService.Cancel(ctx, deal.ID, f.requesterID)
	require.NoError(t, err)
	assert.Equal(t, entities.DealStatusCancelled, deal.Status)

	providerAfter, err := f.profileAdapter.Balance(ctx, f.providerID)
	require.NoError(t, err)
	assert.Equal(t, providerBefore, providerAfter)
}

func TestDealLifecycle_ConcurrentAccept(t *testing.T) {
	f := setupLifecycle(t)
	ctx := context.Background()

	deal, err := f.dealService.Create(ctx, f.skillID, f.requesterID)
	require.NoError(t, err)

	// Two concurrent accepts: exactly one wins, the loser sees an invalid
	// transition.
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := f.dealService.Accept(ctx, deal.ID, f.providerID)
			results <- err
		}()
	}

	var successes, transitionFailures int
	for i := 0; i < 2; i++ {
		err := <-results
		switch {
		case err == nil:
			successes++
		case apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition):
			transitionFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, transitionFailures)
}
