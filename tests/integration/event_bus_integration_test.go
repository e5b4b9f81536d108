//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwachie/skillswap/backend/internal/adapters/events"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/providers"
)

func TestRedisEventBusFanoutIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := maybeTestRedisClient(t)
	require.NotNil(t, redisClient, "redis client required for this test")
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	channel := providers.EventChannelDealUpdates
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel1()
	defer cancel2()

	sub1, err := eventBus.Subscribe(ctx1, channel)
	require.NoError(t, err)
	sub2, err := eventBus.Subscribe(ctx2, channel)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := entities.NewDealEvent(entities.DealEventTypeAccepted, "deal-bus-1", "skill-bus-1", "user-bus-provider")

	err = eventBus.Publish(context.Background(), channel, event)
	require.NoError(t, err)

	received1 := waitForDealEvent(t, sub1)
	received2 := waitForDealEvent(t, sub2)

	assert.Equal(t, event.ID, received1.ID)
	assert.Equal(t, event.ID, received2.ID)
	assert.Equal(t, entities.DealEventTypeAccepted, received1.EventType)
}

func TestRedisEventBusUserChannelIsolation(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := maybeTestRedisClient(t)
	require.NotNil(t, redisClient, "redis client required for this test")
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providerChan, err := eventBus.Subscribe(ctx, providers.GetUserChannel("user-bus-a"))
	require.NoError(t, err)
	bystanderChan, err := eventBus.Subscribe(ctx, providers.GetUserChannel("user-bus-b"))
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := entities.NewDealEvent(entities.DealEventTypeCompleted, "deal-bus-2", "skill-bus-2", "user-bus-a")
	event.Credits = 100

	err = eventBus.Publish(context.Background(), providers.GetUserChannel("user-bus-a"), event)
	require.NoError(t, err)

	received := waitForDealEvent(t, providerChan)
	assert.Equal(t, event.DealID, received.DealID)
	assert.Equal(t, int64(100), received.Credits)

	select {
	case leaked := <-bystanderChan:
		t.Fatalf("event leaked to unrelated user channel: %+v", leaked)
	case <-time.After(200 * time.Millisecond):
	}
}

func waitForDealEvent(t *testing.T, ch <-chan *entities.DealEvent) *entities.DealEvent {
	t.Helper()
	select {
	case event := <-ch:
		require.NotNil(t, event)
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for deal event")
		return nil
	}
}
