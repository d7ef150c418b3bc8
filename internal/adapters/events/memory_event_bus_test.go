package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresure/providerportal/internal/domain/entities"
	"github.com/caresure/providerportal/internal/domain/providers"
)

func TestMemoryEventBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, providers.EventChannelVerifications)
	require.NoError(t, err)

	event := &entities.VerificationEvent{
		ID:         "evt-1",
		EventType:  entities.EventProviderFlagged,
		ProviderID: "4",
		Status:     entities.StatusFlagged,
	}
	require.NoError(t, bus.Publish(ctx, providers.EventChannelVerifications, event))

	select {
	case received := <-ch:
		assert.Equal(t, "evt-1", received.ID)
		assert.Equal(t, entities.EventProviderFlagged, received.EventType)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestMemoryEventBus_ChannelsAreIsolated(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	other, err := bus.Subscribe(ctx, providers.GetProviderChannel("2"))
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, providers.GetProviderChannel("1"),
		&entities.VerificationEvent{ID: "evt-2", ProviderID: "1"}))

	select {
	case event := <-other:
		t.Fatalf("unexpected cross-channel delivery: %v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryEventBus_ContextCancelClosesSubscription(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, providers.EventChannelVerifications)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("subscription channel was not closed")
	}
}

func TestMemoryEventBus_PublishAfterCloseIsNoop(t *testing.T) {
	bus := NewMemoryEventBus()
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), providers.EventChannelVerifications,
		&entities.VerificationEvent{ID: "evt-3"})
	assert.NoError(t, err)
}
