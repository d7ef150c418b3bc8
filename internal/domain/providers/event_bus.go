package providers

import (
	"context"

	"github.com/caresure/providerportal/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// verification events
type EventBus interface {
	// Publish publishes an event to all subscribers of channel
	Publish(ctx context.Context, channel string, event *entities.VerificationEvent) error

	// Subscribe subscribes to events on a channel; the subscription ends
	// when ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.VerificationEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelVerifications carries all verification events
	EventChannelVerifications = "verification:events"

	// EventChannelProviderPrefix is the prefix for provider-specific channels
	EventChannelProviderPrefix = "verification:provider:"
)

// GetProviderChannel returns the channel name for a specific provider
func GetProviderChannel(providerID string) string {
	return EventChannelProviderPrefix + providerID
}
