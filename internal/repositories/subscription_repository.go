package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// SubscriptionRepository persists subscriber-to-channel edges.
type SubscriptionRepository interface {
	// Toggle creates the (subscriber, channel) edge when absent and deletes
	// it when present. Callers reject self-subscription before this point.
	Toggle(ctx context.Context, subscriberID, channelID string) (ToggleResult, error)
	CountForChannel(ctx context.Context, channelID string) (int64, error)
	CountForSubscriber(ctx context.Context, subscriberID string) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]models.PublicProfile, error)
	ListChannels(ctx context.Context, subscriberID string) ([]models.PublicProfile, error)
}
