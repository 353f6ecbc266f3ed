package services

import (
	"context"

	apperrors "github.com/vidtube/backend/internal/errors"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// SubscriptionService implements subscribing to channels.
type SubscriptionService struct {
	subscriptions repositories.SubscriptionRepository
	users         repositories.UserRepository
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(subscriptions repositories.SubscriptionRepository, users repositories.UserRepository) *SubscriptionService {
	if subscriptions == nil || users == nil {
		panic("services: subscription and user repositories must not be nil")
	}
	return &SubscriptionService{subscriptions: subscriptions, users: users}
}

// Toggle subscribes the actor to the channel when no edge exists and
// unsubscribes otherwise. Subscribing to oneself is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, actorID, channelID string) (ToggleStatus, error) {
	ctx, span := logging.StartSpan(ctx, "subscriptions.toggle")
	defer span.End()

	if actorID == "" || channelID == "" {
		return "", apperrors.Validation("actor id and channel id are required")
	}
	if actorID == channelID {
		return "", apperrors.Conflict("cannot subscribe to yourself")
	}

	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return "", storeError(err, "channel not found", "channel conflict")
	}

	result, err := s.subscriptions.Toggle(ctx, actorID, channelID)
	if err != nil {
		return "", storeError(err, "channel not found", "subscription conflict")
	}
	return toggleStatus(result), nil
}

// Subscribers lists the public profiles subscribed to the channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string) ([]models.PublicProfile, error) {
	if channelID == "" {
		return nil, apperrors.Validation("channel id is required")
	}
	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return nil, storeError(err, "channel not found", "channel conflict")
	}
	profiles, err := s.subscriptions.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, apperrors.Dependency("listing subscribers", err)
	}
	return profiles, nil
}

// SubscribedChannels lists the public profiles of channels the subscriber
// follows.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string) ([]models.PublicProfile, error) {
	if subscriberID == "" {
		return nil, apperrors.Validation("subscriber id is required")
	}
	profiles, err := s.subscriptions.ListChannels(ctx, subscriberID)
	if err != nil {
		return nil, apperrors.Dependency("listing subscribed channels", err)
	}
	return profiles, nil
}
