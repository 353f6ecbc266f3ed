package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vidtube/backend/internal/errors"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// TweetService implements short text posts.
type TweetService struct {
	tweets repositories.TweetRepository
	users  repositories.UserRepository

	NowFunc func() time.Time
	newID   func() string
}

// NewTweetService constructs a TweetService.
func NewTweetService(tweets repositories.TweetRepository, users repositories.UserRepository) *TweetService {
	if tweets == nil || users == nil {
		panic("services: tweet and user repositories must not be nil")
	}
	return &TweetService{
		tweets:  tweets,
		users:   users,
		NowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// Create posts a new tweet for the owner.
func (s *TweetService) Create(ctx context.Context, ownerID, content string) (models.Tweet, error) {
	ctx, span := logging.StartSpan(ctx, "tweets.create")
	defer span.End()

	if ownerID == "" {
		return models.Tweet{}, apperrors.Validation("owner id is required")
	}
	if content == "" {
		return models.Tweet{}, apperrors.Validation("content is required")
	}

	now := s.NowFunc().UTC()
	tweet := models.Tweet{
		ID:        s.newID(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return models.Tweet{}, storeError(err, "user not found", "tweet conflict")
	}
	return tweet, nil
}

// ListByUser returns the user's tweets, newest first.
func (s *TweetService) ListByUser(ctx context.Context, userID string) ([]models.Tweet, error) {
	if userID == "" {
		return nil, apperrors.Validation("user id is required")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, storeError(err, "user not found", "user conflict")
	}
	tweets, err := s.tweets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.Dependency("listing tweets", err)
	}
	return tweets, nil
}

// Update edits a tweet's content. Only the owner may update.
func (s *TweetService) Update(ctx context.Context, actorID, tweetID, content string) (models.Tweet, error) {
	ctx, span := logging.StartSpan(ctx, "tweets.update")
	defer span.End()

	if content == "" {
		return models.Tweet{}, apperrors.Validation("content is required")
	}

	tweet, err := s.ownedTweet(ctx, actorID, tweetID)
	if err != nil {
		return models.Tweet{}, err
	}

	tweet.Content = content
	tweet.UpdatedAt = s.NowFunc().UTC()
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return models.Tweet{}, storeError(err, "tweet not found", "tweet conflict")
	}
	return tweet, nil
}

// Delete removes a tweet and any likes targeting it. Only the owner may
// delete.
func (s *TweetService) Delete(ctx context.Context, actorID, tweetID string) error {
	ctx, span := logging.StartSpan(ctx, "tweets.delete")
	defer span.End()

	if _, err := s.ownedTweet(ctx, actorID, tweetID); err != nil {
		return err
	}
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return storeError(err, "tweet not found", "tweet conflict")
	}
	return nil
}

func (s *TweetService) ownedTweet(ctx context.Context, actorID, tweetID string) (models.Tweet, error) {
	if actorID == "" || tweetID == "" {
		return models.Tweet{}, apperrors.Validation("actor id and tweet id are required")
	}
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return models.Tweet{}, storeError(err, "tweet not found", "tweet conflict")
	}
	if tweet.OwnerID != actorID {
		return models.Tweet{}, apperrors.Forbidden("tweet belongs to another user")
	}
	return tweet, nil
}
