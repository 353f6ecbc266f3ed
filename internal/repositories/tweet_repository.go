package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// TweetRepository persists short text posts.
type TweetRepository interface {
	Create(ctx context.Context, tweet models.Tweet) error
	FindByID(ctx context.Context, id string) (models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Tweet, error)
	Update(ctx context.Context, tweet models.Tweet) error
	// Delete removes the tweet and any likes targeting it.
	Delete(ctx context.Context, id string) error
}
