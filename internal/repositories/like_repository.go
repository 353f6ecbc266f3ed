package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// ToggleResult reports which side of a toggle took effect.
type ToggleResult struct {
	Created bool
}

// LikeRepository persists like edges between users and likeable entities.
type LikeRepository interface {
	// Toggle creates the (likedBy, target) edge when absent and deletes it
	// when present. The edge row count for a key is 0 or 1 at all times.
	Toggle(ctx context.Context, likedBy string, target models.LikeTarget) (ToggleResult, error)
	Count(ctx context.Context, target models.LikeTarget) (int64, error)
	ListLikedVideos(ctx context.Context, likedBy string) ([]models.VideoWithOwner, error)
}
