package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
)

// ListVideosParams selects and orders a page of videos.
type ListVideosParams struct {
	Page pagination.Request
	// OwnerID restricts results to a single owner when non-empty.
	OwnerID string
	// Query applies a case-insensitive substring match over title and
	// description when non-empty.
	Query string
	// IncludeUnpublished lifts the published-only filter (owner views).
	IncludeUnpublished bool
}

// VideoRepository exposes data access for videos and their view tracking.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	FindWithOwner(ctx context.Context, id string) (models.VideoWithOwner, error)
	FindPage(ctx context.Context, params ListVideosParams) ([]models.VideoWithOwner, int64, error)
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id string) error
	// RecordView appends the video to the user's watch history and bumps the
	// view counter when, and only when, the history row did not yet exist.
	// It reports whether a first-time view was recorded.
	RecordView(ctx context.Context, userID, videoID string) (bool, error)
}
