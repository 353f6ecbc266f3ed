package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
)

// CommentRepository persists comments on videos.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	// FindPageByVideo returns one page of a video's comments, newest first,
	// each enriched with its owner and like count, plus the total count.
	FindPageByVideo(ctx context.Context, videoID string, req pagination.Request) ([]models.CommentWithOwner, int64, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	Update(ctx context.Context, comment models.Comment) error
	// Delete removes the comment and any likes targeting it.
	Delete(ctx context.Context, id string) error
}
