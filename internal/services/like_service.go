package services

import (
	"context"

	apperrors "github.com/vidtube/backend/internal/errors"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// LikeService implements the like toggle across videos, comments and tweets.
type LikeService struct {
	likes    repositories.LikeRepository
	videos   repositories.VideoRepository
	comments repositories.CommentRepository
	tweets   repositories.TweetRepository
}

// NewLikeService constructs a LikeService.
func NewLikeService(likes repositories.LikeRepository, videos repositories.VideoRepository, comments repositories.CommentRepository, tweets repositories.TweetRepository) *LikeService {
	if likes == nil {
		panic("services: like repository must not be nil")
	}
	return &LikeService{
		likes:    likes,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
	}
}

// Toggle creates the like edge when absent and removes it when present,
// reporting which side took effect. The target must exist.
func (s *LikeService) Toggle(ctx context.Context, actorID string, target models.LikeTarget) (ToggleStatus, error) {
	ctx, span := logging.StartSpan(ctx, "likes.toggle")
	defer span.End()

	if actorID == "" {
		return "", apperrors.Validation("actor id is required")
	}
	if target.ID == "" {
		return "", apperrors.Validation("target id is required")
	}

	if err := s.targetExists(ctx, target); err != nil {
		return "", err
	}

	result, err := s.likes.Toggle(ctx, actorID, target)
	if err != nil {
		return "", storeError(err, "like target not found", "like conflict")
	}
	return toggleStatus(result), nil
}

// LikedVideos returns the videos the actor has liked, most recent like first.
func (s *LikeService) LikedVideos(ctx context.Context, actorID string) ([]models.VideoWithOwner, error) {
	if actorID == "" {
		return nil, apperrors.Validation("actor id is required")
	}
	videos, err := s.likes.ListLikedVideos(ctx, actorID)
	if err != nil {
		return nil, apperrors.Dependency("listing liked videos", err)
	}
	return videos, nil
}

func (s *LikeService) targetExists(ctx context.Context, target models.LikeTarget) error {
	var err error
	switch target.Kind {
	case models.LikeTargetVideo:
		_, err = s.videos.FindByID(ctx, target.ID)
	case models.LikeTargetComment:
		_, err = s.comments.FindByID(ctx, target.ID)
	case models.LikeTargetTweet:
		_, err = s.tweets.FindByID(ctx, target.ID)
	default:
		return apperrors.Validation("unknown like target kind %q", target.Kind)
	}
	if err != nil {
		return storeError(err, string(target.Kind)+" not found", "like conflict")
	}
	return nil
}
