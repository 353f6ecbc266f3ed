package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vidtube/backend/internal/errors"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
	"github.com/vidtube/backend/internal/repositories"
)

// CommentService implements commenting on videos.
type CommentService struct {
	comments repositories.CommentRepository
	videos   repositories.VideoRepository

	NowFunc func() time.Time
	newID   func() string
}

// NewCommentService constructs a CommentService.
func NewCommentService(comments repositories.CommentRepository, videos repositories.VideoRepository) *CommentService {
	if comments == nil || videos == nil {
		panic("services: comment and video repositories must not be nil")
	}
	return &CommentService{
		comments: comments,
		videos:   videos,
		NowFunc:  time.Now,
		newID:    uuid.NewString,
	}
}

// Add creates a comment on a video.
func (s *CommentService) Add(ctx context.Context, ownerID, videoID, content string) (models.Comment, error) {
	ctx, span := logging.StartSpan(ctx, "comments.add")
	defer span.End()

	if ownerID == "" || videoID == "" {
		return models.Comment{}, apperrors.Validation("owner id and video id are required")
	}
	if content == "" {
		return models.Comment{}, apperrors.Validation("content is required")
	}

	now := s.NowFunc().UTC()
	comment := models.Comment{
		ID:        s.newID(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return models.Comment{}, storeError(err, "video not found", "comment conflict")
	}
	return comment, nil
}

// List returns one page of a video's comments, newest first, with owner
// public fields and per-comment like counts.
func (s *CommentService) List(ctx context.Context, videoID string, req pagination.Request) (pagination.Envelope[models.CommentWithOwner], error) {
	if videoID == "" {
		return pagination.Envelope[models.CommentWithOwner]{}, apperrors.Validation("video id is required")
	}

	req, err := req.Normalize(nil)
	if err != nil {
		return pagination.Envelope[models.CommentWithOwner]{}, apperrors.Validation("%s", err.Error())
	}

	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return pagination.Envelope[models.CommentWithOwner]{}, storeError(err, "video not found", "video conflict")
	}

	comments, total, err := s.comments.FindPageByVideo(ctx, videoID, req)
	if err != nil {
		return pagination.Envelope[models.CommentWithOwner]{}, apperrors.Dependency("listing comments", err)
	}
	return pagination.NewEnvelope(comments, total, req.Page, req.Limit), nil
}

// Update edits a comment's content. Only the owner may update.
func (s *CommentService) Update(ctx context.Context, actorID, commentID, content string) (models.Comment, error) {
	ctx, span := logging.StartSpan(ctx, "comments.update")
	defer span.End()

	if content == "" {
		return models.Comment{}, apperrors.Validation("content is required")
	}

	comment, err := s.ownedComment(ctx, actorID, commentID)
	if err != nil {
		return models.Comment{}, err
	}

	comment.Content = content
	comment.UpdatedAt = s.NowFunc().UTC()
	if err := s.comments.Update(ctx, comment); err != nil {
		return models.Comment{}, storeError(err, "comment not found", "comment conflict")
	}
	return comment, nil
}

// Delete removes a comment and any likes targeting it. Only the owner may
// delete.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID string) error {
	ctx, span := logging.StartSpan(ctx, "comments.delete")
	defer span.End()

	if _, err := s.ownedComment(ctx, actorID, commentID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return storeError(err, "comment not found", "comment conflict")
	}
	return nil
}

func (s *CommentService) ownedComment(ctx context.Context, actorID, commentID string) (models.Comment, error) {
	if actorID == "" || commentID == "" {
		return models.Comment{}, apperrors.Validation("actor id and comment id are required")
	}
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, storeError(err, "comment not found", "comment conflict")
	}
	if comment.OwnerID != actorID {
		return models.Comment{}, apperrors.Forbidden("comment belongs to another user")
	}
	return comment, nil
}
