package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vidtube/backend/internal/errors"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
	"github.com/vidtube/backend/internal/repositories"
)

// videoSortFields is the allow-list for video listing sort parameters.
var videoSortFields = []string{"createdAt", "views", "title"}

// VideoService implements video publication, listing, the single-video detail
// aggregation and lifecycle operations.
type VideoService struct {
	videos        repositories.VideoRepository
	likes         repositories.LikeRepository
	comments      repositories.CommentRepository
	subscriptions repositories.SubscriptionRepository
	uploader      MediaUploader
	cleaner       AssetCleaner

	NowFunc func() time.Time
	newID   func() string
}

// NewVideoService constructs a VideoService.
func NewVideoService(videos repositories.VideoRepository, likes repositories.LikeRepository, comments repositories.CommentRepository, subscriptions repositories.SubscriptionRepository, uploader MediaUploader, cleaner AssetCleaner) *VideoService {
	if videos == nil {
		panic("services: video repository must not be nil")
	}
	return &VideoService{
		videos:        videos,
		likes:         likes,
		comments:      comments,
		subscriptions: subscriptions,
		uploader:      uploader,
		cleaner:       cleaner,
		NowFunc:       time.Now,
		newID:         uuid.NewString,
	}
}

// ListVideosParams selects a page of published videos.
type ListVideosParams struct {
	Page pagination.Request
	// OwnerID restricts results to one channel when non-empty.
	OwnerID string
	// Query matches title and description case-insensitively when non-empty.
	Query string
}

// List returns one page of published videos with owner public fields.
func (s *VideoService) List(ctx context.Context, params ListVideosParams) (pagination.Envelope[models.VideoWithOwner], error) {
	req, err := params.Page.Normalize(videoSortFields)
	if err != nil {
		return pagination.Envelope[models.VideoWithOwner]{}, apperrors.Validation("%s", err.Error())
	}

	videos, total, err := s.videos.FindPage(ctx, repositories.ListVideosParams{
		Page:    req,
		OwnerID: params.OwnerID,
		Query:   params.Query,
	})
	if err != nil {
		return pagination.Envelope[models.VideoWithOwner]{}, apperrors.Dependency("listing videos", err)
	}
	return pagination.NewEnvelope(videos, total, req.Page, req.Limit), nil
}

// PublishVideoParams carries the inputs for publishing a new video.
type PublishVideoParams struct {
	OwnerID       string
	Title         string
	Description   string
	Tags          []string
	VideoPath     string
	ThumbnailPath string
}

// Publish uploads the video file and thumbnail, probing duration and
// compressing oversized inputs, then records the video as published.
func (s *VideoService) Publish(ctx context.Context, params PublishVideoParams) (models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "videos.publish")
	defer span.End()

	if params.OwnerID == "" {
		return models.Video{}, apperrors.Validation("owner id is required")
	}
	if params.Title == "" {
		return models.Video{}, apperrors.Validation("title is required")
	}
	if params.VideoPath == "" || params.ThumbnailPath == "" {
		return models.Video{}, apperrors.Validation("video file and thumbnail are required")
	}
	if s.uploader == nil {
		return models.Video{}, apperrors.Dependency("media uploader unavailable", media.ErrStorageUnavailable)
	}

	videoAsset, err := s.uploader.Upload(ctx, params.VideoPath, media.KindVideo)
	if err != nil {
		return models.Video{}, apperrors.Dependency("uploading video", err)
	}
	thumbAsset, err := s.uploader.Upload(ctx, params.ThumbnailPath, media.KindImage)
	if err != nil {
		s.discard(ctx, videoAsset.URL)
		return models.Video{}, apperrors.Dependency("uploading thumbnail", err)
	}

	now := s.NowFunc().UTC()
	video := models.Video{
		ID:           s.newID(),
		OwnerID:      params.OwnerID,
		VideoURL:     videoAsset.URL,
		ThumbnailURL: thumbAsset.URL,
		Title:        params.Title,
		Description:  params.Description,
		Tags:         params.Tags,
		Duration:     videoAsset.Duration,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		s.discard(ctx, videoAsset.URL)
		s.discard(ctx, thumbAsset.URL)
		return models.Video{}, storeError(err, "owner not found", "video conflict")
	}

	logging.FromContext(ctx).Info("video published", "video_id", video.ID, "owner_id", video.OwnerID)
	return video, nil
}

// Get returns the detail aggregation for a video. For an authenticated viewer
// the first visit appends watch history and increments the view counter
// exactly once. Unpublished videos resolve only for their owner.
func (s *VideoService) Get(ctx context.Context, videoID, viewerID string) (models.VideoDetail, error) {
	ctx, span := logging.StartSpan(ctx, "videos.get")
	defer span.End()

	if videoID == "" {
		return models.VideoDetail{}, apperrors.Validation("video id is required")
	}

	video, err := s.videos.FindWithOwner(ctx, videoID)
	if err != nil {
		return models.VideoDetail{}, storeError(err, "video not found", "video conflict")
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return models.VideoDetail{}, apperrors.NotFound("video not found")
	}

	likes, err := s.likes.Count(ctx, models.VideoTarget(videoID))
	if err != nil {
		return models.VideoDetail{}, apperrors.Dependency("counting likes", err)
	}
	comments, err := s.comments.CountByVideo(ctx, videoID)
	if err != nil {
		return models.VideoDetail{}, apperrors.Dependency("counting comments", err)
	}
	subscribers, err := s.subscriptions.CountForChannel(ctx, video.OwnerID)
	if err != nil {
		return models.VideoDetail{}, apperrors.Dependency("counting subscribers", err)
	}
	isSubscribed, err := s.subscriptions.IsSubscribed(ctx, viewerID, video.OwnerID)
	if err != nil {
		return models.VideoDetail{}, apperrors.Dependency("checking subscription", err)
	}

	detail := models.VideoDetail{
		Video:            video.Video,
		Owner:            video.Owner,
		LikesCount:       likes,
		CommentCount:     comments,
		SubscribersCount: subscribers,
		IsSubscribed:     isSubscribed,
	}

	if viewerID != "" {
		firstView, err := s.videos.RecordView(ctx, viewerID, videoID)
		if err != nil {
			return models.VideoDetail{}, storeError(err, "video not found", "video conflict")
		}
		if firstView {
			detail.Views++
		}
	}

	return detail, nil
}

// UpdateVideoParams carries the mutable video fields. ThumbnailPath, when
// non-empty, replaces the thumbnail.
type UpdateVideoParams struct {
	ActorID       string
	VideoID       string
	Title         string
	Description   string
	Tags          []string
	ThumbnailPath string
}

// Update modifies a video's metadata. Only the owner may update.
func (s *VideoService) Update(ctx context.Context, params UpdateVideoParams) (models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "videos.update")
	defer span.End()

	if params.Title == "" {
		return models.Video{}, apperrors.Validation("title is required")
	}

	video, err := s.ownedVideo(ctx, params.ActorID, params.VideoID)
	if err != nil {
		return models.Video{}, err
	}

	oldThumbnail := ""
	if params.ThumbnailPath != "" {
		if s.uploader == nil {
			return models.Video{}, apperrors.Dependency("media uploader unavailable", media.ErrStorageUnavailable)
		}
		asset, err := s.uploader.Upload(ctx, params.ThumbnailPath, media.KindImage)
		if err != nil {
			return models.Video{}, apperrors.Dependency("uploading thumbnail", err)
		}
		oldThumbnail = video.ThumbnailURL
		video.ThumbnailURL = asset.URL
	}

	video.Title = params.Title
	video.Description = params.Description
	if params.Tags != nil {
		video.Tags = params.Tags
	}
	video.UpdatedAt = s.NowFunc().UTC()

	if err := s.videos.Update(ctx, video); err != nil {
		if oldThumbnail != "" {
			s.discard(ctx, video.ThumbnailURL)
		}
		return models.Video{}, storeError(err, "video not found", "video conflict")
	}

	s.discard(ctx, oldThumbnail)
	return video, nil
}

// Delete removes a video along with its comments, likes, playlist membership
// and watch-history rows, then schedules deletion of its media assets.
func (s *VideoService) Delete(ctx context.Context, actorID, videoID string) error {
	ctx, span := logging.StartSpan(ctx, "videos.delete")
	defer span.End()

	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return err
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return storeError(err, "video not found", "video conflict")
	}

	s.discard(ctx, video.VideoURL)
	s.discard(ctx, video.ThumbnailURL)

	logging.FromContext(ctx).Info("video deleted", "video_id", videoID, "owner_id", actorID)
	return nil
}

// TogglePublish flips the published flag. Only the owner may toggle.
func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID string) (models.Video, error) {
	ctx, span := logging.StartSpan(ctx, "videos.toggle_publish")
	defer span.End()

	video, err := s.ownedVideo(ctx, actorID, videoID)
	if err != nil {
		return models.Video{}, err
	}

	video.IsPublished = !video.IsPublished
	video.UpdatedAt = s.NowFunc().UTC()
	if err := s.videos.Update(ctx, video); err != nil {
		return models.Video{}, storeError(err, "video not found", "video conflict")
	}
	return video, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, actorID, videoID string) (models.Video, error) {
	if actorID == "" || videoID == "" {
		return models.Video{}, apperrors.Validation("actor id and video id are required")
	}
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return models.Video{}, storeError(err, "video not found", "video conflict")
	}
	if video.OwnerID != actorID {
		return models.Video{}, apperrors.Forbidden("video belongs to another user")
	}
	return video, nil
}

func (s *VideoService) discard(ctx context.Context, url string) {
	if s.cleaner == nil || url == "" {
		return
	}
	if err := s.cleaner.Enqueue(ctx, url); err != nil {
		logging.FromContext(ctx).Warn("scheduling asset cleanup failed", "url", url, "error", err)
	}
}
