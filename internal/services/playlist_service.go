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

// PlaylistService implements named ordered collections of videos.
type PlaylistService struct {
	playlists repositories.PlaylistRepository
	videos    repositories.VideoRepository

	NowFunc func() time.Time
	newID   func() string
}

// NewPlaylistService constructs a PlaylistService.
func NewPlaylistService(playlists repositories.PlaylistRepository, videos repositories.VideoRepository) *PlaylistService {
	if playlists == nil || videos == nil {
		panic("services: playlist and video repositories must not be nil")
	}
	return &PlaylistService{
		playlists: playlists,
		videos:    videos,
		NowFunc:   time.Now,
		newID:     uuid.NewString,
	}
}

// Create makes a new empty playlist for the owner.
func (s *PlaylistService) Create(ctx context.Context, ownerID, name, description string) (models.Playlist, error) {
	ctx, span := logging.StartSpan(ctx, "playlists.create")
	defer span.End()

	if ownerID == "" {
		return models.Playlist{}, apperrors.Validation("owner id is required")
	}
	if name == "" {
		return models.Playlist{}, apperrors.Validation("name is required")
	}

	now := s.NowFunc().UTC()
	playlist := models.Playlist{
		ID:          s.newID(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return models.Playlist{}, storeError(err, "user not found", "playlist conflict")
	}
	return playlist, nil
}

// UserPlaylists returns the playlists owned by the user.
func (s *PlaylistService) UserPlaylists(ctx context.Context, ownerID string) ([]models.Playlist, error) {
	if ownerID == "" {
		return nil, apperrors.Validation("owner id is required")
	}
	playlists, err := s.playlists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Dependency("listing playlists", err)
	}
	return playlists, nil
}

// Get returns a playlist with its owner and videos in playlist order.
func (s *PlaylistService) Get(ctx context.Context, playlistID string) (models.PlaylistDetail, error) {
	if playlistID == "" {
		return models.PlaylistDetail{}, apperrors.Validation("playlist id is required")
	}
	detail, err := s.playlists.FindDetail(ctx, playlistID)
	if err != nil {
		return models.PlaylistDetail{}, storeError(err, "playlist not found", "playlist conflict")
	}
	return detail, nil
}

// AddVideo appends a video to the playlist. Duplicates are permitted. Only
// the playlist owner may add.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID string) error {
	ctx, span := logging.StartSpan(ctx, "playlists.add_video")
	defer span.End()

	if videoID == "" {
		return apperrors.Validation("video id is required")
	}
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return err
	}
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return storeError(err, "video not found", "video conflict")
	}
	if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		return storeError(err, "playlist or video not found", "playlist conflict")
	}
	return nil
}

// RemoveVideo removes every occurrence of the video from the playlist. Only
// the playlist owner may remove.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID string) error {
	ctx, span := logging.StartSpan(ctx, "playlists.remove_video")
	defer span.End()

	if videoID == "" {
		return apperrors.Validation("video id is required")
	}
	if _, err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return err
	}
	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return storeError(err, "video not in playlist", "playlist conflict")
	}
	return nil
}

// Update renames the playlist and its description. Only the owner may update.
func (s *PlaylistService) Update(ctx context.Context, actorID, playlistID, name, description string) (models.Playlist, error) {
	ctx, span := logging.StartSpan(ctx, "playlists.update")
	defer span.End()

	if name == "" {
		return models.Playlist{}, apperrors.Validation("name is required")
	}

	playlist, err := s.ownedPlaylist(ctx, actorID, playlistID)
	if err != nil {
		return models.Playlist{}, err
	}

	playlist.Name = name
	playlist.Description = description
	playlist.UpdatedAt = s.NowFunc().UTC()
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return models.Playlist{}, storeError(err, "playlist not found", "playlist conflict")
	}
	return playlist, nil
}

// Delete removes the playlist and its membership rows. Only the owner may
// delete.
func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID string) error {
	ctx, span := logging.StartSpan(ctx, "playlists.delete")
	defer span.End()

	if _, err := s.ownedPlaylist(ctx, actorID, playlistID); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, playlistID); err != nil {
		return storeError(err, "playlist not found", "playlist conflict")
	}
	return nil
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, actorID, playlistID string) (models.Playlist, error) {
	if actorID == "" || playlistID == "" {
		return models.Playlist{}, apperrors.Validation("actor id and playlist id are required")
	}
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return models.Playlist{}, storeError(err, "playlist not found", "playlist conflict")
	}
	if playlist.OwnerID != actorID {
		return models.Playlist{}, apperrors.Forbidden("playlist belongs to another user")
	}
	return playlist, nil
}
