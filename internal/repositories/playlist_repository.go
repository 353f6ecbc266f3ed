package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// PlaylistRepository persists playlists and their ordered video membership.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	// FindDetail returns the playlist with its owner and videos in playlist
	// order. Duplicate videos are permitted and preserved.
	FindDetail(ctx context.Context, id string) (models.PlaylistDetail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID string) error
	// RemoveVideo removes every occurrence of the video from the playlist.
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	Update(ctx context.Context, playlist models.Playlist) error
	Delete(ctx context.Context, id string) error
}
