package app

import (
	"context"
	"log/slog"

	"github.com/vidtube/backend/internal/auth"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/repositories"
	"github.com/vidtube/backend/internal/services"
	"github.com/vidtube/backend/internal/storage"
)

// Dependencies aggregates the service layer built for a running server.
type Dependencies struct {
	Users         *services.UserService
	Videos        *services.VideoService
	Comments      *services.CommentService
	Likes         *services.LikeService
	Subscriptions *services.SubscriptionService
	Tweets        *services.TweetService
	Playlists     *services.PlaylistService

	Cleaner *media.Cleaner
}

// buildDependencies wires repositories, auth, media and services together.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config, logger *slog.Logger) (Dependencies, error) {
	users := repositories.NewPostgresUserRepository(pool)
	videos := repositories.NewPostgresVideoRepository(pool)
	likes := repositories.NewPostgresLikeRepository(pool)
	subscriptions := repositories.NewPostgresSubscriptionRepository(pool)
	comments := repositories.NewPostgresCommentRepository(pool)
	tweets := repositories.NewPostgresTweetRepository(pool)
	playlists := repositories.NewPostgresPlaylistRepository(pool)

	tokens := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	store, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
	if err != nil {
		return Dependencies{}, err
	}

	mediaClient := media.NewClient(store, media.ClientConfig{
		FFmpegPath:      cfg.FFmpegPath,
		FFprobePath:     cfg.FFprobePath,
		Timeout:         cfg.TranscodeTimeout,
		VideoCompressMB: cfg.VideoCompressMB,
		ImageCompressMB: cfg.ImageCompressMB,
	}, logger)

	cleaner := media.NewCleaner(mediaClient, media.CleanerConfig{
		QueueSize: cfg.MediaCleanupQueue,
		Workers:   2,
	}, logger)

	return Dependencies{
		Users:         services.NewUserService(users, subscriptions, tokens, mediaClient, cleaner),
		Videos:        services.NewVideoService(videos, likes, comments, subscriptions, mediaClient, cleaner),
		Comments:      services.NewCommentService(comments, videos),
		Likes:         services.NewLikeService(likes, videos, comments, tweets),
		Subscriptions: services.NewSubscriptionService(subscriptions, users),
		Tweets:        services.NewTweetService(tweets, users),
		Playlists:     services.NewPlaylistService(playlists, videos),
		Cleaner:       cleaner,
	}, nil
}
