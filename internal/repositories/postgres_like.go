package repositories

import (
	"context"
	"fmt"
	"time"

	crdbpgx "github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgxv5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
)

// PostgresLikeRepository provides PostgreSQL-backed persistence for likes.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Toggle flips the presence of the (likedBy, target) edge inside one
// transaction. The unique key on the edge keeps concurrent toggles
// linearizable: when a concurrent create wins the insert, the toggle applies
// on top of it and deletes the edge.
func (r *PostgresLikeRepository) Toggle(ctx context.Context, likedBy string, target models.LikeTarget) (ToggleResult, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var result ToggleResult
	err = crdbpgx.ExecuteTx(ctx, conn, pgx.TxOptions{}, func(tx pgx.Tx) error {
		result = ToggleResult{}

		tag, err := tx.Exec(ctx, `
            DELETE FROM likes
            WHERE liked_by = $1 AND target_kind = $2 AND target_id = $3
        `, likedBy, target.Kind, target.ID)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		tag, err = tx.Exec(ctx, `
            INSERT INTO likes (id, liked_by, target_kind, target_id, created_at)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (liked_by, target_kind, target_id) DO NOTHING
        `, uuid.NewString(), likedBy, target.Kind, target.ID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("insert like: %w", err)
		}
		if tag.RowsAffected() > 0 {
			result.Created = true
			return nil
		}

		// The edge appeared between our delete and insert; removing it is
		// the serial order "their create, then our toggle".
		if _, err := tx.Exec(ctx, `
            DELETE FROM likes
            WHERE liked_by = $1 AND target_kind = $2 AND target_id = $3
        `, likedBy, target.Kind, target.ID); err != nil {
			return fmt.Errorf("delete raced like: %w", err)
		}
		return nil
	})
	if err != nil {
		return ToggleResult{}, fmt.Errorf("toggle like: %w", err)
	}

	return result, nil
}

// Count returns the number of likes targeting the provided entity.
func (r *PostgresLikeRepository) Count(ctx context.Context, target models.LikeTarget) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var count int64
	if err := conn.QueryRow(ctx, `
        SELECT COUNT(*) FROM likes WHERE target_kind = $1 AND target_id = $2
    `, target.Kind, target.ID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}

	return count, nil
}

// ListLikedVideos returns the videos the user has liked, newest like first,
// each joined with its owner's public profile.
func (r *PostgresLikeRepository) ListLikedVideos(ctx context.Context, likedBy string) ([]models.VideoWithOwner, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description, v.tags,
               v.duration, v.views, v.is_published, v.created_at, v.updated_at,
               u.id, u.username, u.avatar_url
        FROM likes l
        JOIN videos v ON v.id = l.target_id
        JOIN users u ON u.id = v.owner_id
        WHERE l.liked_by = $1 AND l.target_kind = 'video'
        ORDER BY l.created_at DESC
    `, likedBy)
	if err != nil {
		return nil, fmt.Errorf("query liked videos: %w", err)
	}
	defer rows.Close()

	var videos []models.VideoWithOwner
	for rows.Next() {
		var video models.VideoWithOwner
		if err := rows.Scan(&video.ID, &video.OwnerID, &video.VideoURL, &video.ThumbnailURL, &video.Title,
			&video.Description, &video.Tags, &video.Duration, &video.Views, &video.IsPublished,
			&video.CreatedAt, &video.UpdatedAt,
			&video.Owner.ID, &video.Owner.Username, &video.Owner.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan liked video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked videos: %w", err)
	}

	return videos, nil
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)
