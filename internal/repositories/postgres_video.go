package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	crdbpgx "github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
)

// PostgresVideoRepository provides PostgreSQL-backed persistence for videos.
type PostgresVideoRepository struct {
	pool db.Pool
}

// NewPostgresVideoRepository constructs a video repository backed by PostgreSQL.
func NewPostgresVideoRepository(pool db.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

// sortColumns maps the allow-listed sort fields to their columns. Fields are
// validated before they reach the repository; anything unknown falls back to
// created_at.
var sortColumns = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"title":     "v.title",
}

// Create stores a new video record.
func (r *PostgresVideoRepository) Create(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tags := video.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err = conn.Exec(ctx, `
        INSERT INTO videos (id, owner_id, video_url, thumbnail_url, title, description, tags, duration, views, is_published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, video.ID, video.OwnerID, video.VideoURL, video.ThumbnailURL, video.Title, video.Description,
		tags, video.Duration, video.Views, video.IsPublished, video.CreatedAt, video.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert video: %w", err)
	}

	return nil
}

// FindByID fetches a single video without enrichment.
func (r *PostgresVideoRepository) FindByID(ctx context.Context, id string) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, owner_id, video_url, thumbnail_url, title, description, tags, duration, views, is_published, created_at, updated_at
        FROM videos
        WHERE id = $1
    `, id)

	var video models.Video
	if err := row.Scan(&video.ID, &video.OwnerID, &video.VideoURL, &video.ThumbnailURL, &video.Title,
		&video.Description, &video.Tags, &video.Duration, &video.Views, &video.IsPublished,
		&video.CreatedAt, &video.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("select video: %w", err)
	}

	return video, nil
}

// FindWithOwner fetches a video joined with its owner's public profile.
func (r *PostgresVideoRepository) FindWithOwner(ctx context.Context, id string) (models.VideoWithOwner, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.VideoWithOwner{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description, v.tags,
               v.duration, v.views, v.is_published, v.created_at, v.updated_at,
               u.id, u.username, u.avatar_url
        FROM videos v
        JOIN users u ON u.id = v.owner_id
        WHERE v.id = $1
    `, id)

	var video models.VideoWithOwner
	if err := row.Scan(&video.ID, &video.OwnerID, &video.VideoURL, &video.ThumbnailURL, &video.Title,
		&video.Description, &video.Tags, &video.Duration, &video.Views, &video.IsPublished,
		&video.CreatedAt, &video.UpdatedAt,
		&video.Owner.ID, &video.Owner.Username, &video.Owner.AvatarURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.VideoWithOwner{}, ErrNotFound
		}
		return models.VideoWithOwner{}, fmt.Errorf("select video with owner: %w", err)
	}

	return video, nil
}

// FindPage returns one page of videos joined with their owners, plus the
// total count after filtering but before pagination.
func (r *PostgresVideoRepository) FindPage(ctx context.Context, params ListVideosParams) ([]models.VideoWithOwner, int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	where := []string{}
	args := []any{}
	if !params.IncludeUnpublished {
		where = append(where, "v.is_published")
	}
	if params.OwnerID != "" {
		args = append(args, params.OwnerID)
		where = append(where, fmt.Sprintf("v.owner_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(params.Query); q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(v.title ILIKE $%d OR v.description ILIKE $%d)", len(args), len(args)))
	}

	filter := ""
	if len(where) > 0 {
		filter = "WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := conn.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM videos v %s`, filter), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	sortColumn, ok := sortColumns[params.Page.SortField]
	if !ok {
		sortColumn = "v.created_at"
	}
	direction := "DESC"
	if params.Page.SortDir == pagination.SortAsc {
		direction = "ASC"
	}

	args = append(args, params.Page.Limit, params.Page.Offset())
	rows, err := conn.Query(ctx, fmt.Sprintf(`
        SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description, v.tags,
               v.duration, v.views, v.is_published, v.created_at, v.updated_at,
               u.id, u.username, u.avatar_url
        FROM videos v
        JOIN users u ON u.id = v.owner_id
        %s
        ORDER BY %s %s
        LIMIT $%d OFFSET $%d
    `, filter, sortColumn, direction, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query videos page: %w", err)
	}
	defer rows.Close()

	var videos []models.VideoWithOwner
	for rows.Next() {
		var video models.VideoWithOwner
		if err := rows.Scan(&video.ID, &video.OwnerID, &video.VideoURL, &video.ThumbnailURL, &video.Title,
			&video.Description, &video.Tags, &video.Duration, &video.Views, &video.IsPublished,
			&video.CreatedAt, &video.UpdatedAt,
			&video.Owner.ID, &video.Owner.Username, &video.Owner.AvatarURL); err != nil {
			return nil, 0, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate videos page: %w", err)
	}

	return videos, total, nil
}

// Update modifies a video's mutable fields.
func (r *PostgresVideoRepository) Update(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tags := video.Tags
	if tags == nil {
		tags = []string{}
	}

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET title = $2, description = $3, thumbnail_url = $4, tags = $5, is_published = $6, updated_at = $7
        WHERE id = $1
    `, video.ID, video.Title, video.Description, video.ThumbnailURL, tags, video.IsPublished, video.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a video along with its likes, its comments and their likes,
// its playlist memberships and its watch-history rows, all in one transaction
// so a partial cascade is never observable.
func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	err = crdbpgx.ExecuteTx(ctx, conn, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
            DELETE FROM likes
            WHERE target_kind = 'comment'
              AND target_id IN (SELECT id FROM comments WHERE video_id = $1)
        `, id); err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM likes WHERE target_kind = 'video' AND target_id = $1`, id); err != nil {
			return fmt.Errorf("delete video likes: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE video_id = $1`, id); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM playlist_videos WHERE video_id = $1`, id); err != nil {
			return fmt.Errorf("delete playlist memberships: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM watch_history WHERE video_id = $1`, id); err != nil {
			return fmt.Errorf("delete watch history: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete video: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("video delete cascade: %w", err)
	}

	return nil
}

// RecordView inserts the watch-history row and increments the view counter in
// one transaction. The history row's primary key makes the increment happen
// at most once per (user, video) pair even under concurrent requests.
func (r *PostgresVideoRepository) RecordView(ctx context.Context, userID, videoID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	firstView := false
	err = crdbpgx.ExecuteTx(ctx, conn, pgx.TxOptions{}, func(tx pgx.Tx) error {
		firstView = false

		tag, err := tx.Exec(ctx, `
            INSERT INTO watch_history (user_id, video_id, watched_at)
            VALUES ($1, $2, $3)
            ON CONFLICT (user_id, video_id) DO NOTHING
        `, userID, videoID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("insert watch history: %w", err)
		}

		if tag.RowsAffected() == 0 {
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, videoID); err != nil {
			return fmt.Errorf("increment views: %w", err)
		}

		firstView = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("record view: %w", err)
	}

	return firstView, nil
}

var _ VideoRepository = (*PostgresVideoRepository)(nil)
