package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/cockroachdb/cockroach-go/v2/testserver"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	server, err := testserver.NewTestServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cockroach test server: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, server.PGURL().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to cockroach test server: %v\n", err)
		server.Stop()
		os.Exit(1)
	}

	if err := applyMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		pool.Close()
		server.Stop()
		os.Exit(1)
	}

	testPool = pool

	code := m.Run()

	pool.Close()
	server.Stop()

	os.Exit(code)
}

func TestPostgresUserRepository_CreateFindAndUpdate(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresUserRepository(testPool)

	user := newTestUser("alice")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	dup := newTestUser("bob")
	dup.Email = user.Email
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}

	fetched, err := repo.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if fetched.ID != user.ID || fetched.Email != user.Email {
		t.Fatalf("unexpected user fetched: %+v", fetched)
	}

	byEither, err := repo.FindByUsernameOrEmail(ctx, "nope", user.Email)
	if err != nil {
		t.Fatalf("find by username or email: %v", err)
	}
	if byEither.ID != user.ID {
		t.Fatalf("expected lookup by email to resolve, got %+v", byEither)
	}

	updated := fetched
	updated.FullName = "Alice Updated"
	updated.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update user: %v", err)
	}

	missing := newTestUser("ghost")
	if err := repo.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating missing user, got %v", err)
	}
}

func TestPostgresUserRepository_RefreshToken(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresUserRepository(testPool)
	user := createTestUser(t, repo, "alice")

	if err := repo.SetRefreshToken(ctx, user.ID, "token-1"); err != nil {
		t.Fatalf("set refresh token: %v", err)
	}
	fetched, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if fetched.RefreshToken != "token-1" {
		t.Fatalf("RefreshToken = %q, want token-1", fetched.RefreshToken)
	}

	if err := repo.SetRefreshToken(ctx, user.ID, ""); err != nil {
		t.Fatalf("clear refresh token: %v", err)
	}
	fetched, err = repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if fetched.RefreshToken != "" {
		t.Fatalf("expected cleared refresh token, got %q", fetched.RefreshToken)
	}

	if err := repo.SetRefreshToken(ctx, uuid.NewString(), "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestPostgresVideoRepository_FindPage(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "alice")
	other := createTestUser(t, userRepo, "bob")

	repo := NewPostgresVideoRepository(testPool)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		video := newTestVideo(owner.ID, fmt.Sprintf("go tutorial %02d", i))
		video.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		video.UpdatedAt = video.CreatedAt
		if err := repo.Create(ctx, video); err != nil {
			t.Fatalf("create video: %v", err)
		}
	}
	unpublished := newTestVideo(owner.ID, "draft video")
	unpublished.IsPublished = false
	if err := repo.Create(ctx, unpublished); err != nil {
		t.Fatalf("create unpublished video: %v", err)
	}
	offTopic := newTestVideo(other.ID, "cooking stream")
	if err := repo.Create(ctx, offTopic); err != nil {
		t.Fatalf("create other video: %v", err)
	}

	page, total, err := repo.FindPage(ctx, ListVideosParams{
		Page: pagination.Request{Page: 2, Limit: 5, SortField: "createdAt", SortDir: pagination.SortDesc},
	})
	if err != nil {
		t.Fatalf("find page: %v", err)
	}
	if total != 13 {
		t.Fatalf("total = %d, want 13 published videos", total)
	}
	if len(page) != 5 {
		t.Fatalf("page size = %d, want 5", len(page))
	}
	for i := 1; i < len(page); i++ {
		if page[i].CreatedAt.After(page[i-1].CreatedAt) {
			t.Fatal("expected descending created_at order")
		}
	}
	if page[0].Owner.Username == "" {
		t.Fatal("expected owner profile populated")
	}

	matched, total, err := repo.FindPage(ctx, ListVideosParams{
		Page:  pagination.Request{Page: 1, Limit: 20, SortDir: pagination.SortDesc},
		Query: "tutorial",
	})
	if err != nil {
		t.Fatalf("find page with query: %v", err)
	}
	if total != 12 || len(matched) != 12 {
		t.Fatalf("query match: total=%d len=%d, want 12", total, len(matched))
	}

	owned, total, err := repo.FindPage(ctx, ListVideosParams{
		Page:    pagination.Request{Page: 1, Limit: 20, SortDir: pagination.SortDesc},
		OwnerID: other.ID,
	})
	if err != nil {
		t.Fatalf("find page by owner: %v", err)
	}
	if total != 1 || owned[0].Title != "cooking stream" {
		t.Fatalf("owner filter: total=%d videos=%+v", total, owned)
	}
}

func TestPostgresVideoRepository_RecordView(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "alice")
	viewer := createTestUser(t, userRepo, "bob")

	repo := NewPostgresVideoRepository(testPool)
	video := newTestVideo(owner.ID, "watch me")
	if err := repo.Create(ctx, video); err != nil {
		t.Fatalf("create video: %v", err)
	}

	first, err := repo.RecordView(ctx, viewer.ID, video.ID)
	if err != nil {
		t.Fatalf("record first view: %v", err)
	}
	if !first {
		t.Fatal("expected first view reported")
	}

	second, err := repo.RecordView(ctx, viewer.ID, video.ID)
	if err != nil {
		t.Fatalf("record repeat view: %v", err)
	}
	if second {
		t.Fatal("expected repeat view not to count")
	}

	fetched, err := repo.FindByID(ctx, video.ID)
	if err != nil {
		t.Fatalf("find video: %v", err)
	}
	if fetched.Views != 1 {
		t.Fatalf("Views = %d, want 1", fetched.Views)
	}

	history, total, err := userRepo.WatchHistory(ctx, viewer.ID, pagination.Request{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("watch history: %v", err)
	}
	if total != 1 || len(history) != 1 || history[0].Video.ID != video.ID {
		t.Fatalf("unexpected watch history: total=%d entries=%+v", total, history)
	}
}

func TestPostgresVideoRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "alice")
	viewer := createTestUser(t, userRepo, "bob")

	videoRepo := NewPostgresVideoRepository(testPool)
	video := newTestVideo(owner.ID, "doomed")
	if err := videoRepo.Create(ctx, video); err != nil {
		t.Fatalf("create video: %v", err)
	}

	commentRepo := NewPostgresCommentRepository(testPool)
	comment := models.Comment{
		ID:        uuid.NewString(),
		VideoID:   video.ID,
		OwnerID:   viewer.ID,
		Content:   "first",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := commentRepo.Create(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	likeRepo := NewPostgresLikeRepository(testPool)
	if _, err := likeRepo.Toggle(ctx, viewer.ID, models.VideoTarget(video.ID)); err != nil {
		t.Fatalf("like video: %v", err)
	}
	if _, err := likeRepo.Toggle(ctx, viewer.ID, models.CommentTarget(comment.ID)); err != nil {
		t.Fatalf("like comment: %v", err)
	}

	playlistRepo := NewPostgresPlaylistRepository(testPool)
	playlist := models.Playlist{
		ID:        uuid.NewString(),
		OwnerID:   viewer.ID,
		Name:      "watch later",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := playlistRepo.Create(ctx, playlist); err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	if err := playlistRepo.AddVideo(ctx, playlist.ID, video.ID); err != nil {
		t.Fatalf("add video to playlist: %v", err)
	}

	if _, err := videoRepo.RecordView(ctx, viewer.ID, video.ID); err != nil {
		t.Fatalf("record view: %v", err)
	}

	if err := videoRepo.Delete(ctx, video.ID); err != nil {
		t.Fatalf("delete video: %v", err)
	}

	if _, err := videoRepo.FindByID(ctx, video.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected video gone, got %v", err)
	}
	if _, err := commentRepo.FindByID(ctx, comment.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected comment gone, got %v", err)
	}
	if count, err := likeRepo.Count(ctx, models.VideoTarget(video.ID)); err != nil || count != 0 {
		t.Fatalf("expected video likes gone: count=%d err=%v", count, err)
	}
	if count, err := likeRepo.Count(ctx, models.CommentTarget(comment.ID)); err != nil || count != 0 {
		t.Fatalf("expected comment likes gone: count=%d err=%v", count, err)
	}
	detail, err := playlistRepo.FindDetail(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("find playlist detail: %v", err)
	}
	if len(detail.Videos) != 0 {
		t.Fatalf("expected playlist membership gone, got %+v", detail.Videos)
	}

	if err := videoRepo.Delete(ctx, video.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestPostgresLikeRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "alice")
	fan := createTestUser(t, userRepo, "bob")

	videoRepo := NewPostgresVideoRepository(testPool)
	video := newTestVideo(owner.ID, "likeable")
	if err := videoRepo.Create(ctx, video); err != nil {
		t.Fatalf("create video: %v", err)
	}

	repo := NewPostgresLikeRepository(testPool)
	target := models.VideoTarget(video.ID)

	result, err := repo.Toggle(ctx, fan.ID, target)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !result.Created {
		t.Fatal("expected edge created")
	}

	count, err := repo.Count(ctx, target)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	liked, err := repo.ListLikedVideos(ctx, fan.ID)
	if err != nil {
		t.Fatalf("list liked videos: %v", err)
	}
	if len(liked) != 1 || liked[0].ID != video.ID {
		t.Fatalf("unexpected liked videos: %+v", liked)
	}

	result, err = repo.Toggle(ctx, fan.ID, target)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if result.Created {
		t.Fatal("expected edge deleted")
	}

	count, err = repo.Count(ctx, target)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestPostgresSubscriptionRepository_ToggleAndListings(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	channel := createTestUser(t, userRepo, "alice")
	fan := createTestUser(t, userRepo, "bob")

	repo := NewPostgresSubscriptionRepository(testPool)

	result, err := repo.Toggle(ctx, fan.ID, channel.ID)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !result.Created {
		t.Fatal("expected edge created")
	}

	subscribed, err := repo.IsSubscribed(ctx, fan.ID, channel.ID)
	if err != nil {
		t.Fatalf("is subscribed: %v", err)
	}
	if !subscribed {
		t.Fatal("expected IsSubscribed true")
	}
	anonymous, err := repo.IsSubscribed(ctx, "", channel.ID)
	if err != nil {
		t.Fatalf("is subscribed anonymous: %v", err)
	}
	if anonymous {
		t.Fatal("expected IsSubscribed false for empty subscriber")
	}

	count, err := repo.CountForChannel(ctx, channel.ID)
	if err != nil {
		t.Fatalf("count for channel: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	subscribers, err := repo.ListSubscribers(ctx, channel.ID)
	if err != nil {
		t.Fatalf("list subscribers: %v", err)
	}
	if len(subscribers) != 1 || subscribers[0].ID != fan.ID {
		t.Fatalf("unexpected subscribers: %+v", subscribers)
	}

	channels, err := repo.ListChannels(ctx, fan.ID)
	if err != nil {
		t.Fatalf("list channels: %v", err)
	}
	if len(channels) != 1 || channels[0].ID != channel.ID {
		t.Fatalf("unexpected channels: %+v", channels)
	}

	if _, err := repo.Toggle(ctx, fan.ID, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing channel, got %v", err)
	}

	result, err = repo.Toggle(ctx, fan.ID, channel.ID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if result.Created {
		t.Fatal("expected edge deleted")
	}
}

func TestPostgresCommentRepository_PageWithLikes(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "alice")
	commenter := createTestUser(t, userRepo, "bob")

	videoRepo := NewPostgresVideoRepository(testPool)
	video := newTestVideo(owner.ID, "discussed")
	if err := videoRepo.Create(ctx, video); err != nil {
		t.Fatalf("create video: %v", err)
	}

	repo := NewPostgresCommentRepository(testPool)
	base := time.Now().UTC().Add(-time.Hour)
	var firstComment models.Comment
	for i := 0; i < 15; i++ {
		comment := models.Comment{
			ID:        uuid.NewString(),
			VideoID:   video.ID,
			OwnerID:   commenter.ID,
			Content:   fmt.Sprintf("comment %02d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i == 0 {
			firstComment = comment
		}
		if err := repo.Create(ctx, comment); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	likeRepo := NewPostgresLikeRepository(testPool)
	if _, err := likeRepo.Toggle(ctx, owner.ID, models.CommentTarget(firstComment.ID)); err != nil {
		t.Fatalf("like comment: %v", err)
	}

	page, total, err := repo.FindPageByVideo(ctx, video.ID, pagination.Request{Page: 2, Limit: 10, SortDir: pagination.SortDesc})
	if err != nil {
		t.Fatalf("find page: %v", err)
	}
	if total != 15 {
		t.Fatalf("total = %d, want 15", total)
	}
	if len(page) != 5 {
		t.Fatalf("page size = %d, want 5", len(page))
	}
	last := page[len(page)-1]
	if last.ID != firstComment.ID {
		t.Fatalf("expected oldest comment last, got %+v", last)
	}
	if last.LikesCount != 1 {
		t.Fatalf("LikesCount = %d, want 1", last.LikesCount)
	}
	if last.Owner.Username != "bob" {
		t.Fatalf("unexpected owner: %+v", last.Owner)
	}

	if err := repo.Create(ctx, models.Comment{
		ID:        uuid.NewString(),
		VideoID:   uuid.NewString(),
		OwnerID:   commenter.ID,
		Content:   "orphan",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing video, got %v", err)
	}
}

func TestPostgresTweetRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "alice")

	repo := NewPostgresTweetRepository(testPool)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		tweet := models.Tweet{
			ID:        uuid.NewString(),
			OwnerID:   owner.ID,
			Content:   fmt.Sprintf("tweet %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, tweet); err != nil {
			t.Fatalf("create tweet: %v", err)
		}
	}

	tweets, err := repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list tweets: %v", err)
	}
	if len(tweets) != 3 {
		t.Fatalf("len = %d, want 3", len(tweets))
	}
	if tweets[0].Content != "tweet 2" {
		t.Fatalf("expected newest first, got %+v", tweets[0])
	}

	likeRepo := NewPostgresLikeRepository(testPool)
	if _, err := likeRepo.Toggle(ctx, owner.ID, models.TweetTarget(tweets[0].ID)); err != nil {
		t.Fatalf("like tweet: %v", err)
	}

	if err := repo.Delete(ctx, tweets[0].ID); err != nil {
		t.Fatalf("delete tweet: %v", err)
	}
	if count, err := likeRepo.Count(ctx, models.TweetTarget(tweets[0].ID)); err != nil || count != 0 {
		t.Fatalf("expected tweet likes gone: count=%d err=%v", count, err)
	}
}

func TestPostgresPlaylistRepository_Membership(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "alice")

	videoRepo := NewPostgresVideoRepository(testPool)
	videoA := newTestVideo(owner.ID, "first")
	videoB := newTestVideo(owner.ID, "second")
	for _, v := range []models.Video{videoA, videoB} {
		if err := videoRepo.Create(ctx, v); err != nil {
			t.Fatalf("create video: %v", err)
		}
	}

	repo := NewPostgresPlaylistRepository(testPool)
	playlist := models.Playlist{
		ID:        uuid.NewString(),
		OwnerID:   owner.ID,
		Name:      "favorites",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, playlist); err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	for _, id := range []string{videoA.ID, videoB.ID, videoA.ID} {
		if err := repo.AddVideo(ctx, playlist.ID, id); err != nil {
			t.Fatalf("add video: %v", err)
		}
	}

	detail, err := repo.FindDetail(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("find detail: %v", err)
	}
	if len(detail.Videos) != 3 {
		t.Fatalf("len = %d, want 3 with duplicate", len(detail.Videos))
	}
	if detail.Videos[0].ID != videoA.ID || detail.Videos[1].ID != videoB.ID || detail.Videos[2].ID != videoA.ID {
		t.Fatalf("unexpected order: %+v", detail.Videos)
	}
	if detail.Owner.Username != "alice" {
		t.Fatalf("unexpected owner: %+v", detail.Owner)
	}

	if err := repo.RemoveVideo(ctx, playlist.ID, videoA.ID); err != nil {
		t.Fatalf("remove video: %v", err)
	}
	detail, err = repo.FindDetail(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("find detail: %v", err)
	}
	if len(detail.Videos) != 1 || detail.Videos[0].ID != videoB.ID {
		t.Fatalf("expected every occurrence removed, got %+v", detail.Videos)
	}

	if err := repo.RemoveVideo(ctx, playlist.ID, videoA.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound removing absent video, got %v", err)
	}

	if err := repo.Delete(ctx, playlist.ID); err != nil {
		t.Fatalf("delete playlist: %v", err)
	}
	if _, err := repo.FindDetail(ctx, playlist.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected playlist gone, got %v", err)
	}
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		if _, err := pool.Exec(ctx, string(contents)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func resetDatabase(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	conn, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "TRUNCATE TABLE watch_history, playlist_videos, playlists, tweets, subscriptions, likes, comments, videos, users CASCADE"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func newTestUser(username string) models.User {
	now := time.Now().UTC()
	return models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     username + "@example.com",
		FullName:  username,
		Password:  "password-hash",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func createTestUser(t *testing.T, repo *PostgresUserRepository, username string) models.User {
	t.Helper()
	user := newTestUser(username)
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func newTestVideo(ownerID, title string) models.Video {
	now := time.Now().UTC()
	return models.Video{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		VideoURL:     "https://cdn.example.com/upload/v1/videos/" + uuid.NewString() + ".mp4",
		ThumbnailURL: "https://cdn.example.com/upload/v1/images/" + uuid.NewString() + ".png",
		Title:        title,
		Tags:         []string{"test"},
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
