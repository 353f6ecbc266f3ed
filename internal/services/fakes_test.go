package services

import (
	"context"
	"path"
	"strings"

	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
	"github.com/vidtube/backend/internal/repositories"
)

type fakeUserRepo struct {
	users   map[string]models.User
	history []models.WatchHistoryEntry
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repositories.ErrConflict
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (models.User, error) {
	for _, user := range r.users {
		if user.Username == username || user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SetRefreshToken(_ context.Context, userID, refreshToken string) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.RefreshToken = refreshToken
	r.users[userID] = user
	return nil
}

func (r *fakeUserRepo) WatchHistory(_ context.Context, _ string, req pagination.Request) ([]models.WatchHistoryEntry, int64, error) {
	total := int64(len(r.history))
	start := req.Offset()
	if start >= len(r.history) {
		return nil, total, nil
	}
	end := start + req.Limit
	if end > len(r.history) {
		end = len(r.history)
	}
	return r.history[start:end], total, nil
}

type fakeVideoRepo struct {
	videos map[string]models.Video
	owners map[string]models.PublicProfile
	viewed map[string]map[string]bool

	page      []models.VideoWithOwner
	pageTotal int64
	lastList  repositories.ListVideosParams

	deleted []string
}

func newFakeVideoRepo(videos ...models.Video) *fakeVideoRepo {
	repo := &fakeVideoRepo{
		videos: make(map[string]models.Video),
		owners: make(map[string]models.PublicProfile),
		viewed: make(map[string]map[string]bool),
	}
	for _, v := range videos {
		repo.videos[v.ID] = v
	}
	return repo
}

func (r *fakeVideoRepo) Create(_ context.Context, video models.Video) error {
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id string) (models.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (r *fakeVideoRepo) FindWithOwner(_ context.Context, id string) (models.VideoWithOwner, error) {
	video, ok := r.videos[id]
	if !ok {
		return models.VideoWithOwner{}, repositories.ErrNotFound
	}
	return models.VideoWithOwner{Video: video, Owner: r.owners[video.OwnerID]}, nil
}

func (r *fakeVideoRepo) FindPage(_ context.Context, params repositories.ListVideosParams) ([]models.VideoWithOwner, int64, error) {
	r.lastList = params
	return r.page, r.pageTotal, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, video models.Video) error {
	if _, ok := r.videos[video.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.videos, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeVideoRepo) RecordView(_ context.Context, userID, videoID string) (bool, error) {
	video, ok := r.videos[videoID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if r.viewed[userID] == nil {
		r.viewed[userID] = make(map[string]bool)
	}
	if r.viewed[userID][videoID] {
		return false, nil
	}
	r.viewed[userID][videoID] = true
	video.Views++
	r.videos[videoID] = video
	return true, nil
}

type fakeLikeRepo struct {
	edges map[string]bool
	liked []models.VideoWithOwner
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{edges: make(map[string]bool)}
}

func likeKey(likedBy string, target models.LikeTarget) string {
	return likedBy + "|" + string(target.Kind) + "|" + target.ID
}

func (r *fakeLikeRepo) Toggle(_ context.Context, likedBy string, target models.LikeTarget) (repositories.ToggleResult, error) {
	key := likeKey(likedBy, target)
	if r.edges[key] {
		delete(r.edges, key)
		return repositories.ToggleResult{Created: false}, nil
	}
	r.edges[key] = true
	return repositories.ToggleResult{Created: true}, nil
}

func (r *fakeLikeRepo) Count(_ context.Context, target models.LikeTarget) (int64, error) {
	var count int64
	suffix := "|" + string(target.Kind) + "|" + target.ID
	for key := range r.edges {
		if strings.HasSuffix(key, suffix) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) ListLikedVideos(_ context.Context, _ string) ([]models.VideoWithOwner, error) {
	return r.liked, nil
}

type fakeSubscriptionRepo struct {
	edges    map[string]bool
	profiles map[string]models.PublicProfile
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		edges:    make(map[string]bool),
		profiles: make(map[string]models.PublicProfile),
	}
}

func subKey(subscriberID, channelID string) string {
	return subscriberID + "|" + channelID
}

func (r *fakeSubscriptionRepo) Toggle(_ context.Context, subscriberID, channelID string) (repositories.ToggleResult, error) {
	key := subKey(subscriberID, channelID)
	if r.edges[key] {
		delete(r.edges, key)
		return repositories.ToggleResult{Created: false}, nil
	}
	r.edges[key] = true
	return repositories.ToggleResult{Created: true}, nil
}

func (r *fakeSubscriptionRepo) CountForChannel(_ context.Context, channelID string) (int64, error) {
	var count int64
	for key := range r.edges {
		if strings.HasSuffix(key, "|"+channelID) {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubscriptionRepo) CountForSubscriber(_ context.Context, subscriberID string) (int64, error) {
	var count int64
	for key := range r.edges {
		if strings.HasPrefix(key, subscriberID+"|") {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubscriptionRepo) IsSubscribed(_ context.Context, subscriberID, channelID string) (bool, error) {
	if subscriberID == "" {
		return false, nil
	}
	return r.edges[subKey(subscriberID, channelID)], nil
}

func (r *fakeSubscriptionRepo) ListSubscribers(_ context.Context, channelID string) ([]models.PublicProfile, error) {
	var profiles []models.PublicProfile
	for key := range r.edges {
		if strings.HasSuffix(key, "|"+channelID) {
			subscriberID := strings.TrimSuffix(key, "|"+channelID)
			profiles = append(profiles, r.profiles[subscriberID])
		}
	}
	return profiles, nil
}

func (r *fakeSubscriptionRepo) ListChannels(_ context.Context, subscriberID string) ([]models.PublicProfile, error) {
	var profiles []models.PublicProfile
	for key := range r.edges {
		if strings.HasPrefix(key, subscriberID+"|") {
			channelID := strings.TrimPrefix(key, subscriberID+"|")
			profiles = append(profiles, r.profiles[channelID])
		}
	}
	return profiles, nil
}

type fakeCommentRepo struct {
	comments map[string]models.Comment

	page      []models.CommentWithOwner
	pageTotal int64

	deleted []string
}

func newFakeCommentRepo(comments ...models.Comment) *fakeCommentRepo {
	repo := &fakeCommentRepo{comments: make(map[string]models.Comment)}
	for _, c := range comments {
		repo.comments[c.ID] = c
	}
	return repo
}

func (r *fakeCommentRepo) Create(_ context.Context, comment models.Comment) error {
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id string) (models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return models.Comment{}, repositories.ErrNotFound
	}
	return comment, nil
}

func (r *fakeCommentRepo) FindPageByVideo(_ context.Context, _ string, _ pagination.Request) ([]models.CommentWithOwner, int64, error) {
	return r.page, r.pageTotal, nil
}

func (r *fakeCommentRepo) CountByVideo(_ context.Context, videoID string) (int64, error) {
	var count int64
	for _, comment := range r.comments {
		if comment.VideoID == videoID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.comments, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeTweetRepo struct {
	tweets map[string]models.Tweet
}

func newFakeTweetRepo(tweets ...models.Tweet) *fakeTweetRepo {
	repo := &fakeTweetRepo{tweets: make(map[string]models.Tweet)}
	for _, tw := range tweets {
		repo.tweets[tw.ID] = tw
	}
	return repo
}

func (r *fakeTweetRepo) Create(_ context.Context, tweet models.Tweet) error {
	r.tweets[tweet.ID] = tweet
	return nil
}

func (r *fakeTweetRepo) FindByID(_ context.Context, id string) (models.Tweet, error) {
	tweet, ok := r.tweets[id]
	if !ok {
		return models.Tweet{}, repositories.ErrNotFound
	}
	return tweet, nil
}

func (r *fakeTweetRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Tweet, error) {
	var tweets []models.Tweet
	for _, tweet := range r.tweets {
		if tweet.OwnerID == ownerID {
			tweets = append(tweets, tweet)
		}
	}
	return tweets, nil
}

func (r *fakeTweetRepo) Update(_ context.Context, tweet models.Tweet) error {
	if _, ok := r.tweets[tweet.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.tweets[tweet.ID] = tweet
	return nil
}

func (r *fakeTweetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tweets[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tweets, id)
	return nil
}

type fakePlaylistRepo struct {
	playlists map[string]models.Playlist
	members   map[string][]string
	detail    models.PlaylistDetail
}

func newFakePlaylistRepo(playlists ...models.Playlist) *fakePlaylistRepo {
	repo := &fakePlaylistRepo{
		playlists: make(map[string]models.Playlist),
		members:   make(map[string][]string),
	}
	for _, p := range playlists {
		repo.playlists[p.ID] = p
	}
	return repo
}

func (r *fakePlaylistRepo) Create(_ context.Context, playlist models.Playlist) error {
	r.playlists[playlist.ID] = playlist
	return nil
}

func (r *fakePlaylistRepo) FindByID(_ context.Context, id string) (models.Playlist, error) {
	playlist, ok := r.playlists[id]
	if !ok {
		return models.Playlist{}, repositories.ErrNotFound
	}
	return playlist, nil
}

func (r *fakePlaylistRepo) FindDetail(_ context.Context, id string) (models.PlaylistDetail, error) {
	if _, ok := r.playlists[id]; !ok {
		return models.PlaylistDetail{}, repositories.ErrNotFound
	}
	return r.detail, nil
}

func (r *fakePlaylistRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Playlist, error) {
	var playlists []models.Playlist
	for _, playlist := range r.playlists {
		if playlist.OwnerID == ownerID {
			playlists = append(playlists, playlist)
		}
	}
	return playlists, nil
}

func (r *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID string) error {
	r.members[playlistID] = append(r.members[playlistID], videoID)
	return nil
}

func (r *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	var kept []string
	removed := false
	for _, id := range r.members[playlistID] {
		if id == videoID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return repositories.ErrNotFound
	}
	r.members[playlistID] = kept
	return nil
}

func (r *fakePlaylistRepo) Update(_ context.Context, playlist models.Playlist) error {
	if _, ok := r.playlists[playlist.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.playlists[playlist.ID] = playlist
	return nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.playlists[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.playlists, id)
	delete(r.members, id)
	return nil
}

type fakeUploader struct {
	uploads []string
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, localPath string, kind media.Kind) (media.Asset, error) {
	if u.err != nil {
		return media.Asset{}, u.err
	}
	u.uploads = append(u.uploads, localPath)
	asset := media.Asset{
		URL:  "https://cdn.example.com/upload/v1/" + string(kind) + "s/" + path.Base(localPath),
		Size: 42,
	}
	if kind == media.KindVideo {
		asset.Duration = 12.5
	}
	return asset, nil
}

type fakeCleaner struct {
	urls []string
}

func (c *fakeCleaner) Enqueue(_ context.Context, url string) error {
	c.urls = append(c.urls, url)
	return nil
}
