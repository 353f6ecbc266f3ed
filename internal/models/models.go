package models

import "time"

// User represents an account within the vidtube platform. A user is also a
// channel that others may subscribe to.
type User struct {
	ID            string
	Username      string
	Email         string
	FullName      string
	Password      string
	AvatarURL     string
	CoverImageURL string
	RefreshToken  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublicProfile is the projection of a user exposed alongside other records.
type PublicProfile struct {
	ID        string
	Username  string
	AvatarURL string
}

// Public returns the projection of the user embedded in denormalized views.
func (u User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// Video stores references to uploaded media along with its metadata.
type Video struct {
	ID           string
	OwnerID      string
	VideoURL     string
	ThumbnailURL string
	Title        string
	Description  string
	Tags         []string
	Duration     float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VideoWithOwner is a video enriched with its owner's public profile.
type VideoWithOwner struct {
	Video
	Owner PublicProfile
}

// VideoDetail is the denormalized single-video view.
type VideoDetail struct {
	Video
	Owner            PublicProfile
	LikesCount       int64
	CommentCount     int64
	SubscribersCount int64
	IsSubscribed     bool
}

// Comment is a user's comment on a video.
type Comment struct {
	ID        string
	VideoID   string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentWithOwner is a comment enriched with its owner and like count.
type CommentWithOwner struct {
	Comment
	Owner      PublicProfile
	LikesCount int64
}

// LikeTargetKind discriminates what entity a like targets.
type LikeTargetKind string

const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetComment LikeTargetKind = "comment"
	LikeTargetTweet   LikeTargetKind = "tweet"
)

// LikeTarget is a tagged reference to exactly one likeable entity.
type LikeTarget struct {
	Kind LikeTargetKind
	ID   string
}

// VideoTarget references a video for like operations.
func VideoTarget(id string) LikeTarget {
	return LikeTarget{Kind: LikeTargetVideo, ID: id}
}

// CommentTarget references a comment for like operations.
func CommentTarget(id string) LikeTarget {
	return LikeTarget{Kind: LikeTargetComment, ID: id}
}

// TweetTarget references a tweet for like operations.
func TweetTarget(id string) LikeTarget {
	return LikeTarget{Kind: LikeTargetTweet, ID: id}
}

// Like is an edge between a user and the entity they liked.
type Like struct {
	ID        string
	LikedBy   string
	Target    LikeTarget
	CreatedAt time.Time
}

// Subscription is an edge between a subscriber and a channel.
type Subscription struct {
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}

// Tweet is a short text post by a user.
type Tweet struct {
	ID        string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Playlist is a named, ordered collection of videos.
type Playlist struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlaylistDetail is a playlist enriched with its owner and ordered videos.
type PlaylistDetail struct {
	Playlist
	Owner  PublicProfile
	Videos []Video
}

// ChannelProfile is the denormalized channel view returned for a username.
type ChannelProfile struct {
	ID                        string
	Username                  string
	FullName                  string
	Email                     string
	AvatarURL                 string
	CoverImageURL             string
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

// WatchHistoryEntry is a watched video enriched with its owner.
type WatchHistoryEntry struct {
	Video     VideoWithOwner
	WatchedAt time.Time
}

// SessionTokens groups the bearer credentials issued to authenticated users.
type SessionTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}
