package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidtube/backend/internal/auth"
	apperrors "github.com/vidtube/backend/internal/errors"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
	"github.com/vidtube/backend/internal/repositories"
)

// UserService implements account lifecycle, session management and the
// channel-profile aggregation.
type UserService struct {
	users         repositories.UserRepository
	subscriptions repositories.SubscriptionRepository
	tokens        *auth.TokenManager
	uploader      MediaUploader
	cleaner       AssetCleaner

	// NowFunc allows tests to control persisted timestamps.
	NowFunc func() time.Time
	newID   func() string
}

// NewUserService constructs a UserService. The cleaner may be nil, in which
// case replaced assets are left in place.
func NewUserService(users repositories.UserRepository, subscriptions repositories.SubscriptionRepository, tokens *auth.TokenManager, uploader MediaUploader, cleaner AssetCleaner) *UserService {
	if users == nil {
		panic("services: user repository must not be nil")
	}
	if tokens == nil {
		panic("services: token manager must not be nil")
	}
	return &UserService{
		users:         users,
		subscriptions: subscriptions,
		tokens:        tokens,
		uploader:      uploader,
		cleaner:       cleaner,
		NowFunc:       time.Now,
		newID:         uuid.NewString,
	}
}

// RegisterParams carries the inputs for account creation. AvatarPath is
// required; CoverImagePath is optional.
type RegisterParams struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// Register creates an account, uploading the avatar and optional cover image.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (models.User, error) {
	ctx, span := logging.StartSpan(ctx, "users.register")
	defer span.End()

	if params.Username == "" || params.Email == "" || params.FullName == "" || params.Password == "" {
		return models.User{}, apperrors.Validation("username, email, fullName and password are required")
	}
	if params.AvatarPath == "" {
		return models.User{}, apperrors.Validation("avatar is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperrors.Dependency("hashing password", err)
	}

	avatar, err := s.uploadImage(ctx, params.AvatarPath)
	if err != nil {
		return models.User{}, err
	}

	var coverURL string
	if params.CoverImagePath != "" {
		cover, err := s.uploadImage(ctx, params.CoverImagePath)
		if err != nil {
			s.discard(ctx, avatar.URL)
			return models.User{}, err
		}
		coverURL = cover.URL
	}

	now := s.NowFunc().UTC()
	user := models.User{
		ID:            s.newID(),
		Username:      params.Username,
		Email:         params.Email,
		FullName:      params.FullName,
		Password:      string(hashed),
		AvatarURL:     avatar.URL,
		CoverImageURL: coverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.discard(ctx, avatar.URL)
		s.discard(ctx, coverURL)
		return models.User{}, storeError(err, "user not found", "username or email already taken")
	}

	logging.FromContext(ctx).Info("user registered", "user_id", user.ID, "username", user.Username)

	user.Password = ""
	return user, nil
}

// Login verifies credentials against the username or email and issues a new
// session, invalidating any previously stored refresh token.
func (s *UserService) Login(ctx context.Context, identifier, password string) (models.User, models.SessionTokens, error) {
	ctx, span := logging.StartSpan(ctx, "users.login")
	defer span.End()

	if identifier == "" || password == "" {
		return models.User{}, models.SessionTokens{}, apperrors.Validation("username or email and password are required")
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.User{}, models.SessionTokens{}, apperrors.Unauthorized("invalid credentials")
		}
		return models.User{}, models.SessionTokens{}, apperrors.Dependency("looking up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, models.SessionTokens{}, apperrors.Unauthorized("invalid credentials")
	}

	tokens, err := s.tokens.Issue(user)
	if err != nil {
		return models.User{}, models.SessionTokens{}, apperrors.Dependency("issuing session tokens", err)
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return models.User{}, models.SessionTokens{}, storeError(err, "user not found", "user conflict")
	}

	logging.FromContext(ctx).Info("user logged in", "user_id", user.ID)

	user.Password = ""
	user.RefreshToken = ""
	return user, tokens, nil
}

// Refresh rotates a valid refresh token for a new session pair. A token that
// does not match the stored one is treated as revoked.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error) {
	ctx, span := logging.StartSpan(ctx, "users.refresh")
	defer span.End()

	if refreshToken == "" {
		return models.SessionTokens{}, apperrors.Unauthorized("refresh token is required")
	}

	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return models.SessionTokens{}, apperrors.Unauthorized("refresh token expired")
		}
		return models.SessionTokens{}, apperrors.Unauthorized("refresh token invalid")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.SessionTokens{}, storeError(err, "user not found", "user conflict")
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return models.SessionTokens{}, apperrors.Unauthorized("refresh token revoked")
	}

	tokens, err := s.tokens.Issue(user)
	if err != nil {
		return models.SessionTokens{}, apperrors.Dependency("issuing session tokens", err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return models.SessionTokens{}, storeError(err, "user not found", "user conflict")
	}

	return tokens, nil
}

// Logout clears the stored refresh token so the current session cannot be
// renewed.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	ctx, span := logging.StartSpan(ctx, "users.logout")
	defer span.End()

	if userID == "" {
		return apperrors.Validation("user id is required")
	}
	if err := s.users.SetRefreshToken(ctx, userID, ""); err != nil {
		return storeError(err, "user not found", "user conflict")
	}
	return nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	ctx, span := logging.StartSpan(ctx, "users.change_password")
	defer span.End()

	if newPassword == "" {
		return apperrors.Validation("new password is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return storeError(err, "user not found", "user conflict")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return apperrors.Unauthorized("current password does not match")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Dependency("hashing password", err)
	}

	user.Password = string(hashed)
	user.UpdatedAt = s.NowFunc().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return storeError(err, "user not found", "user conflict")
	}
	return nil
}

// CurrentUser returns the account for the authenticated user.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, storeError(err, "user not found", "user conflict")
	}
	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

// UpdateAccount changes the full name and email of the account.
func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (models.User, error) {
	ctx, span := logging.StartSpan(ctx, "users.update_account")
	defer span.End()

	if fullName == "" || email == "" {
		return models.User{}, apperrors.Validation("fullName and email are required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, storeError(err, "user not found", "user conflict")
	}

	user.FullName = fullName
	user.Email = email
	user.UpdatedAt = s.NowFunc().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, storeError(err, "user not found", "email already taken")
	}

	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

// UpdateAvatar replaces the avatar image. The previous asset is deleted
// best-effort after the swap succeeds.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, localPath string) (models.User, error) {
	return s.updateImage(ctx, userID, localPath, "users.update_avatar",
		func(u *models.User, url string) string {
			old := u.AvatarURL
			u.AvatarURL = url
			return old
		})
}

// UpdateCoverImage replaces the cover image. The previous asset is deleted
// best-effort after the swap succeeds.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID, localPath string) (models.User, error) {
	return s.updateImage(ctx, userID, localPath, "users.update_cover_image",
		func(u *models.User, url string) string {
			old := u.CoverImageURL
			u.CoverImageURL = url
			return old
		})
}

func (s *UserService) updateImage(ctx context.Context, userID, localPath, spanName string, swap func(*models.User, string) string) (models.User, error) {
	ctx, span := logging.StartSpan(ctx, spanName)
	defer span.End()

	if localPath == "" {
		return models.User{}, apperrors.Validation("image file is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, storeError(err, "user not found", "user conflict")
	}

	asset, err := s.uploadImage(ctx, localPath)
	if err != nil {
		return models.User{}, err
	}

	oldURL := swap(&user, asset.URL)
	user.UpdatedAt = s.NowFunc().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		s.discard(ctx, asset.URL)
		return models.User{}, storeError(err, "user not found", "user conflict")
	}

	s.discard(ctx, oldURL)

	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

// ChannelProfile returns the denormalized channel view for a username as seen
// by viewerID. An empty viewerID yields IsSubscribed false.
func (s *UserService) ChannelProfile(ctx context.Context, username, viewerID string) (models.ChannelProfile, error) {
	ctx, span := logging.StartSpan(ctx, "users.channel_profile")
	defer span.End()

	if username == "" {
		return models.ChannelProfile{}, apperrors.Validation("username is required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.ChannelProfile{}, storeError(err, "channel not found", "user conflict")
	}

	subscribers, err := s.subscriptions.CountForChannel(ctx, user.ID)
	if err != nil {
		return models.ChannelProfile{}, apperrors.Dependency("counting subscribers", err)
	}
	subscribedTo, err := s.subscriptions.CountForSubscriber(ctx, user.ID)
	if err != nil {
		return models.ChannelProfile{}, apperrors.Dependency("counting subscriptions", err)
	}
	isSubscribed, err := s.subscriptions.IsSubscribed(ctx, viewerID, user.ID)
	if err != nil {
		return models.ChannelProfile{}, apperrors.Dependency("checking subscription", err)
	}

	return models.ChannelProfile{
		ID:                        user.ID,
		Username:                  user.Username,
		FullName:                  user.FullName,
		Email:                     user.Email,
		AvatarURL:                 user.AvatarURL,
		CoverImageURL:             user.CoverImageURL,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}, nil
}

// WatchHistory returns one page of the user's watch history, newest first.
func (s *UserService) WatchHistory(ctx context.Context, userID string, req pagination.Request) (pagination.Envelope[models.WatchHistoryEntry], error) {
	req, err := req.Normalize(nil)
	if err != nil {
		return pagination.Envelope[models.WatchHistoryEntry]{}, apperrors.Validation("%s", err.Error())
	}

	entries, total, err := s.users.WatchHistory(ctx, userID, req)
	if err != nil {
		return pagination.Envelope[models.WatchHistoryEntry]{}, storeError(err, "user not found", "user conflict")
	}
	return pagination.NewEnvelope(entries, total, req.Page, req.Limit), nil
}

func (s *UserService) uploadImage(ctx context.Context, localPath string) (media.Asset, error) {
	if s.uploader == nil {
		return media.Asset{}, apperrors.Dependency("media uploader unavailable", media.ErrStorageUnavailable)
	}
	asset, err := s.uploader.Upload(ctx, localPath, media.KindImage)
	if err != nil {
		return media.Asset{}, apperrors.Dependency("uploading image", err)
	}
	return asset, nil
}

func (s *UserService) discard(ctx context.Context, url string) {
	if s.cleaner == nil || url == "" {
		return
	}
	if err := s.cleaner.Enqueue(ctx, url); err != nil {
		logging.FromContext(ctx).Warn("scheduling asset cleanup failed", "url", url, "error", err)
	}
}
