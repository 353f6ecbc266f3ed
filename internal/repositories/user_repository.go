package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/pagination"
)

// UserRepository defines the data access contract for users.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error)
	Update(ctx context.Context, user models.User) error
	SetRefreshToken(ctx context.Context, userID, refreshToken string) error
	WatchHistory(ctx context.Context, userID string, req pagination.Request) ([]models.WatchHistoryEntry, int64, error)
}
