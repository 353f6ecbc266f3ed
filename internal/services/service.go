// Package services implements the vidtube business operations on top of the
// repository, auth and media layers. Services validate input, enforce
// ownership, and translate storage sentinels into domain error codes.
package services

import (
	"context"
	"errors"

	apperrors "github.com/vidtube/backend/internal/errors"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/repositories"
)

// MediaUploader ingests a local media file and returns the stored asset.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string, kind media.Kind) (media.Asset, error)
}

// AssetCleaner schedules best-effort deletion of a stored asset by URL.
type AssetCleaner interface {
	Enqueue(ctx context.Context, url string) error
}

// ToggleStatus reports which side of a relationship toggle took effect.
type ToggleStatus string

const (
	ToggleCreated ToggleStatus = "created"
	ToggleDeleted ToggleStatus = "deleted"
)

func toggleStatus(result repositories.ToggleResult) ToggleStatus {
	if result.Created {
		return ToggleCreated
	}
	return ToggleDeleted
}

// storeError maps repository sentinels onto domain error codes. notFound and
// conflict name the entity for the respective messages.
func storeError(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return &apperrors.Error{Code: apperrors.CodeNotFound, Message: notFound}
	case errors.Is(err, repositories.ErrConflict):
		return &apperrors.Error{Code: apperrors.CodeConflict, Message: conflict}
	default:
		return apperrors.Dependency("store operation failed", err)
	}
}
