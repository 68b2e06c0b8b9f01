// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package upload

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/validate"
)

const msgUploadFailed = "Failed to upload image"

// Service uploads images and returns absolute URLs.
type Service struct {
	repo       Repository
	backendURL string
	logger     *slog.Logger
}

// NewService constructs a new upload [Service]. backendURL is the API base the
// returned paths are resolved against.
func NewService(repo Repository, backendURL string, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		backendURL: backendURL,
		logger:     logger,
	}
}

/*
Image uploads content under filename.

Returns:
  - string: The absolute URL of the stored image
  - error: An empty file, or backend failures (already notified)
*/
func (service *Service) Image(ctx context.Context, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", validate.RequiredError(FieldImage, "Image is required")
	}

	path, err := service.repo.Image(ctx, filename, bytes.NewReader(content))
	if err != nil {
		return "", notify.Failure(ctxutil.GetNotifier(ctx), err, msgUploadFailed)
	}

	service.logger.InfoContext(ctx, "image_uploaded",
		slog.String("filename", filename),
		slog.Int("bytes", len(content)),
	)
	return service.ResolveURL(path), nil
}

// ResolveURL resolves a stored image path against the backend's asset base.
func (service *Service) ResolveURL(path string) string {
	return ResolveImageURL(service.backendURL, path)
}
