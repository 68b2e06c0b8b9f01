// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package upload

import (
	"context"
	"io"
)

// Repository stores images on the backend.
type Repository interface {
	// Image uploads one file and returns the relative path the backend assigned.
	Image(ctx context.Context, filename string, content io.Reader) (string, error)
}
