// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package subscription

import "context"

// Repository defines the subscription operations of the backend.
type Repository interface {
	Status(ctx context.Context) (*Status, error)
	Admins(ctx context.Context) ([]Admin, error)
	UpdateExpiry(ctx context.Context, adminID string, expiry Expiry) (string, error)
}
