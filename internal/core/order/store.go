// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package order

import (
	"context"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

// Repository defines the order operations of the backend.
type Repository interface {
	List(ctx context.Context, query listview.Query, filter Filter) ([]Order, *pagination.Meta, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, string, error)
	Update(ctx context.Context, id string, form UpdateForm) (*Order, string, error)
}
