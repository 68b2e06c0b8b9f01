// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package product

import (
	"context"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

// Repository defines the catalog operations of the backend.
//
// Mutations also return the server message for the success notification.
type Repository interface {
	List(ctx context.Context, query listview.Query, filter Filter) ([]Product, *pagination.Meta, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, form Form) (*Product, string, error)
	Update(ctx context.Context, id string, form Form) (*Product, string, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Product, string, error)
	Delete(ctx context.Context, id string) (string, error)
}
