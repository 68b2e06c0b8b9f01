// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
)

// # Notifications

const (
	msgListFailed    = "Failed to fetch products"
	msgGetFailed     = "Failed to fetch product"
	msgCreated       = "Product created successfully"
	msgCreateFailed  = "Failed to create product"
	msgUpdated       = "Product updated successfully"
	msgUpdateFailed  = "Failed to update product"
	msgStatusUpdated = "Product status updated successfully"
	msgStatusFailed  = "Failed to update product status"
	msgDeleted       = "Product deleted successfully"
	msgDeleteFailed  = "Failed to delete product"
)

// # Service Layer

// Service orchestrates catalog management for the dashboard.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new product [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List retrieves one page of products for the list view.
func (service *Service) List(context context.Context, query listview.Query, filter Filter) (listview.Result[Product], error) {
	products, meta, err := service.repo.List(context, query, filter)
	if err != nil {
		return listview.Result[Product]{}, notify.Failure(ctxutil.GetNotifier(context), err, msgListFailed)
	}
	return listview.Result[Product]{Items: products, Meta: meta}, nil
}

// Fetcher adapts List to a [listview.FetchFunc] for filter.
func (service *Service) Fetcher(filter Filter) listview.FetchFunc[Product] {
	return func(context context.Context, query listview.Query) (listview.Result[Product], error) {
		return service.List(context, query, filter)
	}
}

// Get retrieves a single product, whatever its status.
func (service *Service) Get(context context.Context, id string) (*Product, error) {
	product, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notify.Failure(ctxutil.GetNotifier(context), err, msgGetFailed)
	}
	return product, nil
}

/*
Create adds a product to the catalog.

Parameters:
  - context: context.Context
  - form: Form (JSON body, or multipart when an image file is attached)

Returns:
  - *Product: The created product, nil when the backend returned none
  - error: Validation or backend failures
*/
func (service *Service) Create(context context.Context, form Form) (*Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	notifier := ctxutil.GetNotifier(context)

	product, message, err := service.repo.Create(context, form)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgCreateFailed)
	}

	service.logger.InfoContext(context, "product_created",
		slog.String("name", form.Name),
		slog.Bool("multipart", form.HasFile()),
	)
	notify.SuccessOr(notifier, message, msgCreated)
	return product, nil
}

// Update edits a product with the same rules as Create.
func (service *Service) Update(context context.Context, id string, form Form) (*Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	notifier := ctxutil.GetNotifier(context)

	product, message, err := service.repo.Update(context, id, form)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgUpdateFailed)
	}

	service.logger.InfoContext(context, "product_updated", slog.String("product_id", id))
	notify.SuccessOr(notifier, message, msgUpdated)
	return product, nil
}

/*
UpdateStatus moves a product to status.

Description: A deleted product leaves the default list but stays retrievable
through Get. Unknown statuses fail before any request is sent.
*/
func (service *Service) UpdateStatus(context context.Context, id string, status Status) (*Product, error) {
	notifier := ctxutil.GetNotifier(context)

	if !status.Valid() {
		err := apperr.Rejected("", fmt.Errorf("product: unknown status %q", status))
		return nil, notify.Failure(notifier, err, msgStatusFailed)
	}

	product, message, err := service.repo.UpdateStatus(context, id, status)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgStatusFailed)
	}

	service.logger.InfoContext(context, "product_status_updated",
		slog.String("product_id", id),
		slog.String("status", string(status)),
	)
	notify.SuccessOr(notifier, message, msgStatusUpdated)
	return product, nil
}

// Delete removes a product.
func (service *Service) Delete(context context.Context, id string) error {
	notifier := ctxutil.GetNotifier(context)

	message, err := service.repo.Delete(context, id)
	if err != nil {
		return notify.Failure(notifier, err, msgDeleteFailed)
	}

	service.logger.InfoContext(context, "product_deleted", slog.String("product_id", id))
	notify.SuccessOr(notifier, message, msgDeleted)
	return nil
}
