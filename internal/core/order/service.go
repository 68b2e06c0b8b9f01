// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package order

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
	msgListFailed    = "Failed to fetch orders"
	msgGetFailed     = "Failed to fetch order"
	msgStatusUpdated = "Order status updated successfully"
	msgStatusFailed  = "Failed to update order status"
	msgUpdated       = "Order updated successfully"
	msgUpdateFailed  = "Failed to update order"
)

// # Service Layer

// Service orchestrates order management for the dashboard.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new order [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List retrieves one page of orders for the list view.
func (service *Service) List(context context.Context, query listview.Query, filter Filter) (listview.Result[Order], error) {
	orders, meta, err := service.repo.List(context, query, filter)
	if err != nil {
		return listview.Result[Order]{}, notify.Failure(ctxutil.GetNotifier(context), err, msgListFailed)
	}
	return listview.Result[Order]{Items: orders, Meta: meta}, nil
}

// Fetcher adapts List to a [listview.FetchFunc] for filter.
func (service *Service) Fetcher(filter Filter) listview.FetchFunc[Order] {
	return func(context context.Context, query listview.Query) (listview.Result[Order], error) {
		return service.List(context, query, filter)
	}
}

/*
Get retrieves a single order.

Description: A server total that disagrees with the order lines is logged;
the server value stays the one displayed.
*/
func (service *Service) Get(context context.Context, id string) (*Order, error) {
	order, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notify.Failure(ctxutil.GetNotifier(context), err, msgGetFailed)
	}

	if !order.TotalConsistent() {
		service.logger.WarnContext(context, "order_total_mismatch",
			slog.String("order_id", order.ID),
			slog.String("total", order.Total.String()),
			slog.String("expected", order.ExpectedTotal().String()),
		)
	}
	return order, nil
}

// UpdateStatus moves an order to status. Unknown statuses fail before any request.
func (service *Service) UpdateStatus(context context.Context, id string, status Status) (*Order, error) {
	notifier := ctxutil.GetNotifier(context)

	if !status.Valid() {
		err := apperr.Rejected("", fmt.Errorf("order: unknown status %q", status))
		return nil, notify.Failure(notifier, err, msgStatusFailed)
	}

	order, message, err := service.repo.UpdateStatus(context, id, status)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgStatusFailed)
	}

	service.logger.InfoContext(context, "order_status_updated",
		slog.String("order_id", id),
		slog.String("status", string(status)),
	)
	notify.SuccessOr(notifier, message, msgStatusUpdated)
	return order, nil
}

/*
Update edits the lines, contact details and money fields of an order.

Returns:
  - *Order: The updated order, nil when the backend returned none
  - error: Validation or backend failures
*/
func (service *Service) Update(context context.Context, id string, form UpdateForm) (*Order, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	notifier := ctxutil.GetNotifier(context)

	order, message, err := service.repo.Update(context, id, form)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgUpdateFailed)
	}

	service.logger.InfoContext(context, "order_updated",
		slog.String("order_id", id),
		slog.String("total", form.Total().String()),
	)
	notify.SuccessOr(notifier, message, msgUpdated)
	return order, nil
}
