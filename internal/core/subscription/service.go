// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package subscription

import (
	"context"
	"log/slog"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
)

// # Notifications

const (
	msgStatusFailed = "Failed to fetch subscription status"
	msgAdminsFailed = "Failed to fetch admin subscriptions"
	msgUpdated      = "Subscription updated successfully"
	msgUpdateFailed = "Failed to update subscription"
)

// Service reads and edits admin subscriptions.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new subscription [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Status retrieves the signed-in principal's subscription.
func (service *Service) Status(context context.Context) (*Status, error) {
	status, err := service.repo.Status(context)
	if err != nil {
		return nil, notify.Failure(ctxutil.GetNotifier(context), err, msgStatusFailed)
	}
	return status, nil
}

// Admins lists every admin with its subscription. Super admins only.
func (service *Service) Admins(context context.Context) ([]Admin, error) {
	admins, err := service.repo.Admins(context)
	if err != nil {
		return nil, notify.Failure(ctxutil.GetNotifier(context), err, msgAdminsFailed)
	}
	return admins, nil
}

/*
UpdateExpiry sets or removes an admin's expiry date.

Parameters:
  - context: context.Context
  - adminID: string
  - expiry: Expiry (NoExpiry removes the date)

Returns:
  - error: Backend failures (already notified)
*/
func (service *Service) UpdateExpiry(context context.Context, adminID string, expiry Expiry) error {
	notifier := ctxutil.GetNotifier(context)

	message, err := service.repo.UpdateExpiry(context, adminID, expiry)
	if err != nil {
		return notify.Failure(notifier, err, msgUpdateFailed)
	}

	service.logger.InfoContext(context, "subscription_expiry_updated",
		slog.String("admin_id", adminID),
		slog.String("expiry", expiry.String()),
	)
	notify.SuccessOr(notifier, message, msgUpdated)
	return nil
}
