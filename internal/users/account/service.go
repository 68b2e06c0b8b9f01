// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/money"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pointer"
)

// # Notifications

const (
	msgListFailed        = "Failed to fetch users"
	msgGetFailed         = "Failed to fetch user"
	msgCreated           = "User created successfully"
	msgCreateFailed      = "Failed to create user"
	msgUpdated           = "User updated successfully"
	msgUpdateFailed      = "Failed to update user"
	msgPermissionUpdated = "Permission updated successfully"
	msgPermissionFailed  = "Failed to update permission"
	msgStatusUpdated     = "User status updated successfully"
	msgStatusFailed      = "Failed to update user status"
	msgDeleted           = "User deleted successfully"
	msgDeleteFailed      = "Failed to delete user"
	msgCurrencyUpdated   = "Currency updated successfully"
	msgCurrencyFailed    = "Failed to update currency"
)

var errUserMissing = apperr.Client(errors.New("account: response has no user"))

// # Service Layer

// Service orchestrates user management for the dashboard.
//
// Every failure is reported as an error notification and returned to the
// caller; successful mutations are reported as success notifications.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
List retrieves one page of users for the list view.

Parameters:
  - context: context.Context
  - query: listview.Query
  - filter: Filter

Returns:
  - listview.Result[identity.User]: Items and optional metadata
  - error: Backend failures
*/
func (service *Service) List(context context.Context, query listview.Query, filter Filter) (listview.Result[identity.User], error) {
	users, meta, err := service.repo.List(context, query, filter)
	if err != nil {
		return listview.Result[identity.User]{}, notify.Failure(ctxutil.GetNotifier(context), err, msgListFailed)
	}
	return listview.Result[identity.User]{Items: users, Meta: meta}, nil
}

// Fetcher adapts List to a [listview.FetchFunc] for filter.
func (service *Service) Fetcher(filter Filter) listview.FetchFunc[identity.User] {
	return func(context context.Context, query listview.Query) (listview.Result[identity.User], error) {
		return service.List(context, query, filter)
	}
}

// Get retrieves a single user.
func (service *Service) Get(context context.Context, id string) (*identity.User, error) {
	user, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, notify.Failure(ctxutil.GetNotifier(context), err, msgGetFailed)
	}
	return user, nil
}

/*
Create registers a new user after validating form.

Returns:
  - *identity.User: The created user, nil when the backend returned none
  - error: Validation or backend failures
*/
func (service *Service) Create(context context.Context, form CreateForm) (*identity.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	notifier := ctxutil.GetNotifier(context)

	user, message, err := service.repo.Create(context, form)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgCreateFailed)
	}

	service.logger.InfoContext(context, "user_created", slog.String("email", form.Email))
	notify.SuccessOr(notifier, message, msgCreated)
	return user, nil
}

// Update edits a user. An empty form is a no-op.
func (service *Service) Update(context context.Context, id string, form UpdateForm) (*identity.User, error) {
	return service.update(context, id, form, msgUpdated, msgUpdateFailed)
}

// SetOrderVisibility grants or revokes a user's access to every order.
func (service *Service) SetOrderVisibility(context context.Context, id string, canSeeAllOrders bool) (*identity.User, error) {
	return service.update(context, id, UpdateForm{CanSeeAllOrders: pointer.To(canSeeAllOrders)}, msgPermissionUpdated, msgPermissionFailed)
}

func (service *Service) update(context context.Context, id string, form UpdateForm, success, failure string) (*identity.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if form.Empty() {
		return nil, nil
	}

	notifier := ctxutil.GetNotifier(context)

	user, message, err := service.repo.Update(context, id, form)
	if err != nil {
		return nil, notify.Failure(notifier, err, failure)
	}

	service.logger.InfoContext(context, "user_updated", slog.String("user_id", id))
	notify.SuccessOr(notifier, message, success)
	return user, nil
}

/*
UpdateStatus moves a user to status.

Description: Values outside {active, blocked, deleted} are rejected as client
errors before any request is sent.
*/
func (service *Service) UpdateStatus(context context.Context, id string, status Status) (*identity.User, error) {
	notifier := ctxutil.GetNotifier(context)

	if !status.Valid() {
		err := apperr.Rejected("", fmt.Errorf("account: unknown status %q", status))
		return nil, notify.Failure(notifier, err, msgStatusFailed)
	}

	user, message, err := service.repo.UpdateStatus(context, id, status)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgStatusFailed)
	}

	service.logger.InfoContext(context, "user_status_updated",
		slog.String("user_id", id),
		slog.String("status", string(status)),
	)
	notify.SuccessOr(notifier, message, msgStatusUpdated)
	return user, nil
}

// Delete removes a user.
func (service *Service) Delete(context context.Context, id string) error {
	notifier := ctxutil.GetNotifier(context)

	message, err := service.repo.Delete(context, id)
	if err != nil {
		return notify.Failure(notifier, err, msgDeleteFailed)
	}

	service.logger.InfoContext(context, "user_deleted", slog.String("user_id", id))
	notify.SuccessOr(notifier, message, msgDeleted)
	return nil
}

/*
UpdateCurrency changes the signed-in user's display currency.

Description: On success the session principal takes the new currency, so
every price rendered afterwards uses it. A partial or foreign user in the
reply never overwrites the principal's identity.

Returns:
  - *identity.User: The updated principal
  - error: Unknown currency, backend or storage failures
*/
func (service *Service) UpdateCurrency(context context.Context, currency money.Currency) (*identity.User, error) {
	notifier := ctxutil.GetNotifier(context)

	if !currency.Valid() {
		err := apperr.Rejected("", fmt.Errorf("account: unknown currency %q", currency))
		return nil, notify.Failure(notifier, err, msgCurrencyFailed)
	}

	returned, _, err := service.repo.UpdateCurrency(context, currency)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgCurrencyFailed)
	}

	var principal *identity.User
	store := ctxutil.GetSession(context)
	if store != nil {
		principal = store.Principal()
	}

	user := mergeCurrency(principal, returned, currency)
	if store != nil && user != nil {
		if err := store.UpdateUser(context, *user); err != nil {
			return nil, notify.Failure(notifier, apperr.Internal(err), msgCurrencyFailed)
		}
	}

	notify.Success(notifier, msgCurrencyUpdated)
	return user, nil
}

// mergeCurrency overlays currency on the principal. The backend's user only
// replaces the principal when it describes the same account.
func mergeCurrency(principal, returned *identity.User, currency money.Currency) *identity.User {
	user := principal
	if returned != nil && (principal == nil || returned.ID == principal.ID) {
		user = returned
	}
	if user == nil {
		return nil
	}
	user.Currency = currency
	return user
}
