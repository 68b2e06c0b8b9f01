// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// # Notifications

const (
	msgLoginSuccess        = "Login successful"
	msgLoginFailed         = "Login failed"
	msgFetchMeFailed       = "Failed to fetch user data"
	msgResetCodeSent       = "A reset code has been sent to your email"
	msgResetCodeFailed     = "Failed to send reset code"
	msgPasswordReset       = "Password reset successfully"
	msgPasswordResetFailed = "Failed to reset password"
	msgLoggedOut           = "Logged out"
)

var (
	errMissingUser = errors.New("auth: response has no user")
	errNoSession   = errors.New("no session bound to context")
)

// # Service Layer

// Service orchestrates sign-in, sign-out and password recovery.
//
// Every failure is reported as an error notification and returned to the
// caller; successful mutations are reported as success notifications.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
Login authenticates against the backend and persists the result in the
session bound to context.

Parameters:
  - context: context.Context (must carry a session)
  - form: LoginForm

Returns:
  - *identity.User: The signed-in principal
  - error: Validation, backend or storage failures
*/
func (service *Service) Login(context context.Context, form LoginForm) (*identity.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	store, err := sessionOf(context)
	if err != nil {
		return nil, err
	}

	notifier := ctxutil.GetNotifier(context)

	result, message, err := service.repo.Login(context, form)
	if err != nil {
		return nil, notify.Failure(notifier, err, msgLoginFailed)
	}

	if err := store.Login(context, result.User, result.AccessToken, result.RefreshToken); err != nil {
		return nil, notify.Failure(notifier, apperr.Internal(err), msgLoginFailed)
	}

	service.logger.InfoContext(context, "user_logged_in", slog.String("user_id", result.User.ID))
	notify.SuccessOr(notifier, message, msgLoginSuccess)

	return &result.User, nil
}

/*
Logout signs the principal out locally. The backend is not contacted.
*/
func (service *Service) Logout(context context.Context) error {
	store, err := sessionOf(context)
	if err != nil {
		return err
	}

	principal := store.Principal()
	if err := store.Logout(context); err != nil {
		return notify.Failure(ctxutil.GetNotifier(context), apperr.Internal(err), "Failed to log out")
	}

	if principal != nil {
		service.logger.InfoContext(context, "user_logged_out", slog.String("user_id", principal.ID))
	}
	notify.Info(ctxutil.GetNotifier(context), msgLoggedOut)
	return nil
}

/*
Me fetches the current principal and refreshes the session copy.

Returns:
  - *identity.User: The up-to-date principal
  - error: Backend failures
*/
func (service *Service) Me(context context.Context) (*identity.User, error) {
	user, err := service.repo.Me(context)
	if err != nil {
		return nil, notify.Failure(ctxutil.GetNotifier(context), err, msgFetchMeFailed)
	}

	if store := ctxutil.GetSession(context); store != nil && store.State() == session.Authenticated {
		if err := store.UpdateUser(context, *user); err != nil {
			service.logger.WarnContext(context, "session_principal_refresh_failed", slog.Any("error", err))
		}
	}

	return user, nil
}

// ForgotPassword requests a one-time reset code for form.Email.
func (service *Service) ForgotPassword(context context.Context, form ForgotPasswordForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	notifier := ctxutil.GetNotifier(context)

	message, err := service.repo.ForgotPassword(context, form)
	if err != nil {
		return notify.Failure(notifier, err, msgResetCodeFailed)
	}

	notify.SuccessOr(notifier, message, msgResetCodeSent)
	return nil
}

// ResetPassword sets a new password using the emailed code.
func (service *Service) ResetPassword(context context.Context, form ResetPasswordForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	notifier := ctxutil.GetNotifier(context)

	message, err := service.repo.ResetPassword(context, form)
	if err != nil {
		return notify.Failure(notifier, err, msgPasswordResetFailed)
	}

	notify.SuccessOr(notifier, message, msgPasswordReset)
	return nil
}

// # Helpers

func sessionOf(context context.Context) (*session.Store, error) {
	store := ctxutil.GetSession(context)
	if store == nil {
		return nil, apperr.Internal(fmt.Errorf("auth: %w", errNoSession))
	}
	return store, nil
}
