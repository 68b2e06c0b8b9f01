// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package auth

import (
	"context"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// # Repository Contracts

// Repository defines the backend contract for authentication.
//
// Mutations return the backend's success message ("" when it sent none).
type Repository interface {
	/*
		Login exchanges credentials for the principal and its tokens.

		Parameters:
		  - context: context.Context
		  - form: LoginForm

		Returns:
		  - *LoginResult: Principal, access token and optional refresh token
		  - string: Backend message
		  - error: Normalized backend error
	*/
	Login(context context.Context, form LoginForm) (*LoginResult, string, error)

	// Me retrieves the principal the current access token belongs to.
	Me(context context.Context) (*identity.User, error)

	// ForgotPassword asks the backend to email a one-time reset code.
	ForgotPassword(context context.Context, form ForgotPasswordForm) (string, error)

	// ResetPassword sets a new password with the emailed code.
	ResetPassword(context context.Context, form ResetPasswordForm) (string, error)
}
