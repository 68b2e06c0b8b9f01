// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package auth signs staff members in and out of the dashboard.

Credentials are forwarded to the shop backend, which issues the principal and
its tokens; the dashboard only persists them in the browser session. Password
recovery (one-time code by email, then reset) is delegated the same way.
*/
package auth

import (
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/validate"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// # Form Fields

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldOTP             = "otp"
	FieldConfirmPassword = "confirmPassword"

	passwordMinLen = 6
	passwordMaxLen = 20
	otpMinLen      = 4
)

// # Forms

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the email format and the 6 to 20 character password.
func (form LoginForm) Validate() error {
	validator := &validate.Validator{}
	validator.Email(FieldEmail, form.Email)
	validatePassword(validator, FieldPassword, form.Password)
	return validator.Err()
}

// ForgotPasswordForm requests a one-time reset code.
type ForgotPasswordForm struct {
	Email string `json:"email"`
}

// Validate checks the email format.
func (form ForgotPasswordForm) Validate() error {
	validator := &validate.Validator{}
	validator.Email(FieldEmail, form.Email)
	return validator.Err()
}

// ResetPasswordForm sets a new password using the emailed code.
type ResetPasswordForm struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks every field and that both passwords match.
func (form ResetPasswordForm) Validate() error {
	validator := &validate.Validator{}
	validator.Email(FieldEmail, form.Email)
	validator.MinLen(FieldOTP, form.OTP, otpMinLen)
	validatePassword(validator, FieldPassword, form.Password)
	validatePassword(validator, FieldConfirmPassword, form.ConfirmPassword)
	validator.Match(FieldConfirmPassword, form.ConfirmPassword, form.Password, "Passwords do not match")
	return validator.Err()
}

func validatePassword(validator *validate.Validator, field, value string) {
	validator.MinLen(field, value, passwordMinLen).MaxLen(field, value, passwordMaxLen)
}

// # Results

// LoginResult is the backend's answer to a successful sign-in.
type LoginResult struct {
	User         identity.User `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}
