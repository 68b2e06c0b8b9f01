// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package account manages the accounts a staff member administers and the staff
member's own preferences.

# Architecture

  - Entities: [identity.User] (shared with the session), forms and filters.
  - Backend: GET/POST/PATCH/DELETE /users, PATCH /users/currency.
  - Session: a currency change replaces the principal held by the session.
*/
package account

import (
	"net/url"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/validate"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// Status is the closed set of account states accepted by UpdateStatus.
type Status = identity.Status

// # Form Fields

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldRole            = "role"
	FieldStatus          = "status"
	FieldCurrency        = "currency"
	FieldMaxManagedUsers = "maxManagedUsers"

	passwordMinLen = 6
)

// # Filters

// Filter narrows the users list. Empty fields are not sent.
type Filter struct {
	Sort   string
	Status Status
	Role   sec.UserRole
}

// ParseFilter reads the filter from a dashboard query string.
func ParseFilter(values url.Values) Filter {
	return Filter{
		Sort:   values.Get("sort"),
		Status: Status(values.Get(FieldStatus)),
		Role:   sec.UserRole(values.Get(FieldRole)),
	}
}

// Apply adds the non-empty filter fields to values.
func (filter Filter) Apply(values url.Values) {
	if filter.Sort != "" {
		values.Set("sort", filter.Sort)
	}
	if filter.Status != "" {
		values.Set(FieldStatus, string(filter.Status))
	}
	if filter.Role != "" {
		values.Set(FieldRole, string(filter.Role))
	}
}

// # Forms

// CreateForm is the new-user form.
type CreateForm struct {
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Password        string       `json:"password,omitempty"`
	ConfirmPassword string       `json:"confirmPassword,omitempty"`
	Role            sec.UserRole `json:"role,omitempty"`
	MaxManagedUsers *int         `json:"maxManagedUsers,omitempty"`
	CanSeeAllOrders *bool        `json:"canSeeAllOrders,omitempty"`
}

// Validate requires a name and a valid email. The password is optional but,
// when given, must be at least 6 characters and confirmed.
func (form CreateForm) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldName, form.Name)
	validator.Email(FieldEmail, form.Email)
	validatePassword(validator, form.Password, form.ConfirmPassword)

	if form.Role != "" {
		validator.Custom(FieldRole, !form.Role.Valid(), "Unknown role")
	}
	if form.MaxManagedUsers != nil {
		validator.Custom(FieldMaxManagedUsers, *form.MaxManagedUsers < 0, "Must not be negative")
	}

	return validator.Err()
}

// UpdateForm edits an existing user. Nil fields are left untouched.
type UpdateForm struct {
	Name            *string `json:"name,omitempty"`
	Password        string  `json:"password,omitempty"`
	ConfirmPassword string  `json:"confirmPassword,omitempty"`
	CanSeeAllOrders *bool   `json:"canSeeAllOrders,omitempty"`
	MaxManagedUsers *int    `json:"maxManagedUsers,omitempty"`
}

// Validate applies the create rules to the fields present.
func (form UpdateForm) Validate() error {
	validator := &validate.Validator{}
	if form.Name != nil {
		validator.Required(FieldName, *form.Name)
	}
	validatePassword(validator, form.Password, form.ConfirmPassword)

	if form.MaxManagedUsers != nil {
		validator.Custom(FieldMaxManagedUsers, *form.MaxManagedUsers < 0, "Must not be negative")
	}

	return validator.Err()
}

// Empty reports whether the form changes nothing.
func (form UpdateForm) Empty() bool {
	return form.Name == nil && form.Password == "" && form.CanSeeAllOrders == nil && form.MaxManagedUsers == nil
}

// validatePassword skips blank passwords; the confirmation must match otherwise.
func validatePassword(validator *validate.Validator, password, confirm string) {
	if password == "" {
		return
	}
	validator.MinLen(FieldPassword, password, passwordMinLen)
	validator.Match(FieldConfirmPassword, confirm, password, "Passwords do not match")
}
