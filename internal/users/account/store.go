// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package account

import (
	"context"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/money"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

// # Repository Contracts

// Repository defines the backend contract for user accounts.
//
// Mutations return the backend's success message ("" when it sent none).
type Repository interface {
	/*
		List retrieves one page of users.

		Parameters:
		  - context: context.Context
		  - query: listview.Query (page, rowsPerPage, search)
		  - filter: Filter

		Returns:
		  - []identity.User: The page
		  - *pagination.Meta: nil when the backend sent none
		  - error: Normalized backend error
	*/
	List(context context.Context, query listview.Query, filter Filter) ([]identity.User, *pagination.Meta, error)

	// FindByID retrieves a single user.
	FindByID(context context.Context, id string) (*identity.User, error)

	// Create registers a new user.
	Create(context context.Context, form CreateForm) (*identity.User, string, error)

	// Update edits a user.
	Update(context context.Context, id string, form UpdateForm) (*identity.User, string, error)

	// UpdateStatus moves a user to status.
	UpdateStatus(context context.Context, id string, status Status) (*identity.User, string, error)

	// Delete removes a user.
	Delete(context context.Context, id string) (string, error)

	// UpdateCurrency changes the display currency of the signed-in user.
	UpdateCurrency(context context.Context, currency money.Currency) (*identity.User, string, error)
}
