// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/money"
	requestutil "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/request"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the user management pages.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the /dashboard/users pages.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getUser)
		subRouter.Patch("/", handler.updateUser)
		subRouter.Delete("/", handler.deleteUser)
		subRouter.Patch("/status", handler.updateStatus)
		subRouter.Patch("/permissions", handler.updatePermissions)
	})

	return router
}

// SettingsRoutes registers the signed-in user's preferences on router.
func (handler *Handler) SettingsRoutes(router chi.Router) {
	router.Patch("/currency", handler.updateCurrency)
}

// # Request Payloads

type statusRequest struct {
	Status Status `json:"status"`
}

type permissionsRequest struct {
	CanSeeAllOrders bool `json:"canSeeAllOrders"`
}

type currencyRequest struct {
	Currency string `json:"currency"`
}

// # Endpoints

/*
GET /dashboard/users.

Request:
  - page, rowsPerPage, search: list view query
  - sort, status, role: filters

Response:
  - 200: []User with meta (null when unknown)
  - 303: Redirect to the canonical query string
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	filter := ParseFilter(request.URL.Query())
	listview.Serve(writer, request, handler.service.Fetcher(filter))
}

/*
POST /dashboard/users.

Request (Body):
  - CreateForm JSON object

Response:
  - 303: Redirect to /dashboard/users
  - 400: Validation failed
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var form CreateForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Create(request.Context(), form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, constants.PathUsers)
}

/*
GET /dashboard/users/{id}.

Description: The edit page. A failed fetch returns to the list.
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Get(request.Context(), id)
	if err != nil {
		if apperr.IsSessionExpired(err) {
			respond.Error(writer, request, err)
			return
		}
		respond.Redirect(writer, request, constants.PathUsers)
		return
	}

	respond.OK(writer, request, user)
}

/*
PATCH /dashboard/users/{id}.

Request (Body):
  - UpdateForm JSON object (password only when changing it)

Response:
  - 303: Redirect to /dashboard/users
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form UpdateForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Update(request.Context(), id, form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, constants.PathUsers)
}

// PATCH /dashboard/users/{id}/status.
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body statusRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateStatus(request.Context(), id, body.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, user)
}

// PATCH /dashboard/users/{id}/permissions.
func (handler *Handler) updatePermissions(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body permissionsRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.SetOrderVisibility(request.Context(), id, body.CanSeeAllOrders)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, user)
}

// DELETE /dashboard/users/{id}.
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, nil)
}

/*
PATCH /dashboard/settings/currency.

Request (Body):
  - currency: USD | JOD | SP (case-insensitive)

Response:
  - 200: User (the refreshed principal)
*/
func (handler *Handler) updateCurrency(writer http.ResponseWriter, request *http.Request) {
	var body currencyRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	currency, err := money.ParseCurrency(body.Currency)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldCurrency,
			Message: err.Error(),
		}))
		return
	}

	user, err := handler.service.UpdateCurrency(request.Context(), currency)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, user)
}
