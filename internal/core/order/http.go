// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package order

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/money"
	requestutil "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/request"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/slice"
)

// # Handler Implementation

// Handler implements the order pages.
type Handler struct {
	service *Service
}

// NewHandler constructs a new order [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the /dashboard/orders pages.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listOrders)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getOrder)
		subRouter.Patch("/", handler.updateOrder)
		subRouter.Patch("/status", handler.updateStatus)
		subRouter.Post("/preview", handler.previewTotal)
	})

	return router
}

// # View Models

// orderView adds formatted money fields for the signed-in user's currency.
type orderView struct {
	Order
	TotalLabel      string `json:"totalLabel"`
	SubtotalLabel   string `json:"subtotalLabel"`
	TotalConsistent bool   `json:"totalConsistent"`
}

func viewOf(order Order, currency money.Currency) orderView {
	return orderView{
		Order:           order,
		TotalLabel:      money.Format(order.Total, currency),
		SubtotalLabel:   money.Format(Subtotal(order.Items), currency),
		TotalConsistent: order.TotalConsistent(),
	}
}

// totalsView is the edit page preview.
type totalsView struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
	SubtotalLabel string          `json:"subtotalLabel"`
	TotalLabel    string          `json:"totalLabel"`
}

func (handler *Handler) viewFetcher(filter Filter, currency money.Currency) listview.FetchFunc[orderView] {
	fetch := handler.service.Fetcher(filter)

	return func(ctx context.Context, query listview.Query) (listview.Result[orderView], error) {
		result, err := fetch(ctx, query)
		if err != nil {
			return listview.Result[orderView]{}, err
		}

		items := slice.Map(result.Items, func(order Order) orderView {
			return viewOf(order, currency)
		})
		return listview.Result[orderView]{Items: items, Meta: result.Meta}, nil
	}
}

func displayCurrency(request *http.Request) money.Currency {
	if principal := requestutil.Principal(request); principal != nil {
		return principal.DisplayCurrency()
	}
	return money.USD
}

// # Endpoints

/*
GET /dashboard/orders.

Request:
  - page, rowsPerPage, search: list view query
  - status, user, sort, sortBy, startDate, endDate: filters

Response:
  - 200: []Order with formatted totals
  - 303: Redirect to the canonical query string
*/
func (handler *Handler) listOrders(writer http.ResponseWriter, request *http.Request) {
	filter := ParseFilter(request.URL.Query())
	listview.Serve(writer, request, handler.viewFetcher(filter, displayCurrency(request)))
}

/*
GET /dashboard/orders/{id}.

Description: The detail page. A failed fetch returns to the list.
*/
func (handler *Handler) getOrder(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.service.Get(request.Context(), id)
	if err != nil {
		if apperr.IsSessionExpired(err) {
			respond.Error(writer, request, err)
			return
		}
		respond.Redirect(writer, request, constants.PathOrders)
		return
	}

	respond.OK(writer, request, viewOf(*order, displayCurrency(request)))
}

/*
PATCH /dashboard/orders/{id}.

Request (Body):
  - UpdateForm JSON object

Response:
  - 303: Redirect to the order detail page
*/
func (handler *Handler) updateOrder(writer http.ResponseWriter, request *http.Request) {
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

	respond.Redirect(writer, request, constants.PathOrders+"/"+id)
}

// PATCH /dashboard/orders/{id}/status.
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		Status Status `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.service.UpdateStatus(request.Context(), id, body.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, order)
}

/*
POST /dashboard/orders/{id}/preview.

Description: Computes the totals of an edit form without saving it.
*/
func (handler *Handler) previewTotal(writer http.ResponseWriter, request *http.Request) {
	var form UpdateForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := form.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	currency := displayCurrency(request)
	subtotal := Subtotal(form.Items)
	total := form.Total()

	respond.OK(writer, request, totalsView{
		Subtotal:      subtotal,
		Total:         total,
		SubtotalLabel: money.Format(subtotal, currency),
		TotalLabel:    money.Format(total, currency),
	})
}
