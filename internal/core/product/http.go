// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package product

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/upload"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/money"
	requestutil "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/request"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/slice"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/query"
)

// # Handler Implementation

// Handler implements the catalog pages.
type Handler struct {
	service    *Service
	backendURL string
}

// NewHandler constructs a new product [Handler]. backendURL resolves the
// image paths stored by the backend.
func NewHandler(service *Service, backendURL string) *Handler {
	return &Handler{service: service, backendURL: backendURL}
}

// Routes returns a [chi.Router] with the /dashboard/products pages.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listProducts)
	router.Post("/", handler.createProduct)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getProduct)
		subRouter.Patch("/", handler.updateProduct)
		subRouter.Delete("/", handler.deleteProduct)
		subRouter.Patch("/status", handler.updateStatus)
	})

	return router
}

// # View Models

// productView adds display fields for the signed-in user's currency.
type productView struct {
	Product
	ImageURL   string `json:"imageUrl"`
	PriceLabel string `json:"priceLabel"`
}

func (handler *Handler) view(product Product, currency money.Currency) productView {
	return productView{
		Product:    product,
		ImageURL:   upload.ResolveImageURL(handler.backendURL, product.Image),
		PriceLabel: money.Format(product.Price, currency),
	}
}

func (handler *Handler) viewFetcher(filter Filter, currency money.Currency) listview.FetchFunc[productView] {
	fetch := handler.service.Fetcher(filter)

	return func(ctx context.Context, query listview.Query) (listview.Result[productView], error) {
		result, err := fetch(ctx, query)
		if err != nil {
			return listview.Result[productView]{}, err
		}

		items := slice.Map(result.Items, func(product Product) productView {
			return handler.view(product, currency)
		})
		return listview.Result[productView]{Items: items, Meta: result.Meta}, nil
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
GET /dashboard/products.

Request:
  - page, rowsPerPage, search: list view query
  - category, status, sort, sortBy: filters

Response:
  - 200: []Product with imageUrl and priceLabel
  - 303: Redirect to the canonical query string
*/
func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	filter := ParseFilter(request.URL.Query())
	listview.Serve(writer, request, handler.viewFetcher(filter, displayCurrency(request)))
}

/*
POST /dashboard/products.

Request (Body):
  - Form as JSON, or multipart/form-data with the file in field "image"

Response:
  - 303: Redirect to /dashboard/products
  - 400: Validation failed
*/
func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	form, err := decodeForm(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Create(request.Context(), form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, constants.PathProducts)
}

/*
GET /dashboard/products/{id}.

Description: The edit page. A failed fetch returns to the list.
*/
func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Get(request.Context(), id)
	if err != nil {
		if apperr.IsSessionExpired(err) {
			respond.Error(writer, request, err)
			return
		}
		respond.Redirect(writer, request, constants.PathProducts)
		return
	}

	respond.OK(writer, request, handler.view(*product, displayCurrency(request)))
}

// PATCH /dashboard/products/{id}.
func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, err := decodeForm(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Update(request.Context(), id, form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, constants.PathProducts)
}

// PATCH /dashboard/products/{id}/status.
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

	product, err := handler.service.UpdateStatus(request.Context(), id, body.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, product)
}

// DELETE /dashboard/products/{id}.
func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
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

// # Form Decoding

// decodeForm reads a product form from a JSON or multipart request.
func decodeForm(request *http.Request) (Form, error) {
	var form Form

	if !requestutil.IsMultipart(request) {
		err := requestutil.DecodeJSON(request, &form)
		return form, err
	}

	filename, content, err := requestutil.FormFile(request, FieldImage)
	if err != nil {
		return form, err
	}
	if len(content) > 0 {
		form.File = &ImageFile{Name: filename, Content: content}
	}

	form.Name = request.FormValue(FieldName)
	form.Image = request.FormValue(FieldImage)
	form.Category = request.FormValue(FieldCategory)
	form.Price = request.FormValue(FieldPrice)
	form.Description = request.FormValue(FieldDescription)

	for field, target := range map[string]*[]string{
		FieldColors:         &form.Colors,
		FieldSizes:          &form.Sizes,
		FieldVisibleToUsers: &form.VisibleToUsers,
	} {
		values, err := formList(request, field)
		if err != nil {
			return form, err
		}
		*target = values
	}

	return form, nil
}

// formList accepts repeated fields, one JSON-encoded array or one
// comma-separated value. Blank entries are dropped.
func formList(request *http.Request, field string) ([]string, error) {
	values := request.MultipartForm.Value[field]
	if len(values) != 1 {
		return slice.Filter(values, func(value string) bool { return strings.TrimSpace(value) != "" }), nil
	}
	if !strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		return query.StringSlice(values[0]), nil
	}

	var decoded []string
	if err := json.Unmarshal([]byte(values[0]), &decoded); err != nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   field,
			Message: "Must be a JSON array of strings",
		})
	}
	return decoded, nil
}
