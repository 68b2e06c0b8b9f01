// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/request"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/validate"
)

// Handler exposes image uploads to the dashboard forms.
type Handler struct {
	service *Service
}

// NewHandler constructs a new upload [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the /dashboard/uploads endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/image", handler.uploadImage)
	return router
}

/*
POST /dashboard/uploads/image.

Request:
  - multipart/form-data with the file in field "image"

Response:
  - 200: {"imageUrl": absolute URL}
  - 400: Missing or unreadable file
*/
func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	if !requestutil.IsMultipart(request) {
		respond.Error(writer, request, validate.RequiredError(FieldImage, "Image is required"))
		return
	}

	filename, content, err := requestutil.FormFile(request, FieldImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	url, err := handler.service.Image(request.Context(), filename, content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, request, map[string]string{"imageUrl": url})
}
