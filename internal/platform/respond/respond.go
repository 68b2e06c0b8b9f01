// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Package respond provides HTTP response helpers used by all dashboard handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for dashboard pages.
// Every page renders a JSON view-model inside the same envelope, together with
// the notifications raised while producing it. Navigation is a 303 redirect;
// pending notifications survive it through the session flash slot.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for successful page responses.
type SuccessEnvelope struct {
	Data          any                   `json:"data"`
	Notifications []notify.Notification `json:"notifications"`
}

// ListEnvelope is the JSON envelope for list views.
//
// Meta is null when the backend did not return pagination metadata; the view
// then shows no page controls and Pages is omitted.
type ListEnvelope struct {
	Data          any                   `json:"data"`
	Meta          *pagination.Meta      `json:"meta"`
	Pages         *pagination.Controls  `json:"pages,omitempty"`
	Query         any                   `json:"query,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error         string                `json:"error"`
	Code          string                `json:"code"`
	Details       []apperr.FieldError   `json:"details,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK page with data and the pending notifications.
func OK(writer http.ResponseWriter, request *http.Request, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data, Notifications: drain(request)})
}

// Created writes a 201 Created response.
func Created(writer http.ResponseWriter, request *http.Request, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data, Notifications: drain(request)})
}

// List writes a list view with its metadata and the query it was rendered for.
func List(writer http.ResponseWriter, request *http.Request, data any, meta *pagination.Meta, query any) {
	var pages *pagination.Controls
	if meta != nil {
		controls := meta.Controls()
		pages = &controls
	}

	JSON(writer, http.StatusOK, ListEnvelope{
		Data:          data,
		Meta:          meta,
		Pages:         pages,
		Query:         query,
		Notifications: drain(request),
	})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

/*
Redirect navigates the browser to target with 303 See Other.

Pending notifications are moved to the flash slot first so they are shown on
the destination page.
*/
func Redirect(writer http.ResponseWriter, request *http.Request, target string) {
	if sink := ctxutil.GetSink(request.Context()); sink != nil {
		if err := sink.Persist(request.Context()); err != nil {
			ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "flash_persist_failed",
				slog.String("error", err.Error()),
			)
		}
	}
	http.Redirect(writer, request, target, http.StatusSeeOther)
}

/*
Error converts any Go error into a dashboard response.

Mapping:

  - Session expired: redirect to the login page (session already cleared).
  - Network: 502, the backend did not answer.
  - Client: 400, the request could not be built or the reply not read.
  - Server and local errors: their own status.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(ctx, "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		appError = apperr.Internal(err)
	}

	if appError.Kind == apperr.KindSessionExpired {
		Redirect(writer, request, constants.PathLogin)
		return
	}

	status := statusOf(appError)

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "dashboard_request_failed",
			slog.String("code", appError.Code),
			slog.String("kind", string(appError.Kind)),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	message := appError.Message
	if message == "" {
		message = http.StatusText(status)
	}

	JSON(writer, status, ErrorEnvelope{
		Error:         message,
		Code:          appError.Code,
		Details:       appError.Details,
		Notifications: drain(request),
	})
}

// statusOf maps an error to the status returned to the browser.
func statusOf(appError *apperr.AppError) int {
	switch appError.Kind {
	case apperr.KindNetwork:
		return http.StatusBadGateway
	case apperr.KindClient:
		return http.StatusBadRequest
	}
	if appError.HTTPStatus < http.StatusBadRequest {
		return http.StatusInternalServerError
	}
	return appError.HTTPStatus
}

// drain collects the request's pending notifications.
func drain(request *http.Request) []notify.Notification {
	if sink := ctxutil.GetSink(request.Context()); sink != nil {
		return sink.Drain()
	}
	return []notify.Notification{}
}
