// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package apperr defines the centralized error handling framework for the dashboard.

It provides one rich error type that covers both sides of the dashboard: errors
raised locally by the dashboard server (validation, missing session) and errors
normalized from calls to the shop backend.

Architecture:

  - AppError: A struct containing machine-readable Code, a user-facing Message and a Kind.
  - Kind: The backend taxonomy (server, network, client, session_expired).
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves a resource module is an [AppError] so that notifications
and page responses can be produced without inspecting transport details.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies where an error originated.
type Kind string

const (
	// KindLocal marks errors raised by the dashboard itself.
	KindLocal Kind = ""

	// KindServer marks a backend response with status >= 400.
	KindServer Kind = "server"

	// KindNetwork marks a request that was sent but never answered.
	KindNetwork Kind = "network"

	// KindClient marks a request that never left the process, or a reply that could not be read.
	KindClient Kind = "client"

	// KindSessionExpired marks a backend 401. It is handled globally by the HTTP client.
	KindSessionExpired Kind = "session_expired"
)

// AppError is the canonical error type for the dashboard.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Status Zero
//
// Network and client errors carry HTTPStatus 0: no HTTP response exists for them.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "NETWORK_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to staff users.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code (0 when no response exists).
	HTTPStatus int `json:"status"`
	// Kind is the origin of the error.
	Kind Kind `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message,
// or the cause when no message was set.
func (e *AppError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Backend Taxonomy

// Server creates a [KindServer] error from a backend response.
//
// A 401 status is promoted to [SessionExpired].
func Server(status int, message string, details ...FieldError) *AppError {
	if message == "" {
		message = "An error occurred"
	}
	if status == http.StatusUnauthorized {
		expired := SessionExpired(message)
		expired.Details = details
		return expired
	}
	return &AppError{
		Code:       "SERVER_ERROR",
		Message:    message,
		HTTPStatus: status,
		Kind:       KindServer,
		Details:    details,
	}
}

// SessionExpired creates the distinguished 401 backend error.
func SessionExpired(message string) *AppError {
	if message == "" {
		message = "Session expired"
	}
	return &AppError{
		Code:       "SESSION_EXPIRED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Kind:       KindSessionExpired,
	}
}

// Network creates a [KindNetwork] error for a request that got no response.
func Network(cause error) *AppError {
	return &AppError{
		Code:    "NETWORK_ERROR",
		Message: "No response from server",
		Kind:    KindNetwork,
		Cause:   cause,
	}
}

// Client creates a [KindClient] error for a request that could not be sent or read.
func Client(cause error) *AppError {
	message := "An error occurred"
	if cause != nil && cause.Error() != "" {
		message = cause.Error()
	}
	return &AppError{
		Code:    "CLIENT_ERROR",
		Message: message,
		Kind:    KindClient,
		Cause:   cause,
	}
}

// Rejected creates a [KindClient] error for input refused before any request.
//
// message is what the user sees. When empty, [MessageOr] falls back to the
// caller's message so cause text never reaches the UI.
func Rejected(message string, cause error) *AppError {
	return &AppError{
		Code:    "CLIENT_ERROR",
		Message: message,
		Kind:    KindClient,
		Cause:   cause,
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Product") // Returns "Product not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf returns the [Kind] of err, or [KindLocal] when err is not an [*AppError].
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return KindLocal
}

// IsSessionExpired reports whether err is a backend 401.
func IsSessionExpired(err error) bool {
	return KindOf(err) == KindSessionExpired
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	ae := As(err)
	return ae != nil && ae.HTTPStatus == http.StatusNotFound
}

// MessageOr returns the user-facing message of err, or fallback when none exists.
func MessageOr(err error, fallback string) string {
	if ae := As(err); ae != nil {
		if ae.Message != "" {
			return ae.Message
		}
		return fallback
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
