// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package httpclient is the single gateway between the dashboard and the shop backend.

Every resource module talks to the backend through one shared [Client]. The
client owns the cross-cutting concerns of that conversation so that no resource
module has to repeat them:

  - Auth: "Authorization: Bearer <token>" from the caller's session, best-effort.
  - Payloads: JSON bodies, or multipart bodies with their own boundary.
  - Session expiry: a 401 purges the session and fires a hook before the
    caller sees the error.
  - Errors: every failure is normalized into an [apperr.AppError] of kind
    server, network, client or session_expired.

Responses use the backend envelope {"message": "...", "data": {...}}.
*/
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// # Contracts

// Credentials is the token source consulted for every request.
//
// [session.Store] implements it.
type Credentials interface {
	// AccessToken returns the bearer token, or "" when none is stored.
	AccessToken(ctx context.Context) (string, error)
	// Clear purges every persisted auth key after a 401.
	Clear(ctx context.Context) error
}

// CredentialsFunc resolves the credentials of the caller from its context.
// It may return nil for anonymous calls.
type CredentialsFunc func(ctx context.Context) Credentials

// SessionCredentials resolves the [session.Store] bound to ctx by the
// dashboard middleware or the console.
func SessionCredentials(ctx context.Context) Credentials {
	if store := ctxutil.GetSession(ctx); store != nil {
		return store
	}
	return nil
}

// Option configures a [Client].
type Option func(client *Client)

// WithCredentials sets how the caller's credentials are found.
func WithCredentials(resolve CredentialsFunc) Option {
	return func(client *Client) { client.credentials = resolve }
}

// WithSessionExpiredHook registers the global reaction to a 401, e.g. forcing
// navigation to the login screen. It runs after the credentials are purged.
func WithSessionExpiredHook(hook func(ctx context.Context)) Option {
	return func(client *Client) { client.onSessionExpired = hook }
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.http = httpClient }
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) { client.logger = logger }
}

// # Client

// Client sends requests to the backend. It is safe for concurrent use.
type Client struct {
	baseURL          string
	http             *http.Client
	credentials      CredentialsFunc
	onSessionExpired func(ctx context.Context)
	logger           *slog.Logger
}

// New creates a client for baseURL with a single fixed timeout per request.
// A zero timeout falls back to [constants.DefaultBackendTimeout].
func New(baseURL string, timeout time.Duration, options ...Option) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultBackendTimeout
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}

	for _, option := range options {
		option(client)
	}
	return client
}

// BaseURL returns the configured backend base URL without a trailing slash.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// # Verbs

// Get sends a GET request with query parameters.
func (client *Client) Get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return client.Do(ctx, http.MethodGet, path, query, nil)
}

// Post sends a POST request. body may be a [*Multipart].
func (client *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return client.Do(ctx, http.MethodPost, path, nil, body)
}

// Put sends a PUT request.
func (client *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return client.Do(ctx, http.MethodPut, path, nil, body)
}

// Patch sends a PATCH request. body may be a [*Multipart].
func (client *Client) Patch(ctx context.Context, path string, body any) (*Envelope, error) {
	return client.Do(ctx, http.MethodPatch, path, nil, body)
}

// Delete sends a DELETE request.
func (client *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return client.Do(ctx, http.MethodDelete, path, nil, nil)
}

/*
Do sends one request and decodes the response envelope.

Description: The body is JSON-encoded unless it is a [*Multipart]. The call
fails exactly once on timeout; there are no retries.

Returns:
  - *Envelope: Decoded {message, data} of a 2xx response
  - error: *apperr.AppError of kind server, network, client or session_expired
*/
func (client *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, error) {
	logger := ctxutil.GetLogger(ctx)
	if logger == slog.Default() {
		logger = client.logger
	}

	request, err := client.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, apperr.Client(err)
	}

	client.authorize(ctx, request, logger)

	startTime := time.Now()
	response, err := client.http.Do(request)
	if err != nil {
		logger.WarnContext(ctx, "backend_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return nil, apperr.Network(err)
	}
	defer response.Body.Close()

	logger.DebugContext(ctx, "backend_request_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if response.StatusCode >= http.StatusBadRequest {
		return nil, client.failure(ctx, response, logger)
	}

	envelope, err := decodeEnvelope(response.Body)
	if err != nil {
		return nil, apperr.Client(err)
	}
	return envelope, nil
}

// # Internals

// newRequest builds the outgoing request and its content type.
func (client *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := client.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		reader      io.Reader
		contentType string
	)

	switch payload := body.(type) {
	case nil:
	case *Multipart:
		encoded, boundaryType, err := payload.encode()
		if err != nil {
			return nil, err
		}
		reader, contentType = encoded, boundaryType
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader, contentType = bytes.NewReader(encoded), "application/json"
	}

	request, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	request.Header.Set(constants.HeaderAccept, "application/json")
	if contentType != "" {
		request.Header.Set(constants.HeaderContentType, contentType)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}
	return request, nil
}

// authorize attaches the bearer token. Lookup failures are logged and the
// request proceeds unauthenticated.
func (client *Client) authorize(ctx context.Context, request *http.Request, logger *slog.Logger) {
	credentials := client.resolveCredentials(ctx)
	if credentials == nil {
		return
	}

	token, err := credentials.AccessToken(ctx)
	if err != nil {
		logger.WarnContext(ctx, "backend_token_lookup_failed", slog.Any("error", err))
		return
	}
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
}

// failure normalizes a >= 400 response. A 401 purges the session first.
func (client *Client) failure(ctx context.Context, response *http.Response, logger *slog.Logger) error {
	message, details := decodeFailure(io.LimitReader(response.Body, maxErrorBody))
	appError := apperr.Server(response.StatusCode, message, details...)

	if appError.Kind == apperr.KindSessionExpired {
		if credentials := client.resolveCredentials(ctx); credentials != nil {
			if err := credentials.Clear(ctx); err != nil {
				logger.ErrorContext(ctx, "session_purge_failed", slog.Any("error", err))
			}
		}
		logger.InfoContext(ctx, "backend_session_expired")
		if client.onSessionExpired != nil {
			client.onSessionExpired(ctx)
		}
	}

	return appError
}

func (client *Client) resolveCredentials(ctx context.Context) Credentials {
	if client.credentials == nil {
		return nil
	}
	return client.credentials(ctx)
}
