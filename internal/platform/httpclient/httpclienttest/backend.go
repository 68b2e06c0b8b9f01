// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Package httpclienttest provides a fake shop backend for resource module tests.
package httpclienttest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/session"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// Request is a request received by the fake backend.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Auth        string
	Body        []byte
}

// JSON decodes the request body into target.
func (request Request) JSON(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal(request.Body, target); err != nil {
		t.Fatalf("decode request body %q: %v", request.Body, err)
	}
}

// Backend is an httptest server that records every request.
type Backend struct {
	server  *httptest.Server
	handler http.HandlerFunc

	mu       sync.Mutex
	requests []Request
}

// NewBackend starts a backend answering with handler. It stops with the test.
func NewBackend(t *testing.T, handler http.HandlerFunc) *Backend {
	t.Helper()

	backend := &Backend{handler: handler}
	backend.server = httptest.NewServer(http.HandlerFunc(backend.serve))
	t.Cleanup(backend.server.Close)
	return backend
}

func (backend *Backend) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)
	request.Body = io.NopCloser(bytes.NewReader(body))

	backend.mu.Lock()
	backend.requests = append(backend.requests, Request{
		Method:      request.Method,
		Path:        request.URL.Path,
		Query:       request.URL.Query(),
		ContentType: request.Header.Get("Content-Type"),
		Auth:        request.Header.Get("Authorization"),
		Body:        body,
	})
	backend.mu.Unlock()

	backend.handler(writer, request)
}

// URL is the backend base URL, ending in /api like the real one.
func (backend *Backend) URL() string {
	return backend.server.URL + "/api"
}

// Requests returns a copy of the recorded requests.
func (backend *Backend) Requests() []Request {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	return append([]Request(nil), backend.requests...)
}

// Last returns the most recent request, failing the test when there is none.
func (backend *Backend) Last(t *testing.T) Request {
	t.Helper()
	requests := backend.Requests()
	if len(requests) == 0 {
		t.Fatal("backend received no request")
	}
	return requests[len(requests)-1]
}

// Client returns an HTTP client adapter bound to the session in the context.
func (backend *Backend) Client() *httpclient.Client {
	return httpclient.New(backend.URL(), time.Second,
		httpclient.WithCredentials(httpclient.SessionCredentials),
		httpclient.WithLogger(Logger()),
	)
}

// Reply writes the backend's {message, data} envelope.
func Reply(writer http.ResponseWriter, status int, message string, data any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]any{"message": message, "data": data})
}

// Fail writes a backend error body.
func Fail(writer http.ResponseWriter, status int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]any{"message": message})
}

// Logger discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Session is a request context with a session store and a notification sink.
type Session struct {
	Context context.Context
	Store   *session.Store
	Sink    *notify.Sink
	Storage *storage.Memory
}

// NewSession returns a bootstrapped, signed-out session.
func NewSession(t *testing.T) *Session {
	t.Helper()

	durable := storage.NewMemory()
	store := session.New(durable, Logger())
	store.Bootstrap(context.Background())
	sink := notify.NewSink(durable)

	ctx := ctxutil.WithSession(context.Background(), store)
	ctx = ctxutil.WithNotifier(ctx, sink)

	return &Session{Context: ctx, Store: store, Sink: sink, Storage: durable}
}

// SignedIn returns a session already signed in as principal with token.
func SignedIn(t *testing.T, principal identity.User, token string) *Session {
	t.Helper()

	current := NewSession(t)
	if err := current.Store.Login(current.Context, principal, token, ""); err != nil {
		t.Fatalf("login: %v", err)
	}
	return current
}
