// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, storage keys and route paths that are
shared between different layers of the dashboard.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session: Durable storage keys and dashboard routes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "fb-admin"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Zero disables it so the subscription event stream can stay open.
	DefaultWriteTimeout = 0

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for ordinary page requests.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// LoginRateLimitRPS throttles credential submissions per IP.
	LoginRateLimitRPS = 0.2

	// LoginRateLimitBurst allows a few quick retries before throttling.
	LoginRateLimitBurst = 5

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Durable Storage Keys

const (
	// StorageKeyUser holds the JSON-encoded principal.
	StorageKeyUser = "@auth_user"

	// StorageKeyToken holds the bearer access token.
	StorageKeyToken = "@auth_token"

	// StorageKeyRefreshToken holds the refresh token when the backend returns one.
	StorageKeyRefreshToken = "@auth_refresh_token"

	// StorageKeyFlash holds notifications queued before a redirect.
	StorageKeyFlash = "@flash"

	// StoragePrefixSession namespaces one browser's keys in shared storage.
	StoragePrefixSession = "dashboard:session:"
)

// # Dashboard Routes

const (
	PathRoot           = "/"
	PathLogin          = "/login"
	PathDashboard      = "/dashboard"
	PathUsers          = "/dashboard/users"
	PathProducts       = "/dashboard/products"
	PathOrders         = "/dashboard/orders"
	PathAdmins         = "/dashboard/admins"
	PathForgotPassword = "/forgot-password"
	PathResetPassword  = "/reset-password"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
)

// # JSON Field Identifiers

const (
	FieldData          = "data"
	FieldMeta          = "meta"
	FieldError         = "error"
	FieldCode          = "code"
	FieldDetails       = "details"
	FieldMessage       = "message"
	FieldStatus        = "status"
	FieldNotifications = "notifications"
	FieldApp           = "app"
	FieldVersion       = "version"
	FieldChecks        = "checks"
)

// # List Views

const (
	// DefaultPage is the first page of every list view.
	DefaultPage = 1

	// DefaultRowsPerPage is the page size of every list view.
	DefaultRowsPerPage = 10

	// DefaultSearchDebounce is the quiescence window before a search refetch.
	DefaultSearchDebounce = 200 * time.Millisecond

	// DefaultSubscriptionPollInterval is the subscription status refresh period.
	DefaultSubscriptionPollInterval = 60 * time.Second

	// DefaultBackendTimeout is the single fixed request timeout for backend calls.
	DefaultBackendTimeout = 10 * time.Second
)
