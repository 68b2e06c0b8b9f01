// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package subscription

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	requestutil "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/request"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the subscription countdown and the admin expiry pages.
type Handler struct {
	service      *Service
	pollInterval time.Duration
}

// NewHandler constructs a new subscription [Handler].
func NewHandler(service *Service, pollInterval time.Duration) *Handler {
	return &Handler{service: service, pollInterval: pollInterval}
}

// Routes returns a [chi.Router] with the /dashboard/subscription endpoints.
// The stream route must not sit behind a request timeout.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.getStatus)
	router.Get("/stream", handler.streamStatus)
	return router
}

// AdminRoutes returns a [chi.Router] with the /dashboard/admins endpoints.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listAdmins)
	router.Put("/{id}/expiry", handler.updateExpiry)
	return router
}

// # View Models

type statusView struct {
	Status
	Band      Band   `json:"band"`
	Remaining string `json:"remaining"`
}

func statusViewOf(status Status) statusView {
	return statusView{Status: status, Band: status.Band(), Remaining: status.Remaining()}
}

type adminView struct {
	Admin
	Band      Band   `json:"band"`
	Remaining string `json:"remaining"`
}

// expiryRequestBody sets an explicit date, or extends the current one by days.
type expiryRequestBody struct {
	ExpiryDate *string `json:"expiryDate"`
	ExtendDays int     `json:"extendDays,omitempty"`
}

// # Endpoints

// GET /dashboard/subscription.
func (handler *Handler) getStatus(writer http.ResponseWriter, request *http.Request) {
	status, err := handler.service.Status(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, request, statusViewOf(*status))
}

/*
GET /dashboard/subscription/stream.

Description: Server-Sent Events. A "status" event is sent immediately and
then once per poll interval until the client disconnects. Failures are sent
as "error" events; a session expiry sends "expired" and ends the stream.
*/
func (handler *Handler) streamStatus(writer http.ResponseWriter, request *http.Request) {
	flusher, ok := writer.(http.Flusher)
	if !ok {
		respond.Error(writer, request, apperr.Internal(fmt.Errorf("subscription: response writer cannot stream")))
		return
	}

	writer.Header().Set(constants.HeaderContentType, "text/event-stream")
	writer.Header().Set("Cache-Control", "no-cache")
	writer.Header().Set("Connection", "keep-alive")
	writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Failures are reported as events, not queued as page notifications.
	ctx := ctxutil.WithNotifier(request.Context(), notify.Discard)
	logger := ctxutil.GetLogger(ctx)

	NewPoller(handler.service, handler.pollInterval).Run(ctx, func(status *Status, err error) bool {
		var writeErr error
		switch {
		case apperr.IsSessionExpired(err):
			_ = writeEvent(writer, "expired", map[string]string{"redirect": constants.PathLogin})
			flusher.Flush()
			return false
		case err != nil:
			writeErr = writeEvent(writer, "error", map[string]string{"message": apperr.MessageOr(err, msgStatusFailed)})
		default:
			writeErr = writeEvent(writer, "status", statusViewOf(*status))
		}

		if writeErr != nil {
			logger.DebugContext(ctx, "subscription_stream_closed", slog.Any("error", writeErr))
			return false
		}
		flusher.Flush()
		return true
	})
}

func writeEvent(writer http.ResponseWriter, event string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(writer, "event: %s\ndata: %s\n\n", event, encoded)
	return err
}

// GET /dashboard/admins. Super admins only.
func (handler *Handler) listAdmins(writer http.ResponseWriter, request *http.Request) {
	admins, err := handler.service.Admins(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]adminView, 0, len(admins))
	for _, admin := range admins {
		views = append(views, adminView{Admin: admin, Band: admin.Band(), Remaining: remaining(admin.DaysRemaining)})
	}
	respond.OK(writer, request, views)
}

/*
PUT /dashboard/admins/{id}/expiry.

Request (Body):
  - expiryDate: "yyyy-mm-dd", or null/"" to remove the expiry
  - extendDays: optional, extends the admin's current expiry (or today) instead

Response:
  - 303: Redirect to /dashboard/admins
*/
func (handler *Handler) updateExpiry(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body expiryRequestBody
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	expiry, err := handler.resolveExpiry(request, id, body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateExpiry(request.Context(), id, expiry); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Redirect(writer, request, constants.PathAdmins)
}

func (handler *Handler) resolveExpiry(request *http.Request, id string, body expiryRequestBody) (Expiry, error) {
	if body.ExtendDays == 0 {
		if body.ExpiryDate == nil {
			return NoExpiry(), nil
		}
		expiry, err := ParseExpiry(*body.ExpiryDate)
		if err != nil {
			return Expiry{}, validate.RequiredError("expiryDate", "Must be a yyyy-mm-dd date")
		}
		return expiry, nil
	}

	if body.ExtendDays < 0 {
		return Expiry{}, validate.RequiredError("extendDays", "Must be positive")
	}

	admins, err := handler.service.Admins(request.Context())
	if err != nil {
		return Expiry{}, err
	}
	for _, admin := range admins {
		if admin.ID == id {
			return Extend(admin.SubscriptionExpiryDate, body.ExtendDays, time.Now()), nil
		}
	}
	return Expiry{}, apperr.NotFound("Admin")
}
