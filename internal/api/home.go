// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package api

import (
	"net/http"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/stats"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/subscription"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	requestutil "github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/request"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/respond"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// HomeHandler renders the dashboard landing page.
type HomeHandler struct {
	stats         *stats.Service
	subscriptions *subscription.Service
}

// NewHomeHandler constructs a new [HomeHandler].
func NewHomeHandler(stats *stats.Service, subscriptions *subscription.Service) *HomeHandler {
	return &HomeHandler{stats: stats, subscriptions: subscriptions}
}

type homePage struct {
	Principal    *identity.User       `json:"principal"`
	Stats        *stats.Stats         `json:"stats"`
	Subscription *subscription.Status `json:"subscription"`
	Band         subscription.Band    `json:"band"`
}

/*
Show handles GET /dashboard.

Description: Counters and subscription are fetched independently; a failed
section renders as null with its notification. A session expiry in either
redirects to the login page.
*/
func (handler *HomeHandler) Show(writer http.ResponseWriter, request *http.Request) {
	page := homePage{Principal: requestutil.Principal(request), Band: subscription.BandHidden}

	counters, err := handler.stats.Get(request.Context())
	if apperr.IsSessionExpired(err) {
		respond.Error(writer, request, err)
		return
	}
	page.Stats = counters

	status, err := handler.subscriptions.Status(request.Context())
	if apperr.IsSessionExpired(err) {
		respond.Error(writer, request, err)
		return
	}
	if status != nil {
		page.Subscription = status
		page.Band = status.Band()
	}

	respond.OK(writer, request, page)
}
