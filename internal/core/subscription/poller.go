// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package subscription

import (
	"context"
	"time"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/constants"
)

// Poller refreshes the signed-in principal's subscription on a fixed interval.
type Poller struct {
	service  *Service
	interval time.Duration
}

// NewPoller creates a [Poller]. A non-positive interval uses the 60s default.
func NewPoller(service *Service, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = constants.DefaultSubscriptionPollInterval
	}
	return &Poller{service: service, interval: interval}
}

/*
Run fetches the status immediately, then once per interval, and hands every
outcome to emit. It returns when ctx is cancelled or when emit returns false.

Failures are passed to emit; they never stop the polling on their own.
*/
func (poller *Poller) Run(ctx context.Context, emit func(status *Status, err error) bool) {
	ticker := time.NewTicker(poller.interval)
	defer ticker.Stop()

	for {
		status, err := poller.service.Status(ctx)
		if ctx.Err() != nil {
			return
		}
		if !emit(status, err) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
