// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Package stats reads the dashboard home counters from the backend.
package stats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pointer"
)

const (
	pathStats      = "/stats"
	msgFetchFailed = "Failed to fetch stats"
)

var errStatsMissing = apperr.Client(errors.New("stats: response has no stats"))

// Stats are the home page counters, scoped by the backend to the principal.
type Stats struct {
	TotalUsers    int `json:"totalUsers"`
	ActiveUsers   int `json:"activeUsers"`
	TotalOrders   int `json:"totalOrders"`
	TotalProducts int `json:"totalProducts"`

	// Set only for principals with a managed-users ceiling.
	RemainingUsers  *int `json:"remainingUsers"`
	MaxManagedUsers *int `json:"maxManagedUsers"`
}

// AtCapacity reports whether the principal cannot create more users.
func (stats Stats) AtCapacity() bool {
	return pointer.Fallback(stats.RemainingUsers, 1) <= 0
}

// Repository reads the counters.
type Repository interface {
	Get(ctx context.Context) (*Stats, error)
}

type apiRepository struct {
	client *httpclient.Client
}

// NewAPIRepository creates a [Repository] backed by client.
func NewAPIRepository(client *httpclient.Client) Repository {
	return &apiRepository{client: client}
}

func (repository *apiRepository) Get(ctx context.Context) (*Stats, error) {
	envelope, err := repository.client.Get(ctx, pathStats, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Stats *Stats `json:"stats"`
	}
	if err := envelope.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Stats == nil {
		return nil, errStatsMissing
	}
	return payload.Stats, nil
}

// Service reads the counters for the home page.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new stats [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get retrieves the counters. Failures are notified and returned.
func (service *Service) Get(ctx context.Context) (*Stats, error) {
	stats, err := service.repo.Get(ctx)
	if err != nil {
		return nil, notify.Failure(ctxutil.GetNotifier(ctx), err, msgFetchFailed)
	}
	return stats, nil
}
