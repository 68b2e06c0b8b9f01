// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package order

import (
	"context"
	"errors"
	"net/url"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

const pathOrders = "/orders"

var errOrderMissing = apperr.Client(errors.New("order: response has no order"))

// apiRepository implements [Repository] over the shop backend.
type apiRepository struct {
	client *httpclient.Client
}

// NewAPIRepository creates a [Repository] backed by client.
func NewAPIRepository(client *httpclient.Client) Repository {
	return &apiRepository{client: client}
}

type orderPayload struct {
	Order *Order `json:"order"`
}

type listPayload struct {
	Orders []Order          `json:"orders"`
	Meta   *pagination.Meta `json:"meta"`
}

func orderPath(id string) string {
	return pathOrders + "/" + url.PathEscape(id)
}

func (repository *apiRepository) List(ctx context.Context, query listview.Query, filter Filter) ([]Order, *pagination.Meta, error) {
	values := query.BackendValues()
	filter.Apply(values)

	envelope, err := repository.client.Get(ctx, pathOrders, values)
	if err != nil {
		return nil, nil, err
	}

	var payload listPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, nil, err
	}
	if payload.Orders == nil {
		payload.Orders = []Order{}
	}
	return payload.Orders, payload.Meta, nil
}

func (repository *apiRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	envelope, err := repository.client.Get(ctx, orderPath(id), nil)
	if err != nil {
		return nil, err
	}

	var payload orderPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Order == nil {
		return nil, errOrderMissing
	}
	return payload.Order, nil
}

func (repository *apiRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, string, error) {
	body := map[string]Status{FieldStatus: status}
	return mutate(repository.client.Patch(ctx, orderPath(id)+"/status", body))
}

func (repository *apiRepository) Update(ctx context.Context, id string, form UpdateForm) (*Order, string, error) {
	return mutate(repository.client.Patch(ctx, orderPath(id), form))
}

func mutate(envelope *httpclient.Envelope, err error) (*Order, string, error) {
	if err != nil {
		return nil, "", err
	}

	var payload orderPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, "", err
	}
	return payload.Order, envelope.Message, nil
}
