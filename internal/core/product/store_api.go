// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package product

import (
	"bytes"
	"context"
	"errors"
	"net/url"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

const pathProducts = "/products"

var errProductMissing = apperr.Client(errors.New("product: response has no product"))

// apiRepository implements [Repository] over the shop backend.
type apiRepository struct {
	client *httpclient.Client
}

// NewAPIRepository creates a [Repository] backed by client.
func NewAPIRepository(client *httpclient.Client) Repository {
	return &apiRepository{client: client}
}

type productPayload struct {
	Product *Product `json:"product"`
}

type listPayload struct {
	Products []Product        `json:"products"`
	Meta     *pagination.Meta `json:"meta"`
}

func productPath(id string) string {
	return pathProducts + "/" + url.PathEscape(id)
}

func (repository *apiRepository) List(ctx context.Context, query listview.Query, filter Filter) ([]Product, *pagination.Meta, error) {
	values := query.BackendValues()
	filter.Apply(values)

	envelope, err := repository.client.Get(ctx, pathProducts, values)
	if err != nil {
		return nil, nil, err
	}

	var payload listPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, nil, err
	}
	if payload.Products == nil {
		payload.Products = []Product{}
	}
	return payload.Products, payload.Meta, nil
}

func (repository *apiRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	envelope, err := repository.client.Get(ctx, productPath(id), nil)
	if err != nil {
		return nil, err
	}

	var payload productPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Product == nil {
		return nil, errProductMissing
	}
	return payload.Product, nil
}

func (repository *apiRepository) Create(ctx context.Context, form Form) (*Product, string, error) {
	body, err := requestBody(form)
	if err != nil {
		return nil, "", err
	}
	return mutate(repository.client.Post(ctx, pathProducts, body))
}

func (repository *apiRepository) Update(ctx context.Context, id string, form Form) (*Product, string, error) {
	body, err := requestBody(form)
	if err != nil {
		return nil, "", err
	}
	return mutate(repository.client.Patch(ctx, productPath(id), body))
}

func (repository *apiRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Product, string, error) {
	body := map[string]Status{FieldStatus: status}
	return mutate(repository.client.Patch(ctx, productPath(id)+"/status", body))
}

// Delete uses the backend's /products/product/:id route.
func (repository *apiRepository) Delete(ctx context.Context, id string) (string, error) {
	envelope, err := repository.client.Delete(ctx, pathProducts+"/product/"+url.PathEscape(id))
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

/*
requestBody selects the wire format of a product form.

Without an attached file the form is sent as JSON. With one it is sent as
multipart: list attributes become JSON-encoded text fields and are omitted
when empty.
*/
func requestBody(form Form) (any, error) {
	if !form.HasFile() {
		return form, nil
	}

	body := httpclient.NewMultipart().
		Field(FieldName, form.Name).
		Field(FieldCategory, form.Category).
		Field(FieldPrice, form.Price)

	if form.Description != "" {
		body.Field(FieldDescription, form.Description)
	}

	lists := []struct {
		field  string
		values []string
	}{
		{FieldColors, form.Colors},
		{FieldSizes, form.Sizes},
		{FieldVisibleToUsers, form.VisibleToUsers},
	}
	for _, list := range lists {
		if len(list.values) == 0 {
			continue
		}
		if _, err := body.JSONField(list.field, list.values); err != nil {
			return nil, apperr.Client(err)
		}
	}

	body.File(FieldImage, form.File.Name, bytes.NewReader(form.File.Content))
	return body, nil
}

func mutate(envelope *httpclient.Envelope, err error) (*Product, string, error) {
	if err != nil {
		return nil, "", err
	}

	var payload productPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, "", err
	}
	return payload.Product, envelope.Message, nil
}
