// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package account

import (
	"context"
	"net/url"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/money"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

const (
	pathUsers    = "/users"
	pathCurrency = "/users/currency"
)

// apiRepository implements [Repository] over the shop backend.
type apiRepository struct {
	client *httpclient.Client
}

// NewAPIRepository creates a [Repository] backed by client.
func NewAPIRepository(client *httpclient.Client) Repository {
	return &apiRepository{client: client}
}

type userPayload struct {
	User *identity.User `json:"user"`
}

type listPayload struct {
	Users []identity.User  `json:"users"`
	Meta  *pagination.Meta `json:"meta"`
}

func userPath(id string) string {
	return pathUsers + "/" + url.PathEscape(id)
}

func (repository *apiRepository) List(context context.Context, query listview.Query, filter Filter) ([]identity.User, *pagination.Meta, error) {
	values := query.BackendValues()
	filter.Apply(values)

	envelope, err := repository.client.Get(context, pathUsers, values)
	if err != nil {
		return nil, nil, err
	}

	var payload listPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, nil, err
	}
	if payload.Users == nil {
		payload.Users = []identity.User{}
	}
	return payload.Users, payload.Meta, nil
}

func (repository *apiRepository) FindByID(context context.Context, id string) (*identity.User, error) {
	envelope, err := repository.client.Get(context, userPath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(envelope)
}

func (repository *apiRepository) Create(context context.Context, form CreateForm) (*identity.User, string, error) {
	return repository.mutate(repository.client.Post(context, pathUsers, form))
}

func (repository *apiRepository) Update(context context.Context, id string, form UpdateForm) (*identity.User, string, error) {
	return repository.mutate(repository.client.Patch(context, userPath(id), form))
}

func (repository *apiRepository) UpdateStatus(context context.Context, id string, status Status) (*identity.User, string, error) {
	body := map[string]Status{FieldStatus: status}
	return repository.mutate(repository.client.Patch(context, userPath(id)+"/status", body))
}

func (repository *apiRepository) Delete(context context.Context, id string) (string, error) {
	envelope, err := repository.client.Delete(context, userPath(id))
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

// UpdateCurrency accepts the user either bare in data or wrapped as data.user.
// A reply without a user ID yields a nil user.
func (repository *apiRepository) UpdateCurrency(context context.Context, currency money.Currency) (*identity.User, string, error) {
	body := map[string]money.Currency{FieldCurrency: currency}
	envelope, err := repository.client.Patch(context, pathCurrency, body)
	if err != nil {
		return nil, "", err
	}
	if !envelope.HasData() {
		return nil, envelope.Message, nil
	}

	var payload userPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, "", err
	}
	user := payload.User
	if user == nil {
		user = &identity.User{}
		if err := envelope.Decode(user); err != nil {
			return nil, "", err
		}
	}
	if user.ID == "" {
		return nil, envelope.Message, nil
	}
	return user, envelope.Message, nil
}

// mutate decodes the optional data.user of a mutation response.
func (repository *apiRepository) mutate(envelope *httpclient.Envelope, err error) (*identity.User, string, error) {
	if err != nil {
		return nil, "", err
	}

	var payload userPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, "", err
	}
	return payload.User, envelope.Message, nil
}

func decodeUser(envelope *httpclient.Envelope) (*identity.User, error) {
	var payload userPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, errUserMissing
	}
	return payload.User, nil
}
