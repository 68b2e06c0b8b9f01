// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package subscription

import (
	"context"
	"net/url"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
)

const (
	pathStatus = "/subscription/status"
	pathAdmins = "/subscription/admins"
	pathAdmin  = "/subscription/admin/"
)

// apiRepository implements [Repository] over the shop backend.
type apiRepository struct {
	client *httpclient.Client
}

// NewAPIRepository creates a [Repository] backed by client.
func NewAPIRepository(client *httpclient.Client) Repository {
	return &apiRepository{client: client}
}

type adminsPayload struct {
	Admins []Admin `json:"admins"`
}

type expiryRequest struct {
	ExpiryDate Expiry `json:"expiryDate"`
}

func (repository *apiRepository) Status(ctx context.Context) (*Status, error) {
	envelope, err := repository.client.Get(ctx, pathStatus, nil)
	if err != nil {
		return nil, err
	}

	status := &Status{}
	if err := envelope.Decode(status); err != nil {
		return nil, err
	}
	return status, nil
}

func (repository *apiRepository) Admins(ctx context.Context) ([]Admin, error) {
	envelope, err := repository.client.Get(ctx, pathAdmins, nil)
	if err != nil {
		return nil, err
	}

	var payload adminsPayload
	if err := envelope.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Admins == nil {
		payload.Admins = []Admin{}
	}
	return payload.Admins, nil
}

func (repository *apiRepository) UpdateExpiry(ctx context.Context, adminID string, expiry Expiry) (string, error) {
	envelope, err := repository.client.Put(ctx, pathAdmin+url.PathEscape(adminID), expiryRequest{ExpiryDate: expiry})
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}
