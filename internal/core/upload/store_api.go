// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package upload

import (
	"context"
	"errors"
	"io"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
)

const pathImage = "/upload/image"

var errNoImageURL = apperr.Client(errors.New("upload: response has no imageUrl"))

type apiRepository struct {
	client *httpclient.Client
}

// NewAPIRepository creates a [Repository] backed by client.
func NewAPIRepository(client *httpclient.Client) Repository {
	return &apiRepository{client: client}
}

type imagePayload struct {
	ImageURL string `json:"imageUrl"`
}

func (repository *apiRepository) Image(ctx context.Context, filename string, content io.Reader) (string, error) {
	body := httpclient.NewMultipart().File(FieldImage, filename, content)

	envelope, err := repository.client.Post(ctx, pathImage, body)
	if err != nil {
		return "", err
	}

	var payload imagePayload
	if err := envelope.Decode(&payload); err != nil {
		return "", err
	}
	if payload.ImageURL == "" {
		return "", errNoImageURL
	}
	return payload.ImageURL, nil
}
