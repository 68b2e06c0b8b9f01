// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package auth

import (
	"context"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// # Backend Paths

const (
	pathLogin          = "/auth/login"
	pathMe             = "/auth/me"
	pathForgotPassword = "/auth/forgot-password"
	pathResetPassword  = "/auth/reset-password"
)

// apiRepository implements [Repository] over the shop backend.
type apiRepository struct {
	client *httpclient.Client
}

// NewAPIRepository creates a [Repository] backed by client.
func NewAPIRepository(client *httpclient.Client) Repository {
	return &apiRepository{client: client}
}

func (repository *apiRepository) Login(context context.Context, form LoginForm) (*LoginResult, string, error) {
	envelope, err := repository.client.Post(context, pathLogin, form)
	if err != nil {
		return nil, "", err
	}

	var result LoginResult
	if err := envelope.Decode(&result); err != nil {
		return nil, "", err
	}

	// A sign-in without a principal cannot be persisted.
	if result.User.ID == "" {
		return nil, "", apperr.Client(errMissingUser)
	}

	return &result, envelope.Message, nil
}

func (repository *apiRepository) Me(context context.Context) (*identity.User, error) {
	envelope, err := repository.client.Get(context, pathMe, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		User *identity.User `json:"user"`
	}
	if err := envelope.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, apperr.Client(errMissingUser)
	}

	return payload.User, nil
}

func (repository *apiRepository) ForgotPassword(context context.Context, form ForgotPasswordForm) (string, error) {
	envelope, err := repository.client.Post(context, pathForgotPassword, form)
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}

func (repository *apiRepository) ResetPassword(context context.Context, form ResetPasswordForm) (string, error) {
	envelope, err := repository.client.Post(context, pathResetPassword, form)
	if err != nil {
		return "", err
	}
	return envelope.Message, nil
}
