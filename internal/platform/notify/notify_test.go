// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package notify_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/storage"
)

func TestSink_Drain(t *testing.T) {
	sink := notify.NewSink(nil)

	notify.Success(sink, "Product created successfully")
	notify.Error(sink, "Failed to fetch orders")

	drained := sink.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, notify.LevelSuccess, drained[0].Level)
	assert.Equal(t, "Failed to fetch orders", drained[1].Message)

	assert.Empty(t, sink.Drain())
	assert.NotNil(t, sink.Drain())
}

/*
TestSink_FlashAcrossRedirect verifies that a notification raised before a
redirect is shown by the next request of the same browser, exactly once.
*/
func TestSink_FlashAcrossRedirect(t *testing.T) {
	ctx := context.Background()
	browser := storage.NewMemory()

	before := notify.NewSink(browser)
	notify.Success(before, "Login successful")
	require.NoError(t, before.Persist(ctx))
	assert.Empty(t, before.Drain())

	after := notify.NewSink(browser)
	notify.Info(after, "Welcome back")
	require.NoError(t, after.Restore(ctx))

	shown := after.Drain()
	require.Len(t, shown, 2)
	assert.Equal(t, "Login successful", shown[0].Message)
	assert.Equal(t, "Welcome back", shown[1].Message)

	again := notify.NewSink(browser)
	require.NoError(t, again.Restore(ctx))
	assert.Empty(t, again.Drain())
}

func TestWriter(t *testing.T) {
	var out bytes.Buffer
	notify.Error(notify.NewWriter(&out), "No response from server")
	assert.Equal(t, "[error] No response from server\n", out.String())

	notify.Success(notify.Discard, "ignored")
}

/*
TestFailure reports the server message or the fallback and returns the error.
*/
func TestFailure(t *testing.T) {
	sink := notify.NewSink(nil)

	serverErr := apperr.Server(http.StatusBadRequest, "Email already exists")
	assert.Same(t, serverErr, notify.Failure(sink, serverErr, "Failed to create user"))
	assert.Nil(t, notify.Failure(sink, nil, "Failed to create user"))

	assert.Equal(t, []notify.Notification{
		{Level: notify.LevelError, Message: "Email already exists"},
		{Level: notify.LevelError, Message: "Failed to create user"},
	}, sink.Drain())
}
