// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package order_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/order"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient/httpclienttest"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/sec"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

func newService(backend *httpclienttest.Backend) *order.Service {
	return order.NewService(order.NewAPIRepository(backend.Client()), httpclienttest.Logger())
}

func signedIn(t *testing.T) *httpclienttest.Session {
	return httpclienttest.SignedIn(t, identity.User{ID: "admin-1", Name: "Root", Role: sec.RoleAdmin}, "tok-1")
}

/*
TestList_SendsDateRange forwards every filter and decodes the page.
*/
func TestList_SendsDateRange(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{
			"orders": []map[string]any{{"_id": "o1", "user": "u1", "total": 4, "status": "pending"}},
			"meta":   map[string]any{"page": 1, "rowsPerPage": 10, "total": 1, "totalPages": 1},
		})
	})
	current := signedIn(t)

	result, err := newService(backend).List(current.Context, listview.DefaultQuery(), order.Filter{
		Status:    order.StatusPending,
		User:      "u1",
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Meta)

	query := backend.Last(t).Query
	assert.Equal(t, []string{"pending"}, query["status"])
	assert.Equal(t, []string{"u1"}, query["user"])
	assert.Equal(t, []string{"2026-01-01"}, query["startDate"])
	assert.Equal(t, []string{"2026-01-31"}, query["endDate"])
	assert.NotContains(t, query, "sort")
}

/*
TestGet_NotFoundNotifiesAndRethrows keeps the server error for the page to react.
*/
func TestGet_NotFoundNotifiesAndRethrows(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Fail(w, http.StatusNotFound, "Order not found")
	})
	current := signedIn(t)

	found, err := newService(backend).Get(current.Context, "o404")

	assert.Nil(t, found)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Order not found"}}, current.Sink.Drain())
}

/*
TestUpdateStatus covers the closed status set and the success message.
*/
func TestUpdateStatus(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", map[string]any{"order": map[string]any{"_id": "o1", "status": "shipped"}})
	})
	current := signedIn(t)
	service := newService(backend)

	_, err := service.UpdateStatus(current.Context, "o1", "lost")
	assert.Equal(t, apperr.KindClient, apperr.KindOf(err))
	assert.Empty(t, backend.Requests())
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Failed to update order status"}}, current.Sink.Drain())

	updated, err := service.UpdateStatus(current.Context, "o1", order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)

	request := backend.Last(t)
	assert.Equal(t, http.MethodPatch, request.Method)
	assert.Equal(t, "/api/orders/o1/status", request.Path)

	var body map[string]string
	request.JSON(t, &body)
	assert.Equal(t, map[string]string{"status": "shipped"}, body)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Order status updated successfully"}}, current.Sink.Drain())
}

/*
TestUpdate_PatchesOrder sends the edit form to the order resource.
*/
func TestUpdate_PatchesOrder(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "Order saved", nil)
	})
	current := signedIn(t)

	_, err := newService(backend).Update(current.Context, "o1", order.UpdateForm{Items: []order.Item{item("2", 3)}, Notes: "gift"})
	require.NoError(t, err)

	request := backend.Last(t)
	assert.Equal(t, http.MethodPatch, request.Method)
	assert.Equal(t, "/api/orders/o1", request.Path)

	var body map[string]any
	request.JSON(t, &body)
	assert.Equal(t, "gift", body["notes"])
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Order saved"}}, current.Sink.Drain())
}
