// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package upload_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/core/upload"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/httpclient/httpclienttest"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/notify"
)

/*
TestResolveImageURL covers absolute, uploaded and opaque references.
*/
func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		path    string
		want    string
	}{
		{"empty", "http://shop.test/api", "", ""},
		{"absolute_http", "http://shop.test/api", "http://cdn.test/a.png", "http://cdn.test/a.png"},
		{"absolute_https", "http://shop.test/api", "https://cdn.test/a.png", "https://cdn.test/a.png"},
		{"uploads_strips_api", "http://shop.test/api", "/uploads/a.png", "http://shop.test/uploads/a.png"},
		{"uploads_trailing_slash", "http://shop.test/api/", "/uploads/a.png", "http://shop.test/uploads/a.png"},
		{"uploads_without_api", "http://shop.test", "/uploads/a.png", "http://shop.test/uploads/a.png"},
		{"opaque", "http://shop.test/api", "images/a.png", "images/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upload.ResolveImageURL(tt.backend, tt.path))
		})
	}
}

/*
TestImage_SendsMultipart posts the file in the image field and resolves the path.
*/
func TestImage_SendsMultipart(t *testing.T) {
	var (
		filename string
		content  []byte
	)
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		if err != nil {
			httpclienttest.Fail(w, http.StatusBadRequest, err.Error())
			return
		}
		defer file.Close()
		filename = header.Filename
		content, _ = io.ReadAll(file)
		httpclienttest.Reply(w, http.StatusOK, "", map[string]string{"imageUrl": "/uploads/shoe.png"})
	})
	current := httpclienttest.NewSession(t)

	service := upload.NewService(upload.NewAPIRepository(backend.Client()), backend.URL(), httpclienttest.Logger())
	url, err := service.Image(current.Context, "shoe.png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, backend.URL()[:len(backend.URL())-len("/api")]+"/uploads/shoe.png", url)
	assert.Equal(t, "shoe.png", filename)
	assert.Equal(t, []byte("png-bytes"), content)

	request := backend.Last(t)
	assert.Equal(t, "/api/upload/image", request.Path)
	assert.Contains(t, request.ContentType, "multipart/form-data; boundary=")
}

/*
TestImage_Failure notifies the default message and rethrows.
*/
func TestImage_Failure(t *testing.T) {
	backend := httpclienttest.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		httpclienttest.Reply(w, http.StatusOK, "", nil)
	})
	current := httpclienttest.NewSession(t)

	service := upload.NewService(upload.NewAPIRepository(backend.Client()), backend.URL(), httpclienttest.Logger())
	_, err := service.Image(current.Context, "shoe.png", []byte("x"))

	require.Error(t, err)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "upload: response has no imageUrl"}}, current.Sink.Drain())
}
