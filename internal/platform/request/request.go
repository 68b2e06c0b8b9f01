// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/apperr"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/ctxutil"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/platform/validate"
	"github.com/mohammad-keath-zaytowna/fb-admin/internal/users/identity"
)

// MaxUploadBytes bounds multipart form bodies (product images).
const MaxUploadBytes = 10 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (backend object ID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ObjectID retrieves a named URL parameter that must be a backend identifier.

Returns:
  - string: The identifier
  - error: A validation error for malformed identifiers
*/
func ObjectID(request *http.Request, name string) (string, error) {
	id := chi.URLParam(request, name)

	validator := &validate.Validator{}
	if err := validator.ObjectID(name, id).Err(); err != nil {
		return "", err
	}
	return id, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IsMultipart reports whether the request body is a multipart form.
*/
func IsMultipart(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

/*
FormFile reads an optional uploaded file from a multipart request.

Returns:
  - filename, content: The upload, or "" and nil when the field is absent
  - error: A validation error if the form cannot be parsed
*/
func FormFile(request *http.Request, field string) (string, []byte, error) {
	if err := request.ParseMultipartForm(MaxUploadBytes); err != nil {
		return "", nil, apperr.ValidationError("Invalid multipart form")
	}

	file, header, err := request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, nil
		}
		return "", nil, apperr.ValidationError(fmt.Sprintf("Invalid file in %q", field))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, apperr.ValidationError(fmt.Sprintf("Unreadable file in %q", field))
	}

	return header.Filename, content, nil
}

/*
Principal returns the signed-in user of the browser session, or nil.
*/
func Principal(request *http.Request) *identity.User {
	store := ctxutil.GetSession(request.Context())
	if store == nil {
		return nil
	}
	return store.Principal()
}

/*
RequiredPrincipal ensures the browser session is authenticated.

Returns:
  - *identity.User: The signed-in user
  - error: apperr.Unauthorized if no one is signed in
*/
func RequiredPrincipal(request *http.Request) (*identity.User, error) {

	// Get the session principal
	principal := Principal(request)

	// If the user is not authenticated, return an error
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return principal, nil
}
