// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package upload sends images to the backend and resolves the paths it returns.

The backend stores uploads under /uploads on its own host, outside the /api
prefix the dashboard talks to, so every relative path must be resolved against
the asset base rather than the API base.
*/
package upload

import "strings"

// FieldImage is the multipart field carrying the uploaded file.
const FieldImage = "image"

const uploadsPrefix = "/uploads"

// AssetBase strips a trailing /api (and slash) from the backend URL.
func AssetBase(backendURL string) string {
	base := strings.TrimRight(backendURL, "/")
	return strings.TrimSuffix(base, "/api")
}

/*
ResolveImageURL turns an image reference returned by the backend into an
absolute URL.

Rules:
  - Empty stays empty.
  - http:// and https:// URLs are returned unchanged.
  - Paths under /uploads are prefixed with the asset base of backendURL.
  - Anything else is returned as is.
*/
func ResolveImageURL(backendURL, path string) string {
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, uploadsPrefix):
		return AssetBase(backendURL) + path
	default:
		return path
	}
}
