// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Package pagination provides shared types and helpers for list views.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered by the backend list endpoints.
package pagination

import (
	"net/url"

	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/convert"
)

const (
	// DefaultRowsPerPage is the number of items per page if not specified.
	DefaultRowsPerPage = 10
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1

	// ParamPage is the query parameter carrying the page number.
	ParamPage = "page"
	// ParamRowsPerPage is the query parameter carrying the page size.
	ParamRowsPerPage = "rowsPerPage"
)

// Params holds the parsed page and page size from a query string.
type Params struct {
	Page        int
	RowsPerPage int
}

// Offset returns the index of the first row of [Page].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.RowsPerPage
}

// Meta is the pagination metadata returned by the backend list endpoints.
type Meta struct {
	Page        int `json:"page"`
	RowsPerPage int `json:"rowsPerPage"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
}

// NewMeta constructs pagination metadata.
//
// It automatically calculates the TotalPages based on the total count and page size.
func NewMeta(page, rowsPerPage, total int) Meta {
	totalPages := 0
	if rowsPerPage > 0 {
		totalPages = (total + rowsPerPage - 1) / rowsPerPage
	}

	return Meta{
		Page:        page,
		RowsPerPage: rowsPerPage,
		Total:       total,
		TotalPages:  totalPages,
	}
}

// HasNext reports whether a page follows the current one.
func (m Meta) HasNext() bool {
	return m.Page < m.TotalPages
}

// HasPrev reports whether a page precedes the current one.
func (m Meta) HasPrev() bool {
	return m.Page > 1
}

// Controls is what a list view needs to draw its page navigation.
type Controls struct {
	HasPrev bool `json:"hasPrev"`
	HasNext bool `json:"hasNext"`
	// FirstRow and LastRow are 1-indexed; both are 0 on an empty page.
	FirstRow int `json:"firstRow"`
	LastRow  int `json:"lastRow"`
}

// Controls derives the page navigation for m.
func (m Meta) Controls() Controls {
	controls := Controls{HasPrev: m.HasPrev(), HasNext: m.HasNext()}

	offset := Params{Page: m.Page, RowsPerPage: m.RowsPerPage}.Offset()
	if offset >= m.Total {
		return controls
	}
	controls.FirstRow = offset + 1
	controls.LastRow = min(offset+m.RowsPerPage, m.Total)
	return controls
}

// FromValues parses "page" and "rowsPerPage" from a query string.
//
// # Clamping
//
// Missing, malformed, zero or negative values fall back to [DefaultPage]
// and [DefaultRowsPerPage].
func FromValues(values url.Values) Params {
	page := parseIntParam(values, ParamPage, DefaultPage)
	rowsPerPage := parseIntParam(values, ParamRowsPerPage, DefaultRowsPerPage)

	if page < 1 {
		page = DefaultPage
	}

	if rowsPerPage < 1 {
		rowsPerPage = DefaultRowsPerPage
	}

	return Params{Page: page, RowsPerPage: rowsPerPage}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(values url.Values, key string, defaultVal int) int {
	return convert.ToIntD(values.Get(key), defaultVal)
}
