// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package listview

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

// ParamSearch is the query parameter carrying the search term.
const ParamSearch = "search"

// Query is the state of one list view: {page, rowsPerPage, search}.
//
// # URL Round Trip
//
// For every valid Query q, ParseQuery(q.Values()) == q, so a reload with the
// same query string reproduces the same view.
type Query struct {
	Page        int    `json:"page"`
	RowsPerPage int    `json:"rowsPerPage"`
	Search      string `json:"search"`
}

// DefaultQuery is {1, 10, ""}.
func DefaultQuery() Query {
	return Query{Page: pagination.DefaultPage, RowsPerPage: pagination.DefaultRowsPerPage}
}

// ParseQuery reads the triple from a query string. Missing or invalid page
// numbers fall back to the defaults.
func ParseQuery(values url.Values) Query {
	params := pagination.FromValues(values)
	return Query{
		Page:        params.Page,
		RowsPerPage: params.RowsPerPage,
		Search:      values.Get(ParamSearch),
	}
}

// Valid reports whether the query can be represented in a URL as is.
func (query Query) Valid() bool {
	return query.Page >= 1 && query.RowsPerPage > 0
}

// Values renders the query. Search is omitted when empty.
func (query Query) Values() url.Values {
	values := url.Values{}
	values.Set(pagination.ParamPage, strconv.Itoa(query.Page))
	values.Set(pagination.ParamRowsPerPage, strconv.Itoa(query.RowsPerPage))
	if query.Search != "" {
		values.Set(ParamSearch, query.Search)
	}
	return values
}

// BackendValues renders the query for a backend list endpoint. Unlike
// [Query.Values], a whitespace-only search is not sent.
func (query Query) BackendValues() url.Values {
	values := query.Values()
	if strings.TrimSpace(query.Search) == "" {
		values.Del(ParamSearch)
	}
	return values
}

// Encode renders the query as a URL query string.
func (query Query) Encode() string {
	return query.Values().Encode()
}

// Params converts the query to pagination parameters.
func (query Query) Params() pagination.Params {
	return pagination.Params{Page: query.Page, RowsPerPage: query.RowsPerPage}
}

// WithPage moves to page, clamped to 1.
func (query Query) WithPage(page int) Query {
	if page < 1 {
		page = 1
	}
	query.Page = page
	return query
}

// WithRowsPerPage changes the page size and resets to the first page.
func (query Query) WithRowsPerPage(rowsPerPage int) Query {
	if rowsPerPage < 1 {
		rowsPerPage = pagination.DefaultRowsPerPage
	}
	query.RowsPerPage = rowsPerPage
	query.Page = 1
	return query
}

// WithSearch changes the search term and resets to the first page.
func (query Query) WithSearch(search string) Query {
	query.Search = search
	query.Page = 1
	return query
}

// Canonicalize parses values and returns the canonical form of the whole
// query string: the list triple rewritten, every other parameter (filters,
// sort) preserved. changed reports whether a redirect to the canonical URL
// is needed.
func Canonicalize(values url.Values) (query Query, canonical url.Values, changed bool) {
	query = ParseQuery(values)

	canonical = url.Values{}
	for key, list := range values {
		switch key {
		case pagination.ParamPage, pagination.ParamRowsPerPage, ParamSearch:
			continue
		}
		canonical[key] = append([]string(nil), list...)
	}
	for key, list := range query.Values() {
		canonical[key] = list
	}

	return query, canonical, canonical.Encode() != values.Encode()
}
