// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package listview_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammad-keath-zaytowna/fb-admin/internal/listview"
)

/*
TestQuery_RoundTrip verifies that parsing a rendered query yields the same triple.
*/
func TestQuery_RoundTrip(t *testing.T) {
	tests := []listview.Query{
		{Page: 1, RowsPerPage: 10},
		{Page: 3, RowsPerPage: 25, Search: "shoe"},
		{Page: 7, RowsPerPage: 50, Search: "a&b=c d"},
		{Page: 2, RowsPerPage: 5, Search: "  padded  "},
	}

	for _, want := range tests {
		t.Run(want.Encode(), func(t *testing.T) {
			got := listview.ParseQuery(want.Values())
			assert.Equal(t, want, got)

			parsed, err := url.ParseQuery(want.Encode())
			assert.NoError(t, err)
			assert.Equal(t, want, listview.ParseQuery(parsed))
		})
	}
}

/*
TestQuery_DefaultsAndOmissions covers missing parameters and the empty search.
*/
func TestQuery_DefaultsAndOmissions(t *testing.T) {
	assert.Equal(t, listview.DefaultQuery(), listview.ParseQuery(url.Values{}))
	assert.Equal(t, listview.DefaultQuery(), listview.ParseQuery(url.Values{"page": {"0"}, "rowsPerPage": {"x"}}))

	values := listview.DefaultQuery().Values()
	assert.False(t, values.Has(listview.ParamSearch))
	assert.Equal(t, "page=1&rowsPerPage=10", listview.DefaultQuery().Encode())
}

/*
TestQuery_Resets verifies that page-size and search changes return to page 1.
*/
func TestQuery_Resets(t *testing.T) {
	onPage3 := listview.Query{Page: 3, RowsPerPage: 10}

	assert.Equal(t, listview.Query{Page: 1, RowsPerPage: 25}, onPage3.WithRowsPerPage(25))
	assert.Equal(t, listview.Query{Page: 1, RowsPerPage: 10, Search: "x"}, onPage3.WithSearch("x"))
	assert.Equal(t, listview.Query{Page: 4, RowsPerPage: 10}, onPage3.WithPage(4))
	assert.Equal(t, 1, onPage3.WithPage(-2).Page)
	assert.Equal(t, 10, onPage3.WithRowsPerPage(0).RowsPerPage)
}

/*
TestCanonicalize keeps filters and reports whether a redirect is needed.
*/
func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		changed   bool
		wantQuery listview.Query
	}{
		{"empty", "", "page=1&rowsPerPage=10", true, listview.DefaultQuery()},
		{"canonical", "page=2&rowsPerPage=10", "page=2&rowsPerPage=10", false, listview.Query{Page: 2, RowsPerPage: 10}},
		{"keeps_filters", "status=Pending&page=2", "page=2&rowsPerPage=10&status=Pending", true, listview.Query{Page: 2, RowsPerPage: 10}},
		{"drops_empty_search", "page=1&rowsPerPage=10&search=", "page=1&rowsPerPage=10", true, listview.DefaultQuery()},
		{"fixes_invalid_page", "page=-1&rowsPerPage=25&search=a", "page=1&rowsPerPage=25&search=a", true, listview.Query{Page: 1, RowsPerPage: 25, Search: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			assert.NoError(t, err)

			query, canonical, changed := listview.Canonicalize(values)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.want, canonical.Encode())
			assert.Equal(t, tt.changed, changed)
		})
	}
}

/*
TestQuery_BackendValues never sends a blank search.
*/
func TestQuery_BackendValues(t *testing.T) {
	assert.False(t, listview.Query{Page: 1, RowsPerPage: 10, Search: "   "}.BackendValues().Has(listview.ParamSearch))
	assert.Equal(t, "page=2&rowsPerPage=25&search=shoe", listview.Query{Page: 2, RowsPerPage: 25, Search: "shoe"}.BackendValues().Encode())
}
