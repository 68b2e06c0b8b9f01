// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/pagination"
)

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 31)

	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext())
	assert.True(t, meta.HasPrev())
	assert.False(t, pagination.NewMeta(1, 10, 0).HasNext())
}

func TestFromValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, RowsPerPage: 10}},
		{"explicit", "page=3&rowsPerPage=25", pagination.Params{Page: 3, RowsPerPage: 25}},
		{"garbage", "page=abc&rowsPerPage=-4", pagination.Params{Page: 1, RowsPerPage: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			assert.Equal(t, tt.want, pagination.FromValues(values))
		})
	}

	assert.Equal(t, 20, pagination.Params{Page: 3, RowsPerPage: 10}.Offset())
}

func TestMeta_Controls(t *testing.T) {
	tests := []struct {
		name string
		meta pagination.Meta
		want pagination.Controls
	}{
		{"first_page", pagination.NewMeta(1, 10, 35), pagination.Controls{HasNext: true, FirstRow: 1, LastRow: 10}},
		{"middle_page", pagination.NewMeta(2, 10, 35), pagination.Controls{HasPrev: true, HasNext: true, FirstRow: 11, LastRow: 20}},
		{"last_partial_page", pagination.NewMeta(4, 10, 35), pagination.Controls{HasPrev: true, FirstRow: 31, LastRow: 35}},
		{"empty", pagination.NewMeta(1, 10, 0), pagination.Controls{}},
		{"past_the_end", pagination.NewMeta(6, 10, 35), pagination.Controls{HasPrev: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.Controls())
		})
	}
}
