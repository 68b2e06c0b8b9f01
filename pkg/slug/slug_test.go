// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/slug"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "shoe.png", "shoe.png"},
		{"accents_and_spaces", "Été Shoe.PNG", "ete-shoe.png"},
		{"directories_dropped", `C:\Users\ada\red  dress.jpeg`, "red-dress.jpeg"},
		{"no_extension", "Summer Sale", "summer-sale"},
		{"only_symbols", "???.jpg", "file.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Filename(tt.in))
		})
	}
}
