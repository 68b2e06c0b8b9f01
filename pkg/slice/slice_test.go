// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/query"
	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/slice"
)

func TestMapFilterReduce(t *testing.T) {
	words := []string{"red", " ", "blue", ""}

	kept := slice.Filter(words, func(w string) bool { return strings.TrimSpace(w) != "" })
	assert.Equal(t, []string{"red", "blue"}, kept)

	lengths := slice.Map(kept, func(w string) int { return len(w) })
	assert.Equal(t, []int{3, 4}, lengths)

	total := slice.Reduce(lengths, 0, func(sum, n int) int { return sum + n })
	assert.Equal(t, 7, total)

	assert.Nil(t, slice.Map[string, int](nil, func(string) int { return 0 }))
	assert.Nil(t, query.StringSlice(" , "))
}
