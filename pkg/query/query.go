// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

// Package query parses list-valued settings and form fields written as one
// comma-separated string ("red, blue" or "https://a.example,https://b.example").
package query

import "strings"

// StringSlice splits val on commas, trimming each entry and dropping blanks.
// It returns nil for an empty or all-blank input.
func StringSlice(val string) []string {
	var res []string
	for _, v := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(v); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
