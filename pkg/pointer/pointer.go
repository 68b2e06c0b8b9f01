// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package pointer handles the optional fields of backend payloads.

The shop backend omits counters and flags it has no value for ("remainingUsers",
"daysRemaining", "canSeeAllOrders"), so those fields are pointers. These helpers
build and read them without nil checks at every call site.
*/
package pointer

// To returns a pointer to v, e.g. for an optional PATCH field.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, or returns the zero value when p is nil.
func Val[T any](p *T) T {
	var zero T
	return Fallback(p, zero)
}

// Fallback dereferences p, or returns fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
