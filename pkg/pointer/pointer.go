// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package pointer provides generic helpers for optional values.

Partial updates ("PUT /players/{id}" with only some fields) decode into
structs of pointers; these helpers keep the merge code short.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Apply overwrites *dst with *src when src is non-nil and reports whether it did.
func Apply[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}

// Replace points *dst at src when src is non-nil and reports whether it did.
// It is the nullable-field counterpart of [Apply].
func Replace[T any](dst **T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = src
	return true
}
