// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package slice complements the standard [slices] package with generic Map
and Filter helpers used when shaping read models, such as reducing a
drill's submitted media list to stored references:

	refs := slice.Filter(slice.Map(urls, media.Relative), func(ref string) bool { return ref != "" })
*/
package slice

// Map maps a slice of type T to a slice of type U.
// A nil input yields an empty, non-nil slice so JSON renders "[]".
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns only elements where the predicate evaluates to true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// Contains reports whether any element satisfies the predicate.
func Contains[T any](input []T, predicate func(T) bool) bool {
	for _, v := range input {
		if predicate(v) {
			return true
		}
	}
	return false
}
