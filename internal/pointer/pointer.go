// Package pointer has small generic helpers for optional values.
package pointer

// To returns a pointer to a copy of t.
func To[T any](t T) *T {
	return &t
}

// Value dereferences t, yielding the zero value for nil.
func Value[T any](t *T) T {
	return ValueOr(t, *new(T))
}

// ValueOr dereferences t, yielding fallback for nil.
func ValueOr[T any](t *T, fallback T) T {
	if t != nil {
		return *t
	}
	return fallback
}
