// Package opt centralizes default substitution for optional server fields.
// Domain types carry optional values as pointers; view mapping goes through
// these helpers so placeholder text lives in one place.
package opt

import "math"

// Placeholder is rendered for any absent textual value.
const Placeholder = "—"

func Or[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// String returns def when v is nil or empty.
func String(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func Text(v *string) string {
	return String(v, Placeholder)
}

func Bool(v *bool) bool {
	return v != nil && *v
}

// Percent rounds a 0..1 probability to a whole percentage.
func Percent(v *float64) int {
	if v == nil {
		return 0
	}
	return int(math.Round(*v * 100))
}

// Round rounds an already-scaled score, treating nil and zero as 0.
func Round(v *float64) int {
	if v == nil {
		return 0
	}
	return int(math.Round(*v))
}

func Ptr[T any](v T) *T {
	return &v
}
