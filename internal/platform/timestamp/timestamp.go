// Package timestamp parses server creation timestamps explicitly instead of
// relying on lexicographic ordering of their string form.
package timestamp

import (
	"fmt"
	"strings"
	"time"

	apperrors "diagnocare/internal/platform/errors"
)

// layouts accepted, in order. Zone-less values are local date-times as
// emitted by the API and are interpreted as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp: %w", apperrors.ErrInvalidInput)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", raw, apperrors.ErrInvalidInput)
}

// ParsePtr returns ok=false for nil or unparseable values.
func ParsePtr(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	t, err := Parse(*raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Format renders a timestamp for display, falling back to the raw value when
// it cannot be parsed.
func Format(raw *string) string {
	if raw == nil || *raw == "" {
		return "—"
	}
	t, err := Parse(*raw)
	if err != nil {
		return *raw
	}
	return t.Format("02/01/2006 15:04")
}
