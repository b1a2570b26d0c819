package helpers

import "strings"

// NullIfEmpty trims s and returns nil for an empty result, so optional text
// columns are stored as NULL through pgx.
func NullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NullIfZero returns nil for a non-positive id, otherwise a pointer to it.
func NullIfZero(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
