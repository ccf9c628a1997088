package utils

import (
	"database/sql"
	"fmt"
)

// NullStringToStringPtr converts a sql.NullString to a *string.
func NullStringToStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

// PointerToString renders a *string for logging, showing "<nil>" for nil.
func PointerToString(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", *s)
}

// MaskKey hides all but the last four characters of an API key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
