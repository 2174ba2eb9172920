package utils

import (
	"strings"
)

// NormalizeName trims surrounding whitespace and collapses internal runs
// of whitespace to single spaces, so "  Kovács   Anna " matches the
// spreadsheet's "Kovács Anna".
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeEmail normalizes email addresses (lowercase and trim)
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
