package airtable

import (
	"fmt"
	"strings"
)

// Formula builders for Airtable's filterByFormula expressions. Values are
// embedded as double-quoted strings, so embedded quotes and backslashes
// must be escaped before interpolation.

func escapeValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// Equals matches records whose field equals value exactly.
func Equals(field, value string) string {
	return fmt.Sprintf(`{%s} = "%s"`, field, escapeValue(value))
}

// EqualsFold matches records whose field equals value, ignoring case.
func EqualsFold(field, value string) string {
	return fmt.Sprintf(`LOWER({%s}) = "%s"`, field, escapeValue(strings.ToLower(value)))
}

// RecordIDIn matches records whose ID is any of ids, as a single OR of
// per-ID equality predicates. This keeps a member-list fetch to one call
// regardless of family size.
func RecordIDIn(ids []string) string {
	if len(ids) == 1 {
		return fmt.Sprintf(`RECORD_ID() = "%s"`, escapeValue(ids[0]))
	}

	predicates := make([]string, 0, len(ids))
	for _, id := range ids {
		predicates = append(predicates, fmt.Sprintf(`RECORD_ID() = "%s"`, escapeValue(id)))
	}
	return fmt.Sprintf("OR(%s)", strings.Join(predicates, ", "))
}
