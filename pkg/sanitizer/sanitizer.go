// Package sanitizer normalises user supplied strings before validation and storage.
package sanitizer

import (
	"strings"
	"unicode"
)

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SingleLine strips control characters and collapses runs of whitespace into
// single spaces. Used for names and titles.
func SingleLine(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}), " ")
}

// MultiLine keeps newlines and tabs but drops other control characters and
// trims the result. Used for descriptions, comments and contact messages.
func MultiLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
