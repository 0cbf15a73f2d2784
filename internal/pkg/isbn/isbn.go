package isbn

import (
	"strings"
	"unicode"
)

// Normalize strips all non-digit characters from a raw ISBN.
// Returns an empty string when no digits remain.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidFormat reports whether a normalized ISBN is a well-formed ISBN-13:
// exactly 13 digits starting with the 978 or 979 Bookland prefix.
func ValidFormat(normalized string) bool {
	if len(normalized) != 13 {
		return false
	}
	for _, r := range normalized {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return strings.HasPrefix(normalized, "978") || strings.HasPrefix(normalized, "979")
}
