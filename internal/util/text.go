package util

import "strings"

// SanitizeText drops invalid UTF-8 and NUL bytes and collapses every run of
// whitespace, including newlines, into a single space.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	sanitized = strings.ReplaceAll(sanitized, "\x00", "")
	return strings.Join(strings.Fields(sanitized), " ")
}
