package utils

import (
	"regexp"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(`[^0-9]`)

// NormalizePhone strips everything but digits from a phone number, so
// "+62 812-3456-789" becomes "628123456789".
func NormalizePhone(number string) string {
	return nonDigitRegex.ReplaceAllString(number, "")
}

// Concat joins the non-empty parts with sep, skipping empty strings so no
// stray separators appear.
func Concat(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
