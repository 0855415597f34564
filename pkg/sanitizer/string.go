package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses internal
// whitespace runs to single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName normalizes a staff display name. Staff names are group keys
// in availability results, so upstream whitespace noise must not split one
// trainer into two groups.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeID trims an identifier received from upstream or a query string.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}
