package slug

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Make lowercases input and joins its letter/digit runs with dashes. Cyrillic
// and other scripts are kept as is.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = separators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}
