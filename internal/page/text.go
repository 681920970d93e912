package page

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText applies NFKC (folds NBSP and friends to plain spaces), collapses
// runs of whitespace and trims.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
