package questions

import (
	"regexp"
	"strings"
)

var parenthetical = regexp.MustCompile(`\(.*?\)`)

// Normalize reduces a free-text answer to its canonical comparable form:
// parenthesized hints are removed, everything from the first period on is
// discarded, and the remainder is trimmed and lowercased. Two answers are
// considered a match iff their normalized forms are equal.
func Normalize(raw string) string {
	s := parenthetical.ReplaceAllString(raw, "")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimSpace(s))
}
