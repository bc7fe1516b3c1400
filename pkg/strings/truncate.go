// Package strings holds text helpers for terminal output.
package strings

import (
	"strings"
)

// CellMaxLen is the widest a free-text table cell may get, such as the
// options column of the features listing.
const CellMaxLen = 60

// minCellLen leaves room for one character and the ellipsis.
const minCellLen = 4

// Cell flattens s to a single line and shortens it to at most maxLen runes,
// ending in "..." when something was cut. maxLen below 4 is raised to 4.
func Cell(s string, maxLen int) string {
	maxLen = max(maxLen, minCellLen)

	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
