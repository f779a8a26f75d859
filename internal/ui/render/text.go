// Package render provides text helpers for fixed-width terminal cells.
package render

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters and invalid UTF-8 from tag text so
// it cannot break the terminal layout. Non-breaking spaces become spaces.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == unicode.ReplacementChar:
			return -1
		case r == ' ':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

// Truncate shortens s to maxWidth cells, ending with "…" when cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// Fit truncates s and pads it with spaces to exactly width cells.
func Fit(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// Row places left and right at the edges of a line width cells wide.
// The left part is cut first when both do not fit.
func Row(left, right string, width int) string {
	rw := runewidth.StringWidth(right)
	lw := max(width-rw-1, 0)
	left = Truncate(left, lw)
	gap := max(width-runewidth.StringWidth(left)-rw, 1)
	return left + strings.Repeat(" ", gap) + right
}
