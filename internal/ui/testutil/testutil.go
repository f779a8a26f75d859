// Package testutil holds helpers for asserting on rendered views.
package testutil

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR escape sequences.
func StripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

// Lines returns the unstyled lines of a view without trailing blank lines.
func Lines(view string) []string {
	lines := strings.Split(StripANSI(view), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FindLine returns the first unstyled line containing substr, or "".
func FindLine(view, substr string) string {
	for _, line := range Lines(view) {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// Width returns the widest line of a view, ignoring styling.
func Width(view string) int {
	return lipgloss.Width(StripANSI(view))
}
