// Package headerbar renders the title line with the screen tabs.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// Height is the height of the header.
const Height = 1

const title = "cadence"

// Tab is one screen selector.
type Tab struct {
	Key    string
	Name   string
	Active bool
}

// Render draws the title followed by the tabs. Tabs that do not fit
// are dropped from the right.
func Render(tabs []Tab, width int) string {
	t := styles.T()
	if width < len(title) {
		return ""
	}

	out := styles.Gradient(title, t.Accent, t.AccentAlt)
	used := len(title)
	sep := t.S().Subtle.Render(" │ ")
	for i, tab := range tabs {
		text := render.Sanitize(tab.Key) + " " + tab.Name
		w := lipgloss.Width(text) + 3
		if used+w > width {
			break
		}
		style := t.S().Muted
		if tab.Active {
			style = t.S().Playing
		}
		if i == 0 {
			out += "   "
		} else {
			out += sep
		}
		out += style.Render(text)
		used += w
	}
	return out + strings.Repeat(" ", max(width-used, 0))
}
