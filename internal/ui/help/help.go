// Package help renders the key binding reference screen.
package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

var contextLabels = map[string]string{
	"global":    "Global",
	"playback":  "Playback",
	"navigator": "Browser",
	"playlist":  "Playlists",
}

// Model is a scrollable list of bindings grouped by context.
type Model struct {
	lines  []string
	offset int
	width  int
	height int
}

// New builds the help screen for bindings.
func New(bindings []keymap.Binding) Model {
	return Model{lines: buildLines(bindings)}
}

// SetSize sets the screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.offset = min(m.offset, m.maxOffset())
}

// HandleAction scrolls on navigation actions and reports whether the
// action was one.
func (m *Model) HandleAction(a keymap.Action) bool {
	switch a {
	case keymap.ActionMoveDown:
		m.offset = min(m.offset+1, m.maxOffset())
	case keymap.ActionMoveUp:
		m.offset = max(m.offset-1, 0)
	case keymap.ActionJumpStart:
		m.offset = 0
	case keymap.ActionJumpEnd:
		m.offset = m.maxOffset()
	default:
		return false
	}
	return true
}

// View renders the visible part of the reference.
func (m Model) View() string {
	if m.height <= 0 {
		return ""
	}
	end := min(m.offset+m.height, len(m.lines))
	visible := m.lines[m.offset:end]
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(strings.Join(visible, "\n"))
}

func (m Model) maxOffset() int {
	return max(len(m.lines)-m.height, 0)
}

func buildLines(bindings []keymap.Binding) []string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.AccentAlt).Bold(true)

	keys := func(b keymap.Binding) string {
		return strings.Join(lo.Map(b.Keys, func(k string, _ int) string {
			return keymap.DisplayKey(k)
		}), ", ")
	}
	width := lo.Max(lo.Map(bindings, func(b keymap.Binding, _ int) int {
		return lipgloss.Width(keys(b))
	}))

	var lines []string
	for _, ctx := range keymap.Contexts {
		group := keymap.ByContext(bindings, ctx)
		if len(group) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		label := contextLabels[ctx]
		if label == "" {
			label = ctx
		}
		lines = append(lines,
			headerStyle.Render(label),
			t.S().Subtle.Render(strings.Repeat("─", width+24)),
		)
		for _, b := range group {
			k := keys(b)
			if k == "" {
				k = "-"
			}
			pad := strings.Repeat(" ", max(width-lipgloss.Width(k), 0))
			lines = append(lines, keyStyle.Render(k+pad)+"  "+t.S().Base.Render(b.Description))
		}
	}
	return lines
}
