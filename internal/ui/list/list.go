// Package list provides the scrollable bordered panel used by every
// browser column.
package list

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/ui/cursor"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

const (
	// ScrollMargin is the number of rows kept visible around the cursor.
	ScrollMargin = 3
	// Overhead is the height taken by the border, title and separator.
	Overhead = 4
)

// Model is a titled list of items rendered inside a border.
type Model[T any] struct {
	title   string
	label   func(T) string
	items   []T
	cursor  cursor.Cursor
	width   int
	height  int
	focused bool
}

// New creates an empty panel. label renders one item as a row.
func New[T any](title string, label func(T) string) Model[T] {
	return Model[T]{
		title:  title,
		label:  label,
		cursor: cursor.New(ScrollMargin),
	}
}

// Title returns the panel title.
func (m Model[T]) Title() string {
	return m.title
}

// SetItems replaces the items and keeps the cursor inside them.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.Clamp(len(items), m.rows())
}

// Items returns the current items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor, false when empty.
func (m Model[T]) Selected() (T, bool) {
	if m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// Select moves the cursor to index i.
func (m *Model[T]) Select(i int) {
	m.cursor.Jump(i, len(m.items), m.rows())
}

// SetSize sets the outer size, border included.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.cursor.Clamp(len(m.items), m.rows())
}

// SetFocused sets whether the panel receives navigation.
func (m *Model[T]) SetFocused(focused bool) {
	m.focused = focused
}

// Focused reports whether the panel has focus.
func (m Model[T]) Focused() bool {
	return m.focused
}

// HandleAction applies a navigation action and reports whether the
// selection moved.
func (m *Model[T]) HandleAction(a keymap.Action) bool {
	before := m.cursor.Pos()
	if !m.cursor.HandleAction(a, len(m.items), m.rows()) {
		return false
	}
	return m.cursor.Pos() != before
}

func (m Model[T]) rows() int {
	return max(m.height-Overhead, 0)
}

// View renders the panel. Items for which playing returns true are
// highlighted; playing may be nil.
func (m Model[T]) View(playing func(T) bool) string {
	if m.width <= 2 || m.height <= Overhead {
		return ""
	}
	inner := m.width - 2
	s := styles.T().S()

	lines := make([]string, 0, m.height-2)
	count := humanize.Comma(int64(len(m.items)))
	lines = append(lines, s.Title.Render(render.Row(m.title, count, inner)))
	lines = append(lines, s.Subtle.Render(strings.Repeat("─", inner)))

	start, end := m.cursor.VisibleRange(len(m.items), m.rows())
	for i := start; i < end; i++ {
		row := render.Fit(m.label(m.items[i]), inner)
		switch {
		case i == m.cursor.Pos() && m.focused:
			row = s.Cursor.Render(row)
		case playing != nil && playing(m.items[i]):
			row = s.Playing.Render(row)
		case i == m.cursor.Pos():
			row = s.Base.Render(row)
		default:
			row = s.Muted.Render(row)
		}
		lines = append(lines, row)
	}
	for len(lines) < m.height-2 {
		lines = append(lines, strings.Repeat(" ", inner))
	}

	return styles.Panel(m.focused).Render(strings.Join(lines, "\n"))
}
