// Package cursor tracks the selected row and scroll offset of a list.
package cursor

import "github.com/llehouerou/cadence/internal/keymap"

// Cursor holds a selected position and the first visible row. The list
// length and viewport height are passed in because both change while
// the list is shown.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below the cursor
}

// New creates a cursor keeping margin rows around the selection.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected position.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Move shifts the selection by delta, clamped to the list.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump selects pos, clamped to the list. No-op on an empty list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.scroll(listLen, height)
}

// Reset selects the first row.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

// Clamp pulls the selection back inside a list that shrank and
// reports whether it moved.
func (c *Cursor) Clamp(listLen, height int) bool {
	old := c.pos
	if listLen == 0 {
		c.Reset()
		return old != 0
	}
	c.pos = clamp(c.pos, listLen-1)
	c.scroll(listLen, height)
	return c.pos != old
}

// VisibleRange returns the [start, end) rows to draw.
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// HandleAction applies a navigation action and reports whether it
// was one.
func (c *Cursor) HandleAction(a keymap.Action, listLen, height int) bool {
	switch a {
	case keymap.ActionMoveDown:
		c.Move(1, listLen, height)
	case keymap.ActionMoveUp:
		c.Move(-1, listLen, height)
	case keymap.ActionJumpStart:
		c.Reset()
	case keymap.ActionJumpEnd:
		c.Jump(listLen-1, listLen, height)
	default:
		return false
	}
	return true
}

func (c *Cursor) scroll(listLen, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, maxVal int) int {
	return max(0, min(v, maxVal))
}
