package cursor

import (
	"testing"

	"github.com/llehouerou/cadence/internal/keymap"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		initial    int
		delta      int
		len        int
		height     int
		wantPos    int
		wantOffset int
	}{
		{"down within bounds", 2, 0, 1, 10, 5, 1, 0},
		{"down scrolls with margin", 2, 0, 3, 10, 5, 3, 1},
		{"up clamps to 0", 2, 2, -5, 10, 5, 0, 0},
		{"down clamps to last", 2, 5, 15, 10, 5, 9, 5},
		{"short list never scrolls", 2, 0, 3, 4, 5, 3, 0},
		{"margin shrinks in small viewport", 5, 0, 2, 10, 3, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.Jump(tt.initial, tt.len, tt.height)
			c.Move(tt.delta, tt.len, tt.height)
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestMove_EmptyList(t *testing.T) {
	c := New(2)
	c.Move(3, 0, 5)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("got pos=%d offset=%d, want 0,0", c.Pos(), c.Offset())
	}
}

func TestMove_ScrollsBackUp(t *testing.T) {
	c := New(2)
	c.Jump(9, 10, 5)
	if c.Offset() != 5 {
		t.Fatalf("offset after jump = %d, want 5", c.Offset())
	}
	c.Move(-3, 10, 5)
	if c.Pos() != 6 || c.Offset() != 4 {
		t.Errorf("got pos=%d offset=%d, want 6,4", c.Pos(), c.Offset())
	}
}

func TestClamp(t *testing.T) {
	c := New(1)
	c.Jump(8, 10, 4)

	if !c.Clamp(5, 4) {
		t.Error("Clamp() = false, want true after shrink")
	}
	if c.Pos() != 4 {
		t.Errorf("pos = %d, want 4", c.Pos())
	}
	if c.Offset() != 1 {
		t.Errorf("offset = %d, want 1", c.Offset())
	}
	if c.Clamp(5, 4) {
		t.Error("Clamp() = true for an unchanged list")
	}
	if !c.Clamp(0, 4) || c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("empty list: pos=%d offset=%d", c.Pos(), c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(0)
	c.Jump(7, 10, 4)

	start, end := c.VisibleRange(10, 4)
	if start != 4 || end != 8 {
		t.Errorf("VisibleRange() = [%d,%d), want [4,8)", start, end)
	}
	if s, e := c.VisibleRange(0, 4); s != 0 || e != 0 {
		t.Errorf("empty VisibleRange() = [%d,%d)", s, e)
	}
	if s, e := c.VisibleRange(10, 0); s != 0 || e != 0 {
		t.Errorf("zero height VisibleRange() = [%d,%d)", s, e)
	}
}

func TestHandleAction(t *testing.T) {
	tests := []struct {
		action  keymap.Action
		handled bool
		wantPos int
	}{
		{keymap.ActionMoveDown, true, 4},
		{keymap.ActionMoveUp, true, 2},
		{keymap.ActionJumpStart, true, 0},
		{keymap.ActionJumpEnd, true, 9},
		{keymap.ActionSelect, false, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			c := New(1)
			c.Jump(3, 10, 5)
			if got := c.HandleAction(tt.action, 10, 5); got != tt.handled {
				t.Errorf("HandleAction() = %v, want %v", got, tt.handled)
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}
}
