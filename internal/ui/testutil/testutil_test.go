package testutil

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"colour", "\x1b[38;2;255;0;0mred\x1b[0m text", "red text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	got := Lines("\x1b[1ma\x1b[0m\nb\n  \n")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Lines() = %q", got)
	}
}

func TestFindLine(t *testing.T) {
	view := "first\n\x1b[1msecond line\x1b[0m\nthird"
	if got := FindLine(view, "second"); got != "second line" {
		t.Errorf("FindLine() = %q", got)
	}
	if got := FindLine(view, "missing"); got != "" {
		t.Errorf("FindLine() = %q, want empty", got)
	}
}

func TestWidth(t *testing.T) {
	if got := Width("ab\n\x1b[1mabcd\x1b[0m\n日本"); got != 4 {
		t.Errorf("Width() = %d, want 4", got)
	}
}
