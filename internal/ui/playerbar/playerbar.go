// Package playerbar renders the now-playing bar below the browser.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// Height is the rendered height, border included.
const Height = 3

const (
	minBarWidth = 5
	separator   = "   "
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(0, 1)
}

// Render draws the bar for a state snapshot at the given outer width.
func Render(s playback.Snapshot, width int) string {
	inner := width - 4
	if inner <= 0 {
		return ""
	}
	return barStyle().Render(content(s, inner))
}

func content(s playback.Snapshot, width int) string {
	st := styles.T().S()
	ic := icons.Current()

	modes := Modes(s)
	if s.Track == nil {
		return st.Muted.Render(render.Row(ic.Stop+" Stopped", modes, width))
	}

	status := ic.Pause
	switch s.Status() {
	case playback.StatusPlaying:
		status = ic.Play
	case playback.StatusStopped:
		status = ic.Stop
	}

	var progress time.Duration
	if s.HasProgress {
		progress = s.Progress
	}
	clock := FormatDuration(progress) + " / " + FormatDuration(s.Length)

	right := clock
	if modes != "" {
		right += separator + modes
	}
	rightWidth := lipgloss.Width(status) + 1 + minBarWidth + 1 + lipgloss.Width(right)

	text := Describe(*s.Track)
	textWidth := min(lipgloss.Width(text), max(width-rightWidth-len(separator), 0))
	text = render.Fit(text, textWidth)

	barWidth := max(width-textWidth-len(separator)-rightWidth+minBarWidth, minBarWidth)
	return st.Title.Render(text) + separator +
		status + " " + ProgressBar(progress, s.Length, barWidth) + " " +
		st.Muted.Render(right)
}

// Describe returns "Title · Artist · Album", skipping unknown parts.
func Describe(t library.Track) string {
	parts := []string{t.DisplayTitle()}
	if t.Artist != "" && t.Artist != library.Unknown {
		parts = append(parts, t.Artist)
	}
	if t.Album != "" && t.Album != library.Unknown {
		parts = append(parts, t.Album)
	}
	return strings.Join(parts, " · ")
}

// Modes returns the shuffle and repeat indicators, empty when both are off.
func Modes(s playback.Snapshot) string {
	ic := icons.Current()
	var parts []string
	if s.Shuffle {
		parts = append(parts, ic.Shuffle)
	}
	switch s.Repeat {
	case playback.RepeatAll:
		parts = append(parts, ic.RepeatAll)
	case playback.RepeatOne:
		parts = append(parts, ic.RepeatOne)
	}
	return strings.Join(parts, " ")
}

// ProgressBar draws position out of length in width cells.
func ProgressBar(position, length time.Duration, width int) string {
	filled := 0
	if length > 0 {
		filled = min(int(float64(width)*float64(position)/float64(length)), width)
	}
	filled = max(filled, 0)
	return lipgloss.NewStyle().Foreground(styles.T().Accent).Render(strings.Repeat("━", filled)) +
		styles.T().S().Subtle.Render(strings.Repeat("─", width-filled))
}

// FormatDuration formats d as m:ss.
func FormatDuration(d time.Duration) string {
	d = max(d, 0)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
