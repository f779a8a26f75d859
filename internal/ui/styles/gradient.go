package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text bold with its foreground blended from one colour
// to the other, one step per grapheme cluster. Colours must be "#rrggbb";
// anything else renders grey.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	var b strings.Builder
	for i, c := range blend(len(clusters), from, to) {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex()))
		b.WriteString(style.Render(clusters[i]))
	}
	return b.String()
}

// blend returns n colours evenly spaced in HCL space.
func blend(n int, from, to lipgloss.Color) []colorful.Color {
	a, b := parseHex(from), parseHex(to)
	out := make([]colorful.Color, n)
	for i := range out {
		switch {
		case i == 0:
			out[i] = a
		case i == n-1:
			out[i] = b
		default:
			out[i] = a.BlendHcl(b, float64(i)/float64(n-1)).Clamped()
		}
	}
	return out
}

func parseHex(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return col
}
