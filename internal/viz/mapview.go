package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/arnoldweb/internal/farm"
)

// MaxMapWidth caps the rendered map width in terminal columns; larger
// boards are sampled down.
var MaxMapWidth = 64

// RenderMap draws one column of b with half-block characters, two board
// rows per line and row 0 at the bottom. Non-finite cells use the theme's
// Invalid colour.
func RenderMap(b *farm.Board, column int, theme Theme) (string, error) {
	if column < 0 || column >= b.Width {
		return "", fmt.Errorf("column %d out of range [0,%d)", column, b.Width)
	}
	lo, hi, ok := b.Range(column)
	if !ok {
		return "", fmt.Errorf("column %d has no finite values", column)
	}

	values := b.Column(column)
	cols := sampleAxis(b.XRes, MaxMapWidth)
	rows := sampleAxis(b.YRes, MaxMapWidth)

	colour := func(x, y int) lipgloss.Color {
		v := values[y*b.XRes+x]
		if !isFinite(v) {
			return theme.Invalid
		}
		return rampColor(theme.Ramp, v, lo, hi)
	}

	var sb strings.Builder
	for i := len(rows) - 1; i >= 0; i -= 2 {
		for _, x := range cols {
			top := lipgloss.NewStyle().Foreground(colour(x, rows[i]))
			if i > 0 {
				top = top.Background(colour(x, rows[i-1]))
			}
			sb.WriteString(top.Render("▀"))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(legend(theme, lo, hi))
	return sb.String(), nil
}

func legend(theme Theme, lo, hi float64) string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Render(fmt.Sprintf("%.3g ", lo)))
	for _, c := range theme.Ramp {
		sb.WriteString(lipgloss.NewStyle().Foreground(c).Render("██"))
	}
	sb.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).Render(fmt.Sprintf(" %.3g", hi)))
	return sb.String()
}

// rampColor picks the ramp entry for v in [lo, hi].
func rampColor(ramp []lipgloss.Color, v, lo, hi float64) lipgloss.Color {
	if hi <= lo {
		return ramp[len(ramp)/2]
	}
	idx := int((v - lo) / (hi - lo) * float64(len(ramp)))
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return ramp[idx]
}

// sampleAxis returns at most max evenly spread indexes of [0, n).
func sampleAxis(n, max int) []int {
	if max < 1 || n <= max {
		max = n
	}
	idx := make([]int, max)
	for i := range idx {
		idx[i] = i * n / max
	}
	return idx
}
