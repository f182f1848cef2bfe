package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	barDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	barPending = lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))
)

// ProgressBar renders a fixed-width bar for a fraction in [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return barDone.Render(strings.Repeat("█", filled)) +
		barPending.Render(strings.Repeat("░", width-filled))
}

// Metric renders "label: value" in the metric styles.
func Metric(label, value string) string {
	return MetricLabel.Render(label+": ") + MetricValue.Render(value)
}
