package viz

import "github.com/guptarohit/asciigraph"

// Sparkline plots a running MEGNO. Long series are compressed to width by
// asciigraph.
func Sparkline(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
