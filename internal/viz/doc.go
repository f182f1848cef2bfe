// Package viz renders boards and traces in the terminal.
//
//   - [RenderMap]: coloured block map of one board column (lipgloss)
//   - [Sparkline]: asciigraph plot of a running MEGNO
//   - [Canvas]: Braille canvas for orbit projections
//   - [ProgressModel]: Bubble Tea view of a running farm
package viz
