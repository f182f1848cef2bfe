package viz

import (
	"math"
	"strings"
)

const brailleBase = 0x2800

// Braille dots per cell, 2 wide by 4 high:
//
//	1 4
//	2 5
//	3 6
//	7 8
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in Braille sub-pixels, twice as
// many columns and four times as many rows as characters.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = []rune(strings.Repeat(string(rune(brailleBase)), w))
	}
	return c
}

// Set lights sub-pixel (x, y) with y growing downwards. Points off the
// canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= brailleDots[y%4][x%2]
}

// Scatter plots the points (xs[i], ys[i]) scaled to fill the canvas, with
// y growing upwards. Non-finite points are skipped.
func (c *Canvas) Scatter(xs, ys []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	xlo, xhi := bounds(xs[:n])
	ylo, yhi := bounds(ys[:n])

	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	for i := 0; i < n; i++ {
		if !isFinite(xs[i]) || !isFinite(ys[i]) {
			continue
		}
		px := int(math.Round((xs[i] - xlo) / (xhi - xlo) * w))
		py := int(math.Round((yhi - ys[i]) / (yhi - ylo) * h))
		c.Set(px, py)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// bounds is the finite range of xs, widened to unit length when flat.
func bounds(xs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range xs {
		if isFinite(v) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 1
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
