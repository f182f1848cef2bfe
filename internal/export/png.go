package export

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/arnoldweb/internal/farm"
)

const paletteSize = 255

// boardGrid exposes one column of a board as a plotter.GridXYZ in pixel
// coordinates. Non-finite values are clamped to the finite range.
type boardGrid struct {
	board  *farm.Board
	values []float64
	lo, hi float64
}

func newBoardGrid(b *farm.Board, column int) (*boardGrid, error) {
	if column < 0 || column >= b.Width {
		return nil, fmt.Errorf("column %d out of range [0,%d)", column, b.Width)
	}
	lo, hi, ok := b.Range(column)
	if !ok {
		return nil, fmt.Errorf("column %d has no finite values", column)
	}
	if lo == hi {
		hi = lo + 1
	}
	g := &boardGrid{board: b, values: b.Column(column), lo: lo, hi: hi}
	for i, v := range g.values {
		g.values[i] = g.clamp(v)
	}
	return g, nil
}

func (g *boardGrid) clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), math.IsInf(v, 1):
		return g.hi
	case math.IsInf(v, -1):
		return g.lo
	}
	return v
}

func (g *boardGrid) Dims() (c, r int)   { return g.board.XRes, g.board.YRes }
func (g *boardGrid) Z(c, r int) float64 { return g.values[r*g.board.XRes+c] }
func (g *boardGrid) X(c int) float64    { return float64(c) }
func (g *boardGrid) Y(r int) float64    { return float64(r) }

// colorMap returns the diverging map used for every board image, spanning
// the grid's range.
func (g *boardGrid) colorMap() palette.ColorMap {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(g.lo)
	cm.SetMax(g.hi)
	return cm
}

// HeatMapPNG renders one output column of a board to a PNG file.
func HeatMapPNG(b *farm.Board, column int, path, title string) error {
	g, err := newBoardGrid(b, column)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s [%.3g, %.3g]", title, g.lo, g.hi)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(g, g.colorMap().Palette(paletteSize))
	hm.Min, hm.Max = g.lo, g.hi
	p.Add(hm)

	return savePNG(p, 6, 6, path)
}

func savePNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}
