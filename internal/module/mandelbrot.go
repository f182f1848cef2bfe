package module

import (
	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/farm"
)

const (
	realMin, realMax = -2.0, 2.0
	imagMin, imagMax = -2.0, 2.0
	bailout          = 4.0
)

// Mandelbrot computes the escape count over [-2,2]². Output row: re, im,
// count, worker.
type Mandelbrot struct {
	xres, yres int
	maxIter    int
}

func NewMandelbrot(cfg *config.Config) *Mandelbrot {
	return &Mandelbrot{xres: cfg.XRes, yres: cfg.YRes, maxIter: cfg.Mandelbrot.MaxIter}
}

func (m *Mandelbrot) Name() string      { return "mandelbrot" }
func (m *Mandelbrot) InputLength() int  { return 4 }
func (m *Mandelbrot) OutputLength() int { return 4 }

func (m *Mandelbrot) Prepare(task farm.Task) []float64 {
	return []float64{realMin, realMax, imagMin, imagMax}
}

func (m *Mandelbrot) Process(task farm.Task, in []float64) ([]float64, error) {
	re := in[0] + float64(task.X)*scale(in[0], in[1], m.xres)
	im := in[3] - float64(task.Y)*scale(in[2], in[3], m.yres)
	return []float64{re, im, float64(m.escape(re, im)), float64(task.Worker)}, nil
}

// escape iterates z² + c from zero and counts iterations until |z|² reaches
// the bailout or maxIter is hit. The first iteration always counts.
func (m *Mandelbrot) escape(a, b float64) int {
	var zr, zi float64
	count := 0
	for {
		zr, zi = zr*zr-zi*zi+a, 2*zr*zi+b
		count++
		if zr*zr+zi*zi >= bailout || count >= m.maxIter {
			return count
		}
	}
}

// scale spreads res pixels over [lo, hi] inclusive; a single pixel sits
// at lo.
func scale(lo, hi float64, res int) float64 {
	if res < 2 {
		return 0
	}
	return (hi - lo) / float64(res-1)
}
