package module

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/farm"
)

// ChaosThreshold separates chaotic pixels from regular ones, whose MEGNO
// settles near 2.
const ChaosThreshold = 4.0

// Summarize reduces a finished board to the scalars kept with a run. cfg
// supplies the limits the board was computed with.
func Summarize(b *farm.Board, cfg *config.Config) map[string]float64 {
	out := map[string]float64{"tasks": float64(b.Len())}

	switch b.Module {
	case "arnoldweb":
		megno, bad := finite(b.Column(2))
		out["diverged"] = float64(bad)
		out["state_invalid"] = float64(invalidRows(b, 0, 1))
		if len(megno) > 0 {
			out["megno_mean"] = stat.Mean(megno, nil)
			out["megno_min"] = floats.Min(megno)
			out["megno_max"] = floats.Max(megno)
			out["chaotic_fraction"] = fraction(megno, func(v float64) bool { return v > ChaosThreshold })
		}
		if errs, _ := finite(b.Column(3)); len(errs) > 0 {
			out["energy_error_max"] = floats.Max(errs)
		}
	case "mandelbrot":
		counts, _ := finite(b.Column(2))
		if len(counts) > 0 {
			limit := float64(cfg.Mandelbrot.MaxIter)
			out["max_count"] = floats.Max(counts)
			out["inside_fraction"] = fraction(counts, func(v float64) bool { return v >= limit })
		}
	}

	return out
}

func finite(xs []float64) ([]float64, int) {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out, len(xs) - len(out)
}

// invalidRows counts cells with a non-finite value in any of the columns.
func invalidRows(b *farm.Board, cols ...int) int {
	n := 0
	for _, row := range b.Cells {
		for _, c := range cols {
			if c >= len(row) || math.IsNaN(row[c]) || math.IsInf(row[c], 0) {
				n++
				break
			}
		}
	}
	return n
}

func fraction(xs []float64, pred func(float64) bool) float64 {
	n := 0
	for _, v := range xs {
		if pred(v) {
			n++
		}
	}
	return float64(n) / float64(len(xs))
}
