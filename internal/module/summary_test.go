package module

import (
	"math"
	"testing"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/farm"
)

func TestSummarize_ArnoldWeb(t *testing.T) {
	b := farm.NewBoard("arnoldweb", 2, 2, 4)
	b.Set(0, []float64{1, 1, 2.0, 1e-8})
	b.Set(1, []float64{1, 1, 2.2, 3e-8})
	b.Set(2, []float64{1, 1, 9.0, 2e-8})
	b.Set(3, []float64{math.NaN(), 1, math.NaN(), math.NaN()})

	s := Summarize(b, config.DefaultConfig())

	if s["tasks"] != 4 || s["diverged"] != 1 {
		t.Errorf("tasks=%v diverged=%v", s["tasks"], s["diverged"])
	}
	if math.Abs(s["megno_mean"]-13.2/3) > 1e-12 {
		t.Errorf("megno_mean = %v", s["megno_mean"])
	}
	if s["megno_min"] != 2 || s["megno_max"] != 9 {
		t.Errorf("megno range = [%v, %v]", s["megno_min"], s["megno_max"])
	}
	if math.Abs(s["chaotic_fraction"]-1.0/3) > 1e-12 {
		t.Errorf("chaotic_fraction = %v", s["chaotic_fraction"])
	}
	if s["energy_error_max"] != 3e-8 {
		t.Errorf("energy_error_max = %v", s["energy_error_max"])
	}
	if s["state_invalid"] != 1 {
		t.Errorf("state_invalid = %v", s["state_invalid"])
	}
}

func TestSummarize_Mandelbrot(t *testing.T) {
	b := farm.NewBoard("mandelbrot", 2, 1, 4)
	b.Set(0, []float64{0, 0, 256, 1})
	b.Set(1, []float64{-2, 2, 1, 2})

	s := Summarize(b, config.DefaultConfig())
	if s["max_count"] != 256 || s["inside_fraction"] != 0.5 {
		t.Errorf("summary = %v", s)
	}
}

func TestSummarize_MandelbrotBelowCap(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mandelbrot.MaxIter = 50

	b := farm.NewBoard("mandelbrot", 3, 1, 4)
	b.Set(0, []float64{0, 0, 12, 1})
	b.Set(1, []float64{0, 0, 3, 1})
	b.Set(2, []float64{0, 0, 12, 1})

	s := Summarize(b, cfg)
	if s["inside_fraction"] != 0 {
		t.Errorf("no pixel reached the cap, inside_fraction = %v", s["inside_fraction"])
	}
	if s["max_count"] != 12 {
		t.Errorf("max_count = %v", s["max_count"])
	}

	b.Set(1, []float64{0, 0, 50, 1})
	if got := Summarize(b, cfg)["inside_fraction"]; math.Abs(got-1.0/3) > 1e-12 {
		t.Errorf("inside_fraction = %v, want 1/3", got)
	}
}

func TestSummarize_Hello(t *testing.T) {
	b := farm.NewBoard("hello", 3, 1, 6)
	s := Summarize(b, config.DefaultConfig())
	if len(s) != 1 || s["tasks"] != 3 {
		t.Errorf("summary = %v", s)
	}
}
