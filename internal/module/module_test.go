package module

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/dynamo"
	"github.com/san-kum/arnoldweb/internal/farm"
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func task(id, xres, worker int, seed int64) farm.Task {
	return farm.Task{
		ID:     id,
		X:      id % xres,
		Y:      id / xres,
		Worker: worker,
		Rand:   rand.New(rand.NewSource(seed + int64(id))),
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(config.DefaultConfig(), quiet())

	names := r.List()
	want := []string{"arnoldweb", "hello", "mandelbrot"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, names[i], want[i])
		}
		mod, err := r.Get(want[i])
		if err != nil {
			t.Fatalf("Get(%s): %v", want[i], err)
		}
		if mod.Name() != want[i] {
			t.Errorf("Get(%s).Name() = %s", want[i], mod.Name())
		}
	}

	if _, err := r.Get("pendulum"); !errors.Is(err, dynamo.ErrUnknownModule) {
		t.Errorf("expected ErrUnknownModule, got %v", err)
	}
}

func TestRegistry_BadDriver(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Arnold.Driver = 9
	r := NewRegistry(cfg, quiet())

	if _, err := r.Get("arnoldweb"); !errors.Is(err, dynamo.ErrUnknownStepper) {
		t.Errorf("expected ErrUnknownStepper, got %v", err)
	}
}

func TestArnoldWeb_Prepare(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.XRes, cfg.YRes = 4, 8
	a, err := NewArnoldWeb(cfg, quiet())
	if err != nil {
		t.Fatal(err)
	}

	in := a.Prepare(farm.Task{ID: 6, X: 2, Y: 1})
	if len(in) != a.InputLength() {
		t.Fatalf("input length %d", len(in))
	}

	want := []float64{0.131, 0.132, 0.212, 0.8 + 2*0.4/4, 0.8 + 1*0.4/8, 0.01}
	for i := range want {
		if math.Abs(in[i]-want[i]) > 1e-15 {
			t.Errorf("in[%d] = %v, want %v", i, in[i], want[i])
		}
	}

	// The upper bound is never reached.
	last := a.Prepare(farm.Task{X: 3, Y: 7})
	if last[3] >= cfg.Arnold.XMax || last[4] >= cfg.Arnold.YMax {
		t.Errorf("last pixel reached the upper bound: %v", last)
	}
}

func TestArnoldWeb_Process(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.XRes, cfg.YRes = 4, 4
	cfg.Arnold.TEnd = 200
	cfg.Arnold.SMod = 10

	for _, driver := range []int{1, 2} {
		cfg.Arnold.Driver = driver
		a, err := NewArnoldWeb(cfg, quiet())
		if err != nil {
			t.Fatal(err)
		}

		tk := task(5, cfg.XRes, 1, cfg.Seed)
		in := a.Prepare(tk)
		out, err := a.Process(tk, in)
		if err != nil {
			t.Fatalf("driver %d: %v", driver, err)
		}
		if len(out) != a.OutputLength() {
			t.Fatalf("output length %d", len(out))
		}
		for i, v := range out {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("driver %d: out[%d] = %v", driver, i, v)
			}
		}
		// Weak coupling keeps the actions close to their start.
		if math.Abs(out[0]-in[3]) > 0.2 || math.Abs(out[1]-in[4]) > 0.2 {
			t.Errorf("driver %d: actions moved too far: %v -> %v", driver, in[3:5], out[:2])
		}
		if out[3] <= 0 || out[3] > 1e-2 {
			t.Errorf("driver %d: energy error %e", driver, out[3])
		}

		again, _ := a.Process(task(5, cfg.XRes, 3, cfg.Seed), a.Prepare(tk))
		for i := range out {
			if again[i] != out[i] {
				t.Errorf("driver %d: result depends on worker: %v vs %v", driver, out, again)
				break
			}
		}
	}
}

func TestArnoldWeb_NonFiniteResult(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.XRes, cfg.YRes = 2, 2
	cfg.Arnold.TEnd = 5
	cfg.Arnold.Eps = math.NaN()

	log, hook := test.NewNullLogger()
	a, err := NewArnoldWeb(cfg, log)
	if err != nil {
		t.Fatal(err)
	}

	tk := task(1, cfg.XRes, 1, cfg.Seed)
	out, err := a.Process(tk, a.Prepare(tk))
	if err != nil {
		t.Fatalf("a diverging orbit is a result, got error %v", err)
	}
	if !math.IsNaN(out[0]) || !math.IsNaN(out[2]) {
		t.Errorf("expected NaN state and MEGNO, got %v", out)
	}

	msgs := map[string]bool{}
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			msgs[e.Message] = true
		}
	}
	if !msgs["non-finite MEGNO"] || !msgs["non-finite final state"] {
		t.Errorf("missing warnings, got %v", msgs)
	}
}

func TestArnoldWeb_WrongInput(t *testing.T) {
	a, _ := NewArnoldWeb(config.DefaultConfig(), quiet())
	if _, err := a.Process(task(0, 1, 1, 1), []float64{1, 2}); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestMandelbrot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.XRes, cfg.YRes = 5, 5
	m := NewMandelbrot(cfg)

	tests := []struct {
		x, y   int
		re, im float64
		count  float64
	}{
		{0, 0, -2, 2, 1},
		{2, 2, 0, 0, 256},
		{4, 4, 2, -2, 1},
		{1, 2, -1, 0, 256},
	}

	for _, tt := range tests {
		tk := farm.Task{ID: tt.y*5 + tt.x, X: tt.x, Y: tt.y, Worker: 2}
		out, err := m.Process(tk, m.Prepare(tk))
		if err != nil {
			t.Fatal(err)
		}
		if out[0] != tt.re || out[1] != tt.im {
			t.Errorf("(%d,%d) -> %v%+vi, want %v%+vi", tt.x, tt.y, out[0], out[1], tt.re, tt.im)
		}
		if out[2] != tt.count {
			t.Errorf("(%d,%d) count = %v, want %v", tt.x, tt.y, out[2], tt.count)
		}
		if out[3] != 2 {
			t.Errorf("worker = %v", out[3])
		}
	}
}

func TestMandelbrot_SinglePixel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.XRes, cfg.YRes = 1, 1
	m := NewMandelbrot(cfg)

	tk := farm.Task{}
	out, _ := m.Process(tk, m.Prepare(tk))
	if out[0] != -2 || out[1] != 2 {
		t.Errorf("single pixel at %v%+vi", out[0], out[1])
	}
}

func TestHello(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.XRes = 7
	log, hook := test.NewNullLogger()
	h := NewHello(cfg, log)

	tk := farm.Task{ID: 10, X: 3, Y: 1, Worker: 4}
	in := h.Prepare(tk)
	out, err := h.Process(tk, in)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{3, 1, 10, 99, 7, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out = %v, want %v", out, want)
			break
		}
	}

	if hook.LastEntry() == nil || hook.LastEntry().Message != "hello from worker[4]" {
		t.Errorf("unexpected log entry: %+v", hook.LastEntry())
	}
}
