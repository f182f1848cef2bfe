package integrators

import (
	"math"

	"github.com/san-kum/arnoldweb/internal/dynamo"
)

// SABA3 coefficients (Laskar & Robutel 2001).
var (
	saba3C1 = 0.5 - math.Sqrt(15)/10
	saba3C2 = math.Sqrt(15) / 10
	saba3D1 = 5.0 / 18.0
	saba3D2 = 4.0 / 9.0
)

// SABA3 is the symmetric drift-kick composition of order O(εh⁶ + ε²h²),
// well suited to near-integrable systems with small ε.
type SABA3 struct {
	c1, c2, d1, d2 float64
	acc, v         dynamo.State
}

func NewSABA3() *SABA3 {
	return &SABA3{c1: saba3C1, c2: saba3C2, d1: saba3D1, d2: saba3D2}
}

func (s *SABA3) Name() string       { return "saba3" }
func (s *SABA3) StepScale() float64 { return GoldenStep }

func (s *SABA3) Step(m dynamo.Model, x, dy *dynamo.State, dt float64) {
	m.Drift(x, dy, s.c1*dt)
	kick(m, x, dy, &s.acc, &s.v, s.d1*dt)
	m.Drift(x, dy, s.c2*dt)
	kick(m, x, dy, &s.acc, &s.v, s.d2*dt)
	m.Drift(x, dy, s.c2*dt)
	kick(m, x, dy, &s.acc, &s.v, s.d1*dt)
	m.Drift(x, dy, s.c1*dt)
}
