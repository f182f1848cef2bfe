package integrators

import "github.com/san-kum/arnoldweb/internal/dynamo"

// Leapfrog is the second-order kick-drift-kick composition.
type Leapfrog struct {
	c1, c2 float64
	acc, v dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{c1: 0.5, c2: 1.0}
}

func (l *Leapfrog) Name() string       { return "leapfrog" }
func (l *Leapfrog) StepScale() float64 { return GoldenStep }

func (l *Leapfrog) Step(m dynamo.Model, x, dy *dynamo.State, dt float64) {
	kick(m, x, dy, &l.acc, &l.v, l.c1*dt)
	m.Drift(x, dy, l.c2*dt)
	kick(m, x, dy, &l.acc, &l.v, l.c1*dt)
}
