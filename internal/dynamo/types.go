package dynamo

import (
	"fmt"
	"math"
)

// Dim is the phase-space dimension: three angles followed by their actions.
const Dim = 6

// Half is the number of degrees of freedom.
const Half = Dim / 2

// State holds (φ1, φ2, φ3, I1, I2, I3). Tangent vectors share the layout.
type State [Dim]float64

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CheckNorm returns the Euclidean magnitude over the operative axes 1..5.
// Axis 0 never contributes, so every MEGNO value is measured on that range.
func (s *State) CheckNorm() float64 {
	sum := 0.0
	for i := 1; i < Dim; i++ {
		sum += s[i] * s[i]
	}
	return math.Sqrt(sum)
}

// Normalize divides all six components by CheckNorm and returns that
// magnitude. Axis 0 is excluded from the magnitude but is still divided.
func (s *State) Normalize() float64 {
	n := s.CheckNorm()
	for i := range s {
		s[i] /= n
	}
	return n
}

// FromSlice copies up to Dim leading values of v into a State.
func FromSlice(v []float64) (State, error) {
	var s State
	if len(v) < Dim {
		return s, fmt.Errorf("%w: need %d values, got %d", ErrDimensionMismatch, Dim, len(v))
	}
	copy(s[:], v)
	return s, nil
}

// Model is a Hamiltonian split into an integrable part, advanced exactly by
// Drift, and a perturbation whose forces Derive supplies for kicks.
type Model interface {
	// Derive writes the physical right-hand side into acc and the
	// variational right-hand side, linearised around x along dy, into v.
	Derive(x, dy *State, acc, v *State)
	Drift(x, dy *State, h float64)
	Energy(x *State) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
