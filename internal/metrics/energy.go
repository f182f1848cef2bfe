package metrics

import "math"

// EnergyDrift tracks the largest relative deviation of sampled energies
// from a reference value fixed at construction.
type EnergyDrift struct {
	reference float64
	maxDrift  float64
	samples   int
}

func NewEnergyDrift(reference float64) *EnergyDrift {
	return &EnergyDrift{reference: reference}
}

// Observe records |(energy - reference) / reference|. NaN samples never
// compare greater and are skipped.
func (e *EnergyDrift) Observe(energy float64) {
	e.samples++
	drift := math.Abs((energy - e.reference) / e.reference)
	if drift > e.maxDrift {
		e.maxDrift = drift
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Samples() int { return e.samples }

func (e *EnergyDrift) Reference() float64 { return e.reference }

