package analysis

import (
	"math"
	"math/rand"

	"github.com/san-kum/arnoldweb/internal/dynamo"
	"github.com/san-kum/arnoldweb/internal/integrators"
	"github.com/san-kum/arnoldweb/internal/metrics"
)

// Params are the already-resolved scalars of one MEGNO integration.
type Params struct {
	// Step is the stepper's time step, after any per-stepper scaling.
	Step float64
	// TEnd bounds the synthetic time ks·Step.
	TEnd float64
	// SampleEvery is the energy sampling stride in steps.
	SampleEvery int
}

type Result struct {
	// MEGNO is the running mean <Y>: about 2 on regular orbits, growing
	// linearly with time on chaotic ones.
	MEGNO float64
	// Y is the last instantaneous MEGNO value.
	Y float64
	// EnergyError is the largest sampled |(E - E0) / E0|.
	EnergyError float64
	// Energy0 is the reference energy E0 of the initial state.
	Energy0 float64
	// EnergySamples counts the energy evaluations behind EnergyError.
	EnergySamples int
	Steps         int
}

func (r Result) IsFinite() bool {
	for _, v := range [...]float64{r.MEGNO, r.Y, r.EnergyError} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate reports a non-finite result as a *dynamo.DivergenceError.
func (r Result) Validate() error {
	if r.IsFinite() {
		return nil
	}
	return &dynamo.DivergenceError{Steps: r.Steps, MEGNO: r.MEGNO, EnergyError: r.EnergyError}
}

// MEGNO integrates x in place together with a random tangent vector drawn
// from rng and returns the MEGNO indicator with the energy diagnostic.
//
// The loop runs while the synthetic time ks·Step, taken before the step
// counter advances, stays within TEnd, so a negative TEnd runs no steps.
// There is no early exit on divergence; callers check Result.IsFinite.
func MEGNO(m dynamo.Model, s integrators.Stepper, x *dynamo.State, p Params, rng *rand.Rand) Result {
	return integrate(m, s, x, p, rng, nil)
}

// Sample is one recorded point of a traced integration.
type Sample struct {
	Step  int
	MEGNO float64
	State dynamo.State
}

// Trace runs the same integration as MEGNO and also records the running
// mean and the state every `every` steps.
func Trace(m dynamo.Model, s integrators.Stepper, x *dynamo.State, p Params, rng *rand.Rand, every int) (Result, []Sample) {
	if every < 1 {
		every = 1
	}
	var trace []Sample
	r := integrate(m, s, x, p, rng, func(ks int, mY float64) {
		if ks%every == 0 {
			trace = append(trace, Sample{Step: ks, MEGNO: mY, State: *x})
		}
	})
	return r, trace
}

// MEGNOSeries extracts the running MEGNO of a trace.
func MEGNOSeries(trace []Sample) []float64 {
	out := make([]float64, len(trace))
	for i, s := range trace {
		out[i] = s.MEGNO
	}
	return out
}

func integrate(m dynamo.Model, s integrators.Stepper, x *dynamo.State, p Params, rng *rand.Rand, observe func(ks int, mY float64)) Result {
	smod := p.SampleEvery
	if smod < 1 {
		smod = 1
	}

	var dy dynamo.State
	for i := range dy {
		dy[i] = rng.Float64()
	}

	delta0 := dy.Normalize()
	drift := metrics.NewEnergyDrift(m.Energy(x))

	var y, mY float64
	ks := 0
	t := 0.0

	for t <= p.TEnd {
		s.Step(m, x, &dy, p.Step)

		t = float64(ks) * p.Step
		ks++

		// delta is measured before renormalisation; delta0 after it
		k := float64(ks)
		delta := dy.Normalize()
		y = y*(k-1)/k + 2*math.Log(delta/delta0)
		mY = mY*(k-1)/k + y/k
		delta0 = dy.CheckNorm()

		if ks%smod == 0 {
			drift.Observe(m.Energy(x))
		}
		if observe != nil {
			observe(ks, mY)
		}
	}

	return Result{
		MEGNO:         mY,
		Y:             y,
		EnergyError:   drift.Value(),
		Energy0:       drift.Reference(),
		EnergySamples: drift.Samples(),
		Steps:         ks,
	}
}
