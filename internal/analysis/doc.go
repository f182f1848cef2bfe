// Package analysis runs the MEGNO chaos indicator over a model and a
// symplectic stepper.
//
//   - [MEGNO]: mean exponential growth of nearby orbits for one initial state
//   - [Trace]: the same integration with the running mean recorded
//   - [DominantFrequency]: main frequency of a sampled series
//
// # Reading MEGNO
//
// The running mean settles near 2 on regular (quasi-periodic) orbits and
// grows roughly linearly with time on chaotic ones:
//
//	r := analysis.MEGNO(m, s, &x, p, rng)
//	if r.MEGNO > 4 {
//	    // chaotic
//	}
package analysis
