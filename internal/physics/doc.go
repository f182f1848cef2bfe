// Package physics provides the Hamiltonian models integrated by the
// symplectic steppers.
//
// Each model implements [dynamo.Model]:
//
//   - [ArnoldWeb]: three-angle rotator whose resonance network is mapped
//     by MEGNO over a grid of initial actions
//
// Models also implement [dynamo.Configurable] for runtime parameter
// adjustment.
//
// # Energy Conservation
//
// Energy is a diagnostic only and never feeds back into the flow:
//
//	m := physics.NewArnoldWeb(0.01)
//	e0 := m.Energy(&x)
package physics
