// Package dynamo provides the core primitives shared by the integrators and
// the MEGNO driver.
//
//   - [State]: fixed six-component phase-space or tangent vector
//   - [Model]: split Hamiltonian evaluated by symplectic steppers
//   - [State.CheckNorm], [State.Normalize]: tangent magnitude utilities
//
// # Norm range
//
// Tangent magnitudes are measured over axes 1..5 only. Axis 0 is carried
// through the flow and rescaled with the others but is excluded from the
// magnitude that feeds the MEGNO accumulator.
//
// # Thread Safety
//
// All values are plain arrays owned by the caller; nothing here holds state.
package dynamo
