package dynamo

import "errors"

// Domain errors for integration and task-farm operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates a vector of the wrong length.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch")

	// ErrUnknownStepper indicates an unrecognised stepper name or driver id.
	ErrUnknownStepper = errors.New("dynamo: unknown stepper")

	// ErrUnknownModule indicates a task-farm module that is not registered.
	ErrUnknownModule = errors.New("dynamo: unknown module")
)

// DivergenceError reports a run whose summary scalars are not finite.
type DivergenceError struct {
	Steps       int
	MEGNO       float64
	EnergyError float64
}

func (e *DivergenceError) Error() string {
	return ErrInvalidState.Error()
}

func (e *DivergenceError) Unwrap() error {
	return ErrInvalidState
}
