package integrators

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/arnoldweb/internal/dynamo"
)

// GoldenStep is the factor applied to the configured step so that the
// sampling never locks onto a rational fraction of the forcing period.
var GoldenStep = (math.Sqrt(5) - 1) / 2

// Stepper advances a state and its tangent vector by one fixed step.
type Stepper interface {
	Name() string
	Step(m dynamo.Model, x, dy *dynamo.State, dt float64)
	StepScale() float64
}

// kick applies the perturbation forces for a sub-step h to the actions of
// the state and of the tangent vector.
func kick(m dynamo.Model, x, dy, acc, v *dynamo.State, h float64) {
	m.Derive(x, dy, acc, v)
	for i := dynamo.Half; i < dynamo.Dim; i++ {
		x[i] += acc[i] * h
		dy[i] += v[i] * h
	}
}

var registry = map[string]func() Stepper{
	"leapfrog": func() Stepper { return NewLeapfrog() },
	"saba3":    func() Stepper { return NewSABA3() },
}

// driverNames maps the numeric driver option to stepper names.
var driverNames = map[int]string{
	1: "leapfrog",
	2: "saba3",
}

func Get(name string) (Stepper, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownStepper, name)
	}
	return fn(), nil
}

// ByDriver resolves the legacy driver id (1 = Leapfrog, 2 = SABA3).
func ByDriver(id int) (Stepper, error) {
	name, ok := driverNames[id]
	if !ok {
		return nil, fmt.Errorf("%w: driver %d", dynamo.ErrUnknownStepper, id)
	}
	return Get(name)
}

func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
