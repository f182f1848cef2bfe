package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/arnoldweb/internal/dynamo"
)

// ArnoldWeb is the three-degree-of-freedom quasi-integrable Hamiltonian of
// Guzzo, Lega & Froeschlé:
//
//	H = I1²/2 + I2²/2 + I3 + ε/(cos φ1 + cos φ2 + cos φ3 + 4)
//
// The integrable part is advanced exactly by Drift; the perturbation enters
// through the kicks built from Derive.
type ArnoldWeb struct {
	Eps float64
}

func NewArnoldWeb(eps float64) *ArnoldWeb {
	return &ArnoldWeb{Eps: eps}
}

func (a *ArnoldWeb) Derive(x, dy *dynamo.State, acc, v *dynamo.State) {
	sf1, cf1 := math.Sincos(x[0])
	sf2, cf2 := math.Sincos(x[1])
	sf3, cf3 := math.Sincos(x[2])

	d := cf1 + cf2 + cf3 + 4
	d2 := a.Eps / (d * d)
	d3 := d2 / d

	acc[0] = x[3]
	acc[1] = x[4]
	acc[2] = x[5]
	acc[3] = -sf1 * d2
	acc[4] = -sf2 * d2
	acc[5] = -sf3 * d2

	// φ3 is conjugate to an action entering H linearly
	v[0] = 1
	v[1] = 1
	v[2] = 0

	sum := 2 * (sf1*dy[0] + sf2*dy[1] + sf3*dy[2]) * d3

	v[3] = -cf1*d2*dy[0] - sum*sf1
	v[4] = -cf2*d2*dy[1] - sum*sf2
	v[5] = -cf3*d2*dy[2] - sum*sf3
}

// Drift advances the angles under the integrable part for a time h.
func (a *ArnoldWeb) Drift(x, dy *dynamo.State, h float64) {
	x[0] += x[3] * h
	x[1] += x[4] * h
	x[2] += h

	dy[0] += dy[3] * h
	dy[1] += dy[4] * h
}

func (a *ArnoldWeb) Energy(x *dynamo.State) float64 {
	d := math.Cos(x[0]) + math.Cos(x[1]) + math.Cos(x[2]) + 4
	return x[3]*x[3]/2 + x[4]*x[4]/2 + x[5] + a.Eps/d
}

func (a *ArnoldWeb) GetParams() map[string]float64 {
	return map[string]float64{"eps": a.Eps}
}

func (a *ArnoldWeb) SetParam(name string, value float64) error {
	switch name {
	case "eps":
		a.Eps = value
	default:
		return fmt.Errorf("%w: unknown param %s", dynamo.ErrParameterBounds, name)
	}
	return nil
}
