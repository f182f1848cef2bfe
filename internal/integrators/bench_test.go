package integrators

import (
	"testing"

	"github.com/san-kum/arnoldweb/internal/dynamo"
	"github.com/san-kum/arnoldweb/internal/physics"
)

func BenchmarkLeapfrog(b *testing.B) {
	integrator := NewLeapfrog()
	dyn := physics.NewArnoldWeb(0.01)
	x := dynamo.State{0.131, 0.132, 0.212, 1.0, 1.0, 0.01}
	dy := dynamo.State{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integrator.Step(dyn, &x, &dy, 0.15)
	}
}

func BenchmarkSABA3(b *testing.B) {
	integrator := NewSABA3()
	dyn := physics.NewArnoldWeb(0.01)
	x := dynamo.State{0.131, 0.132, 0.212, 1.0, 1.0, 0.01}
	dy := dynamo.State{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integrator.Step(dyn, &x, &dy, 0.15)
	}
}
