package farm

import "math/rand"

// Task is one pixel of the board.
type Task struct {
	ID     int
	X, Y   int
	Worker int
	Rand   *rand.Rand
}

// Module is the per-task contract a farm drives. Prepare builds the input
// vector for a task; Process turns it into the output row.
type Module interface {
	Name() string
	InputLength() int
	OutputLength() int
	Prepare(task Task) []float64
	Process(task Task, in []float64) ([]float64, error)
}

func taskAt(id, xres int) Task {
	return Task{ID: id, X: id % xres, Y: id / xres}
}
