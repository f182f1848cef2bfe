package farm

import (
	"errors"
	"fmt"
)

var ErrVectorLength = errors.New("farm: module returned wrong vector length")

// TaskError reports the task that aborted a run.
type TaskError struct {
	Module string
	Task   Task
	Err    error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: task %d (%d,%d) on worker %d: %v",
		e.Module, e.Task.ID, e.Task.X, e.Task.Y, e.Task.Worker, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
