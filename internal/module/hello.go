package module

import (
	"github.com/sirupsen/logrus"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/farm"
)

const helloMarker = 99.0

// Hello echoes the task placement. Output row: X, Y, task ID, 99, xres,
// worker.
type Hello struct {
	xres int
	log  logrus.FieldLogger
}

func NewHello(cfg *config.Config, log logrus.FieldLogger) *Hello {
	return &Hello{xres: cfg.XRes, log: log}
}

func (h *Hello) Name() string      { return "hello" }
func (h *Hello) InputLength() int  { return 3 }
func (h *Hello) OutputLength() int { return 6 }

func (h *Hello) Prepare(task farm.Task) []float64 {
	return []float64{helloMarker, float64(h.xres), float64(task.Worker)}
}

func (h *Hello) Process(task farm.Task, in []float64) ([]float64, error) {
	if h.log != nil {
		h.log.WithField("worker", task.Worker).Infof("hello from worker[%d]", task.Worker)
	}
	return []float64{
		float64(task.X),
		float64(task.Y),
		float64(task.ID),
		in[0],
		in[1],
		in[2],
	}, nil
}
