package module

import (
	"github.com/sirupsen/logrus"

	"github.com/san-kum/arnoldweb/internal/analysis"
	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/dynamo"
	"github.com/san-kum/arnoldweb/internal/farm"
	"github.com/san-kum/arnoldweb/internal/integrators"
	"github.com/san-kum/arnoldweb/internal/metrics"
	"github.com/san-kum/arnoldweb/internal/physics"
)

// Fixed angles and third action of every initial condition on the map.
var arnoldSeed = [...]float64{0.131, 0.132, 0.212}

const arnoldI3 = 0.01

// ArnoldWeb maps (I1, I2) over the configured rectangle and computes MEGNO
// for each pixel.
//
// Output row: final I1, final I2, MEGNO, max relative energy error.
type ArnoldWeb struct {
	cfg        config.ArnoldConfig
	xres, yres int
	model      *physics.ArnoldWeb
	stepper    string
	log        logrus.FieldLogger
}

func NewArnoldWeb(cfg *config.Config, log logrus.FieldLogger) (*ArnoldWeb, error) {
	s, err := integrators.ByDriver(cfg.Arnold.Driver)
	if err != nil {
		return nil, err
	}
	return &ArnoldWeb{
		cfg:     cfg.Arnold,
		xres:    cfg.XRes,
		yres:    cfg.YRes,
		model:   physics.NewArnoldWeb(cfg.Arnold.Eps),
		stepper: s.Name(),
		log:     log,
	}, nil
}

func (a *ArnoldWeb) Name() string      { return "arnoldweb" }
func (a *ArnoldWeb) InputLength() int  { return dynamo.Dim }
func (a *ArnoldWeb) OutputLength() int { return 4 }

// Prepare places the task at I1 = xmin + X·(xmax-xmin)/xres and
// I2 = ymin + Y·(ymax-ymin)/yres.
func (a *ArnoldWeb) Prepare(task farm.Task) []float64 {
	c := a.cfg
	return []float64{
		arnoldSeed[0],
		arnoldSeed[1],
		arnoldSeed[2],
		c.XMin + float64(task.X)*(c.XMax-c.XMin)/float64(a.xres),
		c.YMin + float64(task.Y)*(c.YMax-c.YMin)/float64(a.yres),
		arnoldI3,
	}
}

func (a *ArnoldWeb) Process(task farm.Task, in []float64) ([]float64, error) {
	x, err := dynamo.FromSlice(in)
	if err != nil {
		return nil, err
	}
	s, err := integrators.Get(a.stepper)
	if err != nil {
		return nil, err
	}

	p := analysis.Params{
		Step:        a.cfg.Step * s.StepScale(),
		TEnd:        a.cfg.TEnd,
		SampleEvery: a.cfg.SMod,
	}
	r := analysis.MEGNO(a.model, s, &x, p, task.Rand)

	if a.log != nil {
		fields := logrus.Fields{
			"task":   task.ID,
			"worker": task.Worker,
			"steps":  r.Steps,
		}
		if err := r.Validate(); err != nil {
			a.log.WithFields(fields).Warn("non-finite MEGNO")
		}
		if !x.IsValid() {
			a.log.WithFields(fields).Warn("non-finite final state")
		}
	}

	return []float64{x[3], x[4], r.MEGNO, r.EnergyError}, nil
}

func (a *ArnoldWeb) Record(c *metrics.Collector, out []float64) {
	c.RecordMEGNO(out[2], out[3])
}
