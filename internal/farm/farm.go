package farm

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/metrics"
)

// Recorder is implemented by modules that publish domain metrics for each
// finished task.
type Recorder interface {
	Record(c *metrics.Collector, out []float64)
}

type Option func(*Farm)

func WithLogger(log logrus.FieldLogger) Option {
	return func(f *Farm) { f.log = log }
}

func WithCollector(c *metrics.Collector) Option {
	return func(f *Farm) { f.collector = c }
}

// WithProgress installs a callback invoked after every finished task. It
// is called from worker goroutines.
func WithProgress(fn func(done, total int)) Option {
	return func(f *Farm) { f.progress = fn }
}

type Farm struct {
	xres, yres int
	workers    int
	seed       int64

	log       logrus.FieldLogger
	collector *metrics.Collector
	progress  func(done, total int)
}

func New(cfg *config.Config, opts ...Option) *Farm {
	f := &Farm{
		xres:    cfg.XRes,
		yres:    cfg.YRes,
		workers: cfg.Workers,
		seed:    cfg.Seed,
		log:     logrus.StandardLogger(),
	}
	if f.workers < 1 {
		f.workers = 1
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Farm) Tasks() int {
	return f.xres * f.yres
}

// Run processes every task of the board with mod. The first task error
// cancels the remaining work and is returned as a *TaskError; a cancelled
// ctx returns ctx.Err().
func (f *Farm) Run(ctx context.Context, mod Module) (*Board, error) {
	total := f.Tasks()
	board := NewBoard(mod.Name(), f.xres, f.yres, mod.OutputLength())
	log := f.log.WithFields(logrus.Fields{
		"module":  mod.Name(),
		"tasks":   total,
		"workers": f.workers,
	})

	if f.collector != nil {
		f.collector.Reset()
		f.collector.RecordPending(mod.Name(), total)
	}

	log.Info("farm started")
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	queue := make(chan Task)

	g.Go(func() error {
		defer close(queue)
		for id := 0; id < total; id++ {
			select {
			case queue <- taskAt(id, f.xres):
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var done int64
	for w := 1; w <= f.workers; w++ {
		worker := w
		g.Go(func() error {
			for task := range queue {
				if err := gctx.Err(); err != nil {
					return err
				}
				task.Worker = worker
				task.Rand = rand.New(rand.NewSource(f.seed + int64(task.ID)))

				if err := f.process(mod, board, task); err != nil {
					return err
				}

				n := int(atomic.AddInt64(&done, 1))
				if f.collector != nil {
					f.collector.RecordPending(mod.Name(), total-n)
				}
				if f.progress != nil {
					f.progress(n, total)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	if ctx.Err() != nil {
		log.WithField("done", atomic.LoadInt64(&done)).Warn("farm cancelled")
		return nil, ctx.Err()
	}
	if err != nil {
		log.WithError(err).Error("farm aborted")
		return nil, err
	}

	if f.collector != nil {
		f.collector.RecordPending(mod.Name(), 0)
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("farm finished")
	return board, nil
}

func (f *Farm) process(mod Module, board *Board, task Task) error {
	in := mod.Prepare(task)
	if len(in) != mod.InputLength() {
		return &TaskError{Module: mod.Name(), Task: task,
			Err: fmt.Errorf("%w: input %d, want %d", ErrVectorLength, len(in), mod.InputLength())}
	}

	start := time.Now()
	out, err := mod.Process(task, in)
	if err == nil && len(out) != mod.OutputLength() {
		err = fmt.Errorf("%w: output %d, want %d", ErrVectorLength, len(out), mod.OutputLength())
	}
	if f.collector != nil {
		f.collector.RecordTask(mod.Name(), time.Since(start), err)
	}
	if err != nil {
		return &TaskError{Module: mod.Name(), Task: task, Err: err}
	}

	if r, ok := mod.(Recorder); ok && f.collector != nil {
		r.Record(f.collector, out)
	}
	f.log.WithFields(logrus.Fields{
		"task":   task.ID,
		"worker": task.Worker,
	}).Debug("task done")

	board.Set(task.ID, out)
	return nil
}
