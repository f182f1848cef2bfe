package farm_test

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/farm"
	"github.com/san-kum/arnoldweb/internal/metrics"
)

// echo returns the task coordinates, the worker and one draw from the
// task's random source.
type echo struct {
	failAt int
}

func (e *echo) Name() string      { return "echo" }
func (e *echo) InputLength() int  { return 1 }
func (e *echo) OutputLength() int { return 4 }

func (e *echo) Prepare(task farm.Task) []float64 {
	return []float64{float64(task.ID)}
}

func (e *echo) Process(task farm.Task, in []float64) ([]float64, error) {
	if task.ID == e.failAt {
		return nil, errors.New("bad pixel")
	}
	return []float64{float64(task.X), float64(task.Y), in[0], task.Rand.Float64()}, nil
}

type short struct{ echo }

func (s *short) Process(task farm.Task, in []float64) ([]float64, error) {
	return []float64{1}, nil
}

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func grid(xres, yres, workers int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.XRes, cfg.YRes, cfg.Workers = xres, yres, workers
	cfg.Seed = 17
	return cfg
}

var _ = Describe("Farm", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("fills every cell in row-major order", func() {
		f := farm.New(grid(5, 3, 4), farm.WithLogger(quiet()))

		board, err := f.Run(ctx, &echo{failAt: -1})
		Expect(err).NotTo(HaveOccurred())
		Expect(board.Len()).To(Equal(15))
		Expect(board.Width).To(Equal(4))

		for id, row := range board.Cells {
			Expect(row).To(HaveLen(4))
			Expect(row[0]).To(BeEquivalentTo(id % 5))
			Expect(row[1]).To(BeEquivalentTo(id / 5))
			Expect(row[2]).To(BeEquivalentTo(id))
		}
		Expect(board.Cells[2*5+4][2]).To(BeEquivalentTo(14))
	})

	It("is reproducible across worker counts", func() {
		one, err := farm.New(grid(6, 6, 1), farm.WithLogger(quiet())).Run(ctx, &echo{failAt: -1})
		Expect(err).NotTo(HaveOccurred())
		many, err := farm.New(grid(6, 6, 7), farm.WithLogger(quiet())).Run(ctx, &echo{failAt: -1})
		Expect(err).NotTo(HaveOccurred())

		Expect(many.Column(3)).To(Equal(one.Column(3)))
	})

	It("reports progress for every task", func() {
		var mu sync.Mutex
		var seen, totals []int
		f := farm.New(grid(4, 4, 3), farm.WithLogger(quiet()), farm.WithProgress(func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, done)
			totals = append(totals, total)
		}))

		_, err := f.Run(ctx, &echo{failAt: -1})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(ConsistOf(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16))
		Expect(totals).To(HaveEach(16))
	})

	It("aborts with a TaskError on a module failure", func() {
		f := farm.New(grid(4, 4, 2), farm.WithLogger(quiet()))

		_, err := f.Run(ctx, &echo{failAt: 9})
		Expect(err).To(HaveOccurred())

		var te *farm.TaskError
		Expect(errors.As(err, &te)).To(BeTrue())
		Expect(te.Task.ID).To(Equal(9))
		Expect(te.Task.X).To(Equal(1))
		Expect(te.Task.Y).To(Equal(2))
		Expect(te.Error()).To(ContainSubstring("bad pixel"))
	})

	It("rejects output of the wrong length", func() {
		f := farm.New(grid(2, 2, 1), farm.WithLogger(quiet()))

		_, err := f.Run(ctx, &short{echo{failAt: -1}})
		Expect(errors.Is(err, farm.ErrVectorLength)).To(BeTrue())
	})

	It("stops on cancellation", func() {
		cctx, cancel := context.WithCancel(ctx)
		f := farm.New(grid(8, 8, 2), farm.WithLogger(quiet()), farm.WithProgress(func(done, total int) {
			if done == 1 {
				cancel()
			}
		}))

		_, err := f.Run(cctx, &echo{failAt: -1})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("records task metrics", func() {
		c := metrics.NewCollector("farmtest")
		f := farm.New(grid(3, 3, 2), farm.WithLogger(quiet()), farm.WithCollector(c))

		_, err := f.Run(ctx, &echo{failAt: -1})
		Expect(err).NotTo(HaveOccurred())

		n, err := testutil.GatherAndCount(c.Registry(), "farmtest_farm_tasks_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))

		pending := `
# HELP farmtest_farm_tasks_pending Tasks of the current run not yet processed
# TYPE farmtest_farm_tasks_pending gauge
farmtest_farm_tasks_pending{module="echo"} 0
`
		Expect(testutil.GatherAndCompare(c.Registry(), strings.NewReader(pending), "farmtest_farm_tasks_pending")).To(Succeed())
	})
})

var _ = Describe("Board", func() {
	It("reads missing cells as NaN and skips them in Range", func() {
		b := farm.NewBoard("echo", 2, 2, 2)
		b.Set(0, []float64{1, 5})
		b.Set(3, []float64{2, -1})

		col := b.Column(1)
		Expect(col[0]).To(Equal(5.0))
		Expect(math.IsNaN(col[1])).To(BeTrue())

		lo, hi, ok := b.Range(1)
		Expect(ok).To(BeTrue())
		Expect(lo).To(Equal(-1.0))
		Expect(hi).To(Equal(5.0))
	})

	It("copies rows on Set", func() {
		b := farm.NewBoard("echo", 1, 1, 1)
		row := []float64{3}
		b.Set(0, row)
		row[0] = 4
		Expect(b.Cells[0][0]).To(Equal(3.0))
	})

	It("has no range when nothing is finite", func() {
		b := farm.NewBoard("echo", 1, 1, 1)
		_, _, ok := b.Range(0)
		Expect(ok).To(BeFalse())
	})
})
