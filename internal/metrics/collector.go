package metrics

import (
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the task farm telemetry in its own registry.
type Collector struct {
	registry *prometheus.Registry

	tasksTotal   *prometheus.CounterVec
	taskDuration *prometheus.HistogramVec
	tasksPending *prometheus.GaugeVec
	megno        prometheus.Histogram
	energyError  prometheus.Gauge

	mu        sync.Mutex
	maxEnergy float64
}

func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "arnoldweb"
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.tasksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "farm",
			Name:      "tasks_total",
			Help:      "Tasks processed by module and result",
		},
		[]string{"module", "result"},
	)

	c.taskDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "farm",
			Name:      "task_duration_seconds",
			Help:      "Wall time of a single task",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
		},
		[]string{"module"},
	)

	c.tasksPending = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "farm",
			Name:      "tasks_pending",
			Help:      "Tasks of the current run not yet processed",
		},
		[]string{"module"},
	)

	c.megno = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "megno_value",
			Help:      "Distribution of final MEGNO values",
			Buckets:   []float64{1, 1.5, 2, 2.5, 3, 4, 6, 10, 20, 50},
		},
	)

	c.energyError = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "energy_error_max",
			Help:      "Largest relative energy error seen in the current run",
		},
	)

	c.registry.MustRegister(
		c.tasksTotal,
		c.taskDuration,
		c.tasksPending,
		c.megno,
		c.energyError,
	)

	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) RecordTask(module string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	c.tasksTotal.WithLabelValues(module, result).Inc()
	c.taskDuration.WithLabelValues(module).Observe(duration.Seconds())
}

func (c *Collector) RecordPending(module string, n int) {
	c.tasksPending.WithLabelValues(module).Set(float64(n))
}

// RecordMEGNO observes one finished MEGNO task. Non-finite values are
// dropped.
func (c *Collector) RecordMEGNO(megno, energyErr float64) {
	if !math.IsNaN(megno) && !math.IsInf(megno, 0) {
		c.megno.Observe(megno)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if energyErr > c.maxEnergy {
		c.maxEnergy = energyErr
		c.energyError.Set(energyErr)
	}
}

// Reset clears run-scoped values before a new run.
func (c *Collector) Reset() {
	c.tasksPending.Reset()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxEnergy = 0
	c.energyError.Set(0)
}
