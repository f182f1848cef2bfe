package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/arnoldweb/internal/analysis"
	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/dynamo"
	"github.com/san-kum/arnoldweb/internal/export"
	"github.com/san-kum/arnoldweb/internal/farm"
	"github.com/san-kum/arnoldweb/internal/integrators"
	"github.com/san-kum/arnoldweb/internal/metrics"
	"github.com/san-kum/arnoldweb/internal/module"
	"github.com/san-kum/arnoldweb/internal/physics"
	"github.com/san-kum/arnoldweb/internal/storage"
	"github.com/san-kum/arnoldweb/internal/viz"
)

func runFarm(cmd *cobra.Command, args []string) error {
	moduleName := ""
	if len(args) > 0 {
		moduleName = args[0]
	}
	cfg, err := resolveConfig(cmd, moduleName)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	if live {
		log.SetOutput(io.Discard)
	}

	mod, err := module.NewRegistry(cfg, log).Get(cfg.Module)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector("arnoldweb")
	if metricsAddr != "" {
		srv := serveMetrics(metricsAddr, collector, log)
		defer srv.Shutdown(context.Background())
	}

	opts := []farm.Option{farm.WithLogger(log), farm.WithCollector(collector)}

	var board *farm.Board
	start := time.Now()
	if live {
		board, err = runLive(ctx, cfg, mod, opts)
	} else {
		fmt.Printf("running %s on %dx%d tasks...\n", mod.Name(), cfg.XRes, cfg.YRes)
		board, err = farm.New(cfg, opts...).Run(ctx, mod)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	summary := module.Summarize(board, cfg)
	runID, err := st.Save(cfg, board, elapsed, summary)
	if err != nil {
		return err
	}
	log.WithField("run_id", runID).Info("run saved")

	fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nsummary:")
	for _, k := range sortedKeys(summary) {
		fmt.Printf("  %s: %.6g\n", k, summary[k])
	}
	return nil
}

// runLive drives the farm from a goroutine while a Bubble Tea program
// shows its progress.
func runLive(ctx context.Context, cfg *config.Config, mod farm.Module, opts []farm.Option) (*farm.Board, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := viz.NewProgressModel(mod.Name(), cfg.Tasks(), cfg.Workers, cancel)
	p := tea.NewProgram(m)

	opts = append(opts, farm.WithProgress(func(done, total int) {
		p.Send(viz.ProgressMsg{Done: done, Total: total})
	}))

	var (
		board  *farm.Board
		runErr error
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		board, runErr = farm.New(cfg, opts...).Run(ctx, mod)
		p.Send(viz.FinishedMsg{Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-finished
		return nil, err
	}
	<-finished
	return board, runErr
}

func serveMetrics(addr string, c *metrics.Collector, log logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server failed")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
	return srv
}

func runPoint(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "arnoldweb")
	if err != nil {
		return err
	}

	s, err := integrators.ByDriver(cfg.Arnold.Driver)
	if err != nil {
		return err
	}

	x := dynamo.State{0.131, 0.132, 0.212, pointX, pointY, 0.01}
	p := analysis.Params{
		Step:        cfg.Arnold.Step * s.StepScale(),
		TEnd:        cfg.Arnold.TEnd,
		SampleEvery: cfg.Arnold.SMod,
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	model := physics.NewArnoldWeb(0)
	if err := applyParams(model, map[string]float64{"eps": cfg.Arnold.Eps}); err != nil {
		return err
	}

	start := time.Now()
	r, trace := analysis.Trace(model, s, &x, p, rng, traceEvery)
	elapsed := time.Since(start)

	series := analysis.MEGNOSeries(trace)
	fmt.Println(viz.Sparkline(series, fmt.Sprintf("MEGNO at (%.4g, %.4g), %s", pointX, pointY, s.Name()), 80, 12))
	fmt.Println()

	if orbit && len(trace) > 0 {
		i1 := make([]float64, len(trace))
		i2 := make([]float64, len(trace))
		for i, sample := range trace {
			i1[i], i2[i] = sample.State[3], sample.State[4]
		}
		canvas := viz.NewCanvas(60, 15)
		canvas.Scatter(i1, i2)
		fmt.Println(viz.HeaderStyle.Render("(I1, I2) projection"))
		fmt.Println(canvas.String())
	}

	params := model.GetParams()
	for _, k := range sortedKeys(params) {
		fmt.Println(viz.Metric(k, fmt.Sprintf("%g", params[k])))
	}
	fmt.Println(viz.Metric("megno", fmt.Sprintf("%.6f", r.MEGNO)))
	fmt.Println(viz.Metric("energy error", fmt.Sprintf("%.3e over %d samples (E0 %.9g)", r.EnergyError, r.EnergySamples, r.Energy0)))
	fmt.Println(viz.Metric("final I1, I2", fmt.Sprintf("%.6f, %.6f", x[3], x[4])))
	if len(trace) > 0 {
		i1 := make([]float64, len(trace))
		for i, sample := range trace {
			i1[i] = sample.State[3]
		}
		dt := float64(traceEvery) * p.Step
		fmt.Println(viz.Metric("I1 frequency", fmt.Sprintf("%.4g", analysis.DominantFrequency(i1, dt))))
	}
	fmt.Println(viz.Metric("steps", fmt.Sprintf("%d in %v", r.Steps, elapsed.Round(time.Millisecond))))
	if err := r.Validate(); err != nil {
		fmt.Println(viz.ErrorText.Render(err.Error()))
	}
	if !x.IsValid() {
		fmt.Println(viz.ErrorText.Render("final state is not finite"))
	}

	if svgOut != "" {
		svg := export.TraceToSVG(series, 800, 300, "#00ff88")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trace written to %s\n", svgOut)
	}
	return nil
}

// applyParams sets each named model parameter, stopping at the first one
// the model rejects.
func applyParams(m dynamo.Configurable, params map[string]float64) error {
	for _, name := range sortedKeys(params) {
		if err := m.SetParam(name, params[name]); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}
