package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/integrators"
	"github.com/san-kum/arnoldweb/internal/module"
)

var (
	dataDir  string
	logLevel string

	configFile  string
	preset      string
	xres        int
	yres        int
	workers     int
	seed        int64
	step        float64
	tend        float64
	eps         float64
	driver      int
	smod        int
	live        bool
	metricsAddr string

	pointX     float64
	pointY     float64
	traceEvery int
	orbit      bool
	svgOut     string

	column   int
	theme    string
	asJSON   bool
	outPath  string
	svgScale float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "arnoldweb",
		Short:         "MEGNO maps of the Arnold web on a task farm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".arnoldweb", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [module]",
		Short: "run a module over the whole task board",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFarm,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "show a live progress view")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	pointCmd := &cobra.Command{
		Use:   "point",
		Short: "compute MEGNO for a single (I1, I2) point",
		Args:  cobra.NoArgs,
		RunE:  runPoint,
	}
	addConfigFlags(pointCmd)
	pointCmd.Flags().Float64Var(&pointX, "x", 1.0, "initial I1")
	pointCmd.Flags().Float64Var(&pointY, "y", 1.0, "initial I2")
	pointCmd.Flags().IntVar(&traceEvery, "trace-every", 100, "record the running MEGNO every n steps")
	pointCmd.Flags().BoolVar(&orbit, "orbit", false, "plot the (I1, I2) projection of the orbit")
	pointCmd.Flags().StringVar(&svgOut, "svg", "", "write the MEGNO trace to an SVG file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "render a stored board in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&column, "column", 2, "output column to render")
	showCmd.Flags().StringVar(&theme, "theme", "moreland", "colour theme")
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print run metadata as JSON")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "export one board column as a PNG heat map",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().IntVar(&column, "column", 2, "output column to plot")
	exportPNGCmd.Flags().StringVar(&outPath, "out", "", "output path (default <data>/<run_id>/map_o<column>.png)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one board column as an SVG grid",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&column, "column", 2, "output column to draw")
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output path (default <data>/<run_id>/map_o<column>.svg)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 4, "pixels per cell")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a board as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output path (default stdout)")

	modulesCmd := &cobra.Command{
		Use:   "modules",
		Short: "list modules and steppers",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := module.NewRegistry(config.DefaultConfig(), logrus.StandardLogger())
			fmt.Println("modules:")
			for _, name := range reg.List() {
				mod, err := reg.Get(name)
				if err != nil {
					return err
				}
				fmt.Printf("  %-12s input %d  output %d\n", name, mod.InputLength(), mod.OutputLength())
			}
			fmt.Println("steppers:")
			for _, name := range integrators.List() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-8s %dx%d tend=%g eps=%g driver=%d\n",
					name, p.XRes, p.YRes, p.Arnold.TEnd, p.Arnold.Eps, p.Arnold.Driver)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, pointCmd, listCmd, showCmd, exportPNGCmd, exportSVGCmd, exportJSONCmd, modulesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&xres, "xres", def.XRes, "board width in tasks")
	cmd.Flags().IntVar(&yres, "yres", def.YRes, "board height in tasks")
	cmd.Flags().IntVar(&workers, "workers", def.Workers, "worker goroutines")
	cmd.Flags().Int64Var(&seed, "seed", def.Seed, "random seed")
	cmd.Flags().Float64Var(&step, "step", def.Arnold.Step, "time step before stepper scaling")
	cmd.Flags().Float64Var(&tend, "tend", def.Arnold.TEnd, "integration time")
	cmd.Flags().Float64Var(&eps, "eps", def.Arnold.Eps, "perturbation strength")
	cmd.Flags().IntVar(&driver, "driver", def.Arnold.Driver, "stepper (1 leapfrog, 2 saba3)")
	cmd.Flags().IntVar(&smod, "smod", def.Arnold.SMod, "energy sampling stride in steps")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, moduleName string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if moduleName != "" {
		cfg.Module = moduleName
	}

	flags := cmd.Flags()
	if flags.Changed("xres") {
		cfg.XRes = xres
	}
	if flags.Changed("yres") {
		cfg.YRes = yres
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("step") {
		cfg.Arnold.Step = step
	}
	if flags.Changed("tend") {
		cfg.Arnold.TEnd = tend
	}
	if flags.Changed("eps") {
		cfg.Arnold.Eps = eps
	}
	if flags.Changed("driver") {
		cfg.Arnold.Driver = driver
	}
	if flags.Changed("smod") {
		cfg.Arnold.SMod = smod
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}
