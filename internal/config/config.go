package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/arnoldweb/internal/dynamo"
)

const (
	DefaultModule  = "arnoldweb"
	DefaultXRes    = 64
	DefaultYRes    = 64
	DefaultWorkers = 4
	DefaultSeed    = 1

	DefaultStep   = 0.25
	DefaultTEnd   = 1000.0
	DefaultXMin   = 0.8
	DefaultXMax   = 1.2
	DefaultYMin   = 0.8
	DefaultYMax   = 1.2
	DefaultEps    = 0.01
	DefaultDriver = 1
	DefaultSMod   = 1000

	DefaultMaxIter = 256
)

type Config struct {
	Module     string           `yaml:"module" json:"module"`
	Seed       int64            `yaml:"seed" json:"seed"`
	Workers    int              `yaml:"workers" json:"workers"`
	XRes       int              `yaml:"xres" json:"xres"`
	YRes       int              `yaml:"yres" json:"yres"`
	Arnold     ArnoldConfig     `yaml:"arnold" json:"arnold"`
	Mandelbrot MandelbrotConfig `yaml:"mandelbrot" json:"mandelbrot"`
}

// ArnoldConfig holds the MEGNO map options.
type ArnoldConfig struct {
	Step   float64 `yaml:"step" json:"step"`
	TEnd   float64 `yaml:"tend" json:"tend"`
	XMin   float64 `yaml:"xmin" json:"xmin"`
	XMax   float64 `yaml:"xmax" json:"xmax"`
	YMin   float64 `yaml:"ymin" json:"ymin"`
	YMax   float64 `yaml:"ymax" json:"ymax"`
	Eps    float64 `yaml:"eps" json:"eps"`
	Driver int     `yaml:"driver" json:"driver"`
	SMod   int     `yaml:"smod" json:"smod"`
}

type MandelbrotConfig struct {
	MaxIter int `yaml:"max_iter" json:"max_iter"`
}

func DefaultConfig() *Config {
	return &Config{
		Module:  DefaultModule,
		Seed:    DefaultSeed,
		Workers: DefaultWorkers,
		XRes:    DefaultXRes,
		YRes:    DefaultYRes,
		Arnold: ArnoldConfig{
			Step:   DefaultStep,
			TEnd:   DefaultTEnd,
			XMin:   DefaultXMin,
			XMax:   DefaultXMax,
			YMin:   DefaultYMin,
			YMax:   DefaultYMax,
			Eps:    DefaultEps,
			Driver: DefaultDriver,
			SMod:   DefaultSMod,
		},
		Mandelbrot: MandelbrotConfig{
			MaxIter: DefaultMaxIter,
		},
	}
}

// Load reads a YAML file over the defaults, so absent keys keep them.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base. Keys absent from the file
// keep the value they have in base; base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.XRes < 1 || c.YRes < 1 {
		return fmt.Errorf("%w: resolution must be positive, got %dx%d", dynamo.ErrParameterBounds, c.XRes, c.YRes)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", dynamo.ErrParameterBounds, c.Workers)
	}
	a := c.Arnold
	if a.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %f", dynamo.ErrParameterBounds, a.Step)
	}
	if a.XMax <= a.XMin || a.YMax <= a.YMin {
		return fmt.Errorf("%w: empty map range [%g,%g]x[%g,%g]", dynamo.ErrParameterBounds, a.XMin, a.XMax, a.YMin, a.YMax)
	}
	if a.SMod < 1 {
		return fmt.Errorf("%w: smod must be at least 1, got %d", dynamo.ErrParameterBounds, a.SMod)
	}
	if a.Driver != 1 && a.Driver != 2 {
		return fmt.Errorf("%w: driver %d", dynamo.ErrUnknownStepper, a.Driver)
	}
	if c.Mandelbrot.MaxIter < 1 {
		return fmt.Errorf("%w: max_iter must be positive, got %d", dynamo.ErrParameterBounds, c.Mandelbrot.MaxIter)
	}
	return nil
}

// Tasks is the number of grid points in one run.
func (c *Config) Tasks() int {
	return c.XRes * c.YRes
}
