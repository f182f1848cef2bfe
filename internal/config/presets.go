package config

import "sort"

// Presets replace the near-identical module copies that differed only in
// their compiled-in map bounds, coupling and duration.
var Presets = map[string]*Config{
	"quick": {
		Module: "arnoldweb", Seed: 1, Workers: 4, XRes: 32, YRes: 32,
		Arnold: ArnoldConfig{
			Step: 0.25, TEnd: 200, XMin: 0.8, XMax: 1.2, YMin: 0.8, YMax: 1.2,
			Eps: 0.01, Driver: 1, SMod: 100,
		},
		Mandelbrot: MandelbrotConfig{MaxIter: DefaultMaxIter},
	},
	"default": {
		Module: "arnoldweb", Seed: 1, Workers: 4, XRes: 64, YRes: 64,
		Arnold: ArnoldConfig{
			Step: 0.25, TEnd: 1000, XMin: 0.8, XMax: 1.2, YMin: 0.8, YMax: 1.2,
			Eps: 0.01, Driver: 1, SMod: 1000,
		},
		Mandelbrot: MandelbrotConfig{MaxIter: DefaultMaxIter},
	},
	"fine": {
		Module: "arnoldweb", Seed: 1, Workers: 8, XRes: 256, YRes: 256,
		Arnold: ArnoldConfig{
			Step: 0.25, TEnd: 5000, XMin: 0.8, XMax: 1.2, YMin: 0.8, YMax: 1.2,
			Eps: 0.01, Driver: 2, SMod: 1000,
		},
		Mandelbrot: MandelbrotConfig{MaxIter: DefaultMaxIter},
	},
	"long": {
		Module: "arnoldweb", Seed: 1, Workers: 8, XRes: 128, YRes: 128,
		Arnold: ArnoldConfig{
			Step: 0.25, TEnd: 20000, XMin: 0.8, XMax: 1.2, YMin: 0.8, YMax: 1.2,
			Eps: 0.01, Driver: 2, SMod: 1000,
		},
		Mandelbrot: MandelbrotConfig{MaxIter: DefaultMaxIter},
	},
	"strong": {
		Module: "arnoldweb", Seed: 1, Workers: 4, XRes: 64, YRes: 64,
		Arnold: ArnoldConfig{
			Step: 0.25, TEnd: 1000, XMin: 0.8, XMax: 1.2, YMin: 0.8, YMax: 1.2,
			Eps: 0.04, Driver: 2, SMod: 1000,
		},
		Mandelbrot: MandelbrotConfig{MaxIter: DefaultMaxIter},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
