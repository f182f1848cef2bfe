package module

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/arnoldweb/internal/config"
	"github.com/san-kum/arnoldweb/internal/dynamo"
	"github.com/san-kum/arnoldweb/internal/farm"
)

type Registry struct {
	modules map[string]func() (farm.Module, error)
}

func NewRegistry(cfg *config.Config, log logrus.FieldLogger) *Registry {
	r := &Registry{
		modules: make(map[string]func() (farm.Module, error)),
	}

	r.modules["arnoldweb"] = func() (farm.Module, error) { return NewArnoldWeb(cfg, log) }
	r.modules["mandelbrot"] = func() (farm.Module, error) { return NewMandelbrot(cfg), nil }
	r.modules["hello"] = func() (farm.Module, error) { return NewHello(cfg, log), nil }

	return r
}

func (r *Registry) Get(name string) (farm.Module, error) {
	fn, ok := r.modules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownModule, name)
	}
	return fn()
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
