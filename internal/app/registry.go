package app

import (
	"fmt"
	"sort"

	"github.com/johnmatter/gridui/internal/config"
	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/serialosc"
)

// DeviceFactory builds a grid device from the loaded configuration.
type DeviceFactory func(cfg *config.Config) (grid.Device, error)

// Registry maps device names to factories. The hardware transport is
// built in; interactive surfaces register themselves at wiring time so
// this package stays free of UI dependencies.
type Registry struct {
	devices map[string]DeviceFactory
}

func NewRegistry() *Registry {
	r := &Registry{devices: make(map[string]DeviceFactory)}
	r.devices["hardware"] = func(cfg *config.Config) (grid.Device, error) {
		return serialosc.Dial(cfg.Device.Host, cfg.Device.DiscoveryPort,
			cfg.Device.Prefix, cfg.Device.ID)
	}
	return r
}

func (r *Registry) Register(name string, fn DeviceFactory) {
	r.devices[name] = fn
}

func (r *Registry) Get(name string, cfg *config.Config) (grid.Device, error) {
	fn, ok := r.devices[name]
	if !ok {
		return nil, fmt.Errorf("unknown device %q (available: %v)", name, r.List())
	}
	return fn(cfg)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.devices))
	for name := range r.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
