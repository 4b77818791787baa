package config

import "sort"

// Presets cover the common grid sizes. Names follow the classic device
// families: 64 is 8x8, 128 is 16x8, 256 is 16x16.
var Presets = map[string]*Config{
	"64": {
		Device: DeviceConfig{Host: DefaultHost, DiscoveryPort: DefaultDiscoveryPort, Prefix: DefaultPrefix},
		Render: RenderConfig{FPS: DefaultFPS, Policy: "static"},
		Sim:    SimConfig{Width: 8, Height: 8},
	},
	"128": {
		Device: DeviceConfig{Host: DefaultHost, DiscoveryPort: DefaultDiscoveryPort, Prefix: DefaultPrefix},
		Render: RenderConfig{FPS: DefaultFPS, Policy: "static"},
		Sim:    SimConfig{Width: 16, Height: 8},
	},
	"256": {
		Device: DeviceConfig{Host: DefaultHost, DiscoveryPort: DefaultDiscoveryPort, Prefix: DefaultPrefix},
		Render: RenderConfig{FPS: DefaultFPS, Policy: "flash"},
		Sim:    SimConfig{Width: 16, Height: 16},
	},
}

// GetPreset returns a private copy of the named preset, or nil.
// Callers may overwrite fields without touching the shared table.
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
