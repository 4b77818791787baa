package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost          = "127.0.0.1"
	DefaultDiscoveryPort = 12002
	DefaultPrefix        = "/gridui"
	DefaultFPS           = 30
	DefaultPolicy        = "static"
	DefaultWidth         = 16
	DefaultHeight        = 8
)

type Config struct {
	Device DeviceConfig `yaml:"device"`
	Render RenderConfig `yaml:"render"`
	Sim    SimConfig    `yaml:"sim"`
	Editor EditorConfig `yaml:"editor"`
}

// DeviceConfig names the serialosc daemon and the app's OSC prefix. ID
// narrows discovery to one device when several answer.
type DeviceConfig struct {
	Host          string `yaml:"host"`
	DiscoveryPort int    `yaml:"discovery_port"`
	Prefix        string `yaml:"prefix"`
	ID            string `yaml:"id"`
}

type RenderConfig struct {
	FPS    int    `yaml:"fps"`
	Policy string `yaml:"policy"`
}

// SimConfig sizes the virtual grid used by the terminal and desktop
// simulators.
type SimConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type EditorConfig struct {
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			Host:          DefaultHost,
			DiscoveryPort: DefaultDiscoveryPort,
			Prefix:        DefaultPrefix,
		},
		Render: RenderConfig{
			FPS:    DefaultFPS,
			Policy: DefaultPolicy,
		},
		Sim: SimConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
