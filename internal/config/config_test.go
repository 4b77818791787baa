package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Device.Host != DefaultHost {
		t.Errorf("expected host %s, got %s", DefaultHost, cfg.Device.Host)
	}
	if cfg.Render.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Sim.Width <= 0 || cfg.Sim.Height <= 0 {
		t.Error("sim grid should have positive dimensions")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("64")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Sim.Width != 8 || cfg.Sim.Height != 8 {
		t.Errorf("expected 8x8, got %dx%d", cfg.Sim.Width, cfg.Sim.Height)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("512"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("64")
	cfg.Render.FPS = 99
	cfg.Sim.Width = 3

	again := GetPreset("64")
	if again.Render.FPS != DefaultFPS {
		t.Errorf("preset table changed through a returned copy: fps = %d", again.Render.FPS)
	}
	if again.Sim.Width != 8 {
		t.Errorf("preset table changed through a returned copy: width = %d", again.Sim.Width)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Errorf("expected 3 presets, got %d", len(presets))
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Device.Prefix = "/surface"
	cfg.Sim.Width = 8
	cfg.Editor.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Device.Prefix != "/surface" {
		t.Errorf("expected prefix /surface, got %s", loaded.Device.Prefix)
	}
	if loaded.Sim.Width != 8 {
		t.Errorf("expected width 8, got %d", loaded.Sim.Width)
	}
	if loaded.Editor.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Editor.Seed)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("sim:\n  width: 8\n  height: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Sim.Width != 8 {
		t.Errorf("expected width 8, got %d", loaded.Sim.Width)
	}
	if loaded.Render.FPS != DefaultFPS {
		t.Errorf("unset fps should keep default %d, got %d", DefaultFPS, loaded.Render.FPS)
	}
	if loaded.Device.Host != DefaultHost {
		t.Errorf("unset host should keep default %s, got %s", DefaultHost, loaded.Device.Host)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
