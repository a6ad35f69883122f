package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 24
	cfg.MassRatio = 3.5
	cfg.Pulse = true

	path := filepath.Join(t.TempDir(), "gravsurf.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("isolevel: 1.2\nomega: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Isolevel != 1.2 || cfg.Omega != 10 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.GridSize != DefaultGridSize || cfg.Frames != DefaultFrames {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grid_size: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestEngineParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MassRatio = 2
	cfg.OrbitDegrees = 45
	cfg.Pulse = true

	p := cfg.EngineParams()
	if p.MassRatio != 2 || p.OrbitDegrees != 45 || !p.Pulse || !p.Orbit {
		t.Errorf("unexpected params: %+v", p)
	}
	if p.Isolevel != DefaultIsolevel {
		t.Errorf("isolevel %v, want %v", p.Isolevel, DefaultIsolevel)
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets registered")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %q before %q", names[i-1], names[i])
		}
	}
	if GetPreset("no-such-preset") != nil {
		t.Error("unknown preset should return nil")
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %q not found by name", name)
		}
		if cfg.GridSize <= 1 || cfg.Isolevel <= 0 || cfg.MassRatio < 1 {
			t.Errorf("preset %q has unusable parameters: %+v", name, cfg)
		}
		if cfg.AxisMin >= cfg.AxisMax {
			t.Errorf("preset %q has empty domain", name)
		}
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset("binary")
	if a == nil {
		t.Fatal("binary preset missing")
	}
	a.GridSize = 1

	if GetPreset("binary").GridSize == 1 {
		t.Error("mutating a preset copy leaked into the registry")
	}
}
