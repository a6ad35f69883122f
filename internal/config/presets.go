package config

import "sort"

var Presets = map[string]*Config{
	"binary": {
		GridSize: 40, AxisMin: -6, AxisMax: 6,
		MassRatio: 1.0, Separation: 3.0, Isolevel: 0.7,
		Omega: 45, Orbit: true, Dt: 1.0 / 30.0, Frames: 300,
	},
	"contact": {
		GridSize: 40, AxisMin: -6, AxisMax: 6,
		MassRatio: 1.0, Separation: 1.2, Isolevel: 1.1,
		Omega: 60, Orbit: true, Dt: 1.0 / 30.0, Frames: 300,
	},
	"detached": {
		GridSize: 40, AxisMin: -8, AxisMax: 8,
		MassRatio: 2.0, Separation: 4.5, Isolevel: 0.9,
		Omega: 30, Orbit: true, Dt: 1.0 / 30.0, Frames: 300,
	},
	"lopsided": {
		GridSize: 40, AxisMin: -6, AxisMax: 6,
		MassRatio: 8.0, Separation: 2.5, Isolevel: 0.8,
		Omega: 45, Orbit: true, Dt: 1.0 / 30.0, Frames: 300,
	},
	"merged": {
		GridSize: 40, AxisMin: -6, AxisMax: 6,
		MassRatio: 1.0, Separation: 0.0, Isolevel: 0.5,
		Omega: 45, Pulse: true, Dt: 1.0 / 30.0, Frames: 300,
	},
}

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
