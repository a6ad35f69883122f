package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsurf/internal/engine"
)

const (
	DefaultGridSize   = 40
	DefaultAxisMin    = -6.0
	DefaultAxisMax    = 6.0
	DefaultMassRatio  = 1.0
	DefaultSeparation = 3.0
	DefaultIsolevel   = 0.7
	DefaultOmega      = 45.0
	DefaultDt         = 1.0 / 30.0
	DefaultFrames     = 300
)

type Config struct {
	GridSize     int     `yaml:"grid_size"`
	AxisMin      float64 `yaml:"axis_min"`
	AxisMax      float64 `yaml:"axis_max"`
	MassRatio    float64 `yaml:"mass_ratio"`
	Separation   float64 `yaml:"separation"`
	Isolevel     float64 `yaml:"isolevel"`
	OrbitDegrees float64 `yaml:"orbit_degrees"`
	Omega        float64 `yaml:"omega"`
	Orbit        bool    `yaml:"orbit"`
	Pulse        bool    `yaml:"pulse"`
	Dt           float64 `yaml:"dt"`
	Frames       int     `yaml:"frames"`
	Workers      int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		GridSize:   DefaultGridSize,
		AxisMin:    DefaultAxisMin,
		AxisMax:    DefaultAxisMax,
		MassRatio:  DefaultMassRatio,
		Separation: DefaultSeparation,
		Isolevel:   DefaultIsolevel,
		Omega:      DefaultOmega,
		Orbit:      true,
		Dt:         DefaultDt,
		Frames:     DefaultFrames,
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

// EngineParams maps the file-level config onto engine parameters.
func (c *Config) EngineParams() engine.Params {
	return engine.Params{
		MassRatio:    c.MassRatio,
		Separation:   c.Separation,
		Isolevel:     c.Isolevel,
		OrbitDegrees: c.OrbitDegrees,
		Omega:        c.Omega,
		Orbit:        c.Orbit,
		Pulse:        c.Pulse,
	}
}

// RunConfig maps the file-level config onto an animated run.
func (c *Config) RunConfig() engine.Config {
	return engine.Config{
		Dt:           c.Dt,
		Frames:       c.Frames,
		ValidateMesh: false,
	}
}
