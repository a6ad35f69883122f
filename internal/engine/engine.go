package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravsurf/internal/field"
	"github.com/san-kum/gravsurf/internal/geom"
	"github.com/san-kum/gravsurf/internal/marching"
)

// pulseAmplitude is the relative isolevel swing when pulsing is enabled.
const pulseAmplitude = 0.25

// Params are the user-facing knobs of the binary-potential surface.
// MassRatio is the strength ratio of the two sources (>= 1), Separation the
// half distance between them, OrbitDegrees the current orbital phase.
// Omega is the shared angular speed (degrees per second) driving both the
// orbit and the isolevel pulse when their toggles are on.
type Params struct {
	MassRatio    float64
	Separation   float64
	Isolevel     float64
	OrbitDegrees float64
	Omega        float64
	Orbit        bool
	Pulse        bool
}

func ValidateParams(p Params) error {
	if p.MassRatio < 1 {
		return fmt.Errorf("mass ratio must be >= 1, got %f", p.MassRatio)
	}
	if p.Separation < 0 {
		return fmt.Errorf("separation must be >= 0, got %f", p.Separation)
	}
	if p.Isolevel <= 0 {
		return fmt.Errorf("isolevel must be positive, got %f", p.Isolevel)
	}
	return nil
}

// Metric accumulates a scalar statistic over the frames of a run.
type Metric interface {
	Name() string
	Observe(m *geom.Mesh, t float64)
	Value() float64
	Reset()
}

// Observer receives every extracted frame.
type Observer interface {
	OnFrame(m *geom.Mesh, p Params, t float64)
}

// Config controls an animated run.
type Config struct {
	Dt           float64
	Frames       int
	ValidateMesh bool
}

func DefaultConfig() Config {
	return Config{
		Dt:     1.0 / 30.0,
		Frames: 300,
	}
}

// Result captures per-frame bookkeeping of a run.
type Result struct {
	FramesDone int
	Times      []float64
	Triangles  []int
	Metrics    map[string]float64
	Errors     []error
}

type FrameError struct {
	Time    float64
	Frame   int
	Message string
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}

// Engine owns the grid, the reusable scalar-field buffer and the current
// parameters, and rebuilds the isosurface mesh as they change. It is the
// single producer of meshes; each Rebuild fully replaces the previous one.
type Engine struct {
	grid      *field.Grid
	values    field.ScalarField
	sampler   *field.Sampler
	params    Params
	phase     float64 // pulse phase, degrees
	mesh      *geom.Mesh
	metrics   []Metric
	observers []Observer
}

func New(grid *field.Grid, params Params) (*Engine, error) {
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	return &Engine{
		grid:    grid,
		values:  field.NewScalarField(grid),
		sampler: field.NewSampler(),
		params:  params,
	}, nil
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Params() Params    { return e.params }
func (e *Engine) Grid() *field.Grid { return e.grid }

// Mesh returns the most recently extracted mesh, nil before the first Rebuild.
func (e *Engine) Mesh() *geom.Mesh { return e.mesh }

func (e *Engine) SetParams(p Params) error {
	if err := ValidateParams(p); err != nil {
		return err
	}
	p.OrbitDegrees = field.WrapDegrees(p.OrbitDegrees)
	e.params = p
	return nil
}

// Isolevel returns the effective threshold for the current frame, including
// the pulse modulation.
func (e *Engine) Isolevel() float64 {
	iso := e.params.Isolevel
	if e.params.Pulse {
		iso *= 1 + pulseAmplitude*math.Sin(e.phase*math.Pi/180)
	}
	return iso
}

// Rebuild resamples the field for the current sources and re-extracts the
// mesh. Called whenever mass ratio, separation, orbit phase or isolevel
// change, or every frame while animating.
func (e *Engine) Rebuild() (*geom.Mesh, error) {
	sources := field.BinarySources(e.params.MassRatio, e.params.Separation, e.params.OrbitDegrees)
	e.sampler.Sample(e.grid, sources, e.values)

	mesh, err := marching.Extract(e.grid, e.values, e.Isolevel())
	if err != nil {
		return nil, err
	}
	e.mesh = mesh
	return mesh, nil
}

// Step advances the animation clocks by dt seconds and rebuilds.
func (e *Engine) Step(dt float64) (*geom.Mesh, error) {
	if e.params.Orbit {
		e.params.OrbitDegrees = field.WrapDegrees(e.params.OrbitDegrees + e.params.Omega*dt)
	}
	if e.params.Pulse {
		e.phase = field.WrapDegrees(e.phase + e.params.Omega*dt)
	}
	return e.Rebuild()
}

// Run drives a fixed-tick animation for cfg.Frames frames. Frames are
// strictly sequential; a frame's mesh fully replaces the previous one
// before the next tick begins.
func (e *Engine) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Times:     make([]float64, 0, cfg.Frames),
		Triangles: make([]int, 0, cfg.Frames),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		mesh, err := e.Step(cfg.Dt)
		if err != nil {
			return result, err
		}
		t += cfg.Dt

		if cfg.ValidateMesh && !mesh.IsFinite() {
			ferr := FrameError{Time: t, Frame: i, Message: "non-finite vertex in mesh"}
			result.Errors = append(result.Errors, ferr)
			break
		}

		for _, m := range e.metrics {
			m.Observe(mesh, t)
		}
		for _, obs := range e.observers {
			obs.OnFrame(mesh, e.params, t)
		}

		result.FramesDone++
		result.Times = append(result.Times, t)
		result.Triangles = append(result.Triangles, mesh.TriangleCount())
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback streams frames to cb until it returns false or the frame
// budget runs out.
func (e *Engine) RunWithCallback(ctx context.Context, cfg Config, cb func(m *geom.Mesh, p Params, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		mesh, err := e.Step(cfg.Dt)
		if err != nil {
			return err
		}
		t += cfg.Dt

		if !cb(mesh, e.params, t) {
			return nil
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frame count must be positive, got %d", cfg.Frames)
	}
	return nil
}
