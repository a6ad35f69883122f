package engine

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsurf/internal/field"
	"github.com/san-kum/gravsurf/internal/geom"
)

func testGrid(t *testing.T) *field.Grid {
	t.Helper()
	g, err := field.NewGrid(8, -5, 5)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func testParams() Params {
	return Params{
		MassRatio:  1,
		Separation: 2,
		Isolevel:   0.7,
		Omega:      90,
		Orbit:      true,
	}
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"ratio below one", func(p *Params) { p.MassRatio = 0.5 }},
		{"negative separation", func(p *Params) { p.Separation = -1 }},
		{"zero isolevel", func(p *Params) { p.Isolevel = 0 }},
		{"negative isolevel", func(p *Params) { p.Isolevel = -0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			if err := ValidateParams(p); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
	if err := ValidateParams(testParams()); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
}

func TestEngine_New_RejectsBadParams(t *testing.T) {
	p := testParams()
	p.MassRatio = 0
	if _, err := New(testGrid(t), p); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestEngine_Rebuild(t *testing.T) {
	eng, err := New(testGrid(t), testParams())
	if err != nil {
		t.Fatal(err)
	}
	if eng.Mesh() != nil {
		t.Error("mesh should be nil before first Rebuild")
	}

	mesh, err := eng.Rebuild()
	if err != nil {
		t.Fatal(err)
	}
	if mesh.IsEmpty() {
		t.Error("expected non-empty mesh for default binary")
	}
	if eng.Mesh() != mesh {
		t.Error("Mesh() should return the latest rebuild")
	}
}

func TestEngine_StepAdvancesOrbit(t *testing.T) {
	eng, err := New(testGrid(t), testParams())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := eng.Step(1.0); err != nil {
		t.Fatal(err)
	}
	if got := eng.Params().OrbitDegrees; math.Abs(got-90) > 1e-9 {
		t.Errorf("orbit after 1s at 90°/s = %v, want 90", got)
	}

	// Four steps of a second wrap a full revolution back to 0.
	for i := 0; i < 3; i++ {
		if _, err := eng.Step(1.0); err != nil {
			t.Fatal(err)
		}
	}
	if got := eng.Params().OrbitDegrees; math.Abs(got) > 1e-9 {
		t.Errorf("orbit after full revolution = %v, want 0", got)
	}
}

func TestEngine_OrbitToggleFreezesPhase(t *testing.T) {
	p := testParams()
	p.Orbit = false
	p.OrbitDegrees = 45

	eng, err := New(testGrid(t), p)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Step(1.0); err != nil {
		t.Fatal(err)
	}
	if got := eng.Params().OrbitDegrees; got != 45 {
		t.Errorf("orbit moved with toggle off: %v", got)
	}
}

func TestEngine_PulseModulatesIsolevel(t *testing.T) {
	p := testParams()
	p.Pulse = true
	p.Orbit = false

	eng, err := New(testGrid(t), p)
	if err != nil {
		t.Fatal(err)
	}
	base := eng.Isolevel()
	if base != p.Isolevel {
		t.Errorf("isolevel at phase 0 = %v, want %v", base, p.Isolevel)
	}
	// Quarter period: sin peaks, isolevel swings up by the pulse amplitude.
	if _, err := eng.Step(1.0); err != nil {
		t.Fatal(err)
	}
	want := p.Isolevel * (1 + pulseAmplitude)
	if got := eng.Isolevel(); math.Abs(got-want) > 1e-9 {
		t.Errorf("isolevel at phase 90° = %v, want %v", got, want)
	}
}

func TestEngine_Run(t *testing.T) {
	gm := NewWithT(t)

	eng, err := New(testGrid(t), testParams())
	gm.Expect(err).NotTo(HaveOccurred())

	counter := &countingMetric{}
	eng.AddMetric(counter)

	result, err := eng.Run(context.Background(), Config{Dt: 0.1, Frames: 5, ValidateMesh: true})
	gm.Expect(err).NotTo(HaveOccurred())
	gm.Expect(result.FramesDone).To(Equal(5))
	gm.Expect(result.Times).To(HaveLen(5))
	gm.Expect(result.Triangles).To(HaveLen(5))
	gm.Expect(result.Errors).To(BeEmpty())
	gm.Expect(counter.frames).To(Equal(5))
	gm.Expect(result.Metrics).To(HaveKey("frames"))
}

func TestEngine_RunInvalidConfig(t *testing.T) {
	eng, err := New(testGrid(t), testParams())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Frames: 10}},
		{"negative dt", Config{Dt: -0.1, Frames: 10}},
		{"zero frames", Config{Dt: 0.1, Frames: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := eng.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEngine_RunCancellation(t *testing.T) {
	eng, err := New(testGrid(t), testParams())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := eng.Run(ctx, Config{Dt: 0.1, Frames: 100}); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEngine_RunWithCallbackStops(t *testing.T) {
	eng, err := New(testGrid(t), testParams())
	if err != nil {
		t.Fatal(err)
	}

	frames := 0
	err = eng.RunWithCallback(context.Background(), Config{Dt: 0.1, Frames: 100},
		func(m *geom.Mesh, p Params, t float64) bool {
			frames++
			return frames < 3
		})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 3 {
		t.Errorf("callback ran %d times, want 3", frames)
	}
}

type countingMetric struct {
	frames int
}

func (c *countingMetric) Name() string                    { return "frames" }
func (c *countingMetric) Observe(m *geom.Mesh, t float64) { c.frames++ }
func (c *countingMetric) Value() float64                  { return float64(c.frames) }
func (c *countingMetric) Reset()                          { c.frames = 0 }
