package compute

import (
	"math"
	"testing"

	"github.com/san-kum/gravsurf/internal/geom"
)

func TestCPUBackend_SinglePoint(t *testing.T) {
	b := NewCPUBackend()
	if b.Name() != "cpu" || !b.Available() {
		t.Fatal("cpu backend should always be available")
	}

	points := []geom.Vec3{{X: 2, Y: 0, Z: 0}}
	centers := []geom.Vec3{{X: 0, Y: 0, Z: 0}}
	strengths := []float64{1}
	out := make([]float64, 1)

	b.PotentialField(points, centers, strengths, out)
	if math.Abs(out[0]-0.5) > 1e-15 {
		t.Errorf("potential %v, want 0.5", out[0])
	}
}

func TestCPUBackend_Superposition(t *testing.T) {
	b := NewCPUBackend()

	centers := []geom.Vec3{{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0}}
	strengths := []float64{2, 3}
	points := []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}}
	out := make([]float64, 2)

	b.PotentialField(points, centers, strengths, out)

	if math.Abs(out[0]-5) > 1e-15 {
		t.Errorf("origin potential %v, want 5", out[0])
	}
	d := math.Sqrt(5)
	if math.Abs(out[1]-5/d) > 1e-15 {
		t.Errorf("off-axis potential %v, want %v", out[1], 5/d)
	}
}

func TestCPUBackend_CoincidentSourceIsInf(t *testing.T) {
	b := NewCPUBackend()

	points := []geom.Vec3{{X: 1, Y: 1, Z: 1}}
	centers := []geom.Vec3{{X: 1, Y: 1, Z: 1}}
	out := make([]float64, 1)

	b.PotentialField(points, centers, []float64{1}, out)
	if !math.IsInf(out[0], 1) {
		t.Errorf("sample on a source should be +Inf, got %v", out[0])
	}
}

func TestCPUBackend_ParallelMatchesSerial(t *testing.T) {
	// Enough points to cross the sharding threshold.
	n := parallelThreshold + 513
	points := make([]geom.Vec3, n)
	for i := range points {
		f := float64(i)
		points[i] = geom.Vec3{X: math.Sin(f), Y: math.Cos(f), Z: f * 0.001}
	}
	centers := []geom.Vec3{{X: 1.5, Y: 0, Z: 0}, {X: -1.5, Y: 0, Z: 0}}
	strengths := []float64{0.5, 2}

	serial := make([]float64, n)
	potentialChunk(points, centers, strengths, serial, 0, n)

	parallel := make([]float64, n)
	NewCPUBackendWithWorkers(4).PotentialField(points, centers, strengths, parallel)

	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("point %d: parallel %v != serial %v", i, parallel[i], serial[i])
		}
	}
}

func TestNewCPUBackendWithWorkers(t *testing.T) {
	if got := NewCPUBackendWithWorkers(3).Workers(); got != 3 {
		t.Errorf("workers %d, want 3", got)
	}
	if got := NewCPUBackendWithWorkers(0).Workers(); got < 1 {
		t.Errorf("zero workers should fall back to NumCPU, got %d", got)
	}
}

func TestSetBackend(t *testing.T) {
	orig := GetBackend()
	defer SetBackend(orig)

	b := NewCPUBackendWithWorkers(2)
	SetBackend(b)
	if GetBackend() != b {
		t.Error("SetBackend did not take effect")
	}
}
