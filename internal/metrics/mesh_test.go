package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gravsurf/internal/geom"
)

// planeMesh builds a flat mesh of n unit right triangles, area n/2.
func planeMesh(n int) *geom.Mesh {
	m := geom.NewMesh()
	for i := 0; i < n; i++ {
		x := float64(i)
		m.AddTriangle(
			geom.Vec3{X: x, Y: 0, Z: 0},
			geom.Vec3{X: x + 1, Y: 0, Z: 0},
			geom.Vec3{X: x, Y: 1, Z: 0},
		)
	}
	return m
}

func TestTriangleCount(t *testing.T) {
	m := NewTriangleCount()
	if m.Name() != "triangles" {
		t.Errorf("name %q", m.Name())
	}
	if m.Value() != 0 {
		t.Error("value before any observation should be 0")
	}

	m.Observe(planeMesh(2), 0)
	m.Observe(planeMesh(4), 0.1)
	if got := m.Value(); got != 3 {
		t.Errorf("mean triangle count %v, want 3", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("value after Reset should be 0")
	}
}

func TestSurfaceArea(t *testing.T) {
	m := NewSurfaceArea()

	m.Observe(planeMesh(2), 0)   // area 1
	m.Observe(planeMesh(6), 0.1) // area 3
	if got := m.Value(); math.Abs(got-2) > 1e-12 {
		t.Errorf("mean surface area %v, want 2", got)
	}
}

func TestMeshDrift(t *testing.T) {
	m := NewMeshDrift()
	if m.Name() != "mesh_drift" {
		t.Errorf("name %q", m.Name())
	}

	m.Observe(planeMesh(4), 0) // area 2, no previous frame
	if m.Value() != 0 {
		t.Error("single observation should report zero drift")
	}

	m.Observe(planeMesh(4), 0.1) // unchanged
	if m.Value() != 0 {
		t.Errorf("identical frames drifted: %v", m.Value())
	}

	m.Observe(planeMesh(5), 0.2) // 2 -> 2.5, drift 0.25
	if got := m.Value(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("drift %v, want 0.25", got)
	}

	m.Observe(planeMesh(5), 0.3) // steady again; max is kept
	if got := m.Value(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("max drift not retained: %v", got)
	}

	m.Reset()
	m.Observe(planeMesh(8), 0.4)
	if m.Value() != 0 {
		t.Error("Reset should forget the previous frame")
	}
}

func TestMeshDrift_EmptyFirstFrame(t *testing.T) {
	m := NewMeshDrift()
	m.Observe(geom.NewMesh(), 0) // area 0
	m.Observe(planeMesh(2), 0.1)
	if m.Value() != 0 {
		t.Errorf("drift from zero area should be skipped, got %v", m.Value())
	}
}
