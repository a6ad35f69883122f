package metrics

import (
	"math"

	"github.com/san-kum/gravsurf/internal/geom"
)

// TriangleCount reports the mean triangle count across observed frames.
type TriangleCount struct {
	name    string
	samples int
	total   float64
}

func NewTriangleCount() *TriangleCount {
	return &TriangleCount{name: "triangles"}
}

func (m *TriangleCount) Name() string { return m.name }

func (m *TriangleCount) Observe(mesh *geom.Mesh, t float64) {
	m.total += float64(mesh.TriangleCount())
	m.samples++
}

func (m *TriangleCount) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *TriangleCount) Reset() {
	m.total = 0
	m.samples = 0
}

// SurfaceArea reports the mean total surface area across observed frames.
type SurfaceArea struct {
	name    string
	samples int
	total   float64
}

func NewSurfaceArea() *SurfaceArea {
	return &SurfaceArea{name: "surface_area"}
}

func (m *SurfaceArea) Name() string { return m.name }

func (m *SurfaceArea) Observe(mesh *geom.Mesh, t float64) {
	m.total += mesh.SurfaceArea()
	m.samples++
}

func (m *SurfaceArea) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *SurfaceArea) Reset() {
	m.total = 0
	m.samples = 0
}

// MeshDrift tracks the largest relative surface-area change between
// consecutive frames. A steady orbit of a symmetric pair should drift very
// little; spikes point at sampling artifacts.
type MeshDrift struct {
	name     string
	samples  int
	prevArea float64
	maxDrift float64
}

func NewMeshDrift() *MeshDrift {
	return &MeshDrift{name: "mesh_drift"}
}

func (m *MeshDrift) Name() string { return m.name }

func (m *MeshDrift) Observe(mesh *geom.Mesh, t float64) {
	area := mesh.SurfaceArea()
	if m.samples > 0 && m.prevArea != 0 {
		drift := math.Abs(area-m.prevArea) / math.Abs(m.prevArea)
		if drift > m.maxDrift {
			m.maxDrift = drift
		}
	}
	m.prevArea = area
	m.samples++
}

func (m *MeshDrift) Value() float64 { return m.maxDrift }

func (m *MeshDrift) Reset() {
	m.samples = 0
	m.prevArea = 0
	m.maxDrift = 0
}
