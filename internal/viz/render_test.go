package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/gravsurf/internal/geom"
)

func TestCanvas_SetAndString(t *testing.T) {
	c := NewCanvas(4, 2)

	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		for _, r := range line {
			if r != 0x2800 {
				t.Fatalf("fresh canvas has lit cell %U", r)
			}
		}
	}

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("top-left dot: got %U, want %U", c.Grid[0][0], 0x2801)
	}
	c.Set(1, 3) // same cell, bottom-right dot
	if c.Grid[0][0]&0x80 == 0 {
		t.Error("bottom-right dot of first cell not set")
	}

	// Out-of-range coordinates are ignored.
	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("Clear did not reset cells")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 0)

	lit := 0
	for x := 0; x < 20; x++ {
		col, bit := x/2, pixelMap[0][x%2]
		if int(c.Grid[0][col])&bit != 0 {
			lit++
		}
	}
	if lit != 20 {
		t.Errorf("horizontal line lit %d of 20 sub-pixels", lit)
	}
}

func TestCamera_Project(t *testing.T) {
	cam := NewCamera()
	cam.RotX, cam.RotY, cam.RotZ = 0, 0, 0

	x, y, _, ok := cam.Project(geom.Vec3{}, 80, 40)
	if !ok {
		t.Fatal("origin should be drawable")
	}
	if x != 40 || y != 20 {
		t.Errorf("origin projected to (%d, %d), want canvas center (40, 20)", x, y)
	}

	// +X moves right, +Y moves up (screen y decreases).
	rx, _, _, _ := cam.Project(geom.Vec3{X: 0.5}, 80, 40)
	if rx <= 40 {
		t.Errorf("+x projected to column %d, want > 40", rx)
	}
	_, uy, _, _ := cam.Project(geom.Vec3{Y: 0.5}, 80, 40)
	if uy >= 20 {
		t.Errorf("+y projected to row %d, want < 20", uy)
	}

	if _, _, _, ok := cam.Project(geom.Vec3{X: math.NaN()}, 80, 40); ok {
		t.Error("non-finite point should not be drawable")
	}
	if _, _, _, ok := cam.Project(geom.Vec3{X: 1000}, 80, 40); ok {
		t.Error("point far off screen should not be drawable")
	}
}

func TestCamera_ZoomClamps(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom > 10 {
		t.Errorf("zoom %v exceeds upper clamp", cam.Zoom)
	}
	for i := 0; i < 200; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom < 0.05 {
		t.Errorf("zoom %v below lower clamp", cam.Zoom)
	}
}

func TestCamera_FitBox(t *testing.T) {
	cam := NewCamera()
	cam.FitBox(geom.Vec3{X: -6, Y: -6, Z: -6}, geom.Vec3{X: 6, Y: 6, Z: 6})
	if math.Abs(cam.Zoom-0.2) > 1e-12 {
		t.Errorf("zoom %v, want 0.2 for a 12-unit box", cam.Zoom)
	}

	// Degenerate box leaves zoom alone.
	cam.Zoom = 1
	cam.FitBox(geom.Vec3{}, geom.Vec3{})
	if cam.Zoom != 1 {
		t.Errorf("zoom changed to %v for an empty box", cam.Zoom)
	}
}

func TestMeshEdges_Dedup(t *testing.T) {
	m := geom.NewMesh()
	m.Vertices = []geom.Vec3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	m.Triangles = []geom.Triangle{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}}

	edges := MeshEdges(m)
	if len(edges) != 5 {
		t.Fatalf("got %d edges, want 5 (diagonal shared)", len(edges))
	}
	seen := make(map[[2]int]bool)
	for _, e := range edges {
		if e[0] > e[1] {
			t.Errorf("edge %v not in canonical order", e)
		}
		if seen[e] {
			t.Errorf("edge %v reported twice", e)
		}
		seen[e] = true
	}
}

func TestRenderMesh_DrawsSomething(t *testing.T) {
	m := geom.NewMesh()
	m.AddTriangle(
		geom.Vec3{X: -1, Y: -1, Z: 0},
		geom.Vec3{X: 1, Y: -1, Z: 0},
		geom.Vec3{X: 0, Y: 1, Z: 0},
	)

	c := NewCanvas(40, 20)
	cam := NewCamera()
	RenderMesh(c, m, cam)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("triangle rendered no cells")
	}

	// Nil arguments are a no-op, not a panic.
	RenderMesh(nil, m, cam)
	RenderMesh(c, nil, cam)
	RenderMesh(c, m, nil)
}

func TestRenderMarkers(t *testing.T) {
	c := NewCanvas(40, 20)
	cam := NewCamera()
	RenderMarkers(c, []geom.Vec3{{X: 0, Y: 0, Z: 0}}, cam)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("marker rendered no cells")
	}
}
