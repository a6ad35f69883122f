package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gravsurf/internal/geom"
	"github.com/san-kum/gravsurf/internal/viz"
)

// unitTriangle builds a one-triangle mesh in the z=0 plane with normals.
func unitTriangle() *geom.Mesh {
	m := geom.NewMesh()
	m.AddTriangle(
		geom.Vec3{X: 0, Y: 0, Z: 0},
		geom.Vec3{X: 1, Y: 0, Z: 0},
		geom.Vec3{X: 0, Y: 1, Z: 0},
	)
	m.ComputeNormals()
	return m
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, unitTriangle()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	counts := map[string]int{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			counts[fields[0]]++
		}
	}
	if counts["v"] != 3 || counts["vt"] != 3 || counts["vn"] != 3 {
		t.Errorf("got %d v, %d vt, %d vn lines, want 3 of each",
			counts["v"], counts["vt"], counts["vn"])
	}
	if counts["f"] != 1 {
		t.Errorf("got %d face lines, want 1", counts["f"])
	}
	if !strings.Contains(out, "f 1/1/1 2/2/2 3/3/3") {
		t.Errorf("face indices not 1-based:\n%s", out)
	}
	if !strings.Contains(out, "vn 0.000000 0.000000 1.000000") {
		t.Errorf("missing +z normal:\n%s", out)
	}
}

func TestWritePLY(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePLY(&buf, unitTriangle()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "ply\nformat ascii 1.0\n") {
		t.Errorf("bad header:\n%s", out)
	}
	if !strings.Contains(out, "element vertex 3") || !strings.Contains(out, "element face 1") {
		t.Errorf("wrong element counts:\n%s", out)
	}
	if !strings.Contains(out, "\n3 0 1 2\n") {
		t.Errorf("face indices not 0-based:\n%s", out)
	}

	// Body starts right after end_header: 3 vertex lines then 1 face line.
	_, body, ok := strings.Cut(out, "end_header\n")
	if !ok {
		t.Fatal("no end_header")
	}
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d body lines, want 4", len(lines))
	}
	var x, y, z, nx, ny, nz float64
	if _, err := fmt.Sscanf(lines[0], "%f %f %f %f %f %f", &x, &y, &z, &nx, &ny, &nz); err != nil {
		t.Fatalf("vertex line %q: %v", lines[0], err)
	}
	if nz != 1 {
		t.Errorf("first vertex normal z = %v, want 1", nz)
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	m := unitTriangle()

	objPath := filepath.Join(dir, "mesh.obj")
	if err := SaveOBJ(objPath, m); err != nil {
		t.Fatal(err)
	}
	plyPath := filepath.Join(dir, "mesh.ply")
	if err := SavePLY(plyPath, m); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{objPath, plyPath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestEmptyMesh(t *testing.T) {
	m := geom.NewMesh()

	var obj bytes.Buffer
	if err := WriteOBJ(&obj, m); err != nil {
		t.Fatal(err)
	}
	var ply bytes.Buffer
	if err := WritePLY(&ply, m); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ply.String(), "element vertex 0") {
		t.Error("empty mesh should declare zero vertices")
	}
}

func TestCanvasToSVG(t *testing.T) {
	canvas := viz.NewCanvas(20, 10)
	canvas.DrawLine(0, 0, 39, 39)

	svg := CanvasToSVG(canvas, 4)
	if !strings.Contains(svg, "<svg ") || !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Errorf("not an svg document:\n%s", svg)
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("drawn line produced no dots")
	}

	empty := CanvasToSVG(viz.NewCanvas(20, 10), 4)
	if strings.Contains(empty, "<circle") {
		t.Error("empty canvas should produce no dots")
	}
}
