package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/gravsurf/internal/geom"
)

// WritePLY writes the mesh in ASCII PLY format with per-vertex normals.
func WritePLY(w io.Writer, m *geom.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintln(bw, "comment gravsurf equipotential surface")
	fmt.Fprintf(bw, "element vertex %d\n", m.VertexCount())
	fmt.Fprintln(bw, "property float x")
	fmt.Fprintln(bw, "property float y")
	fmt.Fprintln(bw, "property float z")
	fmt.Fprintln(bw, "property float nx")
	fmt.Fprintln(bw, "property float ny")
	fmt.Fprintln(bw, "property float nz")
	fmt.Fprintf(bw, "element face %d\n", m.TriangleCount())
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "end_header")

	for i, v := range m.Vertices {
		n := geom.Vec3{}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		fmt.Fprintf(bw, "%.6f %.6f %.6f %.6f %.6f %.6f\n", v.X, v.Y, v.Z, n.X, n.Y, n.Z)
	}
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "3 %d %d %d\n", t.A, t.B, t.C)
	}
	return bw.Flush()
}

// SavePLY writes the mesh to a file at path.
func SavePLY(path string, m *geom.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WritePLY(f, m)
}
