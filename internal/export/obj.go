package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/gravsurf/internal/geom"
)

// WriteOBJ writes the mesh as Wavefront OBJ: positions, texture
// coordinates, normals and faces referencing all three. OBJ indices are
// 1-based.
func WriteOBJ(w io.Writer, m *geom.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# gravsurf equipotential surface")
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
	}
	for i := range m.Vertices {
		uv := geom.UV{}
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		fmt.Fprintf(bw, "vt %.6f %.6f\n", uv.U, uv.V)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
	}
	for _, t := range m.Triangles {
		a, b, c := t.A+1, t.B+1, t.C+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

// SaveOBJ writes the mesh to a file at path.
func SaveOBJ(path string, m *geom.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteOBJ(f, m)
}
