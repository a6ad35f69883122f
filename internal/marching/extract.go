package marching

import (
	"fmt"

	"github.com/san-kum/gravsurf/internal/field"
	"github.com/san-kum/gravsurf/internal/geom"
)

// cubeBits maps corner index (grid layout order: bottom face then top face,
// x then y) to its bit in the cube configuration. The permutation is the
// key into edgeTable/triTable and is load-bearing.
var cubeBits = [8]uint16{1, 2, 8, 4, 16, 32, 128, 64}

// edgeCorners pairs each of the 12 cube edges with its two endpoints,
// in the same corner ordering cubeBits uses.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {3, 7}, {2, 6},
}

// Extract runs marching cubes over the grid and returns an indexed triangle
// mesh approximating the level set values(x) = isolevel. Corner values equal
// to the isolevel count as outside. Non-finite values propagate into vertex
// positions instead of failing; callers that care can check Mesh.IsFinite.
func Extract(g *field.Grid, values field.ScalarField, isolevel float64) (*geom.Mesh, error) {
	if len(values) != g.Len() {
		return nil, fmt.Errorf("field length %d does not match grid size %d", len(values), g.Len())
	}

	size := g.Size
	size2 := size * size

	// Corner offsets relative to the cube's base point index.
	offsets := [8]int{
		0, 1, size, size + 1,
		size2, 1 + size2, size + size2, 1 + size + size2,
	}

	mesh := geom.NewMesh()

	for z := 0; z < size-1; z++ {
		for y := 0; y < size-1; y++ {
			for x := 0; x < size-1; x++ {
				p := g.Index(x, y, z)

				var cubeindex uint16
				var corner [8]float64
				for c := 0; c < 8; c++ {
					corner[c] = values[p+offsets[c]]
					if corner[c] < isolevel {
						cubeindex |= cubeBits[c]
					}
				}

				edges := edgeTable[cubeindex]
				if edges == 0 {
					continue
				}

				// Interpolated crossing per edge, scratch scoped to this cube.
				var verts [12]geom.Vec3
				for e := 0; e < 12; e++ {
					if edges&(1<<e) == 0 {
						continue
					}
					a, b := edgeCorners[e][0], edgeCorners[e][1]
					va, vb := corner[a], corner[b]
					// vb == va yields a non-finite mu; tolerated.
					mu := (isolevel - va) / (vb - va)
					pa := g.Points[p+offsets[a]]
					pb := g.Points[p+offsets[b]]
					verts[e] = pa.Lerp(pb, mu)
				}

				row := &triTable[cubeindex]
				for i := 0; row[i] != -1; i += 3 {
					mesh.AddTriangle(verts[row[i]], verts[row[i+1]], verts[row[i+2]])
				}
			}
		}
	}

	mesh.MergeVertices()
	mesh.ComputeNormals()
	return mesh, nil
}
