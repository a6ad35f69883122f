package geom

import (
	"math"
)

// UV is a texture coordinate pair.
type UV struct {
	U, V float64
}

// Triangle references three vertices of a Mesh by index.
type Triangle struct {
	A, B, C int
}

// Mesh is an indexed triangle mesh. Vertices, Normals and UVs run parallel
// (one entry per vertex); FaceNormals runs parallel to Triangles.
type Mesh struct {
	Vertices    []Vec3
	Triangles   []Triangle
	Normals     []Vec3
	UVs         []UV
	FaceNormals []Vec3
}

func NewMesh() *Mesh {
	return &Mesh{
		Vertices:  make([]Vec3, 0),
		Triangles: make([]Triangle, 0),
	}
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) }
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }
func (m *Mesh) IsEmpty() bool      { return len(m.Triangles) == 0 }

// AddTriangle appends three fresh vertices and a triangle over them.
// Vertices are not shared; call MergeVertices afterwards to index the mesh.
func (m *Mesh) AddTriangle(a, b, c Vec3) {
	i := len(m.Vertices)
	m.Vertices = append(m.Vertices, a, b, c)
	m.Triangles = append(m.Triangles, Triangle{i, i + 1, i + 2})
	m.UVs = append(m.UVs, UV{0, 0}, UV{1, 0}, UV{0, 1})
}

// IsFinite reports whether every vertex holds only finite coordinates.
func (m *Mesh) IsFinite() bool {
	for _, v := range m.Vertices {
		if !v.IsFinite() {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned extent of the mesh. Non-finite vertices
// are skipped so a single degenerate vertex does not blow up the box.
func (m *Mesh) Bounds() (min, max Vec3) {
	min = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		if !v.IsFinite() {
			continue
		}
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return min, max
}

// SurfaceArea sums the area of all finite triangles.
func (m *Mesh) SurfaceArea() float64 {
	area := 0.0
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C]
		if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() {
			continue
		}
		area += 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
	}
	return area
}

// mergePrecision quantizes positions to 1e-4 world units when deduplicating.
const mergePrecision = 1e4

type quantKey struct {
	x, y, z int64
}

// MergeVertices collapses vertices whose quantized positions coincide so
// adjacent triangles share indices. Triangles left degenerate by the merge
// (two or more corners mapping to the same vertex) are dropped. Non-finite
// vertices never merge with anything. The first UV written for a shared
// vertex wins.
func (m *Mesh) MergeVertices() {
	seen := make(map[quantKey]int, len(m.Vertices))
	remap := make([]int, len(m.Vertices))
	verts := make([]Vec3, 0, len(m.Vertices))
	uvs := make([]UV, 0, len(m.Vertices))

	for i, v := range m.Vertices {
		if !v.IsFinite() {
			remap[i] = len(verts)
			verts = append(verts, v)
			uvs = append(uvs, m.uvAt(i))
			continue
		}
		key := quantKey{
			x: int64(math.Round(v.X * mergePrecision)),
			y: int64(math.Round(v.Y * mergePrecision)),
			z: int64(math.Round(v.Z * mergePrecision)),
		}
		if j, ok := seen[key]; ok {
			remap[i] = j
			continue
		}
		seen[key] = len(verts)
		remap[i] = len(verts)
		verts = append(verts, v)
		uvs = append(uvs, m.uvAt(i))
	}

	tris := make([]Triangle, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		nt := Triangle{remap[t.A], remap[t.B], remap[t.C]}
		if nt.A == nt.B || nt.B == nt.C || nt.A == nt.C {
			continue
		}
		tris = append(tris, nt)
	}

	m.Vertices = verts
	m.UVs = uvs
	m.Triangles = tris
	m.Normals = nil
	m.FaceNormals = nil
}

func (m *Mesh) uvAt(i int) UV {
	if i < len(m.UVs) {
		return m.UVs[i]
	}
	return UV{}
}

// ComputeNormals fills FaceNormals with the unit cross product of each
// triangle's edge vectors (winding order preserved) and Normals with the
// normalized average of the face normals adjacent to each vertex.
func (m *Mesh) ComputeNormals() {
	m.FaceNormals = make([]Vec3, len(m.Triangles))
	m.Normals = make([]Vec3, len(m.Vertices))

	for i, t := range m.Triangles {
		a, b, c := m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		m.FaceNormals[i] = n
		m.Normals[t.A] = m.Normals[t.A].Add(n)
		m.Normals[t.B] = m.Normals[t.B].Add(n)
		m.Normals[t.C] = m.Normals[t.C].Add(n)
	}
	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}
