package viz

import (
	"math"
	"sort"

	"github.com/san-kum/gravsurf/internal/geom"
)

// Camera manages 3D projection of mesh geometry onto the canvas plane.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, RotX: 0.4, RotY: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.05, c.Zoom/1.2) }

// FitBox sets the zoom so an axis-aligned box fills most of the view.
// The projection maps roughly [-1.5, 1.5] onto the smaller canvas axis.
func (c *Camera) FitBox(min, max geom.Vec3) {
	extent := math.Max(max.X-min.X, math.Max(max.Y-min.Y, max.Z-min.Z))
	if extent > 0 {
		c.Zoom = 2.4 / extent
	}
}

// rotate applies the camera's euler rotation to a point.
func (c *Camera) rotate(p geom.Vec3) geom.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to canvas sub-pixel coordinates.
// Returns x, y, depth, and whether the point is drawable.
func (c *Camera) Project(p geom.Vec3, sw, sh int) (int, int, float64, bool) {
	if !p.IsFinite() {
		return 0, 0, 0, false
	}
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// MeshEdges returns each undirected triangle edge once, as vertex index
// pairs. Shared edges between adjacent triangles collapse, roughly halving
// the line count per frame.
func MeshEdges(m *geom.Mesh) [][2]int {
	type key struct{ a, b int }
	seen := make(map[key]struct{}, len(m.Triangles)*3)
	edges := make([][2]int, 0, len(m.Triangles)*3/2)

	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		k := key{a, b}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		edges = append(edges, [2]int{a, b})
	}
	for _, t := range m.Triangles {
		add(t.A, t.B)
		add(t.B, t.C)
		add(t.C, t.A)
	}
	return edges
}

// RenderMesh draws the mesh wireframe to the canvas with a painter's
// algorithm (farthest edges first).
func RenderMesh(c *Canvas, m *geom.Mesh, cam *Camera) {
	if c == nil || m == nil || cam == nil {
		return
	}
	cw, ch := c.Width*2, c.Height*4

	edges := MeshEdges(m)
	proj := make([]projectedEdge, 0, len(edges))
	for _, e := range edges {
		x1, y1, d1, v1 := cam.Project(m.Vertices[e[0]], cw, ch)
		x2, y2, d2, v2 := cam.Project(m.Vertices[e[1]], cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

// RenderMarkers plots standalone points, used for the source positions.
func RenderMarkers(c *Canvas, points []geom.Vec3, cam *Camera) {
	cw, ch := c.Width*2, c.Height*4
	for _, p := range points {
		if x, y, _, ok := cam.Project(p, cw, ch); ok {
			c.Set(x, y)
			c.Set(x+1, y)
			c.Set(x, y+1)
			c.Set(x+1, y+1)
		}
	}
}
