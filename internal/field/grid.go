package field

import (
	"fmt"
	"math"

	"github.com/san-kum/gravsurf/internal/geom"
)

// ErrGridSize is returned when a grid would have fewer than 2 points per axis.
var ErrGridSize = fmt.Errorf("grid size must be at least 2 points per axis")

// Grid is a fixed cubic lattice of sample points. Points are addressed by
// the flattened index p = x + Size*y + Size*Size*z and never change after
// construction.
type Grid struct {
	Size    int
	AxisMin float64
	AxisMax float64
	Points  []geom.Vec3
}

// NewGrid builds a Size³ lattice spanning [axisMin, axisMax] inclusive on
// every axis. Point i along an axis sits at axisMin + (axisMax-axisMin)*i/(Size-1).
func NewGrid(size int, axisMin, axisMax float64) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrGridSize, size)
	}

	g := &Grid{
		Size:    size,
		AxisMin: axisMin,
		AxisMax: axisMax,
		Points:  make([]geom.Vec3, 0, size*size*size),
	}

	step := (axisMax - axisMin) / float64(size-1)
	for z := 0; z < size; z++ {
		pz := axisMin + float64(z)*step
		for y := 0; y < size; y++ {
			py := axisMin + float64(y)*step
			for x := 0; x < size; x++ {
				px := axisMin + float64(x)*step
				g.Points = append(g.Points, geom.Vec3{X: px, Y: py, Z: pz})
			}
		}
	}
	return g, nil
}

// Len returns the total number of lattice points (Size³).
func (g *Grid) Len() int { return len(g.Points) }

// Index flattens lattice coordinates to the linear point index.
func (g *Grid) Index(x, y, z int) int {
	return x + g.Size*y + g.Size*g.Size*z
}

// CellSize returns the spacing between adjacent lattice points.
func (g *Grid) CellSize() float64 {
	return (g.AxisMax - g.AxisMin) / float64(g.Size-1)
}

// ScalarField holds one sampled value per grid point, indexed identically
// to Grid.Points. Contents are overwritten in place on every resample.
type ScalarField []float64

// NewScalarField allocates a zeroed field sized for g.
func NewScalarField(g *Grid) ScalarField {
	return make(ScalarField, g.Len())
}

func (f ScalarField) Reset() {
	for i := range f {
		f[i] = 0
	}
}

func (f ScalarField) IsFinite() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MinMax returns the smallest and largest sampled values. Non-finite
// entries participate, so a field with an +Inf spike reports it as the max.
func (f ScalarField) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f {
		if math.IsNaN(v) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}
