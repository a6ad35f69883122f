package field

import (
	"math"

	"github.com/san-kum/gravsurf/internal/compute"
	"github.com/san-kum/gravsurf/internal/geom"
)

// Source is a point source of 1/r potential.
type Source struct {
	Center   geom.Vec3
	Strength float64
}

// BinarySources places the two sources of a binary pair on the y=0 plane.
// Given half-separation d and orbit angle θ (wrapped mod 360 before use),
// source A sits at (d·cosθ, 0, d·sinθ) and source B at the mirrored
// position. With α = √massRatio the strengths are 1/α and α, so their
// ratio is massRatio while their geometric mean stays 1 and the combined
// surface keeps its visual scale as the ratio varies.
//
// The pair rotates about the origin, not the center of mass. That matches
// the upstream visualization and is kept as-is.
func BinarySources(massRatio, separation, orbitDegrees float64) []Source {
	theta := WrapDegrees(orbitDegrees) * math.Pi / 180.0
	alpha := math.Sqrt(massRatio)

	offset := geom.Vec3{
		X: separation * math.Cos(theta),
		Z: separation * math.Sin(theta),
	}
	return []Source{
		{Center: offset, Strength: 1 / alpha},
		{Center: offset.Scale(-1), Strength: alpha},
	}
}

// WrapDegrees maps an angle to [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Sampler evaluates source potentials over a grid. The zero value is not
// usable; construct with NewSampler.
type Sampler struct {
	backend compute.Backend
}

func NewSampler() *Sampler {
	return &Sampler{backend: compute.GetBackend()}
}

// Sample overwrites out with the summed strength/r contribution of every
// source at every grid point. A sample coinciding with a source produces
// +Inf; it is stored rather than raised, any finite isolevel classifies it
// as inside.
func (s *Sampler) Sample(g *Grid, sources []Source, out ScalarField) {
	centers := make([]geom.Vec3, len(sources))
	strengths := make([]float64, len(sources))
	for i, src := range sources {
		centers[i] = src.Center
		strengths[i] = src.Strength
	}
	s.backend.PotentialField(g.Points, centers, strengths, out)
}

// SampleSerial is the reference single-goroutine path. The backend path
// must produce identical output; tests compare the two.
func SampleSerial(g *Grid, sources []Source, out ScalarField) {
	out.Reset()
	for _, src := range sources {
		for i, p := range g.Points {
			out[i] += src.Strength / p.Distance(src.Center)
		}
	}
}
