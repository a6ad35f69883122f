package engine

import (
	"context"
	"sync"

	"github.com/san-kum/gravsurf/internal/field"
	"github.com/san-kum/gravsurf/internal/marching"
)

// SweepResult summarizes one extraction of a parameter sweep.
type SweepResult struct {
	Params      Params
	Vertices    int
	Triangles   int
	SurfaceArea float64
	Finite      bool
}

// Sweep extracts one mesh per parameter variant over a shared grid.
// Extractions are independent, so they fan out across goroutines; each
// borrows a field buffer from a pool rather than allocating its own.
type Sweep struct {
	grid     *field.Grid
	variants []Params
}

func NewSweep(grid *field.Grid, variants []Params) *Sweep {
	return &Sweep{grid: grid, variants: variants}
}

func (s *Sweep) Run(ctx context.Context) ([]SweepResult, error) {
	for _, p := range s.variants {
		if err := ValidateParams(p); err != nil {
			return nil, err
		}
	}

	results := make([]SweepResult, len(s.variants))
	errs := make([]error, len(s.variants))
	pool := NewFieldPool(s.grid)
	sampler := field.NewSampler()

	var wg sync.WaitGroup
	for i, p := range s.variants {
		wg.Add(1)
		go func(idx int, p Params) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			default:
			}

			values := pool.Get()
			defer pool.Put(values)

			sources := field.BinarySources(p.MassRatio, p.Separation, p.OrbitDegrees)
			sampler.Sample(s.grid, sources, values)

			mesh, err := marching.Extract(s.grid, values, p.Isolevel)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = SweepResult{
				Params:      p,
				Vertices:    mesh.VertexCount(),
				Triangles:   mesh.TriangleCount(),
				SurfaceArea: mesh.SurfaceArea(),
				Finite:      mesh.IsFinite(),
			}
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
