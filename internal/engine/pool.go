package engine

import (
	"sync"

	"github.com/san-kum/gravsurf/internal/field"
)

// FieldPool recycles scalar-field buffers between concurrent extractions.
type FieldPool struct {
	pool sync.Pool
	size int
}

func NewFieldPool(g *field.Grid) *FieldPool {
	size := g.Len()
	return &FieldPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make(field.ScalarField, size)
			},
		},
	}
}

func (p *FieldPool) Get() field.ScalarField {
	return p.pool.Get().(field.ScalarField)
}

func (p *FieldPool) Put(f field.ScalarField) {
	if len(f) == p.size {
		f.Reset()
		p.pool.Put(f)
	}
}
