package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/gravsurf/internal/geom"
)

// parallelThreshold is the point count below which sharding is not worth
// the goroutine overhead.
const parallelThreshold = 4096

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

// NewCPUBackendWithWorkers pins the worker count; n < 1 falls back to NumCPU.
func NewCPUBackendWithWorkers(n int) *CPUBackend {
	if n < 1 {
		n = runtime.NumCPU()
	}
	return &CPUBackend{workers: n}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) PotentialField(points []geom.Vec3, centers []geom.Vec3, strengths []float64, out []float64) {
	if len(points) < parallelThreshold || c.workers < 2 {
		potentialChunk(points, centers, strengths, out, 0, len(points))
		return
	}
	c.potentialParallel(points, centers, strengths, out)
}

// potentialChunk evaluates points[start:end]. A sample that lands exactly on
// a source divides by zero and stores +Inf; that is deliberate, downstream
// consumers treat non-finite values as "inside everything".
func potentialChunk(points []geom.Vec3, centers []geom.Vec3, strengths []float64, out []float64, start, end int) {
	for i := start; i < end; i++ {
		p := points[i]
		sum := 0.0
		for s, c := range centers {
			sum += strengths[s] / p.Distance(c)
		}
		out[i] = sum
	}
}

func (c *CPUBackend) potentialParallel(points []geom.Vec3, centers []geom.Vec3, strengths []float64, out []float64) {
	n := len(points)
	chunkSize := (n + c.workers - 1) / c.workers

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			potentialChunk(points, centers, strengths, out, start, end)
		}(start, end)
	}
	wg.Wait()
}
