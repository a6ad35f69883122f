package compute

import "github.com/san-kum/gravsurf/internal/geom"

// Backend evaluates the superposed point-source potential over a batch of
// sample points. centers and strengths run parallel (one entry per source);
// out must have one slot per point and is overwritten, not accumulated into.
type Backend interface {
	Name() string
	Available() bool
	PotentialField(points []geom.Vec3, centers []geom.Vec3, strengths []float64, out []float64)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = NewCPUBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}
