// Package compute provides computation backends for field sampling.
//
// Potential evaluation is independent per grid point, so the CPU backend
// shards the point array across NumCPU goroutines:
//
//	backend := compute.GetBackend()
//	backend.PotentialField(points, centers, strengths, out)
//
// There is no GPU backend; at the default grid size (40³ = 64,000 samples)
// the sharded CPU path completes well inside a frame budget.
package compute
