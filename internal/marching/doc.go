// Package marching extracts isosurfaces from sampled scalar fields via the
// marching cubes algorithm.
//
// Each cube of 8 adjacent grid points is classified against the isolevel
// into one of 256 configurations; static lookup tables give the crossed
// edges and the triangle fan for each configuration, and crossing positions
// are found by linear interpolation along the edges:
//
//	mesh, err := marching.Extract(grid, values, 0.7)
//
// The returned mesh has merged vertices and per-vertex normals, ready for
// rendering or export. Extraction is deterministic and rebuilds the whole
// mesh on every call.
package marching
