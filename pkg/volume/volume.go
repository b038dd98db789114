// Package volume assembles ordered stacks of 2-D CT slices into a dense 3-D
// grid and re-slices that grid along the three canonical orthogonal planes.
//
// The coordinate convention follows the input rasters: x addresses columns,
// y addresses rows and z addresses depth. Build reverses the stacking order,
// so the last input slice lands at depth 0; for a CT series sorted by
// ascending slice location this puts the top of the scanned anatomy at z=0
// and orthogonal cuts render top-down.
package volume

import "gonum.org/v1/gonum/floats"

// Volume is an immutable dense 3-D voxel grid. Values are stored flat in
// x-fastest order: index = z*nx*ny + y*nx + x.
type Volume struct {
	data       []float64
	nx, ny, nz int
}

// Dims returns the grid extents along x, y and z.
func (v *Volume) Dims() (nx, ny, nz int) { return v.nx, v.ny, v.nz }

// At returns the voxel value at (x, y, z). No bounds check is performed.
func (v *Volume) At(x, y, z int) float64 {
	return v.data[z*v.nx*v.ny+y*v.nx+x]
}

// Len returns the total number of voxels.
func (v *Volume) Len() int { return len(v.data) }

// MinMax returns the smallest and largest voxel value. Build never produces
// an empty volume, so both values are always defined.
func (v *Volume) MinMax() (min, max float64) {
	return floats.Min(v.data), floats.Max(v.data)
}
