package volume

import (
	"fmt"
	"strings"
)

// Plane identifies one of the three canonical orthogonal cutting planes.
type Plane int

const (
	// PlaneXY fixes a depth z and keeps the native slice axes (axial view).
	PlaneXY Plane = iota
	// PlaneXZ fixes a row y (coronal view).
	PlaneXZ
	// PlaneYZ fixes a column x (sagittal view).
	PlaneYZ
)

// String returns the lower-case plane identifier.
func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	}
	return fmt.Sprintf("Plane(%d)", int(p))
}

// PlaneFromString parses a plane identifier. It accepts "xy", "xz" and "yz"
// in any letter case and returns ErrInvalidPlane for anything else.
func PlaneFromString(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "yz":
		return PlaneYZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPlane, s)
}

// SliceCount returns the number of distinct cuts the volume admits along
// plane p, or 0 for an invalid plane.
func (v *Volume) SliceCount(p Plane) int {
	switch p {
	case PlaneXY:
		return v.nz
	case PlaneXZ:
		return v.ny
	case PlaneYZ:
		return v.nx
	}
	return 0
}

// ExtractSlice materializes the index-th cut along plane p as a fresh grid.
//
// The grid axes follow the plane name: XY cuts are nx wide and ny tall,
// XZ cuts are nx wide and nz tall, YZ cuts are ny wide and nz tall. In the
// XZ and YZ cuts the vertical axis is depth, so row 0 shows z=0.
//
// Extraction costs O(area of the cut); the volume is never scanned whole.
// ExtractSlice returns ErrInvalidPlane for an unknown plane and
// ErrIndexOutOfRange when index does not lie in [0, SliceCount(p)).
func (v *Volume) ExtractSlice(p Plane, index int) (*Grid, error) {
	switch p {
	case PlaneXY, PlaneXZ, PlaneYZ:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlane, p)
	}
	if count := v.SliceCount(p); index < 0 || index >= count {
		return nil, fmt.Errorf("%w: index %d, plane %s admits [0,%d)",
			ErrIndexOutOfRange, index, p, count)
	}

	plane := v.nx * v.ny
	switch p {
	case PlaneXY:
		out := NewGrid(v.nx, v.ny)
		copy(out.data, v.data[index*plane:(index+1)*plane])
		return out, nil

	case PlaneXZ:
		out := NewGrid(v.nx, v.nz)
		for z := 0; z < v.nz; z++ {
			row := v.data[z*plane+index*v.nx : z*plane+(index+1)*v.nx]
			copy(out.data[z*v.nx:(z+1)*v.nx], row)
		}
		return out, nil

	default: // PlaneYZ
		out := NewGrid(v.ny, v.nz)
		for z := 0; z < v.nz; z++ {
			for y := 0; y < v.ny; y++ {
				out.data[z*v.ny+y] = v.data[z*plane+y*v.nx+index]
			}
		}
		return out, nil
	}
}
