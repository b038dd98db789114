package volume

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid is a dense single-channel 2-D raster stored in row-major order with
// the origin in the top-left corner: x addresses columns and y addresses
// rows. Intensities are kept as raw float64 values, not normalized.
type Grid struct {
	data []float64
	w, h int
}

// NewGrid allocates a zero-filled grid of the given dimensions.
// Dimensions must be non-negative.
func NewGrid(w, h int) *Grid {
	return &Grid{data: make([]float64, w*h), w: w, h: h}
}

// GridFromData wraps an existing row-major buffer as a grid. The buffer is
// used directly, not copied, and its length must equal w*h.
func GridFromData(w, h int, data []float64) (*Grid, error) {
	if len(data) != w*h {
		return nil, fmt.Errorf("volume: grid data length %d does not match %dx%d", len(data), w, h)
	}
	return &Grid{data: data, w: w, h: h}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Len returns the number of values in the grid.
func (g *Grid) Len() int { return len(g.data) }

// At returns the value at column x, row y. No bounds check is performed.
func (g *Grid) At(x, y int) float64 { return g.data[y*g.w+x] }

// Set stores v at column x, row y. No bounds check is performed.
func (g *Grid) Set(x, y int, v float64) { g.data[y*g.w+x] = v }

// Data exposes the underlying row-major buffer. Mutations are visible to
// the grid.
func (g *Grid) Data() []float64 { return g.data }

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.w, g.h)
	copy(c.data, g.data)
	return c
}

// SubGrid copies the w x h rectangle whose top-left corner sits at column x,
// row y into a fresh grid. The rectangle must lie inside the grid; zero
// extents yield an empty grid.
func (g *Grid) SubGrid(x, y, w, h int) (*Grid, error) {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > g.w || y+h > g.h {
		return nil, fmt.Errorf("%w: %dx%d rectangle at (%d,%d) in %dx%d grid",
			ErrIndexOutOfRange, w, h, x, y, g.w, g.h)
	}
	out := NewGrid(w, h)
	for row := 0; row < h; row++ {
		src := (y+row)*g.w + x
		copy(out.data[row*w:(row+1)*w], g.data[src:src+w])
	}
	return out, nil
}

// MinMax returns the smallest and largest value in the grid, or (0, 0) for
// an empty grid.
func (g *Grid) MinMax() (min, max float64) {
	if len(g.data) == 0 {
		return 0, 0
	}
	return floats.Min(g.data), floats.Max(g.data)
}

// Rot90 returns the grid rotated counter-clockwise by k quarter turns.
// k is taken modulo 4, so negative values rotate clockwise. The result is
// always a fresh grid; for k ≡ 0 it is a plain copy. A quarter turn swaps
// the dimensions: a WxH grid becomes HxW.
func (g *Grid) Rot90(k int) *Grid {
	k = ((k % 4) + 4) % 4
	out := g.Clone()
	for ; k > 0; k-- {
		out = out.rotateOnce()
	}
	return out
}

// rotateOnce performs a single counter-clockwise quarter turn: the value at
// column x, row y moves to column y, row w-1-x.
func (g *Grid) rotateOnce() *Grid {
	out := NewGrid(g.h, g.w)
	for y := 0; y < out.h; y++ {
		for x := 0; x < out.w; x++ {
			out.data[y*out.w+x] = g.data[x*g.w+(g.w-1-y)]
		}
	}
	return out
}
