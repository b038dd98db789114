package volume

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ksalekk/ct-visualizer/internal/ctlog"
)

// BuildOption adjusts how Build assembles a volume.
type BuildOption func(*buildOptions)

type buildOptions struct {
	quarterTurns int
	workers      int
}

// WithRotation rotates every input slice counter-clockwise by the given
// number of quarter turns before insertion. The count is taken modulo 4;
// negative values rotate clockwise. An odd count swaps the in-plane extents
// of the resulting volume.
func WithRotation(quarterTurns int) BuildOption {
	return func(o *buildOptions) { o.quarterTurns = quarterTurns }
}

// WithWorkers caps the number of goroutines used to fill the volume.
// Values below 1 fall back to a single worker.
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) { o.workers = n }
}

// Build assembles an ordered stack of equally shaped slices into a volume.
// The stacking order is reversed: input index i is stored at depth
// len(slices)-1-i, so a stack sorted by ascending slice location ends up
// with its last (topmost) slice at z=0.
//
// Build returns ErrEmptyInput for an empty stack and ErrInconsistentShape
// when any slice disagrees with the shape of the first one. The input grids
// are only read; the volume owns its own storage.
func Build(slices []*Grid, opts ...BuildOption) (*Volume, error) {
	if len(slices) == 0 {
		return nil, ErrEmptyInput
	}

	o := buildOptions{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	w0, h0 := slices[0].Width(), slices[0].Height()
	if w0 == 0 || h0 == 0 {
		return nil, fmt.Errorf("%w: slices are %dx%d", ErrEmptyInput, w0, h0)
	}
	for i, s := range slices {
		if s.Width() != w0 || s.Height() != h0 {
			return nil, fmt.Errorf("%w: slice %d is %dx%d, want %dx%d",
				ErrInconsistentShape, i, s.Width(), s.Height(), w0, h0)
		}
	}

	k := ((o.quarterTurns % 4) + 4) % 4
	nx, ny := w0, h0
	if k%2 == 1 {
		nx, ny = h0, w0
	}
	nz := len(slices)

	v := &Volume{data: make([]float64, nx*ny*nz), nx: nx, ny: ny, nz: nz}
	plane := nx * ny

	workers := o.workers
	if workers > nz {
		workers = nz
	}
	chunkSize := (nz + workers - 1) / workers

	ctlog.Vprintf(1, "volume: building %dx%dx%d from %d slices (rotation %d, workers %d)",
		nx, ny, nz, nz, k, workers)

	// Each input index writes a distinct depth, so workers never overlap.
	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		start := g * chunkSize
		end := start + chunkSize
		if end > nz {
			end = nz
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				src := slices[i]
				if k != 0 {
					src = src.Rot90(k)
				}
				z := nz - 1 - i
				copy(v.data[z*plane:(z+1)*plane], src.data)
			}
		}(start, end)
	}
	wg.Wait()

	return v, nil
}
