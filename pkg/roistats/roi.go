// Package roistats computes region-of-interest statistics and display
// windowing for CT slices.
package roistats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

// Footprint is the pixel size of a region of interest. Two regions with the
// same footprint cover the same physical area no matter where they sit on
// the slice, which is what makes the area memoization below sound. The zero
// value matches no non-empty region, so it forces the area to be computed.
type Footprint struct {
	Width, Height int
}

// Result carries the statistics of one region evaluation.
//
// Area is the physical coverage in mm² and is only populated when the
// region's footprint differs from the previous one: moving a fixed-size
// region around a slice does not change its area, so callers keep the last
// Footprint and pass it back in, and a nil Area means "unchanged". Mean and
// StdDev are always recomputed. StdDev is the population deviation
// (divide by N, not N-1).
type Result struct {
	Footprint Footprint
	Area      *float64
	Mean      float64
	StdDev    float64
}

// ComputeROIStats evaluates the statistics of the region sub, a rectangle of
// pixels cut out of a slice (see volume.Grid.SubGrid). colSpacing and
// rowSpacing are the physical pixel extents in mm along the slice's
// horizontal and vertical axes; prev is the footprint of the previous
// evaluation, or the zero Footprint to force the area to be computed.
//
// ComputeROIStats returns ErrEmptyRegion when sub contains no pixels.
func ComputeROIStats(sub *volume.Grid, colSpacing, rowSpacing float64, prev Footprint) (Result, error) {
	if sub == nil || sub.Len() == 0 {
		return Result{}, ErrEmptyRegion
	}

	fp := Footprint{Width: sub.Width(), Height: sub.Height()}
	values := sub.Data()

	res := Result{
		Footprint: fp,
		Mean:      stat.Mean(values, nil),
		StdDev:    stat.PopStdDev(values, nil),
	}

	if fp != prev {
		area := float64(fp.Width) * colSpacing * float64(fp.Height) * rowSpacing
		res.Area = &area
	}
	return res, nil
}
