package roistats

import (
	"fmt"

	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

// ComputeWindow derives display window parameters from an intensity range.
// The width is the truncated span max-min and the center sits half a width
// above min, truncated the same way, matching the usual CT presentation of
// integer window width and level.
func ComputeWindow(min, max float64) (width, center int) {
	width = int(max - min)
	center = int(min + float64(width)/2)
	return width, center
}

// IntensityHistogram bins the grid's values into bins equally sized buckets
// spanning its min..max intensity range. It returns the per-bucket counts
// and the bins+1 bucket edges. A constant grid collapses into the first
// bucket. It returns ErrNoValues for an empty grid.
func IntensityHistogram(g *volume.Grid, bins int) ([]int, []float64, error) {
	if g == nil || g.Len() == 0 {
		return nil, nil, ErrNoValues
	}
	if bins < 1 {
		return nil, nil, fmt.Errorf("roistats: invalid bin count %d", bins)
	}

	min, max := g.MinMax()
	span := max - min

	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + span*float64(i)/float64(bins)
	}

	counts := make([]int, bins)
	if span == 0 {
		counts[0] = g.Len()
		return counts, edges, nil
	}

	for _, v := range g.Data() {
		bin := int((v - min) / span * float64(bins))
		if bin == bins {
			bin = bins - 1 // v == max
		}
		counts[bin]++
	}
	return counts, edges, nil
}
