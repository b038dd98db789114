package roistats

import "errors"

var (
	// ErrEmptyRegion is returned when a region of interest has no overlap
	// with its slice, or no pixels at all.
	ErrEmptyRegion = errors.New("roistats: empty region")

	// ErrNoValues is returned by IntensityHistogram for an empty sample.
	ErrNoValues = errors.New("roistats: no values to bin")
)
