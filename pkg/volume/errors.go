package volume

import "errors"

var (
	// ErrEmptyInput is returned by Build when the input stack holds no slices.
	ErrEmptyInput = errors.New("volume: empty slice stack")

	// ErrInconsistentShape is returned by Build when an input slice does not
	// match the shape of the first slice.
	ErrInconsistentShape = errors.New("volume: inconsistent slice shape")

	// ErrInvalidPlane is returned for plane identifiers other than XY, XZ
	// and YZ.
	ErrInvalidPlane = errors.New("volume: invalid plane")

	// ErrIndexOutOfRange is returned when a slice index lies outside the
	// range the volume admits along the requested plane.
	ErrIndexOutOfRange = errors.New("volume: slice index out of range")
)
