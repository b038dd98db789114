package dicomstack

import "errors"

// ErrNoSlices is returned when no file in the input qualifies as a CT slice.
var ErrNoSlices = errors.New("dicomstack: no CT slices found")
