package projection

import "errors"

// ErrNoVolume is returned by session operations that need a loaded volume
// before the first successful Load.
var ErrNoVolume = errors.New("projection: no volume loaded")
