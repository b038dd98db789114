// Package dicomstack adapts DICOM series on disk into the ordered slice
// stacks and raw series metadata the volume builder consumes. It is the only
// package that touches DICOM; everything above it sees grids and plain
// strings.
package dicomstack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/ksalekk/ct-visualizer/internal/ctlog"
	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

// DefaultPattern is the filename pattern ReadDir matches when no WithPattern
// option is given.
const DefaultPattern = "*.dcm"

// SeriesMetadata is the raw metadata record of one CT series, read from the
// middle dataset of the sorted stack. Fields hold the DICOM values as-is;
// substitution of missing values and display normalization happen at the
// metadata boundary, not here.
type SeriesMetadata struct {
	SliceThickness float64
	RowSpacing     float64
	ColSpacing     float64

	PatientID   string
	PatientName string
	PatientAge  string
	PatientSex  string

	StudyID   string
	StudyDate string
	BodyPart  string
}

// Stack is an ordered CT slice stack: grids sorted ascending by physical
// slice location, plus the series metadata record.
type Stack struct {
	Grids  []*volume.Grid
	Series SeriesMetadata
}

// Option adjusts how a stack is read.
type Option func(*readOptions)

type readOptions struct {
	pattern string
}

// WithPattern sets the filename pattern ReadDir matches, e.g. "CT*.dcm" or
// "*.ima".
func WithPattern(pattern string) Option {
	return func(o *readOptions) { o.pattern = pattern }
}

// ReadDir reads every file in dir whose name matches the configured pattern
// and assembles the qualifying CT slices into a stack. Subdirectories are
// not descended into.
func ReadDir(dir string, opts ...Option) (*Stack, error) {
	o := readOptions{pattern: DefaultPattern}
	for _, opt := range opts {
		opt(&o)
	}

	g, err := glob.Compile(o.pattern)
	if err != nil {
		return nil, fmt.Errorf("dicomstack: invalid pattern %q: %w", o.pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dicomstack: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !g.Match(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	// Deterministic parse order; the location sort later is stable.
	sort.Strings(paths)

	ctlog.Vprintf(1, "dicomstack: %d of %d entries in %s match %q",
		len(paths), len(entries), dir, o.pattern)

	return ReadFiles(paths)
}

// ReadFiles parses the given DICOM files as-is, with no filename filtering,
// and assembles the qualifying CT slices into a stack. A parse failure
// aborts the whole read; ErrNoSlices is returned when nothing qualifies.
func ReadFiles(paths []string) (*Stack, error) {
	datasets, err := parseFiles(paths)
	if err != nil {
		return nil, err
	}
	return stackFromDatasets(datasets)
}
