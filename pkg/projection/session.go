package projection

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/ksalekk/ct-visualizer/internal/ctlog"
	"github.com/ksalekk/ct-visualizer/pkg/dicomstack"
	"github.com/ksalekk/ct-visualizer/pkg/metadata"
	"github.com/ksalekk/ct-visualizer/pkg/roistats"
	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

// Session owns one loaded CT series: the assembled volume, the three axis
// projections and the patient/examination metadata. A freshly created
// Session is empty; Load (or LoadVolume) populates it wholesale and a failed
// load leaves the previous state fully intact.
type Session struct {
	vol         *volume.Volume
	series      dicomstack.SeriesMetadata
	projections map[volume.Plane]*AxisProjection

	patient *metadata.Map
	exam    *metadata.Map

	loadID string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Load assembles the stack into a volume and resets the session around it.
// Build options (rotation, worker count) are passed through unchanged.
// On error the session keeps serving its previous volume, if any.
func (s *Session) Load(stack *dicomstack.Stack, opts ...volume.BuildOption) error {
	if stack == nil {
		return fmt.Errorf("%w: nil stack", volume.ErrEmptyInput)
	}

	vol, err := volume.Build(stack.Grids, opts...)
	if err != nil {
		return fmt.Errorf("projection: building volume: %w", err)
	}

	s.reset(vol, stack.Series)
	return nil
}

// LoadVolume resets the session around an already assembled volume.
func (s *Session) LoadVolume(vol *volume.Volume, series dicomstack.SeriesMetadata) error {
	if vol == nil {
		return ErrNoVolume
	}
	s.reset(vol, series)
	return nil
}

// reset replaces every piece of session state. It is infallible by
// construction: all fallible work happens before the first mutation.
func (s *Session) reset(vol *volume.Volume, series dicomstack.SeriesMetadata) {
	s.vol = vol
	s.series = series
	s.loadID = uuid.NewString()

	nx, ny, nz := vol.Dims()
	s.projections = map[volume.Plane]*AxisProjection{}
	for _, p := range []volume.Plane{volume.PlaneXY, volume.PlaneXZ, volume.PlaneYZ} {
		s.projections[p] = newAxisProjection(p, nx, ny, nz,
			series.ColSpacing, series.RowSpacing, series.SliceThickness)
	}

	s.patient = metadata.Pairs(
		"Patient ID", metadata.OrUnknown(series.PatientID),
		"Name", metadata.UpperName(series.PatientName),
		"Age", metadata.OrUnknown(series.PatientAge),
		"Sex", metadata.Capitalize(series.PatientSex),
	)
	s.exam = metadata.Pairs(
		"Study ID", metadata.OrUnknown(series.StudyID),
		"Date", metadata.OrUnknown(series.StudyDate),
		"Body Part Examined", metadata.Capitalize(series.BodyPart),
	)

	ctlog.Vprintf(1, "session %s: volume %dx%dx%d ready", s.loadID, nx, ny, nz)

	// Every view opens on its middle cut.
	for p, proj := range s.projections {
		_, _, _ = s.RequestSlice(p, proj.SliceCount()/2) // middle index is always in range
	}
}

// RequestSlice extracts the n-th cut along plane p, makes it the
// projection's current slice and merges the "Slice" position into the
// display metadata. It returns the cut and a snapshot of the merged map.
func (s *Session) RequestSlice(p volume.Plane, n int) (*volume.Grid, *metadata.Map, error) {
	if s.vol == nil {
		return nil, nil, ErrNoVolume
	}
	proj, err := s.Projection(p)
	if err != nil {
		return nil, nil, err
	}

	g, err := s.vol.ExtractSlice(p, n)
	if err != nil {
		return nil, nil, err
	}

	proj.SetCurrentSlice(g, n)
	md := proj.UpdateDisplayMetadata(metadata.Pairs(
		"Slice", fmt.Sprintf("%d/%d", n+1, proj.SliceCount()),
	))

	ctlog.Vprintf(2, "session %s: plane %s slice %d/%d", s.loadID, p, n+1, proj.SliceCount())
	return g, md, nil
}

// RequestROIUpdate evaluates a region of interest cut from plane p's current
// slice and merges the statistics into the projection's ROI metadata: "Mean"
// and "Std Dev" on every call, "Area" only when the region's pixel footprint
// changed since the last call on this projection. It returns a snapshot of
// the merged map. A degenerate region surfaces roistats.ErrEmptyRegion and
// leaves the metadata untouched.
func (s *Session) RequestROIUpdate(p volume.Plane, sub *volume.Grid) (*metadata.Map, error) {
	if s.vol == nil {
		return nil, ErrNoVolume
	}
	proj, err := s.Projection(p)
	if err != nil {
		return nil, err
	}

	sp := proj.Spacing()
	res, err := roistats.ComputeROIStats(sub, sp.Col, sp.Row, proj.prevFootprint)
	if err != nil {
		return nil, err
	}
	proj.prevFootprint = res.Footprint

	if res.Area != nil {
		proj.UpdateROIMetadata(metadata.Pairs("Area", fmt.Sprintf("%.2f mm2", *res.Area)))
	}
	md := proj.UpdateROIMetadata(metadata.Pairs(
		"Mean", fmt.Sprintf("%.2f", res.Mean),
		"Std Dev", fmt.Sprintf("%.2f", res.StdDev),
	))
	return md, nil
}

// RequestWindowUpdate derives window width and level from an intensity
// range and merges them into plane p's display metadata, returning a
// snapshot of the merged map.
func (s *Session) RequestWindowUpdate(p volume.Plane, min, max float64) (*metadata.Map, error) {
	if s.vol == nil {
		return nil, ErrNoVolume
	}
	proj, err := s.Projection(p)
	if err != nil {
		return nil, err
	}

	width, center := roistats.ComputeWindow(min, max)
	md := proj.UpdateDisplayMetadata(metadata.Pairs(
		"Window Width", strconv.Itoa(width),
		"Window Level", strconv.Itoa(center),
	))
	return md, nil
}

// Projection returns the projection for plane p.
func (s *Session) Projection(p volume.Plane) (*AxisProjection, error) {
	if s.projections == nil {
		return nil, ErrNoVolume
	}
	proj, ok := s.projections[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", volume.ErrInvalidPlane, p)
	}
	return proj, nil
}

// Volume returns the loaded volume, or nil before the first load.
func (s *Session) Volume() *volume.Volume { return s.vol }

// Series returns the raw series metadata of the loaded stack.
func (s *Session) Series() dicomstack.SeriesMetadata { return s.series }

// LoadID returns the identifier of the last successful load, or "" before
// the first one. It tags the session's log lines.
func (s *Session) LoadID() string { return s.loadID }

// PatientMetadata returns a snapshot of the patient metadata map.
func (s *Session) PatientMetadata() *metadata.Map {
	if s.patient == nil {
		return metadata.NewMap()
	}
	return s.patient.Clone()
}

// ExamMetadata returns a snapshot of the examination metadata map.
func (s *Session) ExamMetadata() *metadata.Map {
	if s.exam == nil {
		return metadata.NewMap()
	}
	return s.exam.Clone()
}
