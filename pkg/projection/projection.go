// Package projection parameterizes the three orthogonal views of a CT
// volume and ties them together in a Session, the surface a presentation
// layer talks to: slice navigation, ROI statistics, display windowing and
// the patient/examination metadata that label each view.
//
// A Session is confined to a single goroutine. The volume it owns is
// immutable once loaded and may be read from anywhere.
package projection

import (
	"fmt"

	"github.com/ksalekk/ct-visualizer/pkg/metadata"
	"github.com/ksalekk/ct-visualizer/pkg/roistats"
	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

// Spacing is the physical geometry of one projection's display plane.
// Col and Row are the extents of one pixel in mm along the horizontal and
// vertical display axes; Step is the distance in mm between consecutive
// cuts along the projection's slicing axis.
type Spacing struct {
	Col, Row, Step float64
}

// Orientation holds the patient-relative direction labels shown at the four
// edges of a projection ("R"ight, "L"eft, "A"nterior, "P"osterior,
// "S"uperior, "I"nferior).
type Orientation struct {
	Up, Down, Left, Right string
}

// AxisProjection is the view state of one cutting plane: the plane's
// anatomical identity, its permuted geometry, the slice currently on
// display and the two metadata maps rendered next to the image.
type AxisProjection struct {
	plane       volume.Plane
	label       string
	orientation Orientation
	spacing     Spacing

	width, height int // in-plane display size
	count         int // number of cuts along the slicing axis

	current      *volume.Grid
	currentIndex int

	display *metadata.Map
	roi     *metadata.Map

	prevFootprint roistats.Footprint
}

// newAxisProjection derives the projection parameters for plane p from the
// volume extents and the raw series spacing. Each plane permutes the
// geometry its own way: the XZ and YZ views show the depth axis vertically,
// so their pixel height is the slice thickness and their step from cut to
// cut is the in-slice spacing of the fixed axis.
func newAxisProjection(p volume.Plane, nx, ny, nz int, colSpacing, rowSpacing, thickness float64) *AxisProjection {
	a := &AxisProjection{plane: p, currentIndex: -1}

	switch p {
	case volume.PlaneXY:
		a.label = "Axial"
		a.orientation = Orientation{Up: "P", Down: "A", Left: "R", Right: "L"}
		a.width, a.height, a.count = nx, ny, nz
		a.spacing = Spacing{Col: colSpacing, Row: rowSpacing, Step: thickness}
	case volume.PlaneXZ:
		a.label = "Coronal"
		a.orientation = Orientation{Up: "S", Down: "I", Left: "R", Right: "L"}
		a.width, a.height, a.count = nx, nz, ny
		a.spacing = Spacing{Col: colSpacing, Row: thickness, Step: rowSpacing}
	case volume.PlaneYZ:
		a.label = "Sagittal"
		a.orientation = Orientation{Up: "S", Down: "I", Left: "A", Right: "P"}
		a.width, a.height, a.count = ny, nz, nx
		a.spacing = Spacing{Col: rowSpacing, Row: thickness, Step: colSpacing}
	}

	a.display = metadata.Pairs(
		"Plane", a.label,
		"Slice", metadata.Unknown,
		"Window Width", "4000",
		"Window Level", "2000",
		"Size", fmt.Sprintf("%dx%d", a.width, a.height),
		"Slice Thickness", fmt.Sprintf("%gmm", a.spacing.Step),
	)
	a.roi = metadata.Pairs(
		"Area", "",
		"Mean", "",
		"Std Dev", "",
	)
	return a
}

// Plane returns the cutting plane this projection renders.
func (a *AxisProjection) Plane() volume.Plane { return a.plane }

// AnatomicalLabel returns "Axial", "Coronal" or "Sagittal".
func (a *AxisProjection) AnatomicalLabel() string { return a.label }

// Orientation returns the patient-relative edge labels of the view.
func (a *AxisProjection) Orientation() Orientation { return a.orientation }

// Spacing returns the permuted physical geometry of the view.
func (a *AxisProjection) Spacing() Spacing { return a.spacing }

// SliceCount returns the number of cuts the projection can show.
func (a *AxisProjection) SliceCount() int { return a.count }

// InPlaneSize returns the display size of one cut in pixels.
func (a *AxisProjection) InPlaneSize() (w, h int) { return a.width, a.height }

// SetCurrentSlice replaces the slice on display. The index is recorded as
// given; navigation bounds are the caller's concern.
func (a *AxisProjection) SetCurrentSlice(g *volume.Grid, n int) {
	a.current = g
	a.currentIndex = n
}

// CurrentSlice returns the slice on display and its index, or (nil, -1)
// before the first SetCurrentSlice.
func (a *AxisProjection) CurrentSlice() (*volume.Grid, int) {
	return a.current, a.currentIndex
}

// UpdateDisplayMetadata merges partial into the projection's display
// metadata and returns a snapshot of the full merged map.
func (a *AxisProjection) UpdateDisplayMetadata(partial *metadata.Map) *metadata.Map {
	return a.display.Merge(partial).Clone()
}

// UpdateROIMetadata merges partial into the projection's ROI metadata and
// returns a snapshot of the full merged map.
func (a *AxisProjection) UpdateROIMetadata(partial *metadata.Map) *metadata.Map {
	return a.roi.Merge(partial).Clone()
}

// DisplayMetadata returns a snapshot of the display metadata map.
func (a *AxisProjection) DisplayMetadata() *metadata.Map { return a.display.Clone() }

// ROIMetadata returns a snapshot of the ROI metadata map.
func (a *AxisProjection) ROIMetadata() *metadata.Map { return a.roi.Clone() }
