package dicomstack

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/ksalekk/ct-visualizer/internal/ctlog"
	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

// namedDataset keeps the source path next to a parsed dataset for error
// reporting.
type namedDataset struct {
	name string
	ds   dicom.Dataset
}

// ctSlice is one qualified CT slice awaiting assembly.
type ctSlice struct {
	location float64
	grid     *volume.Grid
	ds       dicom.Dataset
}

func parseFiles(paths []string) ([]namedDataset, error) {
	datasets := make([]namedDataset, 0, len(paths))
	for _, path := range paths {
		ds, err := dicom.ParseFile(path, nil)
		if err != nil {
			return nil, fmt.Errorf("dicomstack: parsing %s: %w", path, err)
		}
		ctlog.Vprintf(2, "dicomstack: parsed %s", path)
		datasets = append(datasets, namedDataset{name: path, ds: ds})
	}
	return datasets, nil
}

// stackFromDatasets filters the datasets down to CT slices, sorts them
// ascending by slice location and converts their first pixel frames into
// grids. A dataset qualifies as a CT slice when it carries a SliceLocation,
// or a non-zero SliceThickness.
func stackFromDatasets(datasets []namedDataset) (*Stack, error) {
	slices := make([]ctSlice, 0, len(datasets))
	for _, nd := range datasets {
		location, ok := qualifyCT(&nd.ds)
		if !ok {
			ctlog.Vprintf(2, "dicomstack: %s is not a CT slice, skipping", nd.name)
			continue
		}

		grid, err := gridFromDataset(&nd.ds)
		if err != nil {
			return nil, fmt.Errorf("dicomstack: %s: %w", nd.name, err)
		}
		slices = append(slices, ctSlice{location: location, grid: grid, ds: nd.ds})
	}

	if len(slices) == 0 {
		return nil, ErrNoSlices
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].location < slices[j].location
	})

	stack := &Stack{Grids: make([]*volume.Grid, len(slices))}
	for i, s := range slices {
		stack.Grids[i] = s.grid
	}

	// The series record comes from the middle of the sorted stack, the
	// slice least likely to sit outside the scanned anatomy.
	stack.Series = seriesFromDataset(&slices[len(slices)/2].ds)

	ctlog.Vprintf(1, "dicomstack: %d CT slices, thickness %gmm, spacing %gx%gmm",
		len(slices), stack.Series.SliceThickness, stack.Series.ColSpacing, stack.Series.RowSpacing)

	return stack, nil
}

// qualifyCT reports whether the dataset is a CT slice and at which location.
// Slices qualified by thickness alone sort at location 0.
func qualifyCT(ds *dicom.Dataset) (location float64, ok bool) {
	if loc, found := floatValue(ds, tag.SliceLocation); found {
		return loc, true
	}
	if thickness, found := floatValue(ds, tag.SliceThickness); found && thickness != 0 {
		return 0, true
	}
	return 0, false
}

func seriesFromDataset(ds *dicom.Dataset) SeriesMetadata {
	thickness, _ := floatValue(ds, tag.SliceThickness)
	rowSpacing, colSpacing := pixelSpacing(ds)

	return SeriesMetadata{
		SliceThickness: thickness,
		RowSpacing:     rowSpacing,
		ColSpacing:     colSpacing,
		PatientID:      stringValue(ds, tag.PatientID),
		PatientName:    stringValue(ds, tag.PatientName),
		PatientAge:     stringValue(ds, tag.PatientAge),
		PatientSex:     stringValue(ds, tag.PatientSex),
		StudyID:        stringValue(ds, tag.StudyID),
		StudyDate:      stringValue(ds, tag.StudyDate),
		BodyPart:       stringValue(ds, tag.BodyPartExamined),
	}
}

// pixelSpacing returns the PixelSpacing pair (row, column) in mm, falling
// back to 1x1 when the element is absent or malformed so that downstream
// area math stays defined.
func pixelSpacing(ds *dicom.Dataset) (row, col float64) {
	el, err := ds.FindElementByTag(tag.PixelSpacing)
	if err != nil {
		ctlog.Warnf("dicomstack: no PixelSpacing, assuming 1x1mm")
		return 1, 1
	}
	vals, ok := el.Value.GetValue().([]string)
	if !ok || len(vals) < 2 {
		ctlog.Warnf("dicomstack: malformed PixelSpacing, assuming 1x1mm")
		return 1, 1
	}
	row, rowErr := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
	col, colErr := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
	if rowErr != nil || colErr != nil {
		ctlog.Warnf("dicomstack: unparsable PixelSpacing %v, assuming 1x1mm", vals)
		return 1, 1
	}
	return row, col
}

// stringValue returns the first string of the element's value, or "" when
// the element is absent or not string-valued.
func stringValue(ds *dicom.Dataset, t tag.Tag) string {
	el, err := ds.FindElementByTag(t)
	if err != nil {
		return ""
	}
	vals, ok := el.Value.GetValue().([]string)
	if !ok || len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

func floatValue(ds *dicom.Dataset, t tag.Tag) (float64, bool) {
	s := stringValue(ds, t)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// gridFromDataset decodes the dataset's first pixel frame into a grid of
// raw stored intensities.
func gridFromDataset(ds *dicom.Dataset) (*volume.Grid, error) {
	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, errors.New("no pixel data")
	}

	info := dicom.MustGetPixelDataInfo(el.Value)
	if len(info.Frames) == 0 {
		return nil, errors.New("pixel data holds no frames")
	}

	img, err := info.Frames[0].GetImage()
	if err != nil {
		return nil, fmt.Errorf("decoding frame: %w", err)
	}
	return gridFromImage(img), nil
}

// gridFromImage copies an image into a grid of float64 samples. Grayscale
// frames come back as image.Gray16, whose RGBA channels carry the stored
// 16-bit intensity unchanged, so the grid keeps raw values rather than a
// 0..1 normalization.
func gridFromImage(img image.Image) *volume.Grid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	g := volume.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			g.Set(x, y, float64(r))
		}
	}
	return g
}
