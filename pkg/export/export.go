// Package export renders cuts of a reconstructed CT volume as grayscale
// images and writes them to disk as JPEG files.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/ksalekk/ct-visualizer/internal/ctlog"
	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

// Exporter renders slices of a volume through a display window. Intensities
// at or below the window minimum come out black, intensities at or above the
// maximum come out white, and the range in between maps linearly onto 16-bit
// gray.
type Exporter struct {
	vol *volume.Volume

	// display window bounds in raw intensity units
	windowMin float64
	windowMax float64

	// quality is the JPEG quality setting for saved images
	quality int
}

// NewExporter creates an exporter for vol with the given display window and
// JPEG quality.
func NewExporter(vol *volume.Volume, windowMin, windowMax float64, quality int) *Exporter {
	return &Exporter{
		vol:       vol,
		windowMin: windowMin,
		windowMax: windowMax,
		quality:   quality,
	}
}

// RenderGrid maps a slice onto a 16-bit grayscale image through the display
// window [windowMin, windowMax]. A degenerate window renders a threshold:
// everything below windowMax black, everything else white.
func RenderGrid(g *volume.Grid, windowMin, windowMax float64) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.Width(), g.Height()))

	span := windowMax - windowMin
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v := g.At(x, y)

			var value uint16
			switch {
			case span <= 0:
				if v >= windowMax {
					value = 65535
				}
			case v <= windowMin:
				value = 0
			case v >= windowMax:
				value = 65535
			default:
				value = uint16((v - windowMin) / span * 65535)
			}
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}

	return img
}

// ExtractSliceImage renders the n-th cut along plane p through the exporter's
// display window.
func (e *Exporter) ExtractSliceImage(p volume.Plane, n int) (image.Image, error) {
	g, err := e.vol.ExtractSlice(p, n)
	if err != nil {
		return nil, err
	}
	return RenderGrid(g, e.windowMin, e.windowMax), nil
}

// SaveSlice saves a rendered slice as a JPEG image
func (e *Exporter) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: e.quality})
}

// SaveSliceSequence renders and saves every cut along plane p into outputDir,
// creating the directory if needed.
func (e *Exporter) SaveSliceSequence(p volume.Plane, outputDir string) error {
	count := e.vol.SliceCount(p)
	if count == 0 {
		return fmt.Errorf("%w: %s", volume.ErrInvalidPlane, p)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for n := 0; n < count; n++ {
		img, err := e.ExtractSliceImage(p, n)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", p, n))
		if err := e.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	ctlog.Vprintf(1, "export: wrote %d %s slices to %s", count, p, outputDir)
	return nil
}
