package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ksalekk/ct-visualizer/internal/ctlog"
	"github.com/ksalekk/ct-visualizer/pkg/config"
	"github.com/ksalekk/ct-visualizer/pkg/dicomstack"
	"github.com/ksalekk/ct-visualizer/pkg/export"
	"github.com/ksalekk/ct-visualizer/pkg/projection"
	"github.com/ksalekk/ct-visualizer/pkg/roistats"
	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

func main() {
	// Parse command line arguments
	inputDir := flag.String("input", "", "Directory containing DICOM CT slices")
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	pattern := flag.String("pattern", "", "Glob pattern for slice files (overrides config)")
	rotation := flag.Int("rotation", 1, "Counter-clockwise quarter turns applied to every slice (overrides config)")
	workers := flag.Int("workers", 0, "Number of goroutines for volume assembly (overrides config)")
	extractSlices := flag.Bool("extract-slices", false, "Render and save slices along the selected planes")
	slicesDir := flag.String("slices-dir", "", "Directory to save rendered slices (overrides config)")
	planeName := flag.String("plane", "", "Limit slice export to one plane: xy, xz or yz")
	sliceIndex := flag.Int("index", -1, "Open this slice index on every plane instead of the middle one")
	verbosity := flag.Int("v", 0, "Log verbosity, 0-2 (overrides config)")
	flag.Parse()

	// Validate inputs
	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration and apply explicit flag overrides
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pattern":
			cfg.Load.FilePattern = *pattern
		case "rotation":
			cfg.Load.RotationQuarterTurns = *rotation
		case "workers":
			cfg.Load.NumWorkers = *workers
		case "slices-dir":
			cfg.Export.SlicesDir = *slicesDir
		case "v":
			cfg.Log.Verbosity = *verbosity
		}
	})
	ctlog.SetLevel(cfg.Log.Verbosity)

	fmt.Println("================================")
	fmt.Println("CT SERIES VISUALIZER")
	fmt.Println("Volume assembly and orthogonal re-slicing for DICOM CT series")
	fmt.Println("================================")

	// Read the series and assemble the volume
	fmt.Println("Loading DICOM series...")
	startTime := time.Now()

	stack, err := dicomstack.ReadDir(*inputDir, dicomstack.WithPattern(cfg.Load.FilePattern))
	if err != nil {
		log.Fatalf("Failed to read DICOM series: %v", err)
	}

	session := projection.NewSession()
	err = session.Load(stack,
		volume.WithRotation(cfg.Load.RotationQuarterTurns),
		volume.WithWorkers(cfg.Load.NumWorkers))
	if err != nil {
		log.Fatalf("Failed to assemble volume: %v", err)
	}
	loadTime := time.Since(startTime)

	nx, ny, nz := session.Volume().Dims()
	fmt.Printf("\nLoaded %d slices into a %dx%dx%d volume in %.2f seconds\n",
		len(stack.Grids), nx, ny, nz, loadTime.Seconds())

	fmt.Println("\nPatient:")
	fmt.Println(session.PatientMetadata().String())
	fmt.Println("\nExamination:")
	fmt.Println(session.ExamMetadata().String())

	// Report every view with the configured display window applied
	planes := []volume.Plane{volume.PlaneXY, volume.PlaneXZ, volume.PlaneYZ}
	for _, p := range planes {
		if *sliceIndex >= 0 {
			if _, _, err := session.RequestSlice(p, *sliceIndex); err != nil {
				log.Printf("Warning: Failed to open slice %d on plane %s: %v", *sliceIndex, p, err)
			}
		}
		if _, err := session.RequestWindowUpdate(p,
			cfg.Display.DefaultWindowMin, cfg.Display.DefaultWindowMax); err != nil {
			log.Fatalf("Failed to set display window on plane %s: %v", p, err)
		}

		proj, err := session.Projection(p)
		if err != nil {
			log.Fatalf("Failed to get %s projection: %v", p, err)
		}
		orient := proj.Orientation()
		fmt.Printf("\n%s view (up %s, down %s, left %s, right %s):\n",
			proj.AnatomicalLabel(), orient.Up, orient.Down, orient.Left, orient.Right)
		fmt.Println(proj.DisplayMetadata().String())
	}

	// At higher verbosity, summarize the intensity distribution of the
	// axial slice on display
	if cfg.Log.Verbosity >= 1 {
		axial, err := session.Projection(volume.PlaneXY)
		if err != nil {
			log.Fatalf("Failed to get axial projection: %v", err)
		}
		g, n := axial.CurrentSlice()
		counts, edges, err := roistats.IntensityHistogram(g, cfg.Display.HistogramBins)
		if err != nil {
			log.Printf("Warning: Failed to compute histogram: %v", err)
		} else {
			peak := 0
			for i, c := range counts {
				if c > counts[peak] {
					peak = i
				}
			}
			lo, hi := session.Volume().MinMax()
			fmt.Printf("\nVolume intensity range: [%.0f, %.0f]\n", lo, hi)
			fmt.Printf("Axial slice %d densest bin: [%.0f, %.0f) with %d pixels\n",
				n, edges[peak], edges[peak+1], counts[peak])
		}
	}

	// Render and save slice sequences if requested
	if *extractSlices {
		fmt.Println("\nRendering slices...")

		exporter := export.NewExporter(session.Volume(),
			cfg.Display.DefaultWindowMin, cfg.Display.DefaultWindowMax,
			cfg.Export.JPEGQuality)

		exportPlanes := planes
		if *planeName != "" {
			p, err := volume.PlaneFromString(*planeName)
			if err != nil {
				log.Fatalf("Invalid plane %q: %v", *planeName, err)
			}
			exportPlanes = []volume.Plane{p}
		}

		for _, p := range exportPlanes {
			planeDir := filepath.Join(cfg.Export.SlicesDir, p.String())
			fmt.Printf("Saving %s slices to: %s\n", p, planeDir)

			if err := exporter.SaveSliceSequence(p, planeDir); err != nil {
				log.Printf("Warning: Failed to save %s slices: %v", p, err)
			}
		}

		fmt.Println("Slice rendering completed!")
	}
}
