package roistats

import (
	"errors"
	"math"
	"testing"

	"github.com/ksalekk/ct-visualizer/pkg/volume"
)

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		min, max      float64
		width, center int
	}{
		{0, 4000, 4000, 2000},
		{1000, 3000, 2000, 2000},
		{-1024, 3071, 4095, 1023},
		{0.7, 4000.2, 3999, 2000}, // fractional bounds truncate
		{500, 500, 0, 500},
	}

	for _, tt := range tests {
		width, center := ComputeWindow(tt.min, tt.max)
		if width != tt.width || center != tt.center {
			t.Errorf("ComputeWindow(%v, %v): expected (%d, %d), got (%d, %d)",
				tt.min, tt.max, tt.width, tt.center, width, center)
		}
	}
}

func TestIntensityHistogram(t *testing.T) {
	g, err := volume.GridFromData(5, 2, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err != nil {
		t.Fatalf("GridFromData failed: %v", err)
	}

	counts, edges, err := IntensityHistogram(g, 5)
	if err != nil {
		t.Fatalf("IntensityHistogram failed: %v", err)
	}

	if len(counts) != 5 {
		t.Fatalf("Expected 5 bins, got %d", len(counts))
	}
	for i, c := range counts {
		if c != 2 {
			t.Errorf("Expected 2 values in bin %d, got %d", i, c)
		}
	}

	if len(edges) != 6 {
		t.Fatalf("Expected 6 bin edges, got %d", len(edges))
	}
	if edges[0] != 0 || edges[5] != 9 {
		t.Errorf("Expected edges to span [0,9], got [%v,%v]", edges[0], edges[5])
	}
	if math.Abs(edges[1]-1.8) > 1e-9 {
		t.Errorf("Expected second edge 1.8, got %v", edges[1])
	}
}

func TestIntensityHistogramConstantSample(t *testing.T) {
	g, err := volume.GridFromData(3, 1, []float64{7, 7, 7})
	if err != nil {
		t.Fatalf("GridFromData failed: %v", err)
	}

	counts, _, err := IntensityHistogram(g, 4)
	if err != nil {
		t.Fatalf("IntensityHistogram failed: %v", err)
	}

	if counts[0] != 3 {
		t.Errorf("Expected all 3 values in the first bin, got %d", counts[0])
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] != 0 {
			t.Errorf("Expected empty bin %d, got %d", i, counts[i])
		}
	}
}

func TestIntensityHistogramErrors(t *testing.T) {
	if _, _, err := IntensityHistogram(nil, 8); !errors.Is(err, ErrNoValues) {
		t.Errorf("Expected ErrNoValues, got %v", err)
	}
	if _, _, err := IntensityHistogram(volume.NewGrid(0, 0), 8); !errors.Is(err, ErrNoValues) {
		t.Errorf("Expected ErrNoValues for empty grid, got %v", err)
	}

	g, err := volume.GridFromData(2, 1, []float64{1, 2})
	if err != nil {
		t.Fatalf("GridFromData failed: %v", err)
	}
	if _, _, err := IntensityHistogram(g, 0); err == nil {
		t.Error("Expected error for zero bins")
	}
}
