package volume

import (
	"errors"
	"reflect"
	"testing"
)

func TestGridFromData(t *testing.T) {
	g, err := GridFromData(3, 2, []float64{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("GridFromData failed: %v", err)
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Errorf("Expected 3x2 grid, got %dx%d", g.Width(), g.Height())
	}
	if got := g.At(2, 1); got != 5 {
		t.Errorf("Expected value 5 at (2,1), got %v", got)
	}

	if _, err := GridFromData(3, 2, []float64{0, 1}); err == nil {
		t.Error("Expected error for mismatched buffer length")
	}
}

func TestGridRot90(t *testing.T) {
	// 2 rows, 3 columns:
	//   0 1 2
	//   3 4 5
	g, err := GridFromData(3, 2, []float64{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("GridFromData failed: %v", err)
	}

	tests := []struct {
		k    int
		w, h int
		want []float64
	}{
		{0, 3, 2, []float64{0, 1, 2, 3, 4, 5}},
		{1, 2, 3, []float64{2, 5, 1, 4, 0, 3}},
		{2, 3, 2, []float64{5, 4, 3, 2, 1, 0}},
		{3, 2, 3, []float64{3, 0, 4, 1, 5, 2}},
		{4, 3, 2, []float64{0, 1, 2, 3, 4, 5}}, // full turn
		{-1, 2, 3, []float64{3, 0, 4, 1, 5, 2}},
		{5, 2, 3, []float64{2, 5, 1, 4, 0, 3}},
	}

	for _, tt := range tests {
		r := g.Rot90(tt.k)
		if r.Width() != tt.w || r.Height() != tt.h {
			t.Errorf("Rot90(%d): expected %dx%d, got %dx%d", tt.k, tt.w, tt.h, r.Width(), r.Height())
			continue
		}
		if !reflect.DeepEqual(r.Data(), tt.want) {
			t.Errorf("Rot90(%d): expected %v, got %v", tt.k, tt.want, r.Data())
		}
	}
}

func TestGridRot90Copies(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(0, 0, 7)

	r := g.Rot90(0)
	r.Set(0, 0, 9)

	if got := g.At(0, 0); got != 7 {
		t.Errorf("Expected original grid untouched, got %v at (0,0)", got)
	}
}

func TestGridMinMax(t *testing.T) {
	g, err := GridFromData(2, 2, []float64{-3, 12, 0.5, 7})
	if err != nil {
		t.Fatalf("GridFromData failed: %v", err)
	}

	min, max := g.MinMax()
	if min != -3 || max != 12 {
		t.Errorf("Expected min -3 and max 12, got %v and %v", min, max)
	}

	empty := NewGrid(0, 0)
	if min, max := empty.MinMax(); min != 0 || max != 0 {
		t.Errorf("Expected (0,0) for empty grid, got (%v,%v)", min, max)
	}
}

func TestGridSubGrid(t *testing.T) {
	// 0  1  2  3
	// 4  5  6  7
	// 8  9 10 11
	data := make([]float64, 12)
	for i := range data {
		data[i] = float64(i)
	}
	g, err := GridFromData(4, 3, data)
	if err != nil {
		t.Fatalf("GridFromData failed: %v", err)
	}

	sub, err := g.SubGrid(1, 1, 2, 2)
	if err != nil {
		t.Fatalf("SubGrid failed: %v", err)
	}
	want := []float64{5, 6, 9, 10}
	if !reflect.DeepEqual(sub.Data(), want) {
		t.Errorf("Expected region %v, got %v", want, sub.Data())
	}

	// The copy must not alias the source.
	sub.Set(0, 0, -1)
	if g.At(1, 1) != 5 {
		t.Errorf("Expected source untouched, got %v at (1,1)", g.At(1, 1))
	}

	empty, err := g.SubGrid(2, 2, 0, 1)
	if err != nil {
		t.Fatalf("SubGrid with zero width failed: %v", err)
	}
	if empty.Len() != 0 {
		t.Errorf("Expected empty region for zero width, got len %d", empty.Len())
	}

	for _, bad := range [][4]int{
		{-1, 0, 2, 2},
		{0, -1, 2, 2},
		{3, 0, 2, 2},
		{0, 2, 2, 2},
		{0, 0, -2, 1},
	} {
		if _, err := g.SubGrid(bad[0], bad[1], bad[2], bad[3]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SubGrid(%v): expected ErrIndexOutOfRange, got %v", bad, err)
		}
	}
}

func TestGridClone(t *testing.T) {
	g := NewGrid(2, 3)
	g.Set(1, 2, 42)

	c := g.Clone()
	c.Set(1, 2, -1)

	if got := g.At(1, 2); got != 42 {
		t.Errorf("Expected original value 42 after clone mutation, got %v", got)
	}
}
