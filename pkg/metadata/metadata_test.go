package metadata

import (
	"reflect"
	"testing"
)

func TestMapSetPreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("Patient ID", "123")
	m.Set("Name", "KOWALSKI JAN")
	m.Set("Age", "045Y")

	// Overwriting must not move the key.
	m.Set("Patient ID", "456")

	wantKeys := []string{"Patient ID", "Name", "Age"}
	if !reflect.DeepEqual(m.Keys(), wantKeys) {
		t.Errorf("Expected keys %v, got %v", wantKeys, m.Keys())
	}

	if v, ok := m.Get("Patient ID"); !ok || v != "456" {
		t.Errorf("Expected Patient ID 456, got %q (present=%v)", v, ok)
	}
}

func TestMapMerge(t *testing.T) {
	m := Pairs(
		"Slice", "unknown",
		"Window Width", "4000",
		"Window Level", "2000",
	)

	got := m.Merge(Pairs(
		"Slice", "3/10",
		"Zoom", "1.0",
	))

	if got != m {
		t.Error("Expected Merge to return the receiver map")
	}

	wantKeys := []string{"Slice", "Window Width", "Window Level", "Zoom"}
	if !reflect.DeepEqual(m.Keys(), wantKeys) {
		t.Errorf("Expected keys %v, got %v", wantKeys, m.Keys())
	}

	if v, _ := m.Get("Slice"); v != "3/10" {
		t.Errorf("Expected overwritten Slice 3/10, got %q", v)
	}
	if v, _ := m.Get("Window Width"); v != "4000" {
		t.Errorf("Expected untouched Window Width 4000, got %q", v)
	}

	// Merging nil is a no-op.
	if m.Merge(nil).Len() != 4 {
		t.Errorf("Expected length 4 after nil merge, got %d", m.Len())
	}
}

func TestMapClone(t *testing.T) {
	m := Pairs("Study ID", "ST-1", "Date", "20230104")
	c := m.Clone()

	c.Set("Study ID", "ST-2")
	c.Set("Body Part Examined", "Chest")

	if v, _ := m.Get("Study ID"); v != "ST-1" {
		t.Errorf("Expected original Study ID ST-1 after clone mutation, got %q", v)
	}
	if m.Len() != 2 {
		t.Errorf("Expected original length 2, got %d", m.Len())
	}
	if c.Len() != 3 {
		t.Errorf("Expected clone length 3, got %d", c.Len())
	}
}

func TestMapString(t *testing.T) {
	m := Pairs("Size", "512x512", "Slice Thickness", "1.5mm")

	want := "Size: 512x512\nSlice Thickness: 1.5mm"
	if got := m.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPairsPanicsOnOddArguments(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for odd argument count")
		}
	}()
	Pairs("Slice", "1/10", "dangling")
}

func TestNormalization(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"empty value", OrUnknown(""), Unknown},
		{"blank value", OrUnknown("   "), Unknown},
		{"present value", OrUnknown("ST-1"), "ST-1"},
		{"name upper-cased", UpperName("Kowalski Jan"), "KOWALSKI JAN"},
		{"missing name", UpperName(""), Unknown},
		{"body part capitalized", Capitalize("CHEST"), "Chest"},
		{"multi-word body part", Capitalize("LOWER LIMB"), "Lower Limb"},
		{"sex code", Capitalize("m"), "M"},
		{"missing sex", Capitalize(""), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, tt.got)
			}
		})
	}
}
