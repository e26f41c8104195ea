package booking

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildTimeGrid(t *testing.T) {
	grid, err := BuildTimeGrid("09:00", "11:00", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("expected %v, got %v", want, grid)
	}
}

func TestBuildTimeGridSlotMustFitBeforeClose(t *testing.T) {
	// A 45-minute slot starting 10:30 would run past 11:00.
	grid, err := BuildTimeGrid("09:00", "11:00", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:45"}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("expected %v, got %v", want, grid)
	}
}

func TestBuildTimeGridDefaultsInterval(t *testing.T) {
	grid, err := BuildTimeGrid("09:00", "10:00", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30"}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("expected %v, got %v", want, grid)
	}
}

func TestBuildTimeGridRejectsBadInput(t *testing.T) {
	cases := []struct{ open, close string }{
		{"18:00", "09:00"}, // close before open
		{"09:00", "09:00"}, // zero-length day
		{"late", "18:00"},  // unparsable
		{"09:00", "never"},
	}
	for _, tc := range cases {
		if _, err := BuildTimeGrid(tc.open, tc.close, 30); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("BuildTimeGrid(%q, %q): expected ErrInvalidRequest, got %v", tc.open, tc.close, err)
		}
	}
}
