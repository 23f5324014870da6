package dragdrop

import (
	"reflect"
	"testing"
)

// Rows with midpoints at 50, 150 and 250.
func rows() []Box {
	return []Box{
		{ID: "a", Top: 25, Height: 50},
		{ID: "b", Top: 125, Height: 50},
		{ID: "c", Top: 225, Height: 50},
	}
}

func TestInsertBefore(t *testing.T) {
	cases := []struct {
		name   string
		y      int
		wantID string
		wantOK bool
	}{
		{"above everything", 10, "a", true},
		{"between first and second midpoint", 120, "b", true},
		{"between second and third midpoint", 200, "c", true},
		{"below every midpoint", 300, "", false},
		{"exactly on a midpoint belongs below it", 150, "c", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := InsertBefore(rows(), tc.y)
			if id != tc.wantID || ok != tc.wantOK {
				t.Fatalf("InsertBefore(y=%d) = (%q, %v), want (%q, %v)", tc.y, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}
}

func TestInsertBeforeNoCandidates(t *testing.T) {
	if _, ok := InsertBefore(nil, 42); ok {
		t.Fatal("no candidates must mean insert at end")
	}
}

func TestReordered(t *testing.T) {
	order := []string{"a", "b", "c", "d"}

	got := Reordered(order, "d", "b", false)
	if want := []string{"a", "d", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("before anchor: got %v, want %v", got, want)
	}

	got = Reordered(order, "a", "", true)
	if want := []string{"b", "c", "d", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("at end: got %v, want %v", got, want)
	}

	// A vanished anchor degrades to append, never drops the dragged row.
	got = Reordered(order, "a", "zz", false)
	if want := []string{"b", "c", "d", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("missing anchor: got %v, want %v", got, want)
	}
}
