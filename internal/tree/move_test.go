package tree

import (
	"errors"
	"testing"

	"github.com/fitz/cockpit/internal/models"
)

func TestMoveElement_RoundTrip(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	x := mustCategory(t, s, d.ID, "X")
	y := mustCategory(t, s, d.ID, "Y")
	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		ids = append(ids, mustElement(t, s, x.ID, name).ID)
	}
	moved := ids[1]
	mustSubCategory(t, s, moved, "Temp")

	if err := s.MoveElement(moved, x.ID, y.ID); err != nil {
		t.Fatalf("MoveElement X->Y: %v", err)
	}
	if got := elementIDs(t, s, y.ID); !equalIDs(got, []string{moved}) {
		t.Errorf("Y: got %v, want [%s]", got, moved)
	}
	if got := elementIDs(t, s, x.ID); !equalIDs(got, []string{ids[0], ids[2]}) {
		t.Errorf("X: got %v", got)
	}

	if err := s.MoveElement(moved, y.ID, x.ID); err != nil {
		t.Fatalf("MoveElement Y->X: %v", err)
	}
	if err := s.ReorderElement(moved, x.ID, 1); err != nil {
		t.Fatalf("ReorderElement: %v", err)
	}
	if got := elementIDs(t, s, x.ID); !equalIDs(got, ids) {
		t.Errorf("X after round trip: got %v, want %v", got, ids)
	}

	// The moved element's subtree is still reachable.
	if _, err := s.CreateSubCategory(moved, "Pressure"); err != nil {
		t.Errorf("CreateSubCategory after move: %v", err)
	}
	e := mustGet(t, s, moved)
	if _, err := s.CreateSubElement(e.SubCategories[0].ID, "Sensor1"); err != nil {
		t.Errorf("CreateSubElement after move: %v", err)
	}
	if m := s.FindElementsByName("b"); len(m) != 1 || m[0].Path != "Domain A > X" {
		t.Errorf("search after move: got %+v", m)
	}
}

func TestMoveElement_Errors(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	x := mustCategory(t, s, d.ID, "X")
	y := mustCategory(t, s, d.ID, "Y")
	e := mustElement(t, s, x.ID, "a")

	tests := []struct {
		name      string
		id        string
		from, to  string
		wantError error
	}{
		{"same category", e.ID, x.ID, x.ID, nil},
		{"unknown source", e.ID, "nope", y.ID, ErrNotFound},
		{"unknown target", e.ID, x.ID, "nope", ErrNotFound},
		{"not in source", e.ID, y.ID, x.ID, ErrNotFound},
		{"unknown element", "nope", x.ID, y.ID, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.MoveElement(tt.id, tt.from, tt.to)
			if !errors.Is(err, tt.wantError) {
				t.Errorf("got %v, want %v", err, tt.wantError)
			}
		})
	}
	if got := elementIDs(t, s, x.ID); !equalIDs(got, []string{e.ID}) {
		t.Errorf("X: got %v, want unchanged", got)
	}
}

func TestMoveSubElement(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	e := mustElement(t, s, c.ID, "Pump 1")
	from := mustSubCategory(t, s, e.ID, "Temp")
	to := mustSubCategory(t, s, e.ID, "Pressure")
	se := mustSubElement(t, s, from.ID, "Sensor1")

	if err := s.MoveSubElement(se.ID, from.ID, to.ID); err != nil {
		t.Fatalf("MoveSubElement: %v", err)
	}
	got := mustGet(t, s, e.ID)
	if len(got.SubCategories[0].SubElements) != 0 || len(got.SubCategories[1].SubElements) != 1 {
		t.Errorf("sub-elements not moved: %+v", got.SubCategories)
	}
	if m := s.FindSubElementsByName("Sensor1"); len(m) != 1 || m[0].SubCategoryID != to.ID {
		t.Errorf("search after move: got %+v", m)
	}
	if err := s.MoveSubElement(se.ID, from.ID, to.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("not in source: got %v, want ErrNotFound", err)
	}
}

func TestReorderElement_Clamps(t *testing.T) {
	tests := []struct {
		name   string
		move   int
		target int
		want   []int
	}{
		{"to front", 2, 0, []int{2, 0, 1, 3}},
		{"to end", 0, 3, []int{1, 2, 3, 0}},
		{"negative clamps to front", 3, -5, []int{3, 0, 1, 2}},
		{"past end clamps to end", 1, 99, []int{0, 2, 3, 1}},
		{"same place", 1, 1, []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			d := mustDomain(t, s, "Domain A")
			c := mustCategory(t, s, d.ID, "Pumps")
			var ids []string
			for _, name := range []string{"a", "b", "c", "d"} {
				ids = append(ids, mustElement(t, s, c.ID, name).ID)
			}

			if err := s.ReorderElement(ids[tt.move], c.ID, tt.target); err != nil {
				t.Fatalf("ReorderElement: %v", err)
			}

			want := make([]string, 0, len(tt.want))
			for _, i := range tt.want {
				want = append(want, ids[i])
			}
			if got := elementIDs(t, s, c.ID); !equalIDs(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestReorderSubElement(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	e := mustElement(t, s, c.ID, "Pump 1")
	sc := mustSubCategory(t, s, e.ID, "Temp")
	a := mustSubElement(t, s, sc.ID, "a")
	b := mustSubElement(t, s, sc.ID, "b")

	if err := s.ReorderSubElement(b.ID, sc.ID, 0); err != nil {
		t.Fatalf("ReorderSubElement: %v", err)
	}
	got := mustGet(t, s, e.ID).SubCategories[0].SubElements
	if got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("order: got [%s %s], want [%s %s]", got[0].ID, got[1].ID, b.ID, a.ID)
	}
	if err := s.ReorderSubElement("nope", sc.ID, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown sub-element: got %v, want ErrNotFound", err)
	}
}

func TestDropIndex(t *testing.T) {
	target := Rect{X: 100, Y: 0, Width: 50, Height: 20}

	tests := []struct {
		name        string
		orientation models.Orientation
		drag, over  int
		pointer     Point
		want        int
	}{
		{"before target, dragging forward", models.OrientationHorizontal, 0, 2, Point{X: 110}, 1},
		{"after target, dragging forward", models.OrientationHorizontal, 0, 2, Point{X: 140}, 2},
		{"before target, dragging back", models.OrientationHorizontal, 3, 1, Point{X: 110}, 1},
		{"after target, dragging back", models.OrientationHorizontal, 3, 1, Point{X: 140}, 2},
		{"exact midpoint counts as after", models.OrientationHorizontal, 3, 1, Point{X: 125}, 2},
		{"vertical uses y", models.OrientationVertical, 3, 1, Point{X: 0, Y: 15}, 2},
		{"vertical before", models.OrientationVertical, 3, 1, Point{X: 500, Y: 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DropIndex(tt.orientation, tt.drag, tt.over, tt.pointer, target); got != tt.want {
				t.Errorf("DropIndex: got %d, want %d", got, tt.want)
			}
		})
	}
}
