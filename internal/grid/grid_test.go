package grid

import "testing"

func TestDefault(t *testing.T) {
	g := Default()
	want := Grid{{"", ""}, {"", ""}}
	if !Equal(g, want) {
		t.Errorf("Default() = %v, want %v", g, want)
	}
}

func TestClone(t *testing.T) {
	g := Grid{{"a", "b"}, {"1", "2"}}
	c := Clone(g)
	c[1][1] = "X"
	if g[1][1] != "2" {
		t.Errorf("Clone() shares storage with source: g[1][1] = %q", g[1][1])
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestOverlay(t *testing.T) {
	tests := []struct {
		name  string
		grid  Grid
		edits Edits
		want  Grid
	}{
		{
			name:  "no edits",
			grid:  Grid{{"a"}, {"1"}},
			edits: nil,
			want:  Grid{{"a"}, {"1"}},
		},
		{
			name:  "single edit",
			grid:  Grid{{"a", "b"}, {"1", "2"}},
			edits: Edits{{Row: 1, Col: 1}: "X"},
			want:  Grid{{"a", "b"}, {"1", "X"}},
		},
		{
			name:  "empty string edit is applied",
			grid:  Grid{{"a"}, {"1"}},
			edits: Edits{{Row: 1, Col: 0}: ""},
			want:  Grid{{"a"}, {""}},
		},
		{
			name:  "out of range edits ignored",
			grid:  Grid{{"a"}, {"1"}},
			edits: Edits{{Row: 5, Col: 0}: "X", {Row: 1, Col: 3}: "Y", {Row: -1, Col: 0}: "Z"},
			want:  Grid{{"a"}, {"1"}},
		},
		{
			name:  "jagged grid",
			grid:  Grid{{"a", "b", "c"}, {"1"}},
			edits: Edits{{Row: 1, Col: 0}: "X", {Row: 1, Col: 2}: "Y"},
			want:  Grid{{"a", "b", "c"}, {"X"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := Clone(tt.grid)
			got := Overlay(tt.grid, tt.edits)
			if !Equal(got, tt.want) {
				t.Errorf("Overlay() = %v, want %v", got, tt.want)
			}
			if !Equal(tt.grid, before) {
				t.Errorf("Overlay() modified its input: %v", tt.grid)
			}
		})
	}
}

func TestGridCell(t *testing.T) {
	g := Grid{{"a", "b"}, {"1"}}
	if v, ok := g.Cell(Coord{Row: 0, Col: 1}); !ok || v != "b" {
		t.Errorf("Cell(0,1) = %q, %v", v, ok)
	}
	if _, ok := g.Cell(Coord{Row: 1, Col: 1}); ok {
		t.Error("Cell(1,1) should be absent in a jagged row")
	}
	if g.Columns() != 2 {
		t.Errorf("Columns() = %d, want 2", g.Columns())
	}
}

func TestCoordString(t *testing.T) {
	if s := (Coord{Row: 3, Col: 7}).String(); s != "3-7" {
		t.Errorf("String() = %q, want 3-7", s)
	}
}
