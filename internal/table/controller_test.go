package table

import (
	"testing"

	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/host"
)

func TestNewReportsInitialValue(t *testing.T) {
	rec := &host.Recorder{}
	g := grid.Grid{{"a", "b"}, {"1", "2"}}

	New(rec, Options{Grid: g, EditableColumns: []string{"b"}})

	if len(rec.Values) != 1 {
		t.Fatalf("mount reported %d values, want 1", len(rec.Values))
	}
	if !grid.Equal(rec.Values[0], g) {
		t.Errorf("mount value = %v, want %v", rec.Values[0], g)
	}
	if len(rec.Heights) != 1 {
		t.Fatalf("mount reported %d heights, want 1", len(rec.Heights))
	}
	if rec.Heights[0] != 2 {
		t.Errorf("mount height = %d, want 2", rec.Heights[0])
	}
}

// Without a grid the controller mounts the 2x2 default.
func TestNewDefaultGrid(t *testing.T) {
	rec := &host.Recorder{}
	New(rec, Options{})

	want := grid.Grid{{"", ""}, {"", ""}}
	if len(rec.Values) != 1 {
		t.Fatalf("mount reported %d values, want 1", len(rec.Values))
	}
	if !grid.Equal(rec.Values[0], want) {
		t.Errorf("default value = %v, want %v", rec.Values[0], want)
	}
}

func TestNewCopiesInput(t *testing.T) {
	g := grid.Grid{{"a"}, {"1"}}
	c := New(nil, Options{Grid: g, EditableColumns: []string{"a"}})
	g[1][0] = "mutated"

	if got := c.Committed()[1][0]; got != "1" {
		t.Errorf("committed cell = %q, want %q", got, "1")
	}
}

// A committed edit reaches the host with the new frame height.
func TestCommitAppliesEdits(t *testing.T) {
	rec := &host.Recorder{}
	c := New(rec, Options{
		Grid:            grid.Grid{{"a", "b"}, {"1", "2"}},
		EditableColumns: []string{"b"},
	})

	c.RecordEdit(1, 1, "X")
	if !c.Commit() {
		t.Fatal("Commit() = false on an enabled table")
	}

	want := grid.Grid{{"a", "b"}, {"1", "X"}}
	last := rec.LastValue()
	if !grid.Equal(last, want) {
		t.Errorf("reported value = %v, want %v", last, want)
	}
	if len(rec.Values) != 2 {
		t.Errorf("reported %d values, want 2 (mount + commit)", len(rec.Values))
	}
	if len(rec.Heights) != 2 {
		t.Errorf("reported %d heights, want 2 (mount + commit)", len(rec.Heights))
	}
	if c.Dirty() {
		t.Error("pending edits should be cleared after Commit()")
	}
}

// Repeated edits of one cell keep only the last value.
func TestRecordEditLastWriteWins(t *testing.T) {
	rec := &host.Recorder{}
	c := New(rec, Options{
		Grid:            grid.Grid{{"h"}, {"v"}},
		EditableColumns: []string{"h"},
	})

	c.RecordEdit(1, 0, "X")
	c.RecordEdit(1, 0, "Y")

	if got := len(c.Pending()); got != 1 {
		t.Errorf("pending size = %d, want 1", got)
	}
	c.Commit()

	if got := rec.LastValue()[1][0]; got != "Y" {
		t.Errorf("committed cell = %q, want Y", got)
	}
}

func TestRecordEditDoesNotReport(t *testing.T) {
	rec := &host.Recorder{}
	c := New(rec, Options{Grid: grid.Grid{{"h"}, {"v"}}, EditableColumns: []string{"h"}})

	c.RecordEdit(1, 0, "X")

	if len(rec.Values) != 1 {
		t.Errorf("RecordEdit() reported to host: %d values", len(rec.Values))
	}
	if got := c.Committed()[1][0]; got != "v" {
		t.Errorf("RecordEdit() changed committed grid: %q", got)
	}
	if got := c.Resolved()[1][0]; got != "X" {
		t.Errorf("Resolved() = %q, want X", got)
	}
}

func TestCommitIdempotent(t *testing.T) {
	rec := &host.Recorder{}
	c := New(rec, Options{
		Grid:            grid.Grid{{"a", "b"}, {"1", "2"}},
		EditableColumns: []string{"a", "b"},
	})

	c.RecordEdit(1, 0, "first")
	c.Commit()
	after := c.Committed()
	c.Commit()

	if !grid.Equal(c.Committed(), after) {
		t.Errorf("second Commit() changed grid: %v -> %v", after, c.Committed())
	}
}

func TestCommitEmptyStringEdit(t *testing.T) {
	c := New(nil, Options{Grid: grid.Grid{{"h"}, {"v"}}, EditableColumns: []string{"h"}})

	c.RecordEdit(1, 0, "")
	c.Commit()

	if got := c.Committed()[1][0]; got != "" {
		t.Errorf("cleared cell = %q, want empty", got)
	}
}

func TestDisabled(t *testing.T) {
	rec := &host.Recorder{}
	g := grid.Grid{{"a", "b"}, {"1", "2"}}
	c := New(rec, Options{Grid: g, EditableColumns: []string{"a", "b"}, Disabled: true})

	for r := range g {
		for col := range g[r] {
			if c.Editable(r, col) {
				t.Errorf("Editable(%d, %d) = true on a disabled table", r, col)
			}
		}
	}

	c.RecordEdit(1, 1, "X")
	if c.Commit() {
		t.Error("Commit() = true on a disabled table")
	}
	if !grid.Equal(c.Committed(), g) {
		t.Errorf("committed grid changed: %v", c.Committed())
	}
	if len(rec.Values) != 1 {
		t.Errorf("reported %d values, want only the mount report", len(rec.Values))
	}
}

func TestEditable(t *testing.T) {
	c := New(nil, Options{
		Grid:            grid.Grid{{"h1", "h2", "h3"}, {"a", "b", "c"}, {"d", "e"}},
		EditableColumns: []string{"h1", "h3", "missing"},
	})

	tests := []struct {
		name string
		row  int
		col  int
		want bool
	}{
		{"header row never editable", 0, 0, false},
		{"editable column", 1, 0, true},
		{"non-editable column", 1, 1, false},
		{"second editable column", 1, 2, true},
		{"jagged row still follows header", 2, 0, true},
		{"column beyond header", 1, 3, false},
		{"negative column", 1, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Editable(tt.row, tt.col); got != tt.want {
				t.Errorf("Editable(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

// Row 0 stays read-only even when its column is listed.
func TestHeaderNeverEditable(t *testing.T) {
	c := New(nil, Options{Grid: grid.Grid{{"h1"}, {"v1"}}, EditableColumns: []string{"h1"}})

	if c.Editable(0, 0) {
		t.Error("Editable(0, 0) = true, header row must be read-only")
	}
	if !c.Editable(1, 0) {
		t.Error("Editable(1, 0) = false, want true")
	}
}

func TestDiscard(t *testing.T) {
	rec := &host.Recorder{}
	c := New(rec, Options{Grid: grid.Grid{{"h"}, {"v"}}, EditableColumns: []string{"h"}})

	c.RecordEdit(1, 0, "X")
	c.Discard()

	if c.Dirty() {
		t.Error("Dirty() = true after Discard()")
	}
	if got := c.Resolved()[1][0]; got != "v" {
		t.Errorf("Resolved() = %q after Discard(), want v", got)
	}
	if len(rec.Values) != 1 {
		t.Errorf("Discard() reported to host")
	}
}

func TestCustomMeasure(t *testing.T) {
	rec := &host.Recorder{}
	New(rec, Options{
		Grid:    grid.Grid{{"a"}, {"1"}, {"2"}},
		Measure: func(v View) int { return len(v.Rows) * 10 },
	})

	if got := rec.LastHeight(); got != 30 {
		t.Errorf("height = %d, want 30", got)
	}
}

func TestDefaultMeasure(t *testing.T) {
	c := New(nil, Options{Grid: grid.Grid{{"h1", "h2"}, {"one\ntwo\nthree", "x"}, {"y", "a\nb"}}})

	if got := DefaultMeasure(c.View()); got != 6 {
		t.Errorf("DefaultMeasure() = %d, want 6", got)
	}
}
