package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/host"
	"github.com/muurk/edtable/internal/render"
	"github.com/muurk/edtable/internal/table"
)

func newTestModel(t *testing.T, opts table.Options) (Model, *host.Recorder) {
	t.Helper()
	rec := &host.Recorder{}
	opts.Measure = Measure
	ctrl := table.New(rec, opts)
	return New(ctrl, NewStyles(render.Theme{}, true)), rec
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	save      = tea.KeyMsg{Type: tea.KeyCtrlS}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	down      = tea.KeyMsg{Type: tea.KeyDown}
	up        = tea.KeyMsg{Type: tea.KeyUp}
	right     = tea.KeyMsg{Type: tea.KeyRight}
)

func TestModelStartsOnFirstEditableCell(t *testing.T) {
	m, _ := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"a", "b"}, {"1", "2"}},
		EditableColumns: []string{"b"},
	})
	if got := m.Cursor(); got != (grid.Coord{Row: 1, Col: 1}) {
		t.Errorf("Cursor() = %v, want (1,1)", got)
	}
}

func TestModelEditAndSave(t *testing.T) {
	m, rec := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"a", "b"}, {"1", "2"}},
		EditableColumns: []string{"b"},
	})

	m = press(t, m, enter)
	if !m.Editing() {
		t.Fatal("enter on an editable cell should open the editor")
	}
	m = press(t, m, backspace, runes("X"))

	if len(rec.Values) != 1 {
		t.Errorf("typing reported to host: %d values", len(rec.Values))
	}
	if !strings.Contains(m.View(), "unsaved change") {
		t.Error("status line should show unsaved changes")
	}

	m = press(t, m, save)
	if m.Editing() {
		t.Error("save should close the editor")
	}

	want := grid.Grid{{"a", "b"}, {"1", "X"}}
	if got := rec.LastValue(); !grid.Equal(got, want) {
		t.Errorf("saved value = %v, want %v", got, want)
	}
	if rec.LastHeight() <= chromeLines {
		t.Errorf("frame height = %d, should include the table", rec.LastHeight())
	}
}

func TestModelEscKeepsPendingEdit(t *testing.T) {
	m, rec := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"h"}, {"v"}},
		EditableColumns: []string{"h"},
	})

	m = press(t, m, enter, runes("w"), esc)
	if m.Editing() {
		t.Fatal("esc should close the editor")
	}
	if len(rec.Values) != 1 {
		t.Fatal("esc must not commit")
	}

	m = press(t, m, save)
	if got := rec.LastValue()[1][0]; got != "vw" {
		t.Errorf("saved cell = %q, want vw", got)
	}
}

func TestModelHeaderIsReadOnly(t *testing.T) {
	m, _ := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"h1"}, {"v1"}},
		EditableColumns: []string{"h1"},
	})

	m = press(t, m, up, enter)
	if m.Cursor() != (grid.Coord{Row: 0, Col: 0}) {
		t.Fatalf("Cursor() = %v, want header cell", m.Cursor())
	}
	if m.Editing() {
		t.Error("header cell must not open an editor")
	}
	if !strings.Contains(m.View(), "cell is read-only") {
		t.Error("status should explain the cell is read-only")
	}
}

func TestModelDisabled(t *testing.T) {
	m, rec := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"a"}, {"1"}},
		EditableColumns: []string{"a"},
		Disabled:        true,
	})

	m = press(t, m, down, enter, save)
	if m.Editing() {
		t.Error("disabled table must not open an editor")
	}
	if len(rec.Values) != 1 {
		t.Errorf("disabled table reported %d values, want only the mount report", len(rec.Values))
	}
	if !strings.Contains(m.View(), "read-only") {
		t.Error("status line should say read-only")
	}
}

func TestModelEditorGrows(t *testing.T) {
	m, _ := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"a", "notes"}, {"1", "one"}},
		EditableColumns: []string{"notes"},
	})

	m = press(t, m, enter)
	if h := m.EditorHeight(); h != 1 {
		t.Errorf("editor height on focus = %d, want 1", h)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("two"), tea.KeyMsg{Type: tea.KeyEnter}, runes("three"))
	if h := m.EditorHeight(); h != 3 {
		t.Errorf("editor height after two newlines = %d, want 3", h)
	}
}

func TestModelEditorGrowsWithWordWrap(t *testing.T) {
	m, _ := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"notes", "id"}, {"", "1"}},
		EditableColumns: []string{"notes"},
	})

	m = press(t, m, enter, runes("aaaaaaaaaaa bbbbbbbbbbb ccccccccccc ddddddddddd"))
	if h := m.EditorHeight(); h != 4 {
		t.Errorf("editor height = %d, want 4 word-wrapped rows", h)
	}
	view := m.View()
	for _, word := range []string{"aaaaaaaaaaa", "ddddddddddd"} {
		if !strings.Contains(view, word) {
			t.Errorf("editor scrolled, %q is not visible:\n%s", word, view)
		}
	}
}

func TestModelNavigationClampsJaggedRows(t *testing.T) {
	m, _ := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"a", "b", "c"}, {"1", "2", "3"}, {"x"}},
		EditableColumns: []string{"c"},
	})

	m = press(t, m, right, right, down)
	if got := m.Cursor(); got != (grid.Coord{Row: 2, Col: 0}) {
		t.Errorf("Cursor() = %v, want (2,0)", got)
	}
}

func TestModelRevert(t *testing.T) {
	m, _ := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"h"}, {"v"}},
		EditableColumns: []string{"h"},
	})

	m = press(t, m, enter, runes("zz"), esc, tea.KeyMsg{Type: tea.KeyCtrlR})
	if !strings.Contains(m.View(), "changes reverted") {
		t.Error("status should report the revert")
	}
	if strings.Contains(m.View(), "vzz") {
		t.Error("reverted edit is still displayed")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, table.Options{Grid: grid.Grid{{"h"}, {"v"}}})

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelQuitWithUnsavedChangesAsksTwice(t *testing.T) {
	m, _ := newTestModel(t, table.Options{
		Grid:            grid.Grid{{"h"}, {"v"}},
		EditableColumns: []string{"h"},
	})
	m = press(t, m, enter, runes("x"), esc)

	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if cmd != nil {
		t.Fatal("first q with unsaved changes should not quit")
	}
	if !strings.Contains(m.View(), "press q again") {
		t.Error("status should ask for confirmation")
	}

	_, cmd = m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("second q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("second q should quit")
	}
}
