package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/table"
)

// Model is the Bubble Tea binding of a table.Controller. All controller
// calls happen inside Update, on the program's event loop.
type Model struct {
	ctrl    *table.Controller
	editor  textarea.Model
	editing bool
	cursor  grid.Coord

	// UI state
	Width  int
	Height int
	status string

	// confirmQuit is set after a quit with unsaved changes
	confirmQuit bool

	keys   keyMap
	help   help.Model
	styles Styles
}

// New creates a model for ctrl. The cursor starts on the first editable cell.
func New(ctrl *table.Controller, styles Styles) Model {
	ed := textarea.New()
	ed.Prompt = ""
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ed.SetHeight(1)

	width, height := GetTerminalSize()

	m := Model{
		ctrl:   ctrl,
		editor: ed,
		Width:  width,
		Height: height,
		keys:   newKeyMap(),
		help:   help.New(),
		styles: styles,
	}
	m.cursor = m.firstEditable()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateTable(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateTable handles keys while navigating
func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.ctrl.Dirty() && !m.confirmQuit {
			m.confirmQuit = true
			return m, nil
		}
		return m, tea.Quit
	}
	m.confirmQuit = false

	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Edit):
		return m.startEditing()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Discard):
		m.ctrl.Discard()
		m.status = "changes reverted"
	}
	return m, nil
}

// updateEditor handles keys while a cell editor is open. Every change of
// the editor's value is recorded as a pending edit and regrows the editor.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Done):
		m.stopEditing()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.stopEditing()
		m.save()
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if value := m.editor.Value(); value != before {
		m.ctrl.RecordEdit(m.cursor.Row, m.cursor.Col, value)
	}
	m.grow()
	return m, cmd
}

func (m Model) startEditing() (tea.Model, tea.Cmd) {
	if !m.ctrl.Editable(m.cursor.Row, m.cursor.Col) {
		m.status = "cell is read-only"
		return m, nil
	}

	value, _ := m.ctrl.Resolved().Cell(m.cursor)
	m.editor.SetWidth(m.editorWidth(value))
	m.editor.SetValue(value)
	m.editing = true
	m.status = ""
	m.grow()
	return m, m.editor.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.editor.Blur()
}

func (m *Model) save() {
	if m.ctrl.Commit() {
		m.status = "saved"
		return
	}
	m.status = "read-only, nothing saved"
}

// grow sets the editor height to exactly fit its content.
func (m *Model) grow() {
	m.editor.SetHeight(visualLines(m.editor.Value(), m.editor.Width()))
}

// editorWidth is ColumnWidth for fixed columns. The trailing column fits its
// content, bounded by the space left in the terminal.
func (m Model) editorWidth(value string) int {
	resolved := m.ctrl.Resolved()
	if m.cursor.Col < len(resolved[m.cursor.Row])-1 {
		return ColumnWidth
	}

	w := MinLastWidth
	for _, line := range strings.Split(value, "\n") {
		if lw := lipgloss.Width(line) + 1; lw > w {
			w = lw
		}
	}
	avail := m.Width - m.cursor.Col*(ColumnWidth+1) - 2
	if avail >= MinLastWidth && w > avail {
		w = avail
	}
	return w
}

func (m *Model) move(dRow, dCol int) {
	resolved := m.ctrl.Resolved()
	if len(resolved) == 0 {
		return
	}
	row := clamp(m.cursor.Row+dRow, 0, len(resolved)-1)
	col := 0
	if n := len(resolved[row]); n > 0 {
		col = clamp(m.cursor.Col+dCol, 0, n-1)
	}
	m.cursor = grid.Coord{Row: row, Col: col}
}

func (m Model) firstEditable() grid.Coord {
	for r, row := range m.ctrl.Resolved() {
		for c := range row {
			if m.ctrl.Editable(r, c) {
				return grid.Coord{Row: r, Col: c}
			}
		}
	}
	return grid.Coord{}
}

// View implements tea.Model
func (m Model) View() string {
	v := m.ctrl.View()
	f := focus{Coord: m.cursor, Show: true}
	if m.editing {
		f.Editor = m.editor.View()
	}

	var b strings.Builder
	b.WriteString(renderTable(v, f, m.styles))
	b.WriteString("\n")
	b.WriteString(m.statusLine(v))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine(v table.View) string {
	switch {
	case m.confirmQuit:
		return m.styles.Dirty.Render("unsaved changes, press q again to quit")
	case v.Disabled:
		return m.styles.Status.Render("read-only")
	case v.Dirty:
		return m.styles.Dirty.Render(fmt.Sprintf("● %d unsaved change(s)", len(m.ctrl.Pending())))
	case m.status != "":
		return m.styles.Status.Render(m.status)
	default:
		return m.styles.Status.Render("no changes")
	}
}

// Editing reports whether a cell editor is open.
func (m Model) Editing() bool {
	return m.editing
}

// Cursor returns the focused cell.
func (m Model) Cursor() grid.Coord {
	return m.cursor
}

// EditorHeight returns the open editor's height in lines.
func (m Model) EditorHeight() int {
	return m.editor.Height()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
