package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/table"
)

func TestCell(t *testing.T) {
	tests := []struct {
		name    string
		cell    table.Cell
		want    []string
		notWant []string
	}{
		{
			name:    "read-only cell keeps line breaks",
			cell:    table.Cell{Coord: grid.Coord{Row: 1, Col: 0}, Value: "line one\nline two"},
			want:    []string{`<td class="edt-cell"><p>line one`, "line one\nline two</p></td>"},
			notWant: []string{"<textarea"},
		},
		{
			name:    "editable cell renders a textarea addressed by coordinate",
			cell:    table.Cell{Coord: grid.Coord{Row: 2, Col: 3}, Value: "x", Editable: true},
			want:    []string{`<textarea rows="1" data-row="2" data-col="3">`, "\nx</textarea>"},
			notWant: []string{"<p>"},
		},
		{
			name: "last column sizes to content",
			cell: table.Cell{Value: "x", Last: true},
			want: []string{`class="edt-cell edt-last"`},
		},
		{
			name:    "values are escaped",
			cell:    table.Cell{Value: "<b>bold</b>", Editable: true},
			want:    []string{"&lt;b&gt;bold&lt;/b&gt;"},
			notWant: []string{"<b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Cell(&buf, tt.cell); err != nil {
				t.Fatalf("Cell() error = %v", err)
			}
			got := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Cell() = %q, missing %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("Cell() = %q, should not contain %q", got, w)
				}
			}
		})
	}
}

func TestRowAppliesPolicyUniformly(t *testing.T) {
	c := table.New(nil, table.Options{
		Grid:            grid.Grid{{"a", "b", "c"}, {"1", "2", "3"}},
		EditableColumns: []string{"b", "c"},
	})
	v := c.View()

	var header, body bytes.Buffer
	if err := Row(&header, v.Rows[0]); err != nil {
		t.Fatalf("Row() error = %v", err)
	}
	if err := Row(&body, v.Rows[1]); err != nil {
		t.Fatalf("Row() error = %v", err)
	}

	if strings.Contains(header.String(), "<textarea") {
		t.Errorf("header row rendered an input: %s", header.String())
	}
	if n := strings.Count(body.String(), "<textarea"); n != 2 {
		t.Errorf("body row has %d inputs, want 2: %s", n, body.String())
	}
	if n := strings.Count(body.String(), "edt-last"); n != 1 {
		t.Errorf("body row has %d last cells, want 1", n)
	}
}

func TestTable(t *testing.T) {
	c := table.New(nil, table.Options{
		Grid:            grid.Grid{{"a"}, {"1"}},
		EditableColumns: []string{"a"},
		Disabled:        true,
	})

	html, err := TableHTML(c.View(), Theme{})
	if err != nil {
		t.Fatalf("TableHTML() error = %v", err)
	}
	if !strings.Contains(html, `<button id="edt-save" type="button" disabled>`) {
		t.Errorf("disabled table should disable the save control: %s", html)
	}
	if strings.Contains(html, "<textarea") {
		t.Errorf("disabled table rendered an input: %s", html)
	}
}

func TestTableDirtyMarker(t *testing.T) {
	c := table.New(nil, table.Options{Grid: grid.Grid{{"a"}, {"1"}}, EditableColumns: []string{"a"}})
	c.RecordEdit(1, 0, "2")

	html, err := TableHTML(c.View(), Theme{})
	if err != nil {
		t.Fatalf("TableHTML() error = %v", err)
	}
	if !strings.Contains(html, `data-dirty="true"`) {
		t.Errorf("dirty table should mark the save control: %s", html)
	}
	if !strings.Contains(html, "\n2</textarea>") {
		t.Errorf("pending edit should be displayed: %s", html)
	}
}

func TestPage(t *testing.T) {
	c := table.New(nil, table.Options{Grid: grid.Grid{{"a"}, {"1"}}, EditableColumns: []string{"a"}})

	var buf bytes.Buffer
	err := Page(&buf, PageData{View: c.View(), Theme: Theme{PrimaryColor: "#123456"}})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"<title>Editable table</title>",
		"--edt-primary: #123456",
		"--edt-border: #ddd",
		`new WebSocket(`,
		`<div id="edt-root">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Page() missing %q", want)
		}
	}
}

func TestPageThemeColors(t *testing.T) {
	c := table.New(nil, table.Options{Grid: grid.Grid{{"a"}, {"1"}}})

	tests := []struct {
		name  string
		theme Theme
		want  []string
	}{
		{
			name:  "functional colours",
			theme: Theme{TextColor: "rgb(49, 51, 63)", SecondaryBackgroundColor: "rgba(0,0,0,0.1)", PrimaryColor: "hsl(0 100% 65%)"},
			want:  []string{"--edt-text: rgb(49, 51, 63);", "--edt-border: rgba(0,0,0,0.1);", "--edt-primary: hsl(0 100% 65%);"},
		},
		{
			name:  "named colours",
			theme: Theme{TextColor: "black", BackgroundColor: "white"},
			want:  []string{"--edt-text: black;", "--edt-background: white;"},
		},
		{
			name:  "rejected values fall back",
			theme: Theme{TextColor: "red; } body { display: none", PrimaryColor: "url(x)"},
			want:  []string{"--edt-text: inherit;", "--edt-primary: " + DefaultPrimaryColor + ";"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Page(&buf, PageData{View: c.View(), Theme: tt.theme}); err != nil {
				t.Fatalf("Page() error = %v", err)
			}
			got := buf.String()
			if strings.Contains(got, "ZgotmplZ") {
				t.Errorf("Page() rejected a colour:\n%s", got)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Page() missing %q", want)
				}
			}
		})
	}
}

func TestThemeWithDefaults(t *testing.T) {
	th := Theme{TextColor: "#eee"}.WithDefaults()
	if th.TextColor != "#eee" {
		t.Errorf("TextColor = %q, want #eee", th.TextColor)
	}
	if th.PrimaryColor != DefaultPrimaryColor {
		t.Errorf("PrimaryColor = %q, want %q", th.PrimaryColor, DefaultPrimaryColor)
	}
	if th.SecondaryBackgroundColor != DefaultSecondaryBackgroundColor {
		t.Errorf("SecondaryBackgroundColor = %q", th.SecondaryBackgroundColor)
	}

	merged := Theme{}.Merge(Theme{PrimaryColor: "#000"})
	if merged.PrimaryColor != "#000" {
		t.Errorf("Merge() PrimaryColor = %q, want #000", merged.PrimaryColor)
	}
}

func TestFrameHeight(t *testing.T) {
	c := table.New(nil, table.Options{Grid: grid.Grid{{"a", "b"}, {"1\n2\n3", "x"}}})

	want := SaveBarHeight + framePadding + (RowChrome + LineHeight) + (RowChrome + 3*LineHeight)
	if got := FrameHeight(c.View()); got != want {
		t.Errorf("FrameHeight() = %d, want %d", got, want)
	}
}
