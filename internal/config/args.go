package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muurk/edtable/internal/grid"
	"github.com/muurk/edtable/internal/render"
	"github.com/muurk/edtable/internal/table"
	"gopkg.in/yaml.v3"
)

// Args are the mount arguments of a widget: what a host passes in.
type Args struct {
	// Data is the grid; nil means the default 2x2 empty grid.
	Data grid.Grid
	// EditableColumns lists editable header values. An empty list means
	// every header column is editable; use Disabled to make none editable.
	EditableColumns []string
	Disabled        bool
	Theme           render.Theme
}

// argsFile is the on-disk form. Cells are decoded loosely so numbers,
// booleans and nulls in YAML or JSON become strings.
type argsFile struct {
	Data            [][]any      `yaml:"data"`
	EditableColumns []string     `yaml:"editable_columns"`
	Disabled        bool         `yaml:"disabled"`
	Theme           render.Theme `yaml:"theme"`
}

// LoadArgs reads mount arguments from path. Files ending in .csv are read as
// a bare grid whose first record is the header; anything else is parsed as
// YAML, which also accepts JSON.
func LoadArgs(path string) (*Args, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open args file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		g, err := ReadCSV(f)
		if err != nil {
			return nil, err
		}
		return &Args{Data: g}, nil
	}
	return ReadArgs(f)
}

// ReadArgs decodes YAML or JSON mount arguments.
func ReadArgs(r io.Reader) (*Args, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read args: %w", err)
	}

	var raw argsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse args: %w", err)
	}

	args := &Args{
		EditableColumns: raw.EditableColumns,
		Disabled:        raw.Disabled,
		Theme:           raw.Theme,
	}
	if raw.Data != nil {
		args.Data = make(grid.Grid, len(raw.Data))
		for i, row := range raw.Data {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = cellString(v)
			}
			args.Data[i] = cells
		}
	}
	return args, nil
}

// ReadCSV reads a grid from CSV. Records may differ in length.
func ReadCSV(r io.Reader) (grid.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return grid.Grid(records), nil
}

// WriteCSV writes g as CSV.
func WriteCSV(w io.Writer, g grid.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(g); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// Columns returns the editable column list with the empty default resolved
// against the header row of Data, or of the default grid when Data is nil.
func (a *Args) Columns() []string {
	if len(a.EditableColumns) > 0 {
		return a.EditableColumns
	}
	data := a.Data
	if data == nil {
		data = grid.Default()
	}
	return append([]string{}, grid.Header(data)...)
}

// Options converts the arguments to controller options.
func (a *Args) Options(measure table.MeasureFunc) table.Options {
	return table.Options{
		Grid:            a.Data,
		EditableColumns: a.Columns(),
		Disabled:        a.Disabled,
		Measure:         measure,
	}
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
