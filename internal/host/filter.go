package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/itchyny/gojq"
	"github.com/muurk/edtable/internal/grid"
)

// Filter reshapes a reported value. Each result becomes one value line.
type Filter func(g grid.Grid) ([]any, error)

// JQFilter compiles a jq expression. The grid is the input document, so
// ".[0]" is the header row.
func JQFilter(query string) (Filter, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid jq query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid jq query: %w", err)
	}
	return func(g grid.Grid) ([]any, error) {
		return Query(code, g)
	}, nil
}

// JSONPathFilter compiles a JSONPath expression. A leading "$" may be
// omitted: "[1:]" and "$[1:]" are equivalent.
func JSONPathFilter(path string) (Filter, error) {
	normalized := normalizeJSONPath(path)
	if normalized == "" {
		return nil, fmt.Errorf("invalid JSONPath: empty expression")
	}
	eval, err := jsonpath.New(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath: %w", err)
	}
	return func(g grid.Grid) ([]any, error) {
		v, err := eval(context.Background(), toInterface(g))
		if err != nil {
			return nil, fmt.Errorf("JSONPath error: %w", err)
		}
		return []any{v}, nil
	}, nil
}

func normalizeJSONPath(path string) string {
	trimmed := strings.TrimSpace(path)
	switch {
	case trimmed == "":
		return ""
	case strings.HasPrefix(trimmed, "$"):
		return trimmed
	case strings.HasPrefix(trimmed, "."), strings.HasPrefix(trimmed, "["):
		return "$" + trimmed
	default:
		return "$." + trimmed
	}
}

// Query runs a compiled jq program against g and collects its results.
func Query(code *gojq.Code, g grid.Grid) ([]any, error) {
	iter := code.Run(toInterface(g))

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

// toInterface converts g to the []any form the query engines operate on.
func toInterface(g grid.Grid) []any {
	rows := make([]any, len(g))
	for i, row := range g {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		rows[i] = cells
	}
	return rows
}
