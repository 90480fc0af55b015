// Edtable serves an editable table widget to a browser or a terminal.
//
// A table is a grid of strings whose first row is the header. Cells in the
// editable columns can be changed; changes stay pending until saved, and
// every save reports the full table as the widget's value.
//
// Usage:
//
//	edtable serve --args table.yaml
//	edtable edit --args table.csv
//	edtable browse
//
// See 'edtable --help' for available commands.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/edtable/internal/config"
	"github.com/muurk/edtable/internal/host"
	"github.com/muurk/edtable/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "edtable",
	Short: "Editable table widget",
	Long: `An editable table widget with a browser and a terminal front end.

The table is loaded from a YAML, JSON or CSV arguments file. Saved tables are
written to stdout (or --output) as JSON lines, optionally reshaped with a jq
or JSONPath expression.`,
	Version:      version.Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("edtable " + version.Full())
	},
}

// loadArgs reads the arguments file, or the default empty table when path
// is empty. The preferences theme fills colours the file leaves unset.
func loadArgs(path string, prefs *config.Config) (*config.Args, error) {
	args := &config.Args{}
	if path != "" {
		var err error
		args, err = config.LoadArgs(path)
		if err != nil {
			return nil, err
		}
	}
	if prefs != nil {
		args.Theme = args.Theme.Merge(prefs.Theme)
	}
	return args, nil
}

// openSink returns a JSON lines host writing to output, or stdout when
// output is empty. At most one of query (jq) and path (JSONPath) may be set.
// The closer must be called when done.
func openSink(output, query, path string) (*host.JSONLines, io.Closer, error) {
	filter, err := newFilter(query, path)
	if err != nil {
		return nil, nil, err
	}

	var w io.WriteCloser = nopCloser{os.Stdout}
	if output != "" {
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open output file: %w", err)
		}
		w = f
	}
	return host.NewJSONLinesFilter(w, filter), w, nil
}

func newFilter(query, path string) (host.Filter, error) {
	switch {
	case query != "" && path != "":
		return nil, fmt.Errorf("--jq and --jsonpath cannot be used together")
	case query != "":
		return host.JQFilter(query)
	case path != "":
		return host.JSONPathFilter(path)
	default:
		return nil, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
