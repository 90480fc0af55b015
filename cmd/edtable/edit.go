package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/edtable/internal/config"
	"github.com/muurk/edtable/internal/host"
	"github.com/muurk/edtable/internal/logging"
	"github.com/muurk/edtable/internal/table"
	"github.com/muurk/edtable/internal/tui"
)

// Edit command and flags
var (
	editArgsPath string
	editDisabled bool
	editOutput   string
	editQuery    string
	editPath     string
	csvPath      string
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the table in the terminal",
	Long: `Edit the table in an interactive terminal UI.

With --output, every save is appended to the file as JSON lines while the UI
runs. Without it, the last saved table is printed to stdout on exit.`,
	Example: `  # Edit a CSV file and print the result as JSON
  edtable edit --args people.csv

  # Write the result back as CSV
  edtable edit --args people.csv --csv people.csv

  # View a table without allowing changes
  edtable edit --args table.yaml --disabled`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editArgsPath, "args", "", "Arguments file (YAML, JSON or CSV)")
	editCmd.Flags().BoolVar(&editDisabled, "disabled", false, "Open the table read-only")
	editCmd.Flags().StringVar(&editOutput, "output", "", "Append reports to this file while editing")
	editCmd.Flags().StringVar(&editQuery, "jq", "", "jq expression applied to each saved table")
	editCmd.Flags().StringVar(&editPath, "jsonpath", "", "JSONPath expression applied to each saved table")
	editCmd.Flags().StringVar(&csvPath, "csv", "", "Write the final table to this CSV file on exit")
}

func runEdit(_ *cobra.Command, _ []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	prefs, err := config.Load()
	if err != nil {
		return err
	}
	args, err := loadArgs(editArgsPath, prefs)
	if err != nil {
		return err
	}
	if editDisabled {
		args.Disabled = true
	}

	recorder := &host.Recorder{}
	hosts := host.Multi{recorder}

	// Compile the query before the UI takes over the terminal
	var sink *host.JSONLines
	if editOutput != "" {
		out, closer, err := openSink(editOutput, editQuery, editPath)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
		hosts = append(hosts, out)
	} else {
		sink, _, err = openSink("", editQuery, editPath)
		if err != nil {
			return err
		}
	}

	ctrl := table.New(host.Logged{Next: hosts, Label: "edit"}, args.Options(tui.Measure))
	if err := tui.Run(ctrl, tui.DefaultStyles(args.Theme), tea.WithAltScreen()); err != nil {
		return err
	}

	final := recorder.LastValue()
	if sink != nil {
		sink.SetValue(final)
	}
	if csvPath != "" {
		if err := writeCSVFile(csvPath, final); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVFile(path string, g [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := config.WriteCSV(f, g); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}
