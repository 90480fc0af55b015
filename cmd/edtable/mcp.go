package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/muurk/edtable/internal/agent"
	"github.com/muurk/edtable/internal/host"
	"github.com/muurk/edtable/internal/logging"
	"github.com/muurk/edtable/internal/version"
)

// MCP command and flags
var (
	mcpArgsPath string
	mcpDisabled bool
	mcpOutput   string
	mcpQuery    string
	mcpPath     string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the table to an AI agent over MCP",
	Long: `Serve the table as Model Context Protocol tools on stdin/stdout.

The tools are get_table, edit_cell, save_table and discard_edits. The same
editability rules as the browser and terminal apply: the header row and cells
outside the editable columns cannot be changed.

stdout carries the protocol, so reports only go to --output.`,
	Example: `  # Register with an MCP client
  edtable mcp --args table.yaml --output saves.jsonl`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpArgsPath, "args", "", "Arguments file (YAML, JSON or CSV)")
	mcpCmd.Flags().BoolVar(&mcpDisabled, "disabled", false, "Open the table read-only")
	mcpCmd.Flags().StringVar(&mcpOutput, "output", "", "Append reports to this file")
	mcpCmd.Flags().StringVar(&mcpQuery, "jq", "", "jq expression applied to each saved table")
	mcpCmd.Flags().StringVar(&mcpPath, "jsonpath", "", "JSONPath expression applied to each saved table")
}

// checkMCPSink rejects filters that would have nowhere to write: stdout
// belongs to the protocol.
func checkMCPSink(output, query, path string) error {
	if output == "" && (query != "" || path != "") {
		return errors.New("--jq and --jsonpath require --output in mcp mode")
	}
	return nil
}

func runMCP(_ *cobra.Command, _ []string) error {
	if err := checkMCPSink(mcpOutput, mcpQuery, mcpPath); err != nil {
		return err
	}
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	args, err := loadArgs(mcpArgsPath, nil)
	if err != nil {
		return err
	}
	if mcpDisabled {
		args.Disabled = true
	}

	var sink host.Host
	if mcpOutput != "" {
		out, closer, err := openSink(mcpOutput, mcpQuery, mcpPath)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()
		sink = out
	}

	srv := agent.New(agent.Config{
		Name:    "edtable",
		Version: version.Version,
		Args:    args,
		Sink:    sink,
	})
	return srv.ServeStdio()
}
