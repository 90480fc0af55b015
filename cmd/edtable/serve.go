package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/muurk/edtable/internal/config"
	"github.com/muurk/edtable/internal/host"
	"github.com/muurk/edtable/internal/logging"
	"github.com/muurk/edtable/internal/server"
)

// Serve command and flags
var (
	serveArgsPath string
	certPath      string
	keyPath       string
	listenHost    string
	port          int
	advertise     bool
	instanceName  string
	serveOutput   string
	serveQuery    string
	servePath     string
	title         string
	logLevel      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the table to web browsers",
	Long: `Serve the editable table as a web page.

Every browser tab is its own widget instance starting from the arguments file.
Each save is written to stdout (or --output) as a JSON line holding the table,
followed by a line holding the page's frame height.

Defaults for --host, --port and --advertise come from the preferences file
(see 'edtable config path').`,
	Example: `  # Serve a CSV file on the default port
  edtable serve --args people.csv

  # Serve over TLS and advertise on the local network
  edtable serve --args table.yaml --cert cert.pem --key key.pem --advertise

  # Append only the notes column of each save to a file
  edtable serve --args table.yaml --output saves.jsonl --jq '[.[1:][] | .[2]]'`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveArgsPath, "args", "", "Arguments file (YAML, JSON or CSV)")
	serveCmd.Flags().StringVar(&certPath, "cert", "", "Path to TLS certificate file (enables HTTPS with --key)")
	serveCmd.Flags().StringVar(&keyPath, "key", "", "Path to TLS private key file")
	serveCmd.Flags().StringVar(&listenHost, "host", "", "Listen host (empty = all interfaces)")
	serveCmd.Flags().IntVar(&port, "port", config.DefaultPort, "Listen port")
	serveCmd.Flags().BoolVar(&advertise, "advertise", false, "Advertise the server over mDNS")
	serveCmd.Flags().StringVar(&instanceName, "name", "", "mDNS instance name")
	serveCmd.Flags().StringVar(&serveOutput, "output", "", "Append reports to this file instead of stdout")
	serveCmd.Flags().StringVar(&serveQuery, "jq", "", "jq expression applied to each saved table")
	serveCmd.Flags().StringVar(&servePath, "jsonpath", "", "JSONPath expression applied to each saved table")
	serveCmd.Flags().StringVar(&title, "title", "", "Page title")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if (certPath != "") != (keyPath != "") {
		return fmt.Errorf("both --cert and --key must be provided together")
	}
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	prefs, err := config.Load()
	if err != nil {
		return err
	}
	applyServerPrefs(cmd.Flags(), prefs.Server)

	args, err := loadArgs(serveArgsPath, prefs)
	if err != nil {
		return err
	}

	sink, closer, err := openSink(serveOutput, serveQuery, servePath)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	srv, err := server.New(&server.Config{
		Host:         listenHost,
		Port:         port,
		CertPath:     certPath,
		KeyPath:      keyPath,
		Args:         args,
		Title:        title,
		Sink:         host.Logged{Next: sink, Label: "serve"},
		Advertise:    advertise,
		InstanceName: instanceName,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// applyServerPrefs fills flags the user did not set from the preferences file.
func applyServerPrefs(flags *pflag.FlagSet, prefs *config.ServerPrefs) {
	if prefs == nil {
		return
	}
	if !flags.Changed("host") {
		listenHost = prefs.Host
	}
	if !flags.Changed("port") {
		port = prefs.Port
	}
	if !flags.Changed("advertise") {
		advertise = prefs.Advertise
	}
	if !flags.Changed("name") {
		instanceName = prefs.InstanceName
	}
}
