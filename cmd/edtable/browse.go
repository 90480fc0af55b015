package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/edtable/internal/discovery"
	"github.com/muurk/edtable/internal/logging"
)

var browseTimeout int

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List editable tables advertised on the network",
	Long: `Browse the local network for servers started with 'edtable serve --advertise'.

Discovery uses mDNS/DNS-SD on the "_edtable._tcp" service type and needs
multicast on the local network segment.`,
	Example: `  # Browse for 5 seconds (default)
  edtable browse

  # Wait longer on slow networks
  edtable browse --timeout 15`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVar(&browseTimeout, "timeout", 5, "Browse timeout in seconds")
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	fmt.Printf("Browsing for editable tables (timeout: %ds)...\n\n", browseTimeout)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	instances, err := discovery.Scan(ctx, time.Duration(browseTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if len(instances) == 0 {
		fmt.Println("No tables found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Start a server with 'edtable serve --advertise'")
		fmt.Println("  - Check that both machines are on the same network")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Printf("Found %d table(s):\n\n", len(instances))

	for i, inst := range instances {
		fmt.Printf("%d. %s\n", i+1, inst.Name)
		fmt.Printf("   URL:     %s\n", inst.URL())
		fmt.Printf("   Host:    %s\n", inst.Host)
		if v := inst.GetMetadata(discovery.TxtVersion); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		if inst.GetMetadata(discovery.TxtDisabled) == "true" {
			fmt.Println("   Read-only")
		}
		fmt.Println()
	}

	return nil
}
