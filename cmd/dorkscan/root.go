// Package main provides the entry point for the dorkscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for dorkscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dorkscan",
		Short: "Classify search result URLs against a signature catalog",
		Long: `Dorkscan processes candidate URLs collected from search queries.
It filters out URLs already seen for a query, fetches the rest through
configurable proxies, and matches page content against a catalog of
regex signatures (payment gateways, bot challenges, platforms).

Each (query, URL) pair is surfaced at most once: results are persisted
to a local SQLite database, so repeated runs only report new URLs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCheckProxiesCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
