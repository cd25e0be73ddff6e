// Package main provides the entry point for the prospectscan CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/prospectscan/prospectscan/internal/model"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for prospectscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prospectscan",
		Short: "Prospect report renderer for employee banking discovery",
		Long: `Prospectscan renders discovery documents produced by the company
enrichment API as prospect reports for the Employee Banking UAE team.

It validates the document envelope, renders per-company detail blocks with
signal analysis, and summarizes signal distribution and top prospects.
Rendered runs can be saved under a label and compared over time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		// A failed envelope already printed its ERROR line on stdout and
		// must not produce anything else on either stream
		var discoveryErr *model.DiscoveryError
		if errors.As(err, &discoveryErr) {
			os.Exit(1)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
