// internal/cli/root.go

// Package cli implements the teahigh command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "teahigh",
		Short: "Teahigh - a personal tea collection",
		Long: `Teahigh keeps a record of the teas you own: supplier, tasting notes,
brewing parameters, harvest details and a 0-10 rating.

Run "teahigh serve" to start the HTTP API, or "teahigh list" to browse
the collection from the terminal.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().IntP("verbosity", "v", 0, "log verbosity (0 = info, 1 = debug)")

	root.AddCommand(newServeCmd(), newListCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
