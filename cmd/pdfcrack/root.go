// Package main provides the entry point for the pdfcrack CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pdfcrack.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdfcrack",
		Short: "Brute-force password recovery for encrypted PDF documents",
		Long: `pdfcrack recovers lost PDF passwords by exhaustive search.

It enumerates every candidate password in a configurable character set and
length range and verifies them concurrently against the document. Use it
only on documents you are authorized to open.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrackCmd())
	cmd.AddCommand(NewBenchCmd())
	cmd.AddCommand(NewHistoryCmd())
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
