// Package cli implements the taskomat command-line interface using Cobra.
// Each subcommand maps to one way of driving the pipeline: serve it over
// HTTP, submit a command directly, or dry-run the parser.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskomat",
	Short: "taskomat — natural-language task commands for Todoist",
	Long: `taskomat turns free-form (Polish or English) task commands into
structured Todoist tasks: it splits compound commands, extracts priority,
project, due date and labels, and submits each task independently.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
