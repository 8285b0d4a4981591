// Package commands implements the actorctl command tree.
package commands

import (
	"github.com/spf13/cobra"
)

// workerCount controls how many Worker goroutines the demo system runs.
var workerCount int

var rootCmd = &cobra.Command{
	Use:   "actorctl",
	Short: "Demo CLI for the actorcore runtime",
	Long: `actorctl drives the actorcore runtime's worker system from the
command line, for manual exploration of actor lifecycle and mailbox
behavior without writing a Go program.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVar(
		&workerCount, "workers", 1,
		"Number of worker goroutines in the demo system",
	)

	rootCmd.AddCommand(counterCmd)
}
