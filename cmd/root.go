// Package cmd wires the four analytics graphs in package algorithms to
// a cobra CLI, one subcommand per graph, each reading its input as
// newline-delimited JSON and writing its output the same way.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/DeVictoria/compgraph/internal/rlog"
)

var (
	verbose bool
	logger  zerolog.Logger
)

// rootCmd is the compgraph binary's entry point; each analytics graph
// is registered as a subcommand in its own file's init().
var rootCmd = &cobra.Command{
	Use:   "compgraph",
	Short: "Run a computational-graph batch job over newline-delimited JSON records",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = rlog.Default(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the compgraph CLI, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
