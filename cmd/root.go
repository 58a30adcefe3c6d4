// Package cmd defines and implements the CLI commands for the vcatlas executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vcatlas",
		Short: "A VC firm metadata extraction and similarity service.",
		Long: `vcatlas scrapes a venture-capital firm's website, extracts structured
firm metadata with a language model, keeps the records in a vector index
deduplicated by firm name, and surfaces the most similar stored firms for
every new submission.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"path to a YAML config file (environment variables with the VCATLAS prefix also apply)")

	cmd.AddCommand(newServeCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
