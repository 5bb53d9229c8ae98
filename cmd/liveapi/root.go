package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for liveapi.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveapi",
		Short: "Live performer listing API",
		Long: `liveapi answers queries for currently-live performers by scanning a
paginated upstream API, filtering against the locally curated catalog, and
serving stable paginated results.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewServeCmd())
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
