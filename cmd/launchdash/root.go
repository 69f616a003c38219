package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "launchdash",
		Short: "SpaceX launch records dashboard",
		Long: "launchdash loads a table of launch records and serves an interactive\n" +
			"dashboard: a success pie by site and a payload vs. outcome scatter.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve)
	root.AddCommand(newChartCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "launchdash", version)
		},
	})

	// Running with no subcommand serves the dashboard.
	root.Flags().AddFlagSet(serve.Flags())
	root.RunE = serve.RunE
	root.Version = version
	return root
}
