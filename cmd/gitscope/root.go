package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "gitscope",
		Short: "Visualize commit history as a branch graph",
		Long: `gitscope lays out commit history as a traditional branch graph:
vertical lanes, merge and fork curves, colored by lane.

The layout engine is a pure function over the commit list; gitscope
renders its rows to the terminal or exports them as SVG.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newGraphCmd())
	cmd.AddCommand(newRowsCmd())

	return cmd
}
