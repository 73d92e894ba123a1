package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/grovetools/gitscope/cmd/ui"
	"github.com/grovetools/gitscope/pkg/graph"
)

func newRowsCmd() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "rows [path]",
		Short: "Dump the raw layout rows",
		Long: `Dump the layout engine's output as a table, one row per commit:
the assigned column, the row width in lanes, pass-through lanes, and
the connections down to each parent.

Useful for debugging lane allocation without reading the rendered
graph.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			commits, err := loadCommits(cmd.Context(), path, opts)
			if err != nil {
				return err
			}

			if len(commits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Yellow(ui.IconWarn+" no commits to show"))
				return nil
			}

			rows := graph.ComputeLayout(commits)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Header(" Layout Rows "))
			fmt.Fprintln(cmd.OutOrStdout())

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Row", "Commit", "Column", "Lanes", "Pass-through", "Connections")

			for i, row := range rows {
				table.Append(
					fmt.Sprintf("%d", i),
					ui.Yellow(commits[i].ShortHash()),
					fmt.Sprintf("%d", row.Column),
					fmt.Sprintf("%d", row.NumColumns),
					formatPassThrough(row.PassThrough),
					formatConnections(row.ConnectionsDown),
				)
			}

			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 50, "Limit the number of commits per page")
	cmd.Flags().StringVar(&opts.ref, "ref", "", "Start the walk from a branch, tag, or revision (default HEAD)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Keep paging until the history is exhausted")

	return cmd
}

func formatPassThrough(lanes []graph.Lane) string {
	if len(lanes) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(lanes))
	for _, lane := range lanes {
		parts = append(parts, fmt.Sprintf("%d", lane.Column))
	}
	return strings.Join(parts, ",")
}

func formatConnections(conns []graph.Connection) string {
	if len(conns) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(conns))
	for _, conn := range conns {
		parts = append(parts, fmt.Sprintf("%d→%d", conn.FromColumn, conn.ToColumn))
	}
	return strings.Join(parts, " ")
}
