package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grovetools/gitscope/cmd/ui"
	"github.com/grovetools/gitscope/pkg/export"
	"github.com/grovetools/gitscope/pkg/graph"
	"github.com/grovetools/gitscope/pkg/history"
)

type graphOptions struct {
	limit     int
	ref       string
	grep      string
	author    string
	detailed  bool
	all       bool
	svgPath   string
	laneWidth int
	rowHeight int
}

func newGraphCmd() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Show the commit graph",
		Long: `Show the commit history of a repository as a branch graph.

Lanes are allocated per branch line; merges fan out into their own
lanes and converge back when branches share an ancestor.

Examples:
  # Graph of the current repository
  gitscope graph

  # Full history of a branch, filtered by message
  gitscope graph --all --ref feature --grep "^fix"

  # Export the graph as SVG
  gitscope graph --svg history.svg`,
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

			start := time.Now()
			rows := graph.ComputeLayout(commits)
			log.Debug("computed layout", "rows", len(rows), "elapsed", time.Since(start))

			if opts.svgPath != "" {
				return writeSVGFile(commits, rows, opts)
			}

			fmt.Fprint(cmd.OutOrStdout(), graph.NewRenderer(commits, rows).Render(!opts.detailed))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 50, "Limit the number of commits per page")
	cmd.Flags().StringVar(&opts.ref, "ref", "", "Start the walk from a branch, tag, or revision (default HEAD)")
	cmd.Flags().StringVar(&opts.grep, "grep", "", "Filter commits by message content (regex)")
	cmd.Flags().StringVar(&opts.author, "author", "", "Filter commits by author name or email (regex)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "Show full commit details per row")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Keep paging until the history is exhausted")
	cmd.Flags().StringVar(&opts.svgPath, "svg", "", "Write the graph to an SVG file instead of the terminal")
	cmd.Flags().IntVar(&opts.laneWidth, "lane-width", 0, "Lane width in pixels for SVG export")
	cmd.Flags().IntVar(&opts.rowHeight, "row-height", 0, "Row height in pixels for SVG export")

	return cmd
}

// loadCommits pulls one page of history, or keeps appending pages when
// --all is set. Every append grows the list downward with older
// commits, so the concatenation stays a valid engine input.
func loadCommits(ctx context.Context, path string, opts *graphOptions) ([]graph.Commit, error) {
	loader, err := history.Open(path)
	if err != nil {
		return nil, err
	}

	loadOpts := history.Options{
		Ref:   opts.ref,
		Limit: opts.limit,
		Filter: history.Filter{
			Grep:   opts.grep,
			Author: opts.author,
		},
	}

	start := time.Now()
	var commits []graph.Commit
	for {
		page, err := loader.Load(ctx, loadOpts)
		if err != nil {
			return nil, err
		}
		commits = append(commits, page.Commits...)

		if !opts.all || !page.HasMore {
			break
		}
		loadOpts.Cursor = page.NextCursor
	}
	log.Debug("loaded history", "commits", len(commits), "elapsed", time.Since(start))

	return commits, nil
}

func writeSVGFile(commits []graph.Commit, rows []graph.GraphRow, opts *graphOptions) error {
	svgOpts := export.DefaultSVGOptions()
	if opts.laneWidth > 0 {
		svgOpts.Geometry.LaneWidth = opts.laneWidth
	}
	if opts.rowHeight > 0 {
		svgOpts.Geometry.RowHeight = opts.rowHeight
	}

	f, err := os.Create(opts.svgPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.svgPath, err)
	}
	defer f.Close()

	if err := export.WriteSVG(f, commits, rows, svgOpts); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}

	log.Debug("wrote SVG", "path", opts.svgPath, "rows", len(rows))
	return nil
}
