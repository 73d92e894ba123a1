// Package export renders a computed commit-graph layout onto
// non-terminal surfaces.
package export

import (
	"fmt"
	"html"
	"io"

	"github.com/grovetools/gitscope/pkg/graph"
)

// SVGOptions configures the SVG exporter.
type SVGOptions struct {
	// Geometry maps lanes and rows to pixel positions; zero value
	// falls back to graph.DefaultGeometry
	Geometry graph.Geometry

	// TextWidth is the space reserved right of the gutter for the
	// hash and subject columns; 0 disables the text column
	TextWidth int

	// Background is a CSS color for the canvas; empty means none
	Background string
}

// DefaultSVGOptions returns the options used by the CLI
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Geometry:  graph.DefaultGeometry(),
		TextWidth: 420,
	}
}

const (
	dotRadius   = 4
	strokeWidth = 2
	fontSize    = 12
)

// WriteSVG writes the graph as an SVG document.
//
// Per row it draws pass-through lanes as vertical segments spanning
// the full row height, each connection from the row's center to the
// next row's top edge (a straight line when the columns match, a
// cubic curve otherwise), and the commit dot on top. Commits and rows
// must be index-aligned.
func WriteSVG(w io.Writer, commits []graph.Commit, rows []graph.GraphRow, opts SVGOptions) error {
	if len(commits) != len(rows) {
		return fmt.Errorf("commit/row mismatch: %d commits, %d rows", len(commits), len(rows))
	}

	geo := opts.Geometry
	if geo.LaneWidth == 0 {
		geo = graph.DefaultGeometry()
	}

	gutter := geo.GutterWidth(rows)
	width := gutter + opts.TextWidth
	height := geo.RowHeight * len(rows)

	if _, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\">\n",
		width, height); err != nil {
		return err
	}

	if opts.Background != "" {
		fmt.Fprintf(w, "  <rect width=\"%d\" height=\"%d\" fill=\"%s\"/>\n",
			width, height, opts.Background)
	}

	// Track which commits were announced as parents above: their rows
	// need the stub between the row's top edge and the dot.
	expected := make(map[string]bool)
	for i, row := range rows {
		writeRowLines(w, geo, i, row, expected[commits[i].Hash])
		for _, p := range commits[i].Parents {
			expected[p] = true
		}
	}

	// Dots go last so lines never overdraw them.
	for i, row := range rows {
		fmt.Fprintf(w, "  <circle cx=\"%d\" cy=\"%d\" r=\"%d\" fill=\"%s\"/>\n",
			geo.LaneX(row.Column), geo.RowCenterY(i), dotRadius, row.Color)

		if opts.TextWidth > 0 {
			writeRowText(w, geo, gutter, i, commits[i], row)
		}
	}

	_, err := fmt.Fprintln(w, "</svg>")
	return err
}

func writeRowLines(w io.Writer, geo graph.Geometry, i int, row graph.GraphRow, hasIncoming bool) {
	top, center, bottom := geo.RowTopY(i), geo.RowCenterY(i), geo.RowTopY(i+1)

	for _, lane := range row.PassThrough {
		x := geo.LaneX(lane.Column)
		fmt.Fprintf(w, "  <line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"%d\"/>\n",
			x, top, x, bottom, lane.Color, strokeWidth)
	}

	// A commit some earlier row connected into needs the stub between
	// this row's top edge and its dot.
	if hasIncoming {
		x := geo.LaneX(row.Column)
		fmt.Fprintf(w, "  <line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"%d\"/>\n",
			x, top, x, center, row.Color, strokeWidth)
	}

	for _, conn := range row.ConnectionsDown {
		x1, x2 := geo.LaneX(conn.FromColumn), geo.LaneX(conn.ToColumn)
		if conn.FromColumn == conn.ToColumn {
			fmt.Fprintf(w, "  <line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"%d\"/>\n",
				x1, center, x2, bottom, conn.Color, strokeWidth)
			continue
		}

		// Cubic curve between the two lane centers, vertical at both
		// endpoints.
		midY := (center + bottom) / 2
		fmt.Fprintf(w, "  <path d=\"M %d %d C %d %d, %d %d, %d %d\" stroke=\"%s\" stroke-width=\"%d\" fill=\"none\"/>\n",
			x1, center, x1, midY, x2, midY, x2, bottom, conn.Color, strokeWidth)
	}
}

func writeRowText(w io.Writer, geo graph.Geometry, gutter, i int, c graph.Commit, row graph.GraphRow) {
	y := geo.RowCenterY(i) + fontSize/2 - 1
	x := gutter + geo.LaneWidth/2

	fmt.Fprintf(w, "  <text x=\"%d\" y=\"%d\" font-family=\"monospace\" font-size=\"%d\" fill=\"%s\">%s</text>\n",
		x, y, fontSize, row.Color, html.EscapeString(c.ShortHash()))
	fmt.Fprintf(w, "  <text x=\"%d\" y=\"%d\" font-family=\"sans-serif\" font-size=\"%d\" fill=\"#333333\">%s</text>\n",
		x+80, y, fontSize, html.EscapeString(c.Subject()))
}
