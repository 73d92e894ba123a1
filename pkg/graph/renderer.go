package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Box drawing characters for graph visualization
const (
	LineVertical   = "│"
	LineHorizontal = "─"

	CornerTopLeft  = "┌"
	CornerTopRight = "┐"
	JunctionLeft   = "├"
	JunctionRight  = "┤"
	JunctionCross  = "┼"

	// Commit markers
	CommitNormal  = "●"
	CommitMerge   = "◎"
	CommitInitial = "◆"
)

var (
	hashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF"))
	dateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AF87FF"))
	refStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF87"))
)

// cell is one colored glyph position in a rendered graph line
type cell struct {
	glyph string
	color lipgloss.Color
}

// Renderer renders a computed layout as colored text.
//
// Each commit becomes one line (compact) or a block of lines
// (detailed); lane continuity between rows is drawn with box
// characters, merge and fork bends with corner glyphs on an extra
// transition line.
type Renderer struct {
	commits []Commit
	rows    []GraphRow
}

// NewRenderer creates a renderer for an index-aligned commit list and
// its layout rows
func NewRenderer(commits []Commit, rows []GraphRow) *Renderer {
	return &Renderer{
		commits: commits,
		rows:    rows,
	}
}

// Render renders the graph as a string
//
// If compact is true, uses single-line format per commit
// Otherwise, uses multi-line detailed format
func (r *Renderer) Render(compact bool) string {
	if compact {
		return r.renderCompact()
	}
	return r.renderDetailed()
}

func (r *Renderer) renderCompact() string {
	var output strings.Builder

	for i, c := range r.commits {
		row := r.rows[i]

		message := c.Subject()
		if len(message) > 60 {
			message = message[:57] + "..."
		}

		output.WriteString(fmt.Sprintf("%s %s %s %s%s\n",
			renderCells(r.commitCells(i)),
			hashStyle.Render(c.ShortHash()),
			authorStyle.Render(c.Author),
			message,
			refBadges(c),
		))

		if hasBend(row) {
			output.WriteString(renderCells(r.transitionCells(i)) + "\n")
		}
	}

	return output.String()
}

func (r *Renderer) renderDetailed() string {
	var output strings.Builder

	for i, c := range r.commits {
		commitLine := renderCells(r.commitCells(i))
		continuation := renderCells(r.continuationCells(i))

		output.WriteString(fmt.Sprintf("%s %s%s\n",
			commitLine,
			hashStyle.Render(c.Hash),
			refBadges(c),
		))
		output.WriteString(fmt.Sprintf("%s Author: %s <%s>\n",
			continuation,
			authorStyle.Render(c.Author),
			c.Email,
		))
		output.WriteString(fmt.Sprintf("%s Date:   %s\n",
			continuation,
			dateStyle.Render(c.When.Format(time.RFC1123)),
		))
		output.WriteString(continuation + "\n")

		for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
			output.WriteString(fmt.Sprintf("%s     %s\n", continuation, line))
		}

		if i < len(r.commits)-1 {
			output.WriteString(continuation + "\n")
		}
	}

	return output.String()
}

// commitCells builds the graph glyphs for a commit's own line: the dot
// on its column and a vertical bar for every pass-through lane.
func (r *Renderer) commitCells(i int) []cell {
	row := r.rows[i]
	cells := newCells(row.NumColumns)

	for _, lane := range row.PassThrough {
		cells[lanePos(lane.Column)] = cell{LineVertical, lane.Color}
	}

	marker := CommitNormal
	switch {
	case r.commits[i].IsRoot():
		marker = CommitInitial
	case r.commits[i].IsMerge():
		marker = CommitMerge
	}
	cells[lanePos(row.Column)] = cell{marker, row.Color}

	return cells
}

// transitionCells builds the half-row between a commit and the next,
// showing where connections bend into other lanes.
func (r *Renderer) transitionCells(i int) []cell {
	row := r.rows[i]
	cells := newCells(rowWidth(row))

	for _, lane := range row.PassThrough {
		cells[lanePos(lane.Column)] = cell{LineVertical, lane.Color}
	}
	for _, conn := range row.ConnectionsDown {
		if conn.FromColumn == conn.ToColumn {
			cells[lanePos(conn.FromColumn)] = cell{LineVertical, conn.Color}
		}
	}

	for _, conn := range row.ConnectionsDown {
		if conn.FromColumn != conn.ToColumn {
			drawBend(cells, conn)
		}
	}

	return cells
}

// continuationCells builds the glyphs for the lines below a commit in
// detailed mode: every lane live below the row shows a vertical bar.
func (r *Renderer) continuationCells(i int) []cell {
	row := r.rows[i]
	cells := newCells(rowWidth(row))

	for _, lane := range row.PassThrough {
		cells[lanePos(lane.Column)] = cell{LineVertical, lane.Color}
	}
	for _, conn := range row.ConnectionsDown {
		cells[lanePos(conn.ToColumn)] = cell{LineVertical, conn.Color}
	}

	return cells
}

// drawBend draws one fork/merge bend: a junction at the source lane, a
// corner at the target lane, and a horizontal run between them.
func drawBend(cells []cell, conn Connection) {
	from, to := lanePos(conn.FromColumn), lanePos(conn.ToColumn)

	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	for p := lo + 1; p < hi; p++ {
		switch cells[p].glyph {
		case LineVertical:
			cells[p] = cell{JunctionCross, cells[p].color}
		case " ", LineHorizontal:
			cells[p] = cell{LineHorizontal, conn.Color}
		}
	}

	if conn.ToColumn > conn.FromColumn {
		cells[from] = mergeBendGlyph(cells[from], JunctionLeft, conn.Color)
		cells[to] = cell{CornerTopRight, conn.Color}
	} else {
		cells[from] = mergeBendGlyph(cells[from], JunctionRight, conn.Color)
		cells[to] = cell{CornerTopLeft, conn.Color}
	}
}

// mergeBendGlyph combines a new junction with whatever another
// connection already drew at the same position
func mergeBendGlyph(existing cell, glyph string, color lipgloss.Color) cell {
	switch existing.glyph {
	case " ", LineVertical, LineHorizontal:
		return cell{glyph, color}
	case glyph:
		return existing
	default:
		return cell{JunctionCross, color}
	}
}

func refBadges(c Commit) string {
	if len(c.Refs) == 0 {
		return ""
	}
	return " " + refStyle.Render("("+strings.Join(c.Refs, ", ")+")")
}

// renderCells colorizes and joins a cell line
func renderCells(cells []cell) string {
	var line strings.Builder
	for _, c := range cells {
		if c.glyph == " " || c.color == "" {
			line.WriteString(c.glyph)
			continue
		}
		line.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(c.glyph))
	}
	return line.String()
}

// newCells allocates a blank line wide enough for numColumns lanes,
// with a filler position between adjacent lanes
func newCells(numColumns int) []cell {
	width := numColumns*2 - 1
	if width < 1 {
		width = 1
	}
	cells := make([]cell, width)
	for i := range cells {
		cells[i] = cell{glyph: " "}
	}
	return cells
}

// rowWidth returns the lane count a row's lines must span, including
// lanes only reached by a bending connection
func rowWidth(row GraphRow) int {
	width := row.NumColumns
	for _, conn := range row.ConnectionsDown {
		if conn.ToColumn+1 > width {
			width = conn.ToColumn + 1
		}
	}
	return width
}

// lanePos maps a lane index to its cell position
func lanePos(column int) int {
	return column * 2
}

func hasBend(row GraphRow) bool {
	for _, conn := range row.ConnectionsDown {
		if conn.FromColumn != conn.ToColumn {
			return true
		}
	}
	return false
}
