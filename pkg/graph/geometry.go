package graph

// Geometry maps lane and row indices to drawing-surface positions.
// All values are in pixels (or whatever unit the consumer draws in).
type Geometry struct {
	// LaneWidth is the horizontal space reserved per lane
	LaneWidth int

	// RowHeight is the vertical space per commit row
	RowHeight int

	// LeftPadding is the space before the first lane
	LeftPadding int
}

// DefaultGeometry returns the geometry used by the built-in exporters
func DefaultGeometry() Geometry {
	return Geometry{
		LaneWidth:   16,
		RowHeight:   26,
		LeftPadding: 4,
	}
}

// LaneX returns the horizontal center of a lane
func (g Geometry) LaneX(column int) int {
	return column*g.LaneWidth + g.LaneWidth/2 + g.LeftPadding
}

// RowTopY returns the top edge of a row
func (g Geometry) RowTopY(row int) int {
	return row * g.RowHeight
}

// RowCenterY returns the vertical center of a row, where the dot sits
func (g Geometry) RowCenterY(row int) int {
	return row*g.RowHeight + g.RowHeight/2
}

// GutterWidth returns the total width the graph needs before the text
// columns begin, derived from the widest row
func (g Geometry) GutterWidth(rows []GraphRow) int {
	max := 0
	for _, r := range rows {
		if r.NumColumns > max {
			max = r.NumColumns
		}
	}
	return max*g.LaneWidth + g.LeftPadding
}
