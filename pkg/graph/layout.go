package graph

import "github.com/charmbracelet/lipgloss"

// Lane is a column occupied by an in-flight branch during a row it
// does not terminate at. It renders as an unbroken vertical segment
// spanning the full row height.
type Lane struct {
	Column int
	Color  lipgloss.Color
}

// Connection describes a line from a commit's dot down to where one of
// its parents will be drawn. Same column means a straight continuation,
// different columns a fork or merge curve.
type Connection struct {
	FromColumn int
	ToColumn   int
	Color      lipgloss.Color
}

// GraphRow is the layout for a single commit, index-aligned with the
// input list.
type GraphRow struct {
	// Column is the lane index occupied by this commit's dot
	Column int

	// Color is the palette color for Column
	Color lipgloss.Color

	// NumColumns is the number of simultaneously live lanes at this row
	NumColumns int

	// PassThrough lists lanes occupied by other in-flight branches
	PassThrough []Lane

	// ConnectionsDown lists lines from this commit to its parents
	ConnectionsDown []Connection
}

// layoutState is the scratch arena for one layout pass.
//
// lanes[i] holds the hash of the pending parent expected to appear
// later in the list, or "" when the lane is free. pending mirrors the
// occupied lanes as a hash -> column index map so that lookups do not
// scan the lane slice; both structures are always updated together and
// the observable column choices are identical to a lowest-index linear
// scan.
type layoutState struct {
	lanes   []string
	pending map[string]int
}

// ComputeLayout converts a reverse-chronological commit list into one
// GraphRow per commit.
//
// The input must be ordered newest first and topologically consistent:
// a commit never appears after one of its parents. The function is
// pure; every call starts from a fresh lane arena and no state is
// carried between calls. Parents that never appear in the list are
// left as dangling lane occupants and silently dropped, which is the
// normal shape of a paginated window into deeper history.
func ComputeLayout(commits []Commit) []GraphRow {
	rows := make([]GraphRow, 0, len(commits))
	st := &layoutState{
		lanes:   make([]string, 0, 8),
		pending: make(map[string]int),
	}

	for _, c := range commits {
		rows = append(rows, st.layoutCommit(c))
	}

	return rows
}

// layoutCommit processes one commit and emits its row
func (st *layoutState) layoutCommit(c Commit) GraphRow {
	column := st.resolveColumn(c.Hash)

	// Snapshot branches in flight before any mutation for this commit.
	var passThrough []Lane
	for i, occupant := range st.lanes {
		if i != column && occupant != "" {
			passThrough = append(passThrough, Lane{Column: i, Color: LaneColor(i)})
		}
	}

	// The commit is consumed; only its parents may occupy lanes now.
	st.free(column)

	var connections []Connection
	for i, parent := range c.Parents {
		switch target, ok := st.pending[parent]; {
		case ok:
			// Convergence: an earlier sibling already expects this
			// parent. Connect into its lane without re-occupying.
			connections = append(connections, Connection{
				FromColumn: column,
				ToColumn:   target,
				Color:      LaneColor(target),
			})
		case i == 0:
			// The primary parent continues straight down the lane the
			// commit just vacated.
			st.occupy(column, parent)
			connections = append(connections, Connection{
				FromColumn: column,
				ToColumn:   column,
				Color:      LaneColor(column),
			})
		default:
			// Merge parent diverging into its own lane.
			lane := st.allocate(parent)
			connections = append(connections, Connection{
				FromColumn: column,
				ToColumn:   lane,
				Color:      LaneColor(lane),
			})
		}
	}

	st.trim()

	numColumns := len(st.lanes)
	if column+1 > numColumns {
		numColumns = column + 1
	}

	return GraphRow{
		Column:          column,
		Color:           LaneColor(column),
		NumColumns:      numColumns,
		PassThrough:     passThrough,
		ConnectionsDown: connections,
	}
}

// resolveColumn finds the lane where a commit's dot belongs.
//
// A commit already registered as a pending parent lands in its
// reserved lane. Anything else is a root as far as the visible window
// is concerned and takes the lowest free lane.
func (st *layoutState) resolveColumn(hash string) int {
	if column, ok := st.pending[hash]; ok {
		return column
	}
	return st.allocate(hash)
}

// allocate occupies the lowest free lane with hash, appending a new
// lane only when none is free
func (st *layoutState) allocate(hash string) int {
	for i, occupant := range st.lanes {
		if occupant == "" {
			st.occupy(i, hash)
			return i
		}
	}

	st.lanes = append(st.lanes, hash)
	st.pending[hash] = len(st.lanes) - 1
	return len(st.lanes) - 1
}

func (st *layoutState) occupy(column int, hash string) {
	st.lanes[column] = hash
	st.pending[hash] = column
}

func (st *layoutState) free(column int) {
	if occupant := st.lanes[column]; occupant != "" {
		delete(st.pending, occupant)
	}
	st.lanes[column] = ""
}

// trim drops trailing free lanes. Gaps in the middle stay, as reusable
// slots for future allocations.
func (st *layoutState) trim() {
	n := len(st.lanes)
	for n > 0 && st.lanes[n-1] == "" {
		n--
	}
	st.lanes = st.lanes[:n]
}
