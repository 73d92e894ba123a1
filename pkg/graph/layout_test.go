package graph

import (
	"fmt"
	"testing"
)

func TestComputeLayout_RowParity(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 50} {
		commits := linearHistory(n)
		rows := ComputeLayout(commits)
		if len(rows) != n {
			t.Errorf("n=%d: expected %d rows, got %d", n, n, len(rows))
		}
	}
}

func TestComputeLayout_LinearHistory(t *testing.T) {
	// c3 -> c2 -> c1 -> root, newest first
	commits := linearHistory(4)
	rows := ComputeLayout(commits)

	for i, row := range rows {
		if row.Column != 0 {
			t.Errorf("row %d: expected column 0, got %d", i, row.Column)
		}
		if row.NumColumns != 1 {
			t.Errorf("row %d: expected numColumns 1, got %d", i, row.NumColumns)
		}
		if len(row.PassThrough) != 0 {
			t.Errorf("row %d: expected no pass-through lanes, got %d", i, len(row.PassThrough))
		}
	}

	for i := 0; i < 3; i++ {
		conns := rows[i].ConnectionsDown
		if len(conns) != 1 {
			t.Fatalf("row %d: expected 1 connection, got %d", i, len(conns))
		}
		if conns[0].FromColumn != 0 || conns[0].ToColumn != 0 {
			t.Errorf("row %d: expected straight 0->0, got %d->%d",
				i, conns[0].FromColumn, conns[0].ToColumn)
		}
	}

	if len(rows[3].ConnectionsDown) != 0 {
		t.Errorf("root row: expected no connections, got %d", len(rows[3].ConnectionsDown))
	}
}

func TestComputeLayout_MergeFanOut(t *testing.T) {
	// m1 merges p2 into p1; both parents previously unseen
	commits := []Commit{
		{Hash: "m1", Parents: []string{"p1", "p2"}},
		{Hash: "p1", Parents: nil},
		{Hash: "p2", Parents: nil},
	}
	rows := ComputeLayout(commits)

	merge := rows[0]
	if len(merge.ConnectionsDown) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(merge.ConnectionsDown))
	}

	primary, secondary := merge.ConnectionsDown[0], merge.ConnectionsDown[1]
	if primary.ToColumn != merge.Column {
		t.Errorf("primary parent should continue the merge's column %d, got %d",
			merge.Column, primary.ToColumn)
	}
	if secondary.ToColumn == primary.ToColumn {
		t.Error("merge parent should get a distinct column")
	}
	if secondary.ToColumn != 1 {
		t.Errorf("merge parent should get the next free column 1, got %d", secondary.ToColumn)
	}

	// p1 lands on the primary lane, p2 on the fan-out lane
	if rows[1].Column != 0 {
		t.Errorf("p1: expected column 0, got %d", rows[1].Column)
	}
	if rows[2].Column != 1 {
		t.Errorf("p2: expected column 1, got %d", rows[2].Column)
	}

	// while p2 is pending, its lane passes through p1's row
	if len(rows[1].PassThrough) != 1 || rows[1].PassThrough[0].Column != 1 {
		t.Errorf("p1: expected pass-through at column 1, got %v", rows[1].PassThrough)
	}
	if rows[1].NumColumns != 2 {
		t.Errorf("p1: expected numColumns 2, got %d", rows[1].NumColumns)
	}
}

func TestComputeLayout_Convergence(t *testing.T) {
	// Two branches forked from base and merged back:
	//   m ── merge of a and b
	//   a    side b still pending
	//   b    connects into the lane already expecting base? no:
	//        both a and b list base as parent; the second to resolve
	//        must connect into the existing lane, not allocate.
	commits := []Commit{
		{Hash: "m", Parents: []string{"a", "b"}},
		{Hash: "a", Parents: []string{"base"}},
		{Hash: "b", Parents: []string{"base"}},
		{Hash: "base", Parents: nil},
	}
	rows := ComputeLayout(commits)

	// a registers base on column 0. b's only parent is already
	// pending there, so it must connect 1 -> 0 without occupying a
	// new lane.
	bRow := rows[2]
	if bRow.Column != 1 {
		t.Fatalf("b: expected column 1, got %d", bRow.Column)
	}
	if len(bRow.ConnectionsDown) != 1 {
		t.Fatalf("b: expected 1 connection, got %d", len(bRow.ConnectionsDown))
	}
	if bRow.ConnectionsDown[0].ToColumn != 0 {
		t.Errorf("b should converge into column 0, got %d", bRow.ConnectionsDown[0].ToColumn)
	}

	// b's row frees lane 1, so base's row is back to a single column
	baseRow := rows[3]
	if baseRow.Column != 0 {
		t.Errorf("base: expected column 0, got %d", baseRow.Column)
	}
	if baseRow.NumColumns != 1 {
		t.Errorf("base: expected numColumns 1, got %d", baseRow.NumColumns)
	}
	if len(baseRow.PassThrough) != 0 {
		t.Errorf("base: expected no pass-through lanes, got %v", baseRow.PassThrough)
	}
}

func TestComputeLayout_LaneReuse(t *testing.T) {
	// Two disjoint chains. Once the first chain's root resolves and
	// its lane is trimmed, the second chain must reuse column 0
	// rather than append.
	commits := []Commit{
		{Hash: "a1", Parents: []string{"a0"}},
		{Hash: "a0", Parents: nil},
		{Hash: "b1", Parents: []string{"b0"}},
		{Hash: "b0", Parents: nil},
	}
	rows := ComputeLayout(commits)

	for i, row := range rows {
		if row.Column != 0 {
			t.Errorf("row %d: expected reused column 0, got %d", i, row.Column)
		}
		if row.NumColumns != 1 {
			t.Errorf("row %d: expected numColumns 1, got %d", i, row.NumColumns)
		}
	}
}

func TestComputeLayout_MiddleGapReused(t *testing.T) {
	// A merge fans out to columns 1 and 2; the column-1 branch
	// resolves first, leaving a gap that the next fresh allocation
	// must fill before any append.
	commits := []Commit{
		{Hash: "m", Parents: []string{"p0", "p1", "p2"}},
		{Hash: "p1", Parents: nil},
		{Hash: "x", Parents: []string{"y"}},
		{Hash: "p0", Parents: nil},
		{Hash: "p2", Parents: nil},
		{Hash: "y", Parents: nil},
	}
	rows := ComputeLayout(commits)

	if rows[1].Column != 1 {
		t.Fatalf("p1: expected column 1, got %d", rows[1].Column)
	}
	// x is unrelated; with column 1 freed it must take the gap
	if rows[2].Column != 1 {
		t.Errorf("x: expected freed column 1, got %d", rows[2].Column)
	}
}

func TestComputeLayout_PaginationPrefixStable(t *testing.T) {
	full := mergeHistory()
	older := []Commit{
		{Hash: "old1", Parents: []string{"old0"}},
		{Hash: "old0", Parents: nil},
	}

	before := ComputeLayout(full)
	after := ComputeLayout(append(append([]Commit{}, full...), older...))

	for i := range before {
		if !rowsEqual(before[i], after[i]) {
			t.Errorf("row %d changed after appending older commits:\nbefore %+v\nafter  %+v",
				i, before[i], after[i])
		}
	}
}

func TestComputeLayout_PaletteStability(t *testing.T) {
	rows := ComputeLayout(mergeHistory())
	for i, row := range rows {
		want := Palette[row.Column%len(Palette)]
		if row.Color != want {
			t.Errorf("row %d: color %v, want palette[%d %% %d] = %v",
				i, row.Color, row.Column, len(Palette), want)
		}
		for _, lane := range row.PassThrough {
			if lane.Color != LaneColor(lane.Column) {
				t.Errorf("row %d: pass-through lane %d has color %v, want %v",
					i, lane.Column, lane.Color, LaneColor(lane.Column))
			}
		}
		for _, conn := range row.ConnectionsDown {
			if conn.Color != LaneColor(conn.ToColumn) {
				t.Errorf("row %d: connection to %d has color %v, want %v",
					i, conn.ToColumn, conn.Color, LaneColor(conn.ToColumn))
			}
		}
	}
}

func TestComputeLayout_DanglingParentIgnored(t *testing.T) {
	// The parent chain runs into not-yet-fetched history; the open
	// lane simply never gets picked up.
	commits := []Commit{
		{Hash: "tip", Parents: []string{"unfetched"}},
	}
	rows := ComputeLayout(commits)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Column != 0 || len(rows[0].ConnectionsDown) != 1 {
		t.Errorf("tip should still lay out normally: %+v", rows[0])
	}
}

func TestComputeLayout_DuplicateParentHashes(t *testing.T) {
	// Pathological input: the same parent listed twice. The first
	// occurrence registers the lane; the second resolves against it,
	// so the lane is not allocated twice. This pins down current
	// behavior rather than endorsing the input.
	commits := []Commit{
		{Hash: "m", Parents: []string{"p", "p"}},
		{Hash: "p", Parents: nil},
	}
	rows := ComputeLayout(commits)

	conns := rows[0].ConnectionsDown
	if len(conns) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(conns))
	}
	if conns[0].ToColumn != conns[1].ToColumn {
		t.Errorf("duplicate parent produced two lanes: %d and %d",
			conns[0].ToColumn, conns[1].ToColumn)
	}
	if rows[1].NumColumns != 1 {
		t.Errorf("expected single column for p, got %d", rows[1].NumColumns)
	}
}

func TestComputeLayout_Pure(t *testing.T) {
	commits := mergeHistory()
	first := ComputeLayout(commits)
	second := ComputeLayout(commits)

	for i := range first {
		if !rowsEqual(first[i], second[i]) {
			t.Errorf("row %d differs between identical calls", i)
		}
	}
}

func TestLayouter_CachesSameSlice(t *testing.T) {
	var l Layouter
	commits := mergeHistory()

	first := l.Layout(commits)
	second := l.Layout(commits)
	if &first[0] != &second[0] {
		t.Error("expected cached rows for identical input slice")
	}
}

func TestLayouter_RecomputesOnChange(t *testing.T) {
	var l Layouter

	commits := linearHistory(3)
	rows := l.Layout(commits)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	grown := append(append([]Commit{}, commits...), Commit{Hash: "older"})
	rows = l.Layout(grown)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows after growth, got %d", len(rows))
	}

	// must agree with the from-scratch oracle
	oracle := ComputeLayout(grown)
	for i := range oracle {
		if !rowsEqual(rows[i], oracle[i]) {
			t.Errorf("row %d: memoized layouter diverged from ComputeLayout", i)
		}
	}
}

func TestLayouter_EmptyInput(t *testing.T) {
	var l Layouter
	if rows := l.Layout(nil); len(rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(rows))
	}
	if rows := l.Layout([]Commit{}); len(rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(rows))
	}
}

// Helper functions to create test histories

// linearHistory builds c<n-1> -> ... -> c1 -> c0, newest first
func linearHistory(count int) []Commit {
	commits := make([]Commit, count)
	for i := 0; i < count; i++ {
		c := Commit{Hash: fmt.Sprintf("c%d", count-1-i)}
		if i < count-1 {
			c.Parents = []string{fmt.Sprintf("c%d", count-2-i)}
		}
		commits[i] = c
	}
	return commits
}

// mergeHistory builds a fork that merges back:
//
//	m    merge of b and f
//	b    main line
//	f    feature branch
//	base common ancestor
func mergeHistory() []Commit {
	return []Commit{
		{Hash: "m", Parents: []string{"b", "f"}},
		{Hash: "b", Parents: []string{"base"}},
		{Hash: "f", Parents: []string{"base"}},
		{Hash: "base", Parents: nil},
	}
}

func rowsEqual(a, b GraphRow) bool {
	if a.Column != b.Column || a.Color != b.Color || a.NumColumns != b.NumColumns {
		return false
	}
	if len(a.PassThrough) != len(b.PassThrough) || len(a.ConnectionsDown) != len(b.ConnectionsDown) {
		return false
	}
	for i := range a.PassThrough {
		if a.PassThrough[i] != b.PassThrough[i] {
			return false
		}
	}
	for i := range a.ConnectionsDown {
		if a.ConnectionsDown[i] != b.ConnectionsDown[i] {
			return false
		}
	}
	return true
}
