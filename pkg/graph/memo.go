package graph

// Layouter wraps ComputeLayout with a single-entry cache keyed on the
// identity of the input slice.
//
// The commit list only changes on load, filter, or pagination events;
// in between, callers re-render with the same slice and the previous
// rows can be returned as-is. Any change of backing array or length
// triggers a full recomputation from scratch, so column assignments
// are not guaranteed stable across list changes. Layouter is not safe
// for concurrent use; invocations are expected to be sequenced by the
// caller's event loop.
type Layouter struct {
	lastHead *Commit
	lastLen  int
	rows     []GraphRow
}

// Layout returns the rows for commits, reusing the previous result when
// the slice identity is unchanged
func (l *Layouter) Layout(commits []Commit) []GraphRow {
	if l.rows != nil && l.matches(commits) {
		return l.rows
	}

	l.rows = ComputeLayout(commits)
	l.lastLen = len(commits)
	if len(commits) > 0 {
		l.lastHead = &commits[0]
	} else {
		l.lastHead = nil
	}
	return l.rows
}

func (l *Layouter) matches(commits []Commit) bool {
	if len(commits) != l.lastLen {
		return false
	}
	if len(commits) == 0 {
		return l.lastHead == nil
	}
	return &commits[0] == l.lastHead
}
