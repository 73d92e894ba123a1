package graph

import (
	"strings"
	"time"
)

// Commit is the input record for the layout engine.
//
// Only Hash and Parents participate in lane assignment; the remaining
// fields are carried along for the renderers. Parents are ordered: the
// first entry is the primary parent (the linear continuation), any
// further entries are merge parents.
type Commit struct {
	// Hash uniquely identifies the commit and is stable across calls
	Hash string

	// Parents holds the hashes of direct ancestors, primary parent first
	Parents []string

	// Author is the author's display name
	Author string

	// Email is the author's email address
	Email string

	// When is the author timestamp
	When time.Time

	// Message is the full commit message
	Message string

	// Refs are branch and tag names pointing at this commit
	Refs []string
}

// ShortHash returns the abbreviated commit hash
func (c Commit) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}

// Subject returns the first line of the commit message
func (c Commit) Subject() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

// IsMerge reports whether the commit has two or more parents
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsRoot reports whether the commit has no parents
func (c Commit) IsRoot() bool {
	return len(c.Parents) == 0
}
