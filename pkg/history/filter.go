package history

import (
	"fmt"
	"regexp"

	"github.com/grovetools/gitscope/pkg/graph"
)

// Filter narrows a commit walk by message or author. Both patterns are
// regular expressions; empty patterns match everything. Changing the
// filter replaces the whole commit list, so the caller recomputes the
// layout from scratch.
type Filter struct {
	// Grep filters on the commit message
	Grep string

	// Author filters on the author name or email
	Author string
}

// Empty reports whether the filter matches all commits
func (f Filter) Empty() bool {
	return f.Grep == "" && f.Author == ""
}

// compiledFilter holds the compiled patterns for one walk
type compiledFilter struct {
	grep   *regexp.Regexp
	author *regexp.Regexp
}

func (f Filter) compile() (*compiledFilter, error) {
	cf := &compiledFilter{}

	if f.Grep != "" {
		re, err := regexp.Compile(f.Grep)
		if err != nil {
			return nil, fmt.Errorf("invalid --grep pattern: %w", err)
		}
		cf.grep = re
	}

	if f.Author != "" {
		re, err := regexp.Compile(f.Author)
		if err != nil {
			return nil, fmt.Errorf("invalid --author pattern: %w", err)
		}
		cf.author = re
	}

	return cf, nil
}

func (cf *compiledFilter) match(c graph.Commit) bool {
	if cf.grep != nil && !cf.grep.MatchString(c.Message) {
		return false
	}
	if cf.author != nil && !cf.author.MatchString(c.Author) && !cf.author.MatchString(c.Email) {
		return false
	}
	return true
}
