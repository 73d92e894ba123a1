package history

import (
	"context"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"golang.org/x/sync/errgroup"

	"github.com/grovetools/gitscope/pkg/graph"
)

// Options controls one history window.
type Options struct {
	// Ref is the revision to start from; empty means HEAD
	Ref string

	// Limit caps the number of commits per page; 0 means no cap
	Limit int

	// Cursor resumes a paginated walk after the given hash. The new
	// page holds strictly older commits, so appending it to the
	// previous pages keeps the list topologically sound.
	Cursor string

	// Filter narrows the walk before pagination applies
	Filter Filter
}

// Page is one window of commit history, newest first.
type Page struct {
	Commits []graph.Commit

	// NextCursor resumes the walk where this page ended; empty when
	// the history is exhausted
	NextCursor string

	// HasMore reports whether another page exists
	HasMore bool
}

// Loader reads commit history from a git repository via go-git. It
// produces the flat, reverse-chronological commit list the layout
// engine consumes; the engine itself never touches the repository.
type Loader struct {
	repo *gogit.Repository
}

// Open opens the repository at or above path
func Open(path string) (*Loader, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return NewLoader(repo), nil
}

// NewLoader wraps an already-open repository
func NewLoader(repo *gogit.Repository) *Loader {
	return &Loader{repo: repo}
}

// Load walks the history and returns one page of commits along with
// ref decorations. The ref map and the commit walk are independent
// reads, so they run concurrently.
func (l *Loader) Load(ctx context.Context, opts Options) (*Page, error) {
	cf, err := opts.Filter.compile()
	if err != nil {
		return nil, err
	}

	from, err := l.resolveStart(opts.Ref)
	if err != nil {
		return nil, err
	}

	var (
		refs map[string][]string
		page *Page
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		refs, err = l.refNames()
		return err
	})
	g.Go(func() error {
		var err error
		page, err = l.walk(ctx, from, opts, cf)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range page.Commits {
		page.Commits[i].Refs = refs[page.Commits[i].Hash]
	}

	return page, nil
}

// Unpushed returns the set of commit hashes on a local branch that are
// not reachable from its remote-tracking ref. The layout engine
// ignores this; it exists for presentational styling only.
func (l *Loader) Unpushed(ctx context.Context, remote, branch string) (map[string]bool, error) {
	localRef, err := l.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", branch, err)
	}

	remoteRef, err := l.repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if err != nil {
		// No tracking ref: everything on the branch is unpushed.
		return l.reachable(ctx, localRef.Hash(), nil)
	}

	pushed, err := l.reachable(ctx, remoteRef.Hash(), nil)
	if err != nil {
		return nil, err
	}

	return l.reachable(ctx, localRef.Hash(), pushed)
}

// reachable collects hashes reachable from start, stopping at any hash
// already present in the seen set
func (l *Loader) reachable(ctx context.Context, start plumbing.Hash, seen map[string]bool) (map[string]bool, error) {
	iter, err := l.repo.Log(&gogit.LogOptions{From: start})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}
	defer iter.Close()

	out := make(map[string]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		hash := c.Hash.String()
		if seen[hash] {
			return nil
		}
		out[hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Loader) resolveStart(ref string) (plumbing.Hash, error) {
	if ref == "" {
		head, err := l.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to resolve HEAD: %w", err)
		}
		return head.Hash(), nil
	}

	hash, err := l.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve revision %s: %w", ref, err)
	}
	return *hash, nil
}

// walk iterates commits newest first, skipping past the cursor and
// collecting up to Limit filtered commits plus a lookahead to decide
// HasMore.
func (l *Loader) walk(ctx context.Context, from plumbing.Hash, opts Options, cf *compiledFilter) (*Page, error) {
	iter, err := l.repo.Log(&gogit.LogOptions{
		From:  from,
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}
	defer iter.Close()

	page := &Page{}
	skipping := opts.Cursor != ""

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if skipping {
			if c.Hash.String() == opts.Cursor {
				skipping = false
			}
			return nil
		}

		gc := convert(c)
		if !cf.match(gc) {
			return nil
		}

		if opts.Limit > 0 && len(page.Commits) == opts.Limit {
			page.HasMore = true
			return storer.ErrStop
		}

		page.Commits = append(page.Commits, gc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if page.HasMore && len(page.Commits) > 0 {
		page.NextCursor = page.Commits[len(page.Commits)-1].Hash
	}

	return page, nil
}

// refNames maps commit hashes to the short names of branches and tags
// pointing at them
func (l *Loader) refNames() (map[string][]string, error) {
	iter, err := l.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	defer iter.Close()

	refs := make(map[string][]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if !name.IsBranch() && !name.IsTag() && !name.IsRemote() {
			return nil
		}

		hash := ref.Hash()
		// Annotated tags point at a tag object; decorate the target.
		if tag, err := l.repo.TagObject(hash); err == nil {
			hash = tag.Target
		}

		refs[hash.String()] = append(refs[hash.String()], name.Short())
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, names := range refs {
		sort.Strings(names)
	}
	return refs, nil
}

func convert(c *object.Commit) graph.Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return graph.Commit{
		Hash:    c.Hash.String(),
		Parents: parents,
		Author:  c.Author.Name,
		Email:   c.Author.Email,
		When:    c.Author.When,
		Message: c.Message,
	}
}
