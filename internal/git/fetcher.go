package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/weiw005/git-extras/internal/changelog"
)

// LogOptions is the immutable per-run commit formatting configuration,
// resolved once at startup from config and flags.
type LogOptions struct {
	// Format is the line template for regular commits.
	Format string
	// MergeFormat is the line template for merge commits.
	MergeFormat string
	// NoMerges drops merge commits from the output.
	NoMerges bool
	// MergesOnly keeps only merge commits.
	MergesOnly bool
}

// Fetcher executes commit log queries for the changelog layer, rendering
// each commit through the configured format template.
type Fetcher struct {
	repo *Repository
	opts LogOptions
}

// NewFetcher returns a fetcher bound to repo with fixed options.
func NewFetcher(repo *Repository, opts LogOptions) *Fetcher {
	return &Fetcher{repo: repo, opts: opts}
}

// Fetch returns the formatted commit lines for a range, newest first. An
// empty range yields an empty slice, not an error.
func (f *Fetcher) Fetch(expr changelog.RangeExpression) ([]string, error) {
	var lines []string
	err := f.forEachCommit(expr, func(c *object.Commit) error {
		merge := c.NumParents() > 1
		if merge && f.opts.NoMerges {
			return nil
		}
		if !merge && f.opts.MergesOnly {
			return nil
		}

		format := f.opts.Format
		if merge && f.opts.MergeFormat != "" {
			format = f.opts.MergeFormat
		}

		text := strings.TrimRight(FormatCommit(c, format), "\n")
		lines = append(lines, strings.Split(text, "\n")...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// forEachCommit walks the commits selected by expr in committer-date order,
// newest first.
func (f *Fetcher) forEachCommit(expr changelog.RangeExpression, fn func(*object.Commit) error) error {
	exclude, err := f.excludedSet(expr)
	if err != nil {
		return err
	}

	from, err := f.rangeTip(expr)
	if err != nil {
		return err
	}
	if from == plumbing.ZeroHash {
		// Unborn repository: zero commits in range is not an error.
		return nil
	}

	iter, err := f.repo.repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return fmt.Errorf("walking history from %s: %w", from, err)
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if exclude[c.Hash] {
			// Excluded commits may interleave with wanted ones when
			// branches merge, so skip rather than stop.
			return nil
		}
		return fn(c)
	})
}

// rangeTip resolves the inclusive upper end of the range: the To ref, or
// HEAD for open-ended and all-history ranges. Returns the zero hash when
// the repository has no commits yet.
func (f *Fetcher) rangeTip(expr changelog.RangeExpression) (plumbing.Hash, error) {
	if !expr.All && expr.To != "" {
		hash, err := f.repo.repo.ResolveRevision(plumbing.Revision(expr.To))
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolving %q: %w", expr.To, err)
		}
		return *hash, nil
	}

	head, err := f.repo.repo.Head()
	if err == plumbing.ErrReferenceNotFound {
		return plumbing.ZeroHash, nil
	}
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash(), nil
}

// excludedSet collects the exclusive lower bound's ancestors (the bound
// itself included). A "ref~" bound whose base is a root commit has no
// parent; the range then opens at the beginning of history.
func (f *Fetcher) excludedSet(expr changelog.RangeExpression) (map[plumbing.Hash]bool, error) {
	if expr.All || expr.From == "" {
		return nil, nil
	}

	hash, err := f.repo.repo.ResolveRevision(plumbing.Revision(expr.From))
	if err != nil {
		if base, ok := strings.CutSuffix(expr.From, "~"); ok {
			if _, baseErr := f.repo.repo.ResolveRevision(plumbing.Revision(base)); baseErr == nil {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("resolving %q: %w", expr.From, err)
	}

	iter, err := f.repo.repo.Log(&git.LogOptions{From: *hash})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", hash, err)
	}
	defer iter.Close()

	exclude := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		exclude[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exclude, nil
}
