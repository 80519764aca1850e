// Package git provides repository access for changelog generation. It uses
// the go-git library exclusively, so no git CLI installation is required:
// tag decoration records, revision resolution, ancestry checks, and commit
// log queries all run in-process.
package git

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/weiw005/git-extras/internal/changelog"
)

// shortHashLen matches the abbreviated hash width git prints by default.
const shortHashLen = 7

// Repository provides read access to a git repository. All queries operate
// on the repository state at open time.
type Repository struct {
	repo *git.Repository
}

// New wraps an already-open go-git repository.
func New(repo *git.Repository) *Repository {
	return &Repository{repo: repo}
}

// Open opens the repository at path, or the current working directory when
// path is empty. DetectDotGit walks up the directory tree to find the
// repository root.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return New(repo), nil
}

// Root returns the absolute path to the repository worktree root.
func (r *Repository) Root() (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// ConfigSection returns the options of one section of the repository
// configuration, keyed by lowercased option name. A missing section yields
// an empty map.
func (r *Repository) ConfigSection(section string) (map[string]string, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("reading repository config: %w", err)
	}

	out := make(map[string]string)
	for _, opt := range cfg.Raw.Section(section).Options {
		out[strings.ToLower(opt.Key)] = opt.Value
	}
	return out, nil
}

// TagRecords returns one raw record per tagged commit, newest first,
// decorated the way `git log --tags --simplify-by-decoration` prints them:
// a HEAD marker first, then "tag: X" entries, then branch names. The
// changelog layer owns the parsing; this function only reconstructs the
// decoration text from the repository's references.
func (r *Repository) TagRecords() ([]changelog.RawTagRecord, error) {
	type tagged struct {
		hash     plumbing.Hash
		when     int64
		date     string
		tags     []string
		branches []string
	}
	byCommit := make(map[plumbing.Hash]*tagged)

	tags, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		// Annotated tags point at a tag object; peel to the commit.
		if tagObj, tagErr := r.repo.TagObject(hash); tagErr == nil {
			commit, commitErr := tagObj.Commit()
			if commitErr != nil {
				return nil // tag of a tree or blob
			}
			hash = commit.Hash
		}

		commit, commitErr := r.repo.CommitObject(hash)
		if commitErr != nil {
			return nil
		}

		rec, ok := byCommit[hash]
		if !ok {
			rec = &tagged{
				hash: hash,
				when: commit.Committer.When.Unix(),
				date: commit.Committer.When.Format("2006-01-02"),
			}
			byCommit[hash] = rec
		}
		rec.tags = append(rec.tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	if len(byCommit) == 0 {
		return nil, nil
	}

	// Branch decorations, for fidelity with the git log output the parser
	// was written against.
	branches, err := r.repo.Branches()
	if err == nil {
		branches.ForEach(func(ref *plumbing.Reference) error {
			if rec, ok := byCommit[ref.Hash()]; ok {
				rec.branches = append(rec.branches, ref.Name().Short())
			}
			return nil
		})
	}

	headHash, headName := r.headState()

	recs := make([]*tagged, 0, len(byCommit))
	for _, rec := range byCommit {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].when != recs[j].when {
			return recs[i].when > recs[j].when
		}
		return recs[i].hash.String() < recs[j].hash.String()
	})

	out := make([]changelog.RawTagRecord, 0, len(recs))
	for _, rec := range recs {
		var parts []string
		if rec.hash == headHash {
			if headName != "" {
				parts = append(parts, "HEAD -> "+headName)
			} else {
				parts = append(parts, "HEAD")
			}
		}
		// Multiple tags on one commit: the highest-sorting name comes
		// first, matching git's decoration order.
		sort.Sort(sort.Reverse(sort.StringSlice(rec.tags)))
		for _, name := range rec.tags {
			parts = append(parts, "tag: "+name)
		}
		sort.Strings(rec.branches)
		for _, name := range rec.branches {
			if name != headName {
				parts = append(parts, name)
			}
		}

		out = append(out, changelog.RawTagRecord{
			Commit:     rec.hash.String()[:shortHashLen],
			Date:       rec.date,
			Decoration: strings.Join(parts, ", "),
		})
	}
	return out, nil
}

// headState returns the HEAD commit hash and, when HEAD is on a branch, the
// branch's short name. A detached or unborn HEAD yields zero values.
func (r *Repository) headState() (plumbing.Hash, string) {
	head, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, ""
	}
	name := ""
	if head.Name().IsBranch() {
		name = head.Name().Short()
	}
	return head.Hash(), name
}

// ResolveRef resolves a revision expression (tag, branch, hash, or a form
// like "ref~") to a short commit hash.
func (r *Repository) ResolveRef(ref string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", ref, err)
	}
	return hash.String()[:shortHashLen], nil
}

// IsAncestor reports whether ancestor's commit is reachable from ref's
// commit. A commit counts as its own ancestor.
func (r *Repository) IsAncestor(ancestor, ref string) (bool, error) {
	ancestorHash, err := r.repo.ResolveRevision(plumbing.Revision(ancestor))
	if err != nil {
		return false, fmt.Errorf("resolving %q: %w", ancestor, err)
	}
	refHash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return false, fmt.Errorf("resolving %q: %w", ref, err)
	}
	if *ancestorHash == *refHash {
		return true, nil
	}

	ancestorCommit, err := r.repo.CommitObject(*ancestorHash)
	if err != nil {
		return false, fmt.Errorf("loading commit %s: %w", ancestorHash, err)
	}
	refCommit, err := r.repo.CommitObject(*refHash)
	if err != nil {
		return false, fmt.Errorf("loading commit %s: %w", refHash, err)
	}
	return ancestorCommit.IsAncestor(refCommit)
}
