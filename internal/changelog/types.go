package changelog

import "fmt"

// Tag is one release boundary: a tag name, the short hash of the commit it
// points at, and that commit's calendar date (day precision).
type Tag struct {
	Name   string
	Commit string
	Date   string
}

// TagIndex is an ordered sequence of tags, newest first. An empty index is
// a valid state and means the repository has no release tags.
type TagIndex []Tag

// Lookup returns the tag with the given name, if present.
func (idx TagIndex) Lookup(name string) (Tag, bool) {
	for _, t := range idx {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// RawTagRecord is one line of raw tag metadata from the underlying history
// walk: a short commit hash, the commit date, and the decoration text
// listing everything that points at the commit (HEAD marker, tags,
// branches). Records arrive newest first.
type RawTagRecord struct {
	Commit     string
	Date       string
	Decoration string
}

// RangeExpression selects a span of history for a commit fetch.
// The zero value is invalid; use AllHistory, UpTo, or Between.
type RangeExpression struct {
	// From is the exclusive lower bound. Empty means the beginning of
	// history. A trailing "~" steps to the ref's parent, so the ref
	// itself is included in the range.
	From string
	// To is the inclusive upper bound. Empty means the current tip.
	To string
	// All selects the entire history, ignoring both bounds.
	All bool
}

// AllHistory selects every commit in the repository.
func AllHistory() RangeExpression {
	return RangeExpression{All: true}
}

// UpTo selects every commit up to and including ref.
func UpTo(ref string) RangeExpression {
	return RangeExpression{To: ref}
}

// Between selects commits reachable from to (the current tip when empty)
// but not from from.
func Between(from, to string) RangeExpression {
	return RangeExpression{From: from, To: to}
}

func (r RangeExpression) String() string {
	if r.All {
		return "all"
	}
	return r.From + ".." + r.To
}

// Boundary is one section decision made by the selector: a label, the date
// to display next to it, and the commit range the section covers.
type Boundary struct {
	Label string
	Date  string
	Range RangeExpression
}

// Section is one rendered block of the changelog: an optional title (tag
// name or the unreleased label) and the commit lines belonging to it.
type Section struct {
	Title string
	Date  string
	Lines []string
}

// CommitFetcher returns the formatted commit lines for a range. The
// changelog layer never inspects commit content; each line is opaque.
type CommitFetcher interface {
	Fetch(expr RangeExpression) ([]string, error)
}

// RefResolver answers the two repository questions the selector needs when
// resolving user-supplied bounds.
type RefResolver interface {
	// ResolveRef resolves a revision expression to a commit hash, or
	// fails if no such object exists.
	ResolveRef(ref string) (string, error)
	// IsAncestor reports whether ancestor's commit is reachable from
	// ref's commit (equality counts).
	IsAncestor(ancestor, ref string) (bool, error)
}

// UnknownRefError reports a user-supplied tag or revision that does not
// resolve to an existing repository object.
type UnknownRefError struct {
	Ref string
}

func (e *UnknownRefError) Error() string {
	return fmt.Sprintf("unknown reference %q", e.Ref)
}

// NoContainingTagError reports a start commit that is not contained in any
// tag, so no section boundary can enclose it.
type NoContainingTagError struct {
	Ref string
}

func (e *NoContainingTagError) Error() string {
	return fmt.Sprintf("no tag contains commit %q", e.Ref)
}
