package changelog

// Bounds are the user-requested limits on how much history to render.
// StartTag and StartCommit are mutually exclusive; the CLI rejects the
// combination before a Selector is ever built.
type Bounds struct {
	// StartTag is the oldest tag to render a section for.
	StartTag string
	// StartCommit is the oldest commit to render; it is resolved to the
	// nearest tag containing it.
	StartCommit string
	// FinalTag is the newest tag to render a section for.
	FinalTag string
}

// Selector walks the tag index newest to oldest and decides, for each
// boundary, the label and commit range of the section to emit. It is the
// single owner of the walk state; a Selector is used for one run and then
// discarded.
type Selector struct {
	Index    TagIndex
	Resolver RefResolver
	Bounds   Bounds

	// ListAll renders the entire history as one section.
	ListAll bool
	// Label titles the leading untagged section and the all-history
	// section (default "n.n.n").
	Label string
	// Today is the date shown next to Label, YYYY-MM-DD.
	Today string
}

// Walk emits one Boundary per section, newest first, calling emit
// synchronously for each. The caller fetches and renders the section before
// Walk moves on, so at most one section is in flight at a time. User-bound
// resolution happens before the first emit; a bad bound fails the walk with
// no output.
func (s *Selector) Walk(emit func(Boundary) error) error {
	// Nothing to bound against: the whole history is one section.
	if s.ListAll || len(s.Index) == 0 {
		return emit(Boundary{Label: s.Label, Date: s.Today, Range: AllHistory()})
	}

	b := s.Bounds

	// "Everything since commit X" wants no tag traversal at all. This
	// shortcut applies only when neither a final tag nor a tag-form start
	// bound was given.
	if b.StartCommit != "" && b.StartTag == "" && b.FinalTag == "" {
		if _, err := s.Resolver.ResolveRef(b.StartCommit); err != nil {
			return &UnknownRefError{Ref: b.StartCommit}
		}
		return emit(Boundary{Label: s.Label, Date: s.Today, Range: Between(b.StartCommit + "~", "")})
	}

	startTag, finalTag, err := s.resolveBounds()
	if err != nil {
		return err
	}

	seeking := finalTag != ""
	for i, tag := range s.Index {
		if seeking {
			if tag.Name != finalTag {
				continue
			}
			seeking = false
		}

		// Commits newer than the newest tag form the leading untagged
		// section, unless the output is capped by a final tag.
		if i == 0 && finalTag == "" {
			untagged := Boundary{Label: s.Label, Date: s.Today, Range: Between(tag.Name, "")}
			if err := emit(untagged); err != nil {
				return err
			}
		}

		// An explicit start commit overrides the generic section at its
		// enclosing tag: one section from the commit itself up to the tag,
		// and the walk is done.
		if b.StartCommit != "" && tag.Name == startTag {
			return emit(Boundary{
				Label: tag.Name,
				Date:  tag.Date,
				Range: Between(b.StartCommit+"~", tag.Name),
			})
		}

		rng := UpTo(tag.Name)
		if i+1 < len(s.Index) {
			rng = Between(s.Index[i+1].Name, tag.Name)
		}
		if err := emit(Boundary{Label: tag.Name, Date: tag.Date, Range: rng}); err != nil {
			return err
		}

		if tag.Name == startTag {
			return nil
		}
		if startTag == "" && finalTag == "" {
			// No bounds: the caller asked only for what's new, so stop
			// after the newest boundary.
			return nil
		}
	}
	return nil
}

// resolveBounds maps the user-supplied bounds onto tags in the index.
func (s *Selector) resolveBounds() (startTag, finalTag string, err error) {
	b := s.Bounds
	if b.FinalTag != "" {
		finalTag, err = s.resolveTagBound(b.FinalTag)
		if err != nil {
			return "", "", err
		}
	}
	switch {
	case b.StartTag != "":
		startTag, err = s.resolveTagBound(b.StartTag)
	case b.StartCommit != "":
		startTag, err = s.resolveContainingTag(b.StartCommit)
	}
	if err != nil {
		return "", "", err
	}
	return startTag, finalTag, nil
}

// resolveTagBound resolves a bound to a tag in the index: by name when the
// literal tag exists, otherwise via ancestry, picking the nearest tag at or
// before the named ref.
func (s *Selector) resolveTagBound(name string) (string, error) {
	if _, ok := s.Index.Lookup(name); ok {
		return name, nil
	}
	hash, err := s.Resolver.ResolveRef(name)
	if err != nil {
		return "", &UnknownRefError{Ref: name}
	}
	for _, tag := range s.Index {
		ok, err := s.Resolver.IsAncestor(tag.Commit, hash)
		if err != nil {
			return "", err
		}
		if ok {
			return tag.Name, nil
		}
	}
	return "", &UnknownRefError{Ref: name}
}

// resolveContainingTag finds the nearest tag that contains the commit: the
// oldest tag the commit is reachable from.
func (s *Selector) resolveContainingTag(ref string) (string, error) {
	hash, err := s.Resolver.ResolveRef(ref)
	if err != nil {
		return "", &UnknownRefError{Ref: ref}
	}
	for i := len(s.Index) - 1; i >= 0; i-- {
		tag := s.Index[i]
		ok, err := s.Resolver.IsAncestor(hash, tag.Commit)
		if err != nil {
			return "", err
		}
		if ok {
			return tag.Name, nil
		}
	}
	return "", &NoContainingTagError{Ref: ref}
}
