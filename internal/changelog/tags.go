package changelog

import "strings"

// BuildTagIndex parses raw decoration records into an ordered tag index.
// Records are consumed in input order, which the history walk already
// delivers newest first. A record contributes at most one tag: when several
// tags decorate the same commit, the decoration closest to HEAD is treated
// as canonical. Branch and remote decorations are ignored, as are records
// with no tag decoration at all.
func BuildTagIndex(records []RawTagRecord) TagIndex {
	var idx TagIndex
	seen := make(map[string]bool)

	for _, rec := range records {
		name := firstTagDecoration(rec.Decoration)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		idx = append(idx, Tag{Name: name, Commit: rec.Commit, Date: rec.Date})
	}

	return idx
}

// firstTagDecoration extracts the first tag name from a decoration string
// such as "HEAD -> main, tag: v1.2.0, tag: v1.2.0-rc1, origin/main".
// Returns "" when the commit carries no tag decoration.
func firstTagDecoration(decoration string) string {
	decoration = strings.TrimSpace(decoration)
	decoration = strings.TrimPrefix(decoration, "(")
	decoration = strings.TrimSuffix(decoration, ")")

	for _, part := range strings.Split(decoration, ",") {
		part = strings.TrimSpace(part)
		if name, ok := strings.CutPrefix(part, "tag: "); ok {
			return name
		}
		// "HEAD", "HEAD -> branch", branch and remote names fall through
	}
	return ""
}
