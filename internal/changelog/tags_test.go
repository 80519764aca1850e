package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstTagDecoration(t *testing.T) {
	tests := map[string]struct {
		decoration string
		want       string
	}{
		"single tag": {
			decoration: "tag: v1.0.0",
			want:       "v1.0.0",
		},
		"tag with parens": {
			decoration: "(tag: v1.0.0)",
			want:       "v1.0.0",
		},
		"head arrow then tag": {
			decoration: "HEAD -> main, tag: v2.1.0",
			want:       "v2.1.0",
		},
		"multiple tags takes first": {
			decoration: "tag: v1.2.0, tag: v1.2.0-rc1",
			want:       "v1.2.0",
		},
		"tag between branches": {
			decoration: "main, tag: v0.3.0, origin/main",
			want:       "v0.3.0",
		},
		"branches only": {
			decoration: "HEAD -> main, origin/main",
			want:       "",
		},
		"detached head only": {
			decoration: "HEAD",
			want:       "",
		},
		"empty": {
			decoration: "",
			want:       "",
		},
		"branch named like a tag prefix": {
			decoration: "tags-cleanup, tag: v4.0.0",
			want:       "v4.0.0",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, firstTagDecoration(tc.decoration))
		})
	}
}

func TestBuildTagIndex(t *testing.T) {
	tests := map[string]struct {
		records []RawTagRecord
		want    TagIndex
	}{
		"empty input": {
			records: nil,
			want:    nil,
		},
		"no tag decorations": {
			records: []RawTagRecord{
				{Commit: "aaaaaaa", Date: "2026-01-01", Decoration: "HEAD -> main"},
				{Commit: "bbbbbbb", Date: "2026-01-02", Decoration: ""},
			},
			want: nil,
		},
		"ordered tags pass through": {
			records: []RawTagRecord{
				{Commit: "ccccccc", Date: "2026-03-01", Decoration: "tag: v2.0.0"},
				{Commit: "bbbbbbb", Date: "2026-02-01", Decoration: "tag: v1.1.0"},
				{Commit: "aaaaaaa", Date: "2026-01-01", Decoration: "tag: v1.0.0"},
			},
			want: TagIndex{
				{Name: "v2.0.0", Commit: "ccccccc", Date: "2026-03-01"},
				{Name: "v1.1.0", Commit: "bbbbbbb", Date: "2026-02-01"},
				{Name: "v1.0.0", Commit: "aaaaaaa", Date: "2026-01-01"},
			},
		},
		"co-located tags collapse to one boundary": {
			records: []RawTagRecord{
				{Commit: "ddddddd", Date: "2026-04-01", Decoration: "tag: v3.0.0, tag: v3.0.0-rc2"},
				{Commit: "aaaaaaa", Date: "2026-01-01", Decoration: "tag: v1.0.0"},
			},
			want: TagIndex{
				{Name: "v3.0.0", Commit: "ddddddd", Date: "2026-04-01"},
				{Name: "v1.0.0", Commit: "aaaaaaa", Date: "2026-01-01"},
			},
		},
		"branch decorations interleaved": {
			records: []RawTagRecord{
				{Commit: "eeeeeee", Date: "2026-05-01", Decoration: "HEAD -> main, origin/main"},
				{Commit: "ddddddd", Date: "2026-04-01", Decoration: "tag: v3.0.0, origin/release"},
			},
			want: TagIndex{
				{Name: "v3.0.0", Commit: "ddddddd", Date: "2026-04-01"},
			},
		},
		"duplicate tag name kept once": {
			records: []RawTagRecord{
				{Commit: "ccccccc", Date: "2026-03-01", Decoration: "tag: v1.0.0"},
				{Commit: "aaaaaaa", Date: "2026-01-01", Decoration: "tag: v1.0.0"},
			},
			want: TagIndex{
				{Name: "v1.0.0", Commit: "ccccccc", Date: "2026-03-01"},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildTagIndex(tc.records))
		})
	}
}

func TestTagIndexLookup(t *testing.T) {
	idx := TagIndex{
		{Name: "v2.0.0", Commit: "ccccccc", Date: "2026-03-01"},
		{Name: "v1.0.0", Commit: "aaaaaaa", Date: "2026-01-01"},
	}

	tag, ok := idx.Lookup("v1.0.0")
	assert.True(t, ok)
	assert.Equal(t, "aaaaaaa", tag.Commit)

	_, ok = idx.Lookup("v9.9.9")
	assert.False(t, ok)
}
