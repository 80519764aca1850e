package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSection(t *testing.T) {
	tests := map[string]struct {
		section Section
		mode    RenderMode
		want    string
	}{
		"titled section": {
			section: Section{
				Title: "v1.0.0",
				Date:  "2026-01-15",
				Lines: []string{"  * Add login form", "  * Fix session expiry"},
			},
			mode: Titled,
			want: "v1.0.0 / 2026-01-15\n" +
				"===================\n" +
				"\n" +
				"  * Add login form\n" +
				"  * Fix session expiry\n",
		},
		"titled section with no commits": {
			section: Section{Title: "n.n.n", Date: "2026-06-01"},
			mode:    Titled,
			want: "n.n.n / 2026-06-01\n" +
				"==================\n" +
				"\n" +
				"\n",
		},
		"underline counts runes not bytes": {
			section: Section{
				Title: "día-uno",
				Date:  "2026-01-15",
				Lines: []string{"  * Initial"},
			},
			mode: Titled,
			want: "día-uno / 2026-01-15\n" +
				"====================\n" +
				"\n" +
				"  * Initial\n",
		},
		"plain section": {
			section: Section{
				Title: "v1.0.0",
				Date:  "2026-01-15",
				Lines: []string{"  * Add login form", "  * Fix session expiry"},
			},
			mode: Plain,
			want: "  * Add login form\n  * Fix session expiry\n",
		},
		"plain section with no commits": {
			section: Section{Title: "v1.0.0", Date: "2026-01-15"},
			mode:    Plain,
			want:    "",
		},
		"bullet of bullets collapses": {
			section: Section{
				Title: "v2.0.0",
				Date:  "2026-03-01",
				Lines: []string{"  * Merge branch 'feature'", "  * * nested note"},
			},
			mode: Plain,
			want: "  * Merge branch 'feature'\n  * nested note\n",
		},
		"single bullet untouched": {
			section: Section{
				Lines: []string{"  * plain entry", "    continuation * star"},
			},
			mode: Plain,
			want: "  * plain entry\n    continuation * star\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := FormatSection(tc.section, tc.mode)
			assert.Equal(t, tc.want, got)
			// Rendering is pure; a second pass yields identical bytes.
			assert.Equal(t, got, FormatSection(tc.section, tc.mode))
		})
	}
}

func TestNormalizeBullet(t *testing.T) {
	tests := map[string]struct {
		line string
		want string
	}{
		"double bullet":          {line: "  * * body line", want: "  * body line"},
		"double bullet no space": {line: "* *x", want: "*x"},
		"single bullet":          {line: "  * subject", want: "  * subject"},
		"no bullet":              {line: "plain text", want: "plain text"},
		"empty":                  {line: "", want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeBullet(tc.line))
		})
	}
}
