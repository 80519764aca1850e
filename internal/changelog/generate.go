package changelog

import "io"

// Generator drives one changelog run: the selector decides each boundary,
// the fetcher pulls that boundary's commit lines, and the rendered section
// is written out before the next boundary is considered. No section list is
// ever materialized.
type Generator struct {
	Selector *Selector
	Fetcher  CommitFetcher
	// Plain switches every section to bare-list rendering.
	Plain bool
}

// Run writes all sections to w, newest first.
func (g *Generator) Run(w io.Writer) error {
	mode := Titled
	if g.Plain {
		mode = Plain
	}

	wroteAny := false
	return g.Selector.Walk(func(b Boundary) error {
		lines, err := g.Fetcher.Fetch(b.Range)
		if err != nil {
			return err
		}

		sec := Section{Title: b.Label, Date: b.Date, Lines: lines}
		text := FormatSection(sec, mode)
		if text == "" {
			// Plain mode drops empty sections entirely; emitting a
			// separator for one would open the output with a blank line.
			return nil
		}

		if wroteAny {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		wroteAny = true

		_, err = io.WriteString(w, text)
		return err
	})
}
