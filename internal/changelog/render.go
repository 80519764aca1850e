package changelog

import (
	"strings"
	"unicode/utf8"
)

// RenderMode selects between titled release blocks and a bare bullet list.
type RenderMode int

const (
	// Titled renders "name / date", an underline of equal length, a blank
	// line, and the commit lines.
	Titled RenderMode = iota
	// Plain renders the commit lines with no header.
	Plain
)

// FormatSection renders one section as text. The output carries no leading
// separator; the assembler inserts a blank line between sections.
// Rendering is pure: the same section always produces the same bytes.
func FormatSection(sec Section, mode RenderMode) string {
	lines := normalizeBullets(sec.Lines)

	if mode == Plain {
		if len(lines) == 0 {
			return ""
		}
		return strings.Join(lines, "\n") + "\n"
	}

	title := sec.Title + " / " + sec.Date
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", utf8.RuneCountInString(title)))
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n")
	return sb.String()
}

// normalizeBullets collapses the bullet-of-bullets artifact the commit
// format template produces when a merge body itself begins with a bullet:
// a line reading "* *" after indentation becomes a single bullet.
func normalizeBullets(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = normalizeBullet(line)
	}
	return out
}

func normalizeBullet(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]
	if rest, ok := strings.CutPrefix(trimmed, "* *"); ok {
		return indent + "*" + rest
	}
	return line
}
