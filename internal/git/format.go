package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// FormatCommit renders a commit through a git pretty-format style template.
// Supported placeholders: %H, %h, %s, %b, %B, %an, %ae, %ad (short date),
// %n, and %%. Unknown placeholders pass through verbatim.
func FormatCommit(c *object.Commit, format string) string {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			sb.WriteByte(format[i])
			continue
		}
		i++
		switch format[i] {
		case 'H':
			sb.WriteString(c.Hash.String())
		case 'h':
			sb.WriteString(c.Hash.String()[:shortHashLen])
		case 's':
			sb.WriteString(subject(c.Message))
		case 'b':
			sb.WriteString(body(c.Message))
		case 'B':
			sb.WriteString(c.Message)
		case 'n':
			sb.WriteByte('\n')
		case '%':
			sb.WriteByte('%')
		case 'a':
			if i+1 < len(format) {
				i++
				switch format[i] {
				case 'n':
					sb.WriteString(c.Author.Name)
				case 'e':
					sb.WriteString(c.Author.Email)
				case 'd':
					sb.WriteString(c.Author.When.Format("2006-01-02"))
				default:
					sb.WriteString(format[i-2 : i+1])
				}
			} else {
				sb.WriteString("%a")
			}
		default:
			sb.WriteByte('%')
			sb.WriteByte(format[i])
		}
	}
	return sb.String()
}

// subject is the first line of the commit message.
func subject(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}

// body is everything after the subject line, with surrounding blank lines
// stripped.
func body(message string) string {
	_, rest, found := strings.Cut(message, "\n")
	if !found {
		return ""
	}
	return strings.Trim(rest, "\n")
}
