// Package output provides terminal output formatting utilities for the
// git-changelog CLI. This package is designed to have minimal dependencies
// to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal and the user
// has not opted out of decorated output via NO_COLOR.
func IsInteractive(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// PrintWroteFile prints a colored confirmation after the changelog file was
// replaced. Green checkmark, cyan path.
func PrintWroteFile(out io.Writer, path string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(path))
}
