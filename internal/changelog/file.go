package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the changelog file created when none exists yet.
const DefaultFileName = "History.md"

// LocateFile returns the path of the changelog file to replace. An explicit
// override wins; otherwise the first file in the repository root whose name
// starts with "history" or "changelog" (case-insensitive) is used, falling
// back to DefaultFileName. Directory listings are sorted, so discovery is
// deterministic.
func LocateFile(root, override string) string {
	if override != "" {
		return filepath.Join(root, override)
	}

	entries, err := os.ReadDir(root)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			lower := strings.ToLower(e.Name())
			if strings.HasPrefix(lower, "history") || strings.HasPrefix(lower, "changelog") {
				return filepath.Join(root, e.Name())
			}
		}
	}
	return filepath.Join(root, DefaultFileName)
}

// ReadExisting returns the current changelog content, or "" when the file
// does not exist yet.
func ReadExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces the changelog atomically: the content goes to a
// temporary file in the same directory which is then renamed over the
// target. An interrupted run never leaves a half-written changelog in place
// of the original.
func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".git-changelog-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions on %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
