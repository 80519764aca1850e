package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// format: One bullet per commit subject, matching the classic
		// git-changelog output.
		"format": "  * %s",
		// merge_format: Merge commits expand to subject plus body.
		"merge_format": "  * %s%n%b",
		// no_merges: Merge commits are included unless asked otherwise.
		"no_merges": false,
		// tag: Placeholder label for commits not yet under any tag.
		"tag": "n.n.n",
		// file: Empty means discover History.md / CHANGELOG.md in the
		// repository root.
		"file": "",
	}
}
