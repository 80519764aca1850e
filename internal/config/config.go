// Package config provides hierarchical configuration management for
// git-changelog using koanf. Values are loaded with priority: environment
// variables (GIT_CHANGELOG_*) > repository git config (the [changelog]
// section) > user config (~/.config/git-changelog/config.yml) > defaults.
// The result is read once at startup and treated as immutable for the run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variable overrides.
const envPrefix = "GIT_CHANGELOG_"

// Configuration holds every knob of a git-changelog run.
type Configuration struct {
	// Format is the commit line template for regular commits.
	Format string `koanf:"format"`
	// MergeFormat is the commit line template for merge commits.
	MergeFormat string `koanf:"merge_format"`
	// NoMerges excludes merge commits by default; the CLI flag can still
	// force it on for a single run.
	NoMerges bool `koanf:"no_merges"`
	// Tag labels the section of commits newer than the newest tag.
	Tag string `koanf:"tag"`
	// File overrides changelog file discovery with a fixed name.
	File string `koanf:"file"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// UserConfigPath overrides the user config path (for testing).
	UserConfigPath string
	// GitConfig carries the repository's [changelog] section, keyed by
	// lowercased option name.
	GitConfig map[string]string
}

// Load loads configuration from defaults, the user config file, the
// repository git config, and the environment, in increasing priority.
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	loadGitConfig(k, opts.GitConfig)

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// UserConfigPath returns the XDG-compliant user config location.
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git-changelog", "config.yml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "git-changelog", "config.yml"), nil
}

// loadUserConfig loads the user-level YAML config when it exists. The file
// is syntax-checked first so a malformed config fails with line information
// instead of a partial load.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		var err error
		path, err = UserConfigPath()
		if err != nil {
			return nil
		}
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating user config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// gitConfigKeys maps [changelog] section option names to config keys.
var gitConfigKeys = map[string]string{
	"format":      "format",
	"mergeformat": "merge_format",
	"nomerges":    "no_merges",
	"tag":         "tag",
	"file":        "file",
}

// loadGitConfig applies the repository's [changelog] section. Boolean
// options use git's spelling; unparseable values are ignored rather than
// failing the run.
func loadGitConfig(k *koanf.Koanf, section map[string]string) {
	for opt, value := range section {
		key, ok := gitConfigKeys[opt]
		if !ok {
			continue
		}
		if key == "no_merges" {
			if b, err := strconv.ParseBool(value); err == nil {
				k.Set(key, b)
			}
			continue
		}
		k.Set(key, value)
	}
}

// envTransform converts environment variable names to config keys.
// Example: GIT_CHANGELOG_MERGE_FORMAT -> merge_format
func envTransform(s string) string {
	s = s[len(envPrefix):]
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
