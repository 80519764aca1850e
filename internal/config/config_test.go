package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUserConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{UserConfigPath: filepath.Join(t.TempDir(), "missing.yml")})
	require.NoError(t, err)

	assert.Equal(t, "  * %s", cfg.Format)
	assert.Equal(t, "  * %s%n%b", cfg.MergeFormat)
	assert.False(t, cfg.NoMerges)
	assert.Equal(t, "n.n.n", cfg.Tag)
	assert.Empty(t, cfg.File)
}

func TestLoadUserConfig(t *testing.T) {
	path := writeUserConfig(t, `
format: "- %s"
no_merges: true
file: NEWS.md
`)

	cfg, err := Load(LoadOptions{UserConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "- %s", cfg.Format)
	assert.True(t, cfg.NoMerges)
	assert.Equal(t, "NEWS.md", cfg.File)
	// Untouched keys keep their defaults.
	assert.Equal(t, "n.n.n", cfg.Tag)
}

func TestLoadInvalidUserConfig(t *testing.T) {
	path := writeUserConfig(t, "format: [unclosed\n")

	_, err := Load(LoadOptions{UserConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating user config")
}

func TestLoadGitConfig(t *testing.T) {
	tests := map[string]struct {
		section map[string]string
		check   func(t *testing.T, cfg *Configuration)
	}{
		"format and tag": {
			section: map[string]string{"format": "  * %h %s", "tag": "unreleased"},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "  * %h %s", cfg.Format)
				assert.Equal(t, "unreleased", cfg.Tag)
			},
		},
		"mergeformat maps to merge_format": {
			section: map[string]string{"mergeformat": "  * merge: %s"},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "  * merge: %s", cfg.MergeFormat)
			},
		},
		"nomerges boolean spellings": {
			section: map[string]string{"nomerges": "true"},
			check: func(t *testing.T, cfg *Configuration) {
				assert.True(t, cfg.NoMerges)
			},
		},
		"unparseable boolean ignored": {
			section: map[string]string{"nomerges": "yes please"},
			check: func(t *testing.T, cfg *Configuration) {
				assert.False(t, cfg.NoMerges)
			},
		},
		"unknown option ignored": {
			section: map[string]string{"frobnicate": "1"},
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, "  * %s", cfg.Format)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(LoadOptions{
				UserConfigPath: filepath.Join(t.TempDir(), "missing.yml"),
				GitConfig:      tc.section,
			})
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoadGitConfigOverridesUserConfig(t *testing.T) {
	path := writeUserConfig(t, "format: \"- %s\"\n")

	cfg, err := Load(LoadOptions{
		UserConfigPath: path,
		GitConfig:      map[string]string{"format": "  * %h %s"},
	})
	require.NoError(t, err)
	assert.Equal(t, "  * %h %s", cfg.Format)
}

func TestLoadEnvOverridesEverything(t *testing.T) {
	t.Setenv("GIT_CHANGELOG_FORMAT", "env-format %s")
	t.Setenv("GIT_CHANGELOG_MERGE_FORMAT", "env-merge %s")
	t.Setenv("GIT_CHANGELOG_TAG", "v9.9.9")

	cfg, err := Load(LoadOptions{
		UserConfigPath: writeUserConfig(t, "format: \"- %s\"\n"),
		GitConfig:      map[string]string{"format": "  * %h %s"},
	})
	require.NoError(t, err)

	assert.Equal(t, "env-format %s", cfg.Format)
	assert.Equal(t, "env-merge %s", cfg.MergeFormat)
	assert.Equal(t, "v9.9.9", cfg.Tag)
}

func TestUserConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")

	path, err := UserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/xdg", "git-changelog", "config.yml"), path)
}

func TestValidateYAMLSyntax(t *testing.T) {
	valid := writeUserConfig(t, "format: \"- %s\"\nno_merges: false\n")
	assert.NoError(t, ValidateYAMLSyntax(valid))

	invalid := writeUserConfig(t, "format: [unclosed\n")
	assert.Error(t, ValidateYAMLSyntax(invalid))

	assert.Error(t, ValidateYAMLSyntax(filepath.Join(t.TempDir(), "missing.yml")))
}
