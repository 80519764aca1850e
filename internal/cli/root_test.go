package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/weiw005/git-extras/internal/errors"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		startTagFlag = ""
		startCommitFlag = ""
		finalTagFlag = ""
		noMergesFlag = false
		mergesOnlyFlag = false
	})
}

func TestValidateFlagsConflicts(t *testing.T) {
	tests := map[string]struct {
		setup   func()
		wantErr bool
	}{
		"no flags": {
			setup:   func() {},
			wantErr: false,
		},
		"start tag alone": {
			setup:   func() { startTagFlag = "v1.0.0" },
			wantErr: false,
		},
		"start commit alone": {
			setup:   func() { startCommitFlag = "abc1234" },
			wantErr: false,
		},
		"start tag with start commit": {
			setup: func() {
				startTagFlag = "v1.0.0"
				startCommitFlag = "abc1234"
			},
			wantErr: true,
		},
		"no merges with merges only": {
			setup: func() {
				noMergesFlag = true
				mergesOnlyFlag = true
			},
			wantErr: true,
		},
		"no merges alone": {
			setup:   func() { noMergesFlag = true },
			wantErr: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resetFlags(t)
			tc.setup()

			err := validateFlags()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			cliErr := apperrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, apperrors.Argument, cliErr.Category)
			assert.NotEmpty(t, cliErr.Remediation)
		})
	}
}

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{
		"all", "list", "tag", "final-tag", "start-tag", "start-commit",
		"no-merges", "merges-only", "prune-old", "stdout",
	} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "missing flag %s", name)
	}
}
