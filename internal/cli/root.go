// Package cli wires the git-changelog command surface: flag parsing and
// validation, configuration loading, and the orchestration of one changelog
// run against the repository in the current working directory.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/weiw005/git-extras/internal/changelog"
	"github.com/weiw005/git-extras/internal/config"
	apperrors "github.com/weiw005/git-extras/internal/errors"
	"github.com/weiw005/git-extras/internal/git"
	"github.com/weiw005/git-extras/internal/output"
	"github.com/weiw005/git-extras/internal/version"
)

var (
	allFlag         bool
	listFlag        bool
	tagFlag         string
	finalTagFlag    string
	startTagFlag    string
	startCommitFlag string
	noMergesFlag    bool
	mergesOnlyFlag  bool
	pruneOldFlag    bool
	stdoutFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "git-changelog",
	Short: "Generate a changelog from the repository's tag history",
	Long: `Generate a changelog document from the repository's tag history.

Commits are grouped into sections bounded by release tags, newest first.
By default the commits since the most recent tag are rendered under a
placeholder version label and the existing changelog content is kept
below them.

Examples:
  git-changelog                      # Commits since the last tag, labeled n.n.n
  git-changelog -t v1.2.0            # Same, labeled v1.2.0
  git-changelog -a                   # Entire history as one section
  git-changelog -s v0.9.0            # Sections down to and including v0.9.0
  git-changelog -s v0.9.0 -f v1.0.0  # Only the sections between the two tags
  git-changelog --start-commit 1a2b  # Everything since a specific commit
  git-changelog -l -x                # Bare list on stdout, file untouched`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version.Version,
	RunE:          runChangelog,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&allFlag, "all", "a", false, "retrieve all history")
	flags.BoolVarP(&listFlag, "list", "l", false, "display commits as a list, with no titles")
	flags.StringVarP(&tagFlag, "tag", "t", "", "label for the commits since the newest tag")
	flags.StringVarP(&finalTagFlag, "final-tag", "f", "", "newest tag to retrieve commits from")
	flags.StringVarP(&startTagFlag, "start-tag", "s", "", "oldest tag to retrieve commits from")
	flags.StringVar(&startCommitFlag, "start-commit", "", "oldest commit to retrieve; resolved to its enclosing tag")
	flags.BoolVarP(&noMergesFlag, "no-merges", "n", false, "suppress merge commits")
	flags.BoolVarP(&mergesOnlyFlag, "merges-only", "m", false, "show merge commits only")
	flags.BoolVarP(&pruneOldFlag, "prune-old", "p", false, "discard the existing changelog contents")
	flags.BoolVarP(&stdoutFlag, "stdout", "x", false, "write the changelog to stdout instead of the changelog file")
}

// Execute runs the root command, printing structured errors to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if cliErr := apperrors.AsCLIError(err); cliErr != nil {
			apperrors.PrintError(cliErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}

func runChangelog(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	repo, err := git.Open("")
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "opening repository",
			"run git-changelog inside a git repository")
	}

	cfg, err := loadConfig(repo)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Configuration)
	}

	gen, err := newGenerator(repo, cfg)
	if err != nil {
		return err
	}

	if stdoutFlag {
		return writeStdout(cmd.OutOrStdout(), gen, repo, cfg)
	}
	return writeFile(cmd.OutOrStdout(), gen, repo, cfg)
}

// validateFlags rejects conflicting bounds before any repository work, so a
// bad invocation never produces partial output.
func validateFlags() error {
	if startTagFlag != "" && startCommitFlag != "" {
		return apperrors.NewArgumentError(
			"--start-tag and --start-commit are mutually exclusive",
			"supply at most one of the two start bounds")
	}
	if noMergesFlag && mergesOnlyFlag {
		return apperrors.NewArgumentError(
			"--no-merges and --merges-only are mutually exclusive",
			"drop one of the two merge filters")
	}
	return nil
}

func loadConfig(repo *git.Repository) (*config.Configuration, error) {
	gitCfg, err := repo.ConfigSection("changelog")
	if err != nil {
		return nil, err
	}
	return config.Load(config.LoadOptions{GitConfig: gitCfg})
}

// newGenerator assembles the run from repository state, configuration, and
// flags. The tag index and bounds are built once here and are read-only for
// the rest of the run.
func newGenerator(repo *git.Repository, cfg *config.Configuration) (*changelog.Generator, error) {
	records, err := repo.TagRecords()
	if err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Runtime, "reading tag metadata")
	}

	label := cfg.Tag
	if tagFlag != "" {
		label = tagFlag
	}

	fetcher := git.NewFetcher(repo, git.LogOptions{
		Format:      cfg.Format,
		MergeFormat: cfg.MergeFormat,
		NoMerges:    noMergesFlag || cfg.NoMerges,
		MergesOnly:  mergesOnlyFlag,
	})

	selector := &changelog.Selector{
		Index:    changelog.BuildTagIndex(records),
		Resolver: repo,
		ListAll:  allFlag,
		Bounds: changelog.Bounds{
			StartTag:    startTagFlag,
			StartCommit: startCommitFlag,
			FinalTag:    finalTagFlag,
		},
		Label: label,
		Today: time.Now().Format("2006-01-02"),
	}

	return &changelog.Generator{Selector: selector, Fetcher: fetcher, Plain: listFlag}, nil
}

// writeStdout streams the changelog to standard output; the changelog file
// is left untouched.
func writeStdout(out io.Writer, gen *changelog.Generator, repo *git.Repository, cfg *config.Configuration) error {
	if err := gen.Run(out); err != nil {
		return runError(err)
	}
	if pruneOldFlag {
		return nil
	}

	root, err := repo.Root()
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "locating repository root")
	}
	old, err := changelog.ReadExisting(changelog.LocateFile(root, cfg.File))
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "reading existing changelog")
	}
	if old != "" {
		_, err = io.WriteString(out, "\n"+old)
	}
	return err
}

// writeFile generates the full document in memory, then atomically replaces
// the changelog file; a failed run never corrupts the existing changelog.
func writeFile(out io.Writer, gen *changelog.Generator, repo *git.Repository, cfg *config.Configuration) error {
	root, err := repo.Root()
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "locating repository root")
	}
	path := changelog.LocateFile(root, cfg.File)

	spin := newSpinner()
	if spin != nil {
		spin.Start()
	}
	var buf strings.Builder
	err = gen.Run(&buf)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return runError(err)
	}

	content := buf.String()
	if !pruneOldFlag {
		old, err := changelog.ReadExisting(path)
		if err != nil {
			return apperrors.WrapWithMessage(err, apperrors.Runtime, "reading existing changelog")
		}
		if old != "" {
			content += "\n" + old
		}
	}

	if err := changelog.WriteFile(path, content); err != nil {
		return apperrors.Wrap(err, apperrors.Runtime)
	}

	output.PrintWroteFile(out, path)
	return nil
}

// runError maps resolution failures from the walk onto structured CLI
// errors; anything else is a runtime failure.
func runError(err error) error {
	var unknownRef *changelog.UnknownRefError
	if errors.As(err, &unknownRef) {
		return apperrors.NewResolutionError(err.Error(),
			"check the tag or commit with 'git log --oneline --decorate'")
	}
	var noTag *changelog.NoContainingTagError
	if errors.As(err, &noTag) {
		return apperrors.NewResolutionError(err.Error(),
			"pick a commit that is reachable from at least one tag",
			"or use --start-tag with an existing tag")
	}
	return apperrors.Wrap(err, apperrors.Runtime)
}

// newSpinner returns a stderr spinner for interactive terminals, nil
// otherwise.
func newSpinner() *spinner.Spinner {
	if !output.IsInteractive(os.Stderr) {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " collecting commits..."
	return s
}
