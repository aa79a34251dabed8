package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/dendrascience/wad-tree/tree"
	"github.com/dendrascience/wad-tree/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errValidationFailed = errors.New("validation failed")

// NewValidateCmd creates and returns the validate subcommand for the wadtree CLI.
// It checks manifests for problems that would stop a tree from being built.
func NewValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate MANIFEST...",
		Short: "Check manifests for duplicate hashes and path conflicts",
		Long: `Validate chunk manifests against the configured hashtables.

This command reports chunks that share a path hash, resolved paths that
cannot be placed in a tree (a file where a folder is needed, or the
reverse), and names that are not valid path components. It exits with a
non-zero status if any manifest has problems.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashtable, err := opts.loadHashtable()
			if err != nil {
				return err
			}

			var failed int
			for _, path := range args {
				manifest, err := util.LoadManifest(path)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", path, err)
					failed++
					continue
				}
				report := validateManifest(manifest, hashtable, opts.logger)
				report.print(cmd.OutOrStdout())
				if !report.ok() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d manifests", errValidationFailed, failed, len(args))
			}
			return nil
		},
	}
}

type validationReport struct {
	wadPath    string
	chunks     int
	duplicates []uint64
	warnings   []error
	buildErr   error
	stats      tree.Stats
}

func (r validationReport) ok() bool {
	return len(r.duplicates) == 0 && r.buildErr == nil
}

// validateManifest checks for duplicate hashes first, since a duplicate is
// reported by Build as an existing file and the raw hash is more useful.
func validateManifest(m util.Manifest, resolver tree.Resolver, logger *zap.Logger) validationReport {
	report := validationReport{
		wadPath:    m.WadPath,
		chunks:     len(m.Chunks),
		duplicates: util.DuplicateHashes(m.Chunks),
	}
	if len(m.Chunks) == 0 {
		report.warnings = append(report.warnings, util.ErrEmptyManifest)
	}
	if len(report.duplicates) > 0 {
		return report
	}

	t, err := tree.Build(m.Chunks, resolver, tree.WithSourcePath(m.WadPath), tree.WithLogger(logger))
	if err != nil {
		report.buildErr = err
		return report
	}
	report.stats = t.Stats()
	return report
}

func (r validationReport) print(w io.Writer) {
	if r.ok() {
		fmt.Fprintf(w, "✓ %s: %d chunks, %d folders, %d files (%d unresolved)\n",
			r.wadPath, r.chunks, r.stats.Folders, r.stats.Files, r.stats.Unresolved)
		r.printWarnings(w)
		return
	}

	fmt.Fprintf(w, "✗ %s\n", r.wadPath)
	for _, hash := range r.duplicates {
		fmt.Fprintf(w, "  duplicate path hash %s\n", util.FormatHash(hash))
	}
	if r.buildErr != nil {
		fmt.Fprintf(w, "  %s\n", describeBuildError(r.buildErr))
	}
	r.printWarnings(w)
}

func (r validationReport) printWarnings(w io.Writer) {
	for _, warning := range r.warnings {
		fmt.Fprintf(w, "  warning: %v\n", warning)
	}
}

func describeBuildError(err error) string {
	var (
		existing *tree.ExistingFileError
		creation *tree.ItemCreationError
		invalid  *tree.InvalidItemNameError
	)
	switch {
	case errors.As(err, &existing):
		return fmt.Sprintf("file %s is used as a folder or listed twice", existing.FilePath)
	case errors.As(err, &invalid):
		return fmt.Sprintf("chunk %s resolves to an invalid path", util.FormatHash(invalid.ChunkPath))
	case errors.As(err, &creation):
		if creation.Err != nil {
			return fmt.Sprintf("cannot create %s: %v", creation.ItemPath, creation.Err)
		}
		return fmt.Sprintf("file %s collides with a folder of the same name", creation.ItemPath)
	}
	return err.Error()
}
