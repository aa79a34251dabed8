package cmd

import (
	"fmt"
	"os"

	"github.com/dendrascience/wad-tree/tree"
	"github.com/dendrascience/wad-tree/util"
	"github.com/dendrascience/wad-tree/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions carries the persistent flags and what they resolve to.
type globalOptions struct {
	configPath string
	hashtables []string
	verbose    bool
	noColor    bool

	config Configuration
	logger *zap.Logger
}

// NewRootCmd creates and returns the root cobra command for the wadtree CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "wadtree",
		Short: "wadtree - Rebuild the directory tree of a hash-addressed WAD archive",
		Long: `wadtree rebuilds the directory tree of a WAD archive from its chunk
manifest and one or more hash-to-path lookup tables.

Chunks whose path hash is not in any table appear at the top level under
their hex-encoded hash.

Use subcommands to perform different operations:
  - tree: Print the reconstructed tree
  - stats: Summarize folders, files and unresolved chunks
  - validate: Check a manifest for duplicate hashes and path conflicts
  - mount: Mount the reconstructed tree read-only
  - seed: Generate a synthetic manifest and hashtable
  - version: Show version information`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a config file (default ./"+configFileName+")")
	flags.StringSliceVarP(&opts.hashtables, "hashtable", "t", nil, "Hashtable file mapping path hashes to paths (repeatable)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	groupArchive := "archive"
	groupFilesystem := "filesystem"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupArchive,
		Title: "Archive Inspection",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFilesystem,
		Title: "Filesystem Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	treeCmd := NewTreeCmd(opts)
	statsCmd := NewStatsCmd(opts)
	validateCmd := NewValidateCmd(opts)
	mountCmd := NewMountCmd(opts)
	seedCmd := NewSeedCmd(opts)
	versionCmd := NewVersionCmd()

	treeCmd.GroupID = groupArchive
	statsCmd.GroupID = groupArchive
	validateCmd.GroupID = groupArchive
	mountCmd.GroupID = groupFilesystem
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func (o *globalOptions) init() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	home, _ := os.UserHomeDir()

	o.config, err = LoadConfiguration(LoadOptions{
		WorkingDirectory: wd,
		HomeDirectory:    home,
		ExplicitFilePath: o.configPath,
	})
	if err != nil {
		return err
	}

	o.logger, err = newLogger(o.config.LogLevel, o.verbose)
	if err != nil {
		return err
	}
	o.logger.Debug("configuration loaded",
		zap.Strings("hashtables", o.hashtablePaths()),
		zap.Bool("color", o.color()),
	)
	return nil
}

// hashtablePaths lists config tables before flag tables so that flags win.
func (o *globalOptions) hashtablePaths() []string {
	paths := append([]string(nil), o.config.Hashtables...)
	return append(paths, o.hashtables...)
}

func (o *globalOptions) color() bool {
	if o.noColor {
		return false
	}
	if o.config.Color != nil {
		return *o.config.Color
	}
	return true
}

// loadTree reads the manifest at path, loads every configured hashtable and
// builds the tree.
func (o *globalOptions) loadTree(path string) (*tree.Tree, util.Manifest, error) {
	manifest, err := util.LoadManifest(path)
	if err != nil {
		return nil, util.Manifest{}, err
	}
	hashtable, err := o.loadHashtable()
	if err != nil {
		return nil, manifest, err
	}
	t, err := tree.Build(manifest.Chunks, hashtable,
		tree.WithSourcePath(manifest.WadPath),
		tree.WithLogger(o.logger),
	)
	if err != nil {
		return nil, manifest, fmt.Errorf("build tree for %s: %w", manifest.WadPath, err)
	}
	return t, manifest, nil
}

func (o *globalOptions) loadHashtable() (*util.Hashtable, error) {
	paths := o.hashtablePaths()
	hashtable, err := util.LoadHashtables(paths...)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("hashtables loaded", zap.Int("tables", len(paths)), zap.Int("entries", hashtable.Len()))
	return hashtable, nil
}
