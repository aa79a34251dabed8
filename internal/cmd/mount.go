package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/wad-tree/version"
	"github.com/dendrascience/wad-tree/wadfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMountCmd creates and returns the mount subcommand for the wadtree CLI.
// It mounts the reconstructed tree of a manifest read-only.
func NewMountCmd(opts *globalOptions) *cobra.Command {
	var wadPath string

	cmd := &cobra.Command{
		Use:   "mount MANIFEST MOUNTPOINT",
		Short: "Mount the reconstructed tree read-only",
		Long: `Mount the directory tree rebuilt from MANIFEST at MOUNTPOINT.

Listing and stat work from the manifest alone. Pass --wad to serve file
contents from the archive itself; stored, gzip, zstd and zstd-multi
chunks can be read.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(opts, args[0], args[1], wadPath)
		},
	}

	cmd.Flags().StringVarP(&wadPath, "wad", "w", "", "WAD file to read chunk contents from")

	return cmd
}

func runMount(opts *globalOptions, manifestPath, mountpoint, wadPath string) error {
	logger := opts.logger
	logger.Info("wadtree starting", zap.String("version", version.GetFullVersion()))

	t, _, err := opts.loadTree(manifestPath)
	if err != nil {
		return err
	}

	var fsOpts []wadfs.Option
	if wadPath != "" {
		reader, err := wadfs.OpenFileReader(wadPath)
		if err != nil {
			return fmt.Errorf("open wad: %w", err)
		}
		defer reader.Close()
		fsOpts = append(fsOpts, wadfs.WithChunkReader(reader))
	}
	filesystem := wadfs.NewFS(t, fsOpts...)

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("wadtree"),
		fuse.Subtype("wadfs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("mount %s: %w", mountpoint, err)
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, shutting down")
		if err := fuse.Unmount(mountpoint); err != nil {
			logger.Warn("unmount failed", zap.String("mountpoint", mountpoint), zap.Error(err))
		}
	}()

	stats := t.Stats()
	logger.Info("mounted",
		zap.String("mountpoint", mountpoint),
		zap.String("wad", t.SourcePath()),
		zap.Int("files", stats.Files),
		zap.Int("unresolved", stats.Unresolved),
	)
	if err := fs.Serve(c, filesystem); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
