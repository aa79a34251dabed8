package cmd

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/wad-tree/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	seedManifestName  = "manifest.json"
	seedHashtableName = "hashes.txt"
	seedArchiveName   = "archive.wad"
	seedArchiveMagic  = "RW"
)

var (
	seedRoots   = []string{"assets", "data", "levels", "sounds"}
	seedFolders = []string{"characters", "items", "maps", "particles", "shared", "skins", "spells", "textures", "ui", "vo"}
	seedExts    = []string{".anm", ".bin", ".dds", ".json", ".skl", ".skn", ".tex", ".wpk"}
)

// NewSeedCmd creates and returns the seed subcommand for the wadtree CLI.
// It generates a synthetic archive with a manifest and a partial hashtable.
func NewSeedCmd(opts *globalOptions) *cobra.Command {
	var (
		outputPath string
		config     seedConfig
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic manifest and hashtable",
		Long: `Generate test data for wadtree.

Writes archive.wad, manifest.json and hashes.txt to the output directory.
Paths are spread across a randomized folder hierarchy with most files at the
deeper levels. Each chunk stores a single UUID line. A share of the path
hashes is left out of hashes.txt so those chunks come out unresolved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := generateSeed(outputPath, config)
			if err != nil {
				return err
			}
			opts.logger.Info("seed generated",
				zap.String("output", outputPath),
				zap.Int("chunks", result.chunks),
				zap.Int("unresolved", result.unresolved),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d chunks (%d unresolved) to %s\n", result.chunks, result.unresolved, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&config.count, "count", "n", 1000, "Number of chunks to generate")
	cmd.Flags().IntVarP(&config.unresolvedPercent, "unresolved", "u", 10, "Percentage of hashes left out of the hashtable")

	cmd.MarkFlagRequired("output")

	return cmd
}

type seedConfig struct {
	count             int
	unresolvedPercent int
}

type seedResult struct {
	chunks     int
	unresolved int
}

func generateSeed(outputPath string, config seedConfig) (seedResult, error) {
	if config.count <= 0 {
		return seedResult{}, fmt.Errorf("count must be positive, got %d", config.count)
	}
	if config.unresolvedPercent < 0 || config.unresolvedPercent > 100 {
		return seedResult{}, fmt.Errorf("unresolved must be within 0-100, got %d", config.unresolvedPercent)
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return seedResult{}, fmt.Errorf("create output directory: %w", err)
	}

	archivePath := filepath.Join(outputPath, seedArchiveName)
	archive, err := os.Create(archivePath)
	if err != nil {
		return seedResult{}, err
	}
	defer archive.Close()
	w := bufio.NewWriter(archive)
	if _, err := w.WriteString(seedArchiveMagic); err != nil {
		return seedResult{}, err
	}
	offset := uint32(len(seedArchiveMagic))

	hashtable := util.NewHashtable()
	manifest := util.Manifest{
		WadPath: archivePath,
		Chunks:  make([]util.Chunk, 0, config.count),
	}
	seen := make(map[string]bool, config.count)
	var result seedResult

	for len(manifest.Chunks) < config.count {
		path := randomSeedPath()
		if seen[path] {
			continue
		}
		seen[path] = true

		payload := uuid.NewString() + "\n"
		if _, err := w.WriteString(payload); err != nil {
			return seedResult{}, err
		}

		hash := util.HashPath(path)
		manifest.Chunks = append(manifest.Chunks, util.Chunk{
			PathHash:         hash,
			DataOffset:       offset,
			CompressedSize:   uint32(len(payload)),
			UncompressedSize: uint32(len(payload)),
			Compression:      util.CompressionNone,
		})
		offset += uint32(len(payload))

		if randIntn(100) < config.unresolvedPercent {
			result.unresolved++
			continue
		}
		hashtable.Add(hash, path)
	}
	result.chunks = len(manifest.Chunks)

	if err := w.Flush(); err != nil {
		return seedResult{}, err
	}
	if err := manifest.Save(filepath.Join(outputPath, seedManifestName)); err != nil {
		return seedResult{}, err
	}

	f, err := os.Create(filepath.Join(outputPath, seedHashtableName))
	if err != nil {
		return seedResult{}, err
	}
	defer f.Close()
	if err := hashtable.Save(f); err != nil {
		return seedResult{}, err
	}
	return result, nil
}

// randomSeedPath returns a path one to five folders deep, weighted towards
// the deeper levels. Folder names carry no extension and file names always
// do, so a generated file never shadows a generated folder.
func randomSeedPath() string {
	var depth int
	switch r := randIntn(100); {
	case r < 5:
		depth = 1
	case r < 15:
		depth = 2
	case r < 35:
		depth = 3
	case r < 65:
		depth = 4
	default:
		depth = 5
	}

	parts := make([]string, 0, depth+1)
	parts = append(parts, seedRoots[randIntn(len(seedRoots))])
	for range depth - 1 {
		parts = append(parts, seedFolders[randIntn(len(seedFolders))])
	}
	name := fmt.Sprintf("%08x%s", randIntn(0xFFFFFFFF), seedExts[randIntn(len(seedExts))])
	parts = append(parts, name)
	return strings.Join(parts, "/")
}

func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}
