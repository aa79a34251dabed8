package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dendrascience/wad-tree/tree"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates and returns the stats subcommand for the wadtree CLI.
// It summarizes the tree built from one or more manifests.
func NewStatsCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats MANIFEST...",
		Short: "Summarize folders, files and unresolved chunks",
		Long: `Build the tree for each manifest and report how many folders and files
it holds, how many chunks fell back to their hex hash, and how deep it goes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]statsReport, 0, len(args))
			for _, path := range args {
				t, manifest, err := opts.loadTree(path)
				if err != nil {
					return err
				}
				reports = append(reports, statsReport{
					Manifest: path,
					WadPath:  manifest.WadPath,
					Chunks:   len(manifest.Chunks),
					Stats:    t.Stats(),
				})
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			return printStats(cmd.OutOrStdout(), reports)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

type statsReport struct {
	Manifest string `json:"manifest"`
	WadPath  string `json:"wad_path"`
	Chunks   int    `json:"chunks"`
	tree.Stats
}

func printStats(w io.Writer, reports []statsReport) error {
	var total tree.Stats
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "%s\n  chunks:     %d\n  folders:    %d\n  files:      %d\n  unresolved: %d (%.1f%%)\n  max depth:  %d\n",
			r.WadPath, r.Chunks, r.Folders, r.Files, r.Unresolved, percent(r.Unresolved, r.Files), r.MaxDepth); err != nil {
			return err
		}
		total.Folders += r.Folders
		total.Files += r.Files
		total.Unresolved += r.Unresolved
		total.MaxDepth = max(total.MaxDepth, r.MaxDepth)
	}
	if len(reports) > 1 {
		_, err := fmt.Fprintf(w, "total: %d folders, %d files, %d unresolved\n", total.Folders, total.Files, total.Unresolved)
		return err
	}
	return nil
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) * 100 / float64(of)
}
