package cmd

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	lgtree "charm.land/lipgloss/v2/tree"
	"github.com/charmbracelet/colorprofile"
	"github.com/dendrascience/wad-tree/tree"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewTreeCmd creates and returns the tree subcommand for the wadtree CLI.
// It prints the reconstructed directory tree of a chunk manifest.
func NewTreeCmd(opts *globalOptions) *cobra.Command {
	var (
		depth    int
		selected []string
	)

	cmd := &cobra.Command{
		Use:   "tree MANIFEST",
		Short: "Print the reconstructed directory tree",
		Long: `Print the directory tree rebuilt from a chunk manifest.

Folders are listed before files, each level sorted case-insensitively.
File names are colored by extension; unresolved chunks are dimmed.
Top-level entries named with --selected are marked with an asterisk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := opts.loadTree(args[0])
			if err != nil {
				return err
			}
			if err := selectTopLevel(t, selected); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return printTree(out, t, printOptions{
				maxDepth: depth,
				profile:  outputProfile(out, opts.color()),
			})
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Maximum depth to print (0 prints everything)")
	cmd.Flags().StringSliceVarP(&selected, "selected", "s", nil, "Top-level entry to mark as selected (repeatable)")

	return cmd
}

func selectTopLevel(t *tree.Tree, names []string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]tree.Key, 0, len(names))
	for _, name := range names {
		item, ok := t.Children().Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %s", tree.ErrNotFound, name)
		}
		keys = append(keys, item.Key())
	}
	t.SetSelectedItems(keys...)
	return nil
}

type printOptions struct {
	maxDepth int
	profile  colorprofile.Profile
}

var (
	rootStyle       = lipgloss.NewStyle().Bold(true)
	folderStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4))
	unresolvedStyle = lipgloss.NewStyle().Faint(true)
	fileStyle       = lipgloss.NewStyle()
)

// printTree writes t in the layout of the tree(1) utility. Styles are
// downsampled to opts.profile; NoTTY strips them entirely.
func printTree(w io.Writer, t *tree.Tree, opts printOptions) error {
	selected := make(map[tree.Key]bool)
	for _, k := range t.SelectedItems() {
		selected[k] = true
	}

	view := lgtree.Root(filepath.Base(t.SourcePath())).RootStyle(rootStyle)
	addLevel(view, t, 1, opts, selected)

	stats := t.Stats()
	out := &colorprofile.Writer{Forward: w, Profile: opts.profile}
	_, err := fmt.Fprintf(out, "%s\n\n%d directories, %d files (%d unresolved)\n",
		view.String(), stats.Folders, stats.Files, stats.Unresolved)
	return err
}

func addLevel(view *lgtree.Tree, parent tree.Parent, depth int, opts printOptions, selected map[tree.Key]bool) {
	for _, item := range parent.Children().All() {
		label := itemLabel(item)
		if parent.IsRoot() && selected[item.Key()] {
			label += " *"
		}

		folder, ok := item.(*tree.Folder)
		if !ok || (opts.maxDepth > 0 && depth >= opts.maxDepth) {
			view.Child(label)
			continue
		}
		sub := lgtree.Root(label)
		addLevel(sub, folder, depth+1, opts, selected)
		view.Child(sub)
	}
}

func itemLabel(item tree.Item) string {
	switch it := item.(type) {
	case *tree.Folder:
		return folderStyle.Render(it.Name() + "/")
	case *tree.File:
		if it.Unresolved() {
			return unresolvedStyle.Render(it.Name())
		}
		style := fileStyle
		if c := extensionColor(it.Name()); c != nil {
			style = style.Foreground(c)
		}
		return style.Render(it.Name())
	}
	return item.Name()
}

// extensionColor picks one of the six basic ANSI colors from the file's
// extension so that files of one type share a color. Files without an
// extension get nil.
func extensionColor(name string) color.Color {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return nil
	}
	h := colorhash.HashString(ext)
	if h < 0 {
		h = -h
	}
	return lipgloss.ANSIColor(1 + h%6)
}

// outputProfile is the color profile detected for w, or NoTTY when color
// is disabled.
func outputProfile(w io.Writer, enabled bool) colorprofile.Profile {
	if !enabled {
		return colorprofile.NoTTY
	}
	return colorprofile.Detect(w, os.Environ())
}
