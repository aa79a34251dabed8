package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/wad-tree/internal/cmd"
	"github.com/dendrascience/wad-tree/version"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version.GetVersion()), fang.WithCommit(version.GetInfo().Commit)); err != nil {
		os.Exit(1)
	}
}
