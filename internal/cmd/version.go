package cmd

import (
	"encoding/json"

	"github.com/dendrascience/wad-tree/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates and returns the version subcommand for the wadtree CLI.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(version.GetInfo())
			}
			version.Fprint(cmd.OutOrStdout(), "wadtree")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")

	return cmd
}
