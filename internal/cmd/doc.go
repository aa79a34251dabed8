// Package cmd provides the command-line interface implementation for wadtree.
//
// This package contains all the subcommand implementations for the wadtree CLI
// tool. It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, configuration and logging setup
//   - tree: Print the reconstructed directory tree of a chunk manifest
//   - stats: Summarize folder, file and unresolved counts
//   - validate: Check a manifest for duplicate hashes and path conflicts
//   - mount: Mount the reconstructed tree read-only through FUSE
//   - seed: Generate a synthetic manifest and hashtable for testing
//   - version: Print build information
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Configuration is read with Viper
// from ~/.config/wadtree/config.yaml and a local .wadtree.yaml; flags win
// over both.
package cmd
