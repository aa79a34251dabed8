// Package version reports the build version of the wadtree binaries.
//
// Version, Commit and Date are injected at link time:
//
//	-ldflags "-X github.com/dendrascience/wad-tree/version.Version=v1.0.0 -X github.com/dendrascience/wad-tree/version.Commit=abc123"
//
// When they are left at their defaults the values recorded by the Go
// toolchain in the binary's build info are used instead.
package version
