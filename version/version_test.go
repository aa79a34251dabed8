package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = origVersion, origCommit, origDate })

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"version only", "v1.2.3", "abc", "unknown", "v1.2.3"},
		{"commit and date", "v1.2.3", "0123456789abcdef", "2026-01-02", "v1.2.3 (0123456, built 2026-01-02)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.version, tt.commit, tt.date
			assert.Equal(t, tt.want, GetFullVersion())
		})
	}
}

func TestFprint(t *testing.T) {
	origVersion := Version
	t.Cleanup(func() { Version = origVersion })
	Version = "v9.9.9"

	var buf bytes.Buffer
	Fprint(&buf, "wadtree")
	assert.Contains(t, buf.String(), "wadtree version v9.9.9")
	assert.Contains(t, buf.String(), "Package: wad-tree")
}
