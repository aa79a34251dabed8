package cmd

import (
	"bytes"
	"testing"

	"github.com/dendrascience/wad-tree/tree"
	"github.com/dendrascience/wad-tree/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func manifestFor(hashtable *util.Hashtable, paths ...string) util.Manifest {
	m := util.Manifest{WadPath: "test.wad"}
	for _, p := range paths {
		m.Chunks = append(m.Chunks, util.Chunk{PathHash: hashtable.AddPath(p)})
	}
	return m
}

func TestValidateManifest(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantOK  bool
		wantDup int
		wantErr error
		wantMsg string
	}{
		{
			name:    "clean",
			paths:   []string{"a/b.bin", "a/c.bin", "d.bin"},
			wantOK:  true,
			wantMsg: "✓ test.wad: 3 chunks, 1 folders, 3 files (0 unresolved)",
		},
		{
			name:    "empty",
			wantOK:  true,
			wantMsg: "warning: manifest contains no chunks",
		},
		{
			name:    "duplicate hash",
			paths:   []string{"a/b.bin", "a/b.bin"},
			wantDup: 1,
			wantMsg: "duplicate path hash " + util.FormatHash(util.HashPath("a/b.bin")),
		},
		{
			name:    "file used as folder",
			paths:   []string{"a/b", "a/b/c"},
			wantErr: tree.ErrExistingFile,
			wantMsg: "file a/b is used as a folder or listed twice",
		},
		{
			name:    "file over folder",
			paths:   []string{"a/b/c", "a/b"},
			wantErr: tree.ErrItemCreation,
			wantMsg: "file a/b collides with a folder of the same name",
		},
		{
			name:    "invalid name",
			paths:   []string{"a//b"},
			wantErr: tree.ErrInvalidItemName,
			wantMsg: "chunk " + util.FormatHash(util.HashPath("a//b")) + " resolves to an invalid path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashtable := util.NewHashtable()
			m := manifestFor(hashtable, tt.paths...)

			report := validateManifest(m, hashtable, zap.NewNop())
			assert.Equal(t, tt.wantOK, report.ok())
			assert.Len(t, report.duplicates, tt.wantDup)
			if tt.wantErr != nil {
				assert.ErrorIs(t, report.buildErr, tt.wantErr)
			} else {
				assert.NoError(t, report.buildErr)
			}

			var buf bytes.Buffer
			report.print(&buf)
			assert.Contains(t, buf.String(), tt.wantMsg)
		})
	}
}
