package wadfs

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/wad-tree/util"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// archiveBuilder lays chunks out back to back behind a small header.
type archiveBuilder struct {
	buf    bytes.Buffer
	chunks []util.Chunk
}

func newArchiveBuilder() *archiveBuilder {
	b := &archiveBuilder{}
	b.buf.WriteString("RW")
	return b
}

func (b *archiveBuilder) add(payload []byte, uncompressed int, c util.Compression) util.Chunk {
	chunk := util.Chunk{
		PathHash:         uint64(len(b.chunks) + 1),
		DataOffset:       uint32(b.buf.Len()),
		CompressedSize:   uint32(len(payload)),
		UncompressedSize: uint32(uncompressed),
		Compression:      c,
	}
	b.buf.Write(payload)
	b.chunks = append(b.chunks, chunk)
	return chunk
}

func (b *archiveBuilder) open(t *testing.T) *FileReader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wad")
	require.NoError(t, os.WriteFile(path, b.buf.Bytes(), 0o644))
	r, err := OpenFileReader(path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zstdEncoded(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll([]byte(s), nil)
}

func TestFileReader_ReadChunk(t *testing.T) {
	b := newArchiveBuilder()
	stored := b.add([]byte("stored payload"), 14, util.CompressionNone)
	gz := b.add(gzipped(t, "gzip payload"), 12, util.CompressionGzip)
	zs := b.add(zstdEncoded(t, "zstd payload"), 12, util.CompressionZstd)
	multi := b.add(append([]byte("head:"), zstdEncoded(t, "tail")...), 9, util.CompressionZstdMulti)
	r := b.open(t)

	tests := []struct {
		name  string
		chunk util.Chunk
		want  string
	}{
		{"stored", stored, "stored payload"},
		{"gzip", gz, "gzip payload"},
		{"zstd", zs, "zstd payload"},
		{"zstd multi", multi, "head:tail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := r.ReadChunk(context.Background(), tt.chunk)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestFileReader_ReadChunkErrors(t *testing.T) {
	b := newArchiveBuilder()
	gz := b.add(gzipped(t, "longer than declared"), 4, util.CompressionGzip)
	zs := b.add(zstdEncoded(t, "longer than declared"), 4, util.CompressionZstd)
	r := b.open(t)
	ctx := context.Background()

	_, err := r.ReadChunk(ctx, gz)
	assert.ErrorIs(t, err, ErrChunkTooLarge)

	_, err = r.ReadChunk(ctx, zs)
	assert.Error(t, err)

	_, err = r.ReadChunk(ctx, util.Chunk{PathHash: 7, DataOffset: 2, CompressedSize: 1, Compression: util.Compression(9)})
	assert.ErrorIs(t, err, ErrUnsupportedCompression)

	size := uint32(b.buf.Len())
	_, err = r.ReadChunk(ctx, util.Chunk{PathHash: 8, DataOffset: size - 1, CompressedSize: 2})
	assert.ErrorIs(t, err, ErrChunkOutOfRange)

	_, err = r.ReadChunk(ctx, util.Chunk{PathHash: 9, DataOffset: 0, CompressedSize: 0xFFFFFFFF})
	assert.ErrorIs(t, err, ErrChunkOutOfRange)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = r.ReadChunk(cancelled, util.Chunk{PathHash: 1, DataOffset: 2, CompressedSize: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
