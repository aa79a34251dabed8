package wadfs

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/wad-tree/util"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrUnsupportedCompression is returned for chunk kinds the file reader
	// cannot decode.
	ErrUnsupportedCompression = errors.New("unsupported chunk compression")
	// ErrChunkOutOfRange is returned when a chunk's extent does not fit in
	// the archive file.
	ErrChunkOutOfRange = errors.New("chunk out of range")
	// ErrChunkTooLarge is returned when a chunk inflates past its declared
	// uncompressed size.
	ErrChunkTooLarge = errors.New("chunk exceeds declared size")
)

// zstdMagic starts every zstd frame. zstd-multi chunks carry stored bytes
// ahead of the first frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// FileReader reads chunk payloads straight out of a WAD file. Stored, gzip,
// zstd and zstd-multi chunks are supported.
type FileReader struct {
	f    *os.File
	size int64
	zstd *zstd.Decoder
}

// OpenFileReader opens the archive at path.
func OpenFileReader(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecodeAllCapLimit(true))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileReader{f: f, size: info.Size(), zstd: dec}, nil
}

// Close releases the archive file and the zstd decoder.
func (r *FileReader) Close() error {
	r.zstd.Close()
	return r.f.Close()
}

// ReadChunk implements ChunkReader.
func (r *FileReader) ReadChunk(ctx context.Context, chunk util.Chunk) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := util.FormatHash(chunk.PathHash)

	if int64(chunk.DataOffset)+int64(chunk.CompressedSize) > r.size {
		return nil, fmt.Errorf("%w: %s at %d+%d, archive is %d bytes",
			ErrChunkOutOfRange, name, chunk.DataOffset, chunk.CompressedSize, r.size)
	}
	raw := make([]byte, chunk.CompressedSize)
	if _, err := r.f.ReadAt(raw, int64(chunk.DataOffset)); err != nil {
		return nil, fmt.Errorf("read chunk %s: %w", name, err)
	}

	var (
		data []byte
		err  error
	)
	switch chunk.Compression {
	case util.CompressionNone:
		return raw, nil
	case util.CompressionGzip:
		data, err = r.gunzip(raw, chunk.UncompressedSize)
	case util.CompressionZstd:
		data, err = r.zstd.DecodeAll(raw, make([]byte, 0, chunk.UncompressedSize))
	case util.CompressionZstdMulti:
		data, err = r.unzstdMulti(raw, chunk.UncompressedSize)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, chunk.Compression)
	}
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", name, err)
	}
	return data, nil
}

func (r *FileReader) gunzip(raw []byte, size uint32) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	buf := bytes.NewBuffer(make([]byte, 0, size))
	n, err := io.Copy(buf, io.LimitReader(zr, int64(size)+1))
	if err != nil {
		return nil, err
	}
	if n > int64(size) {
		return nil, ErrChunkTooLarge
	}
	return buf.Bytes(), nil
}

func (r *FileReader) unzstdMulti(raw []byte, size uint32) ([]byte, error) {
	i := bytes.Index(raw, zstdMagic)
	if i < 0 {
		if len(raw) > int(size) {
			return nil, ErrChunkTooLarge
		}
		return raw, nil
	}
	if i > int(size) {
		return nil, ErrChunkTooLarge
	}
	dst := make([]byte, i, size)
	copy(dst, raw[:i])
	return r.zstd.DecodeAll(raw[i:], dst)
}

var _ ChunkReader = (*FileReader)(nil)
