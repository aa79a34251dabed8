package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Compression is the storage kind a WAD chunk header declares.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionSatellite
	CompressionZstd
	CompressionZstdMulti
)

var compressionNames = [...]string{"none", "gzip", "satellite", "zstd", "zstd-multi"}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("compression(%d)", c)
}

func (c Compression) MarshalText() ([]byte, error) {
	if int(c) >= len(compressionNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
	return []byte(compressionNames[c]), nil
}

func (c *Compression) UnmarshalText(text []byte) error {
	for i, name := range compressionNames {
		if strings.EqualFold(name, string(text)) {
			*c = Compression(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCompression, text)
}

// Chunk is one decoded archive entry. The tree only needs PathHash; the rest
// travels along so consumers of a File can reach the payload.
type Chunk struct {
	PathHash         uint64
	DataOffset       uint32
	CompressedSize   uint32
	UncompressedSize uint32
	Compression      Compression
	Checksum         uint64
}

type (
	// manifestChunk is the wire form of a Chunk, hashes as hex literals.
	manifestChunk struct {
		PathHash         string      `json:"path_hash"`
		DataOffset       uint32      `json:"data_offset"`
		CompressedSize   uint32      `json:"compressed_size"`
		UncompressedSize uint32      `json:"uncompressed_size"`
		Compression      Compression `json:"compression"`
		Checksum         string      `json:"checksum,omitempty"`
	}
	// Manifest is a chunk list as handed over by the archive reader.
	Manifest struct {
		WadPath string
		Chunks  []Chunk
	}
)

func (m *Manifest) UnmarshalJSON(data []byte) error {
	var aux struct {
		WadPath string          `json:"wad_path"`
		Chunks  []manifestChunk `json:"chunks"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.WadPath = aux.WadPath
	m.Chunks = make([]Chunk, 0, len(aux.Chunks))
	for i, mc := range aux.Chunks {
		hash, err := ParseHash(mc.PathHash)
		if err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		var checksum uint64
		if mc.Checksum != "" {
			if checksum, err = ParseHash(mc.Checksum); err != nil {
				return fmt.Errorf("chunk %d checksum: %w", i, err)
			}
		}
		m.Chunks = append(m.Chunks, Chunk{
			PathHash:         hash,
			DataOffset:       mc.DataOffset,
			CompressedSize:   mc.CompressedSize,
			UncompressedSize: mc.UncompressedSize,
			Compression:      mc.Compression,
			Checksum:         checksum,
		})
	}
	return nil
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	chunks := make([]manifestChunk, 0, len(m.Chunks))
	for _, c := range m.Chunks {
		mc := manifestChunk{
			PathHash:         FormatHash(c.PathHash),
			DataOffset:       c.DataOffset,
			CompressedSize:   c.CompressedSize,
			UncompressedSize: c.UncompressedSize,
			Compression:      c.Compression,
		}
		if c.Checksum != 0 {
			mc.Checksum = FormatHash(c.Checksum)
		}
		chunks = append(chunks, mc)
	}
	return json.Marshal(struct {
		WadPath string          `json:"wad_path,omitempty"`
		Chunks  []manifestChunk `json:"chunks"`
	}{
		WadPath: m.WadPath,
		Chunks:  chunks,
	})
}

// ReadManifest decodes a manifest. A manifest without chunks is valid and
// describes an empty archive.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// LoadManifest reads the manifest at path. When the manifest does not name
// its archive, the manifest path itself is used as the source path.
func LoadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()
	m, err := ReadManifest(f)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if m.WadPath == "" {
		m.WadPath = path
	}
	return m, nil
}

// Save writes the manifest as JSON. A path without a .json suffix is taken
// as a directory and manifest.json is written inside it.
func (m Manifest) Save(path string) error {
	if !strings.HasSuffix(path, ".json") {
		path = filepath.Join(path, "manifest.json")
	}
	return WriteJSONFile(path, m)
}

// WriteJSONFile writes any value as JSON to the specified file path.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(v)
}
