package util

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Hashtable is a reverse index from path hash to the original path string.
// It is incomplete by design: hashes of paths nobody has discovered yet are
// simply absent.
type Hashtable struct {
	items map[uint64]string
}

// NewHashtable returns an empty hashtable.
func NewHashtable() *Hashtable {
	return &Hashtable{items: make(map[uint64]string)}
}

func (h *Hashtable) UnmarshalJSON(data []byte) error {
	var aux struct {
		Items map[string]string `json:"items"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	h.items = make(map[uint64]string, len(aux.Items))
	for k, v := range aux.Items {
		hash, err := ParseHash(k)
		if err != nil {
			return err
		}
		h.items[hash] = v
	}
	return nil
}

func (h Hashtable) MarshalJSON() ([]byte, error) {
	items := make(map[string]string, len(h.items))
	for k, v := range h.items {
		items[FormatHash(k)] = v
	}
	return json.Marshal(struct {
		Items map[string]string `json:"items"`
	}{
		Items: items,
	})
}

// Get returns the path recorded for hash.
func (h *Hashtable) Get(hash uint64) (string, bool) {
	if h == nil {
		return "", false
	}
	path, ok := h.items[hash]
	return path, ok
}

// Resolve is Get under the name the tree builder asks for.
func (h *Hashtable) Resolve(hash uint64) (string, bool) {
	return h.Get(hash)
}

// Add records path under hash, replacing any previous entry.
func (h *Hashtable) Add(hash uint64, path string) {
	if h.items == nil {
		h.items = make(map[uint64]string)
	}
	h.items[hash] = path
}

// AddPath records path under its own computed hash.
func (h *Hashtable) AddPath(path string) uint64 {
	hash := HashPath(path)
	h.Add(hash, path)
	return hash
}

func (h *Hashtable) Len() int {
	if h == nil {
		return 0
	}
	return len(h.items)
}

func (h *Hashtable) Iterate(yield func(uint64, string) bool) {
	if h == nil {
		return
	}
	for k, v := range h.items {
		if !yield(k, v) {
			return
		}
	}
}

// Load reads entries in the community text format, one "<hex hash> <path>"
// per line. Blank lines and lines starting with '#' are skipped. Paths may
// contain spaces; only the first space separates hash from path.
func (h *Hashtable) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hashPart, path, found := strings.Cut(line, " ")
		if !found || path == "" {
			return fmt.Errorf("%w: line %d", ErrMalformedHashLine, lineNo)
		}
		hash, err := ParseHash(hashPart)
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrMalformedHashLine, lineNo, err)
		}
		h.Add(hash, path)
	}
	return scanner.Err()
}

// LoadHashtables merges the given files into one table. Later files win on
// conflicting hashes.
func LoadHashtables(paths ...string) (*Hashtable, error) {
	h := NewHashtable()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		err = h.Load(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("load hashtable %s: %w", path, err)
		}
	}
	return h, nil
}

// Save writes the table in the text format Load reads, sorted by path so
// the output diffs cleanly.
func (h *Hashtable) Save(w io.Writer) error {
	type entry struct {
		hash uint64
		path string
	}
	entries := make([]entry, 0, h.Len())
	for k, v := range h.Iterate {
		entries = append(entries, entry{k, v})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.path, b.path) })

	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%016x %s\n", e.hash, e.path); err != nil {
			return err
		}
	}
	return bw.Flush()
}
