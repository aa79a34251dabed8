package tree

import (
	"github.com/dendrascience/wad-tree/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolver maps a path hash back to its path. *util.Hashtable implements it.
type Resolver interface {
	Resolve(hash uint64) (string, bool)
}

// Tree is the root of a reconstructed archive namespace.
type Tree struct {
	wadID    uuid.UUID
	wadPath  string
	children *Children
	selected []Key
	logger   *zap.Logger
}

// Option configures a Tree during Build.
type Option func(*Tree)

// WithID sets the archive identifier. Build mints a random one otherwise.
func WithID(id uuid.UUID) Option {
	return func(t *Tree) { t.wadID = id }
}

// WithSourcePath records the path of the archive the chunks came from.
func WithSourcePath(path string) Option {
	return func(t *Tree) { t.wadPath = path }
}

// WithLogger sets the logger Build reports to. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Build creates the tree for chunks, taken in archive order. The first
// chunk that cannot be placed aborts the build and its error is returned;
// no partial tree is handed out.
func Build(chunks []util.Chunk, resolver Resolver, opts ...Option) (*Tree, error) {
	t := &Tree{
		children: newChildren(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.wadID == uuid.Nil {
		t.wadID = uuid.New()
	}

	t.logger.Info("creating wad tree",
		zap.Stringer("wad_id", t.wadID),
		zap.String("wad_path", t.wadPath),
		zap.Int("chunks", len(chunks)),
	)

	for _, chunk := range chunks {
		if err := t.insert(chunk, resolver); err != nil {
			t.logger.Warn("wad tree creation failed",
				zap.Stringer("wad_id", t.wadID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	sortChildren(t)

	if ce := t.logger.Check(zap.InfoLevel, "wad tree created"); ce != nil {
		stats := t.Stats()
		ce.Write(
			zap.Stringer("wad_id", t.wadID),
			zap.Int("folders", stats.Folders),
			zap.Int("files", stats.Files),
			zap.Int("unresolved", stats.Unresolved),
		)
	}
	return t, nil
}

func (t *Tree) insert(chunk util.Chunk, resolver Resolver) error {
	path, ok := resolveChunkPath(chunk.PathHash, resolver)
	if !ok {
		t.logger.Debug("unresolved chunk", zap.String("path_hash", path))
	}
	return addItem(t, path, chunk, !ok)
}

// resolveChunkPath looks hash up and falls back to its hex literal. The
// boolean reports whether the lookup succeeded.
func resolveChunkPath(hash uint64, resolver Resolver) (string, bool) {
	if resolver != nil {
		if path, ok := resolver.Resolve(hash); ok {
			return path, true
		}
	}
	return util.FormatHash(hash), false
}

// WadID returns the archive identifier.
func (t *Tree) WadID() uuid.UUID {
	return t.wadID
}

// SourcePath returns the path of the archive the tree was built from.
func (t *Tree) SourcePath() string {
	return t.wadPath
}

// SetSelectedItems replaces the selection wholesale.
func (t *Tree) SetSelectedItems(keys ...Key) {
	t.selected = append([]Key(nil), keys...)
}

// SelectedItems returns the selection in the order it was set.
func (t *Tree) SelectedItems() []Key {
	return append([]Key(nil), t.selected...)
}

func (t *Tree) IsRoot() bool {
	return true
}

func (t *Tree) Children() *Children {
	return t.children
}

func (t *Tree) Traverse(fn func(Item)) {
	traverse(t, fn)
}

func (t *Tree) Find(pred func(Item) bool) (Item, bool) {
	return find(t, pred)
}

// The root is not an addressable item, so its Pathable side is a fixed
// sentinel: nil identity, empty name and path, zero hashes.

func (t *Tree) ID() uuid.UUID    { return uuid.Nil }
func (t *Tree) Name() string     { return "" }
func (t *Tree) Path() string     { return "" }
func (t *Tree) NameHash() uint64 { return 0 }
func (t *Tree) PathHash() uint64 { return 0 }
