package wadfs

import (
	"context"
	"os"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/wad-tree/tree"
	"github.com/dendrascience/wad-tree/util"
	"github.com/google/uuid"
)

// ChunkReader fetches the decompressed payload of a chunk.
type ChunkReader interface {
	ReadChunk(ctx context.Context, chunk util.Chunk) ([]byte, error)
}

// FS implements the wadfs FUSE filesystem
type FS struct {
	tree    *tree.Tree
	inodes  *util.InodeTable
	reader  ChunkReader
	mounted time.Time
	mu      sync.RWMutex // Protects tree
}

// Option configures an FS.
type Option func(*FS)

// WithChunkReader serves file contents through r.
func WithChunkReader(r ChunkReader) Option {
	return func(f *FS) { f.reader = r }
}

// NewFS creates a filesystem serving t.
func NewFS(t *tree.Tree, opts ...Option) *FS {
	f := &FS{
		tree:    t,
		inodes:  util.NewInodeTable(),
		mounted: time.Now(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, parent: f.tree}, nil
}

// Update runs fn with exclusive access to the tree.
func (f *FS) Update(fn func(t *tree.Tree)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.tree)
}

// Remove detaches the item with the given id and releases the inodes held
// by it and everything below it. It reports whether the item existed.
func (f *FS) Remove(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.tree.Remove(id)
	if !ok {
		return false
	}
	f.inodes.Forget(item.ID())
	if folder, ok := item.(*tree.Folder); ok {
		folder.Traverse(func(it tree.Item) { f.inodes.Forget(it.ID()) })
	}
	return true
}

func (f *FS) node(item tree.Item) fs.Node {
	switch item := item.(type) {
	case *tree.Folder:
		return &Dir{fs: f, parent: item}
	case *tree.File:
		return &File{fs: f, file: item}
	}
	return nil
}

// Dir implements both Node and Handle for folders and the root
type Dir struct {
	fs     *FS
	parent tree.Parent
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	d.fs.mu.RLock()
	id := d.parent.ID()
	d.fs.mu.RUnlock()

	a.Inode = d.fs.inodes.Inode(id)
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.mounted
	a.Ctime = d.fs.mounted
	a.Atime = d.fs.mounted
	return nil
}

// Lookup resolves a child name to its node
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.fs.mu.RLock()
	defer d.fs.mu.RUnlock()

	item, ok := d.parent.Children().Lookup(name)
	if !ok {
		return nil, syscall.ENOENT
	}
	return d.fs.node(item), nil
}

// ReadDirAll lists the children in tree order
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mu.RLock()
	defer d.fs.mu.RUnlock()

	dirents := make([]fuse.Dirent, 0, d.parent.Children().Len())
	for key, item := range d.parent.Children().All() {
		if key.IsHash() {
			// Lookup resolves this name to the resolved sibling
			if _, shadowed := d.parent.Children().Get(tree.NameKey(item.Name())); shadowed {
				continue
			}
		}
		dirent := fuse.Dirent{
			Inode: d.fs.inodes.Inode(item.ID()),
			Name:  item.Name(),
			Type:  fuse.DT_File,
		}
		if _, ok := item.(*tree.Folder); ok {
			dirent.Type = fuse.DT_Dir
		}
		dirents = append(dirents, dirent)
	}
	return dirents, nil
}

// File implements both Node and Handle for chunk files
type File struct {
	fs   *FS
	file *tree.File
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	f.fs.mu.RLock()
	id := f.file.ID()
	chunk := f.file.Chunk()
	f.fs.mu.RUnlock()

	a.Inode = f.fs.inodes.Inode(id)
	a.Mode = 0o444
	a.Size = uint64(chunk.UncompressedSize)
	a.Mtime = f.fs.mounted
	a.Ctime = f.fs.mounted
	a.Atime = f.fs.mounted
	return nil
}

// ReadAll returns the chunk payload through the configured ChunkReader
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	if f.fs.reader == nil {
		return nil, syscall.ENOTSUP
	}
	f.fs.mu.RLock()
	chunk := f.file.Chunk()
	f.fs.mu.RUnlock()

	data, err := f.fs.reader.ReadChunk(ctx, chunk)
	if err != nil {
		return nil, err
	}
	return data, nil
}

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.HandleReadAller    = (*File)(nil)
)
