package tree

import (
	"github.com/dendrascience/wad-tree/util"
	"github.com/google/uuid"
)

// Key addresses an item among its siblings. Items with a resolved name are
// keyed by that name; files whose name is a hash fallback are keyed by the
// hash. A name key never equals a hash key, even when the name happens to
// read like a hash literal.
type Key struct {
	name   string
	hash   uint64
	isHash bool
}

// NameKey keys an item by its resolved name.
func NameKey(name string) Key {
	return Key{name: name}
}

// HashKey keys an unresolved file by its chunk path hash.
func HashKey(hash uint64) Key {
	return Key{hash: hash, isHash: true}
}

// IsHash reports whether the key was made by HashKey.
func (k Key) IsHash() bool {
	return k.isHash
}

func (k Key) String() string {
	if k.isHash {
		return util.FormatHash(k.hash)
	}
	return k.name
}

// Pathable is implemented by every node, the root included.
type Pathable interface {
	ID() uuid.UUID
	Name() string
	Path() string
	NameHash() uint64
	PathHash() uint64
}

// Item is a node that lives inside a parent: either a *Folder or a *File.
// No other implementations exist, so a type switch over those two is
// exhaustive.
type Item interface {
	Pathable
	Key() Key
	isItem()
}

// Parent is implemented by nodes that own children: *Tree and *Folder.
type Parent interface {
	Pathable
	IsRoot() bool
	Children() *Children
	// Traverse calls fn for every descendant, depth first, a folder before
	// its own children.
	Traverse(fn func(Item))
	// Find returns the first descendant in Traverse order that satisfies pred.
	Find(pred func(Item) bool) (Item, bool)
}

// Folder is a directory reconstructed from the paths of the chunks below it.
type Folder struct {
	id       uuid.UUID
	name     string
	path     string
	nameHash uint64
	pathHash uint64
	children *Children
}

func (f *Folder) isItem() {}

func (f *Folder) ID() uuid.UUID       { return f.id }
func (f *Folder) Name() string        { return f.name }
func (f *Folder) Path() string        { return f.path }
func (f *Folder) NameHash() uint64    { return f.nameHash }
func (f *Folder) PathHash() uint64    { return f.pathHash }
func (f *Folder) Key() Key            { return NameKey(f.name) }
func (f *Folder) IsRoot() bool        { return false }
func (f *Folder) Children() *Children { return f.children }

func (f *Folder) Traverse(fn func(Item)) {
	traverse(f, fn)
}

func (f *Folder) Find(pred func(Item) bool) (Item, bool) {
	return find(f, pred)
}

// File is a leaf that stands for one archive chunk.
type File struct {
	id         uuid.UUID
	name       string
	path       string
	nameHash   uint64
	chunk      util.Chunk
	unresolved bool
}

func (f *File) isItem() {}

func (f *File) ID() uuid.UUID    { return f.id }
func (f *File) Name() string     { return f.name }
func (f *File) Path() string     { return f.path }
func (f *File) NameHash() uint64 { return f.nameHash }

// PathHash is always the hash the archive stores the chunk under, even
// after the file has been renamed or moved.
func (f *File) PathHash() uint64 { return f.chunk.PathHash }

func (f *File) Chunk() util.Chunk { return f.chunk }

// Unresolved reports whether the name is the hex fallback for a hash the
// hashtable did not know.
func (f *File) Unresolved() bool { return f.unresolved }

func (f *File) Key() Key {
	if f.unresolved {
		return HashKey(f.chunk.PathHash)
	}
	return NameKey(f.name)
}

// newIdentity mints item identities. Tests replace it to simulate failure.
var newIdentity = uuid.NewRandom

func newFolder(name, path string) (*Folder, error) {
	id, err := newIdentity()
	if err != nil {
		return nil, &ItemCreationError{ItemPath: path, Err: err}
	}
	return &Folder{
		id:       id,
		name:     name,
		path:     path,
		nameHash: util.HashPath(name),
		pathHash: util.HashPath(path),
		children: newChildren(),
	}, nil
}

func newFile(name, path string, chunk util.Chunk, unresolved bool) (*File, error) {
	id, err := newIdentity()
	if err != nil {
		return nil, &ItemCreationError{ItemPath: path, Err: err}
	}
	nameHash := chunk.PathHash
	if !unresolved {
		nameHash = util.HashPath(name)
	}
	return &File{
		id:         id,
		name:       name,
		path:       path,
		nameHash:   nameHash,
		chunk:      chunk,
		unresolved: unresolved,
	}, nil
}
