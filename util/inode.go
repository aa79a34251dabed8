package util

import (
	"sync"

	"github.com/google/uuid"
)

// RootInode is reserved for the root directory of a mounted tree.
const RootInode uint64 = 1

// InodeTable hands out inode numbers keyed by item identity. An identity
// keeps its inode for the lifetime of the table, so renames and moves in the
// tree do not change what the kernel sees.
type InodeTable struct {
	mu      sync.Mutex
	highest uint64
	inodes  map[uuid.UUID]uint64
}

// NewInodeTable returns a table with only the root inode allocated.
func NewInodeTable() *InodeTable {
	return &InodeTable{
		highest: RootInode,
		inodes:  map[uuid.UUID]uint64{uuid.Nil: RootInode},
	}
}

// Inode returns the inode for id, allocating one on first use.
func (t *InodeTable) Inode(id uuid.UUID) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ino, ok := t.inodes[id]; ok {
		return ino
	}
	t.highest++
	t.inodes[id] = t.highest
	return t.highest
}

// Forget drops id so a later Inode call allocates afresh.
func (t *InodeTable) Forget(id uuid.UUID) {
	if id == uuid.Nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inodes, id)
}

func (t *InodeTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inodes)
}
