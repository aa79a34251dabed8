package util

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestInodeTable_Stable(t *testing.T) {
	table := NewInodeTable()
	assert.Equal(t, RootInode, table.Inode(uuid.Nil))

	a, b := uuid.New(), uuid.New()
	inoA := table.Inode(a)
	inoB := table.Inode(b)
	assert.NotEqual(t, inoA, inoB)
	assert.Greater(t, inoA, RootInode)
	assert.Equal(t, inoA, table.Inode(a))

	table.Forget(a)
	assert.NotEqual(t, inoA, table.Inode(a))

	table.Forget(uuid.Nil)
	assert.Equal(t, RootInode, table.Inode(uuid.Nil))
}

func TestInodeTable_Concurrent(t *testing.T) {
	table := NewInodeTable()
	ids := make([]uuid.UUID, 100)
	for i := range ids {
		ids[i] = uuid.New()
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range ids {
				table.Inode(id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(ids)+1, table.Len())
	seen := make(map[uint64]bool)
	for _, id := range ids {
		ino := table.Inode(id)
		assert.False(t, seen[ino], "inode %d handed out twice", ino)
		seen[ino] = true
	}
}
