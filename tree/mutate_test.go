package tree

import (
	"slices"
	"testing"

	"github.com/dendrascience/wad-tree/util"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, paths ...string) *Tree {
	t.Helper()
	ht, chunks := chunksFor(paths...)
	tr, err := Build(chunks, ht)
	require.NoError(t, err)
	return tr
}

func mustItem(t *testing.T, tr *Tree, path string) Item {
	t.Helper()
	item, ok := tr.ItemByPath(path)
	require.True(t, ok, "no item at %q", path)
	return item
}

func allPaths(tr *Tree) []string {
	var paths []string
	tr.Traverse(func(item Item) { paths = append(paths, item.Path()) })
	return paths
}

func TestTree_ParentOf(t *testing.T) {
	tr := buildTree(t, "a/b/c.txt", "d.txt")

	parent, ok := tr.ParentOf(mustItem(t, tr, "a/b/c.txt").ID())
	require.True(t, ok)
	assert.Equal(t, "a/b", parent.Path())

	parent, ok = tr.ParentOf(mustItem(t, tr, "d.txt").ID())
	require.True(t, ok)
	assert.True(t, parent.IsRoot())

	_, ok = tr.ParentOf(uuid.New())
	assert.False(t, ok)
	_, ok = tr.ParentOf(uuid.Nil)
	assert.False(t, ok)
}

func TestTree_ItemByPath(t *testing.T) {
	tr := buildTree(t, "a/b/c.txt")

	for _, path := range []string{"", "a/x", "a/b/c.txt/d", "a//b", "A"} {
		_, ok := tr.ItemByPath(path)
		assert.False(t, ok, path)
	}

	item, ok := tr.ItemByPath("a/b")
	require.True(t, ok)
	assert.IsType(t, &Folder{}, item)
}

func TestTree_Remove(t *testing.T) {
	tr := buildTree(t, "a/b/c.txt", "a/d.txt", "e.txt")
	a := mustItem(t, tr, "a")
	e := mustItem(t, tr, "e.txt")
	tr.SetSelectedItems(a.Key(), e.Key())

	removed, ok := tr.Remove(a.ID())
	require.True(t, ok)
	assert.Same(t, a, removed)
	assert.Equal(t, []string{"e.txt"}, allPaths(tr))
	assert.Equal(t, []Key{e.Key()}, tr.SelectedItems())

	_, ok = tr.Remove(a.ID())
	assert.False(t, ok)
}

func TestTree_RemoveNestedKeepsSelection(t *testing.T) {
	tr := buildTree(t, "a/b.txt", "b.txt")
	tr.SetSelectedItems(NameKey("b.txt"))

	_, ok := tr.Remove(mustItem(t, tr, "a/b.txt").ID())
	require.True(t, ok)
	assert.Equal(t, []Key{NameKey("b.txt")}, tr.SelectedItems())
}

func TestTree_RenameFolderRewritesSubtree(t *testing.T) {
	tr := buildTree(t, "characters/ahri/ahri.skn", "characters/ahri/skins/base.bin", "characters/zed/zed.skn")
	ahri := mustItem(t, tr, "characters/ahri")
	skn := mustItem(t, tr, "characters/ahri/ahri.skn")
	sknHash := skn.PathHash()

	require.NoError(t, tr.Rename(ahri.ID(), "zz_ahri"))

	assert.Equal(t, []string{
		"characters",
		"characters/zed",
		"characters/zed/zed.skn",
		"characters/zz_ahri",
		"characters/zz_ahri/skins",
		"characters/zz_ahri/skins/base.bin",
		"characters/zz_ahri/ahri.skn",
	}, allPaths(tr))

	assert.Equal(t, ahri.ID(), mustItem(t, tr, "characters/zz_ahri").ID())
	assert.Equal(t, util.HashPath("characters/zz_ahri"), ahri.PathHash())
	assert.Equal(t, util.HashPath("zz_ahri"), ahri.NameHash())
	assert.Equal(t, util.HashPath("characters/zz_ahri/skins"), mustItem(t, tr, "characters/zz_ahri/skins").PathHash())
	assert.Equal(t, sknHash, skn.PathHash())
	assert.Equal(t, skn.ID(), mustItem(t, tr, "characters/zz_ahri/ahri.skn").ID())
}

func TestTree_RenameUnresolvedFile(t *testing.T) {
	tr, err := Build([]util.Chunk{{PathHash: 0x42}}, nil)
	require.NoError(t, err)
	file := mustItem(t, tr, util.FormatHash(0x42)).(*File)
	tr.SetSelectedItems(file.Key())

	require.NoError(t, tr.Rename(file.ID(), "found.bin"))

	assert.False(t, file.Unresolved())
	assert.Equal(t, NameKey("found.bin"), file.Key())
	assert.Equal(t, uint64(0x42), file.PathHash())
	assert.Equal(t, []Key{NameKey("found.bin")}, tr.SelectedItems())
	_, ok := tr.Children().Get(HashKey(0x42))
	assert.False(t, ok)
}

func TestTree_RenameErrors(t *testing.T) {
	tr := buildTree(t, "a/x.txt", "a/y.txt")
	x := mustItem(t, tr, "a/x.txt")

	assert.ErrorIs(t, tr.Rename(x.ID(), "y.txt"), ErrNameTaken)
	assert.ErrorIs(t, tr.Rename(x.ID(), ""), ErrInvalidItemName)
	assert.ErrorIs(t, tr.Rename(x.ID(), "b/c"), ErrInvalidItemName)
	assert.ErrorIs(t, tr.Rename(uuid.New(), "z"), ErrNotFound)
	assert.NoError(t, tr.Rename(x.ID(), "x.txt"))
	assert.Equal(t, []string{"a", "a/x.txt", "a/y.txt"}, allPaths(tr))
}

func TestTree_Move(t *testing.T) {
	tr := buildTree(t, "src/a/one.bin", "src/two.bin", "dst/keep.bin")
	a := mustItem(t, tr, "src/a")
	dst := mustItem(t, tr, "dst")

	require.NoError(t, tr.Move(a.ID(), dst.ID()))
	assert.Equal(t, []string{
		"dst",
		"dst/a",
		"dst/a/one.bin",
		"dst/keep.bin",
		"src",
		"src/two.bin",
	}, allPaths(tr))
	assert.Equal(t, util.HashPath("dst/a"), a.PathHash())

	two := mustItem(t, tr, "src/two.bin")
	require.NoError(t, tr.Move(two.ID(), uuid.Nil))
	assert.Equal(t, "two.bin", two.Path())
	parent, ok := tr.ParentOf(two.ID())
	require.True(t, ok)
	assert.True(t, parent.IsRoot())

	// moving within the same parent is a no-op
	require.NoError(t, tr.Move(two.ID(), uuid.Nil))
	assert.Equal(t, "two.bin", two.Path())
}

func TestTree_MoveErrors(t *testing.T) {
	tr := buildTree(t, "a/b/c.bin", "a/d.bin", "d.bin")
	a := mustItem(t, tr, "a")
	b := mustItem(t, tr, "a/b")
	d := mustItem(t, tr, "a/d.bin")
	rootD := mustItem(t, tr, "d.bin")

	assert.ErrorIs(t, tr.Move(a.ID(), a.ID()), ErrCyclicMove)
	assert.ErrorIs(t, tr.Move(a.ID(), b.ID()), ErrCyclicMove)
	assert.ErrorIs(t, tr.Move(b.ID(), d.ID()), ErrNotFolder)
	assert.ErrorIs(t, tr.Move(d.ID(), uuid.Nil), ErrNameTaken)
	assert.ErrorIs(t, tr.Move(uuid.New(), a.ID()), ErrNotFound)
	assert.ErrorIs(t, tr.Move(rootD.ID(), uuid.New()), ErrNotFound)

	assert.Equal(t, []string{"a", "a/b", "a/b/c.bin", "a/d.bin", "d.bin"}, allPaths(tr))
}

func TestTree_MoveDropsRootSelection(t *testing.T) {
	tr := buildTree(t, "x.bin", "dir/y.bin")
	x := mustItem(t, tr, "x.bin")
	tr.SetSelectedItems(x.Key(), NameKey("dir"))

	require.NoError(t, tr.Move(x.ID(), mustItem(t, tr, "dir").ID()))
	assert.Equal(t, []Key{NameKey("dir")}, tr.SelectedItems())
}

func TestTree_AddChunk(t *testing.T) {
	ht, chunks := chunksFor("b/one.bin", "z.bin")
	tr, err := Build(chunks, ht)
	require.NoError(t, err)

	hash := ht.AddPath("a/two.bin")
	require.NoError(t, tr.AddChunk(util.Chunk{PathHash: hash}, ht))
	assert.Equal(t, []string{"a", "a/two.bin", "b", "b/one.bin", "z.bin"}, allPaths(tr))

	conflict := ht.AddPath("z.bin/inner")
	err = tr.AddChunk(util.Chunk{PathHash: conflict}, ht)
	assert.ErrorIs(t, err, ErrExistingFile)
}

func TestTree_FilesStopsEarly(t *testing.T) {
	tr := buildTree(t, "a/1", "a/2", "b/3", "4")
	var seen []string
	for f := range tr.Files() {
		seen = append(seen, f.Path())
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a/1", "a/2"}, seen)

	all := slices.Collect(tr.Files())
	assert.Len(t, all, 4)
}

func TestTree_Stats(t *testing.T) {
	ht, chunks := chunksFor("a/b/c/d.bin", "a/e.bin", "f.bin")
	chunks = append(chunks, util.Chunk{PathHash: 5})
	tr, err := Build(chunks, ht)
	require.NoError(t, err)

	assert.Equal(t, Stats{Folders: 3, Files: 4, Unresolved: 1, MaxDepth: 4}, tr.Stats())
}
