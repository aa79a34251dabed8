package tree

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/dendrascience/wad-tree/util"
	"github.com/google/uuid"
)

// ItemByID returns the item with the given identity.
func (t *Tree) ItemByID(id uuid.UUID) (Item, bool) {
	return t.Find(func(item Item) bool { return item.ID() == id })
}

// ParentOf returns the parent holding the item with the given identity.
func (t *Tree) ParentOf(id uuid.UUID) (Parent, bool) {
	parent, _, ok := findParent(t, id)
	return parent, ok
}

// ItemByPath walks from the root by the components of path, matching each
// the way Children.Lookup does. An unresolved file whose fallback name is
// shadowed by a resolved sibling of the same name is not reachable by path;
// use ItemByID.
func (t *Tree) ItemByPath(path string) (Item, bool) {
	var current Parent = t
	components := strings.Split(path, "/")
	for i, component := range components {
		item, ok := current.Children().Lookup(component)
		if !ok {
			return nil, false
		}
		if i == len(components)-1 {
			return item, true
		}
		folder, isFolder := item.(*Folder)
		if !isFolder {
			return nil, false
		}
		current = folder
	}
	return nil, false
}

// Files yields every file in traversal order.
func (t *Tree) Files() iter.Seq[*File] {
	return func(yield func(*File) bool) {
		walkFiles(t, yield)
	}
}

// AddChunk files one more chunk into an existing tree and restores the
// ordering. On error the tree is left without the chunk, though folders
// created for it before the failure remain.
func (t *Tree) AddChunk(chunk util.Chunk, resolver Resolver) error {
	if err := t.insert(chunk, resolver); err != nil {
		return err
	}
	sortChildren(t)
	return nil
}

// Remove detaches the item and its subtree. Selection keys that addressed
// it at the root level are dropped.
func (t *Tree) Remove(id uuid.UUID) (Item, bool) {
	parent, item, ok := findParent(t, id)
	if !ok {
		return nil, false
	}
	parent.Children().delete(item.Key())
	if parent.IsRoot() {
		t.deselect(item.Key())
	}
	return item, true
}

// Rename gives the item a new name under its current parent and rewrites
// the paths below it.
func (t *Tree) Rename(id uuid.UUID, name string) error {
	if !validName(name) {
		return fmt.Errorf("rename to %q: %w", name, ErrInvalidItemName)
	}
	parent, item, ok := findParent(t, id)
	if !ok {
		return fmt.Errorf("rename %s: %w", id, ErrNotFound)
	}
	newKey := NameKey(name)
	if existing, taken := parent.Children().Get(newKey); taken && existing.ID() != id {
		return fmt.Errorf("rename %s to %q: %w", item.Path(), name, ErrNameTaken)
	}

	oldKey := item.Key()
	parent.Children().delete(oldKey)
	switch item := item.(type) {
	case *File:
		item.name = name
		item.nameHash = util.HashPath(name)
		item.unresolved = false
	case *Folder:
		item.name = name
		item.nameHash = util.HashPath(name)
	}
	relocate(parent, item)
	parent.Children().set(newKey, item)
	parent.Children().sortFunc(compareItems)

	if parent.IsRoot() && oldKey != newKey {
		t.rekeySelection(oldKey, newKey)
	}
	return nil
}

// Move re-parents the item under the folder dest. uuid.Nil moves it to the
// root.
func (t *Tree) Move(id, dest uuid.UUID) error {
	parent, item, ok := findParent(t, id)
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrNotFound)
	}

	var target Parent = t
	if dest != uuid.Nil {
		destItem, ok := t.ItemByID(dest)
		if !ok {
			return fmt.Errorf("move to %s: %w", dest, ErrNotFound)
		}
		folder, isFolder := destItem.(*Folder)
		if !isFolder {
			return fmt.Errorf("move to %s: %w", destItem.Path(), ErrNotFolder)
		}
		target = folder
	}

	if target.ID() == parent.ID() {
		return nil
	}
	if folder, isFolder := item.(*Folder); isFolder {
		if target.ID() == folder.ID() {
			return fmt.Errorf("move %s: %w", folder.Path(), ErrCyclicMove)
		}
		if _, below := folder.Find(func(i Item) bool { return i.ID() == target.ID() }); below {
			return fmt.Errorf("move %s into %s: %w", folder.Path(), target.Path(), ErrCyclicMove)
		}
	}
	key := item.Key()
	if _, taken := target.Children().Get(key); taken {
		return fmt.Errorf("move %s into %s: %w", item.Path(), target.Path(), ErrNameTaken)
	}

	parent.Children().delete(key)
	relocate(target, item)
	target.Children().set(key, item)
	target.Children().sortFunc(compareItems)

	if parent.IsRoot() {
		t.deselect(key)
	}
	return nil
}

func (t *Tree) deselect(key Key) {
	t.selected = slices.DeleteFunc(t.selected, func(k Key) bool { return k == key })
}

func (t *Tree) rekeySelection(from, to Key) {
	for i, k := range t.selected {
		if k == from {
			t.selected[i] = to
		}
	}
}
