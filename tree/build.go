package tree

import (
	"strings"

	"github.com/dendrascience/wad-tree/util"
	"github.com/google/uuid"
)

// addItem files chunk under parent at the given resolved path, creating the
// folders the path names on the way down. When unresolved is set the path
// is a hash fallback and the file is keyed by the chunk hash.
func addItem(parent Parent, resolved string, chunk util.Chunk, unresolved bool) error {
	current := parent
	start := 0
	for {
		rel := strings.IndexByte(resolved[start:], '/')
		if rel < 0 {
			return attachFile(current, resolved[start:], resolved, chunk, unresolved)
		}
		end := start + rel
		name := resolved[start:end]
		if !validName(name) {
			return &InvalidItemNameError{ChunkPath: chunk.PathHash}
		}

		key := NameKey(name)
		existing, ok := current.Children().Get(key)
		if !ok {
			folder, err := newFolder(name, resolved[:end])
			if err != nil {
				return err
			}
			current.Children().set(key, folder)
			current = folder
		} else {
			switch item := existing.(type) {
			case *Folder:
				current = item
			case *File:
				return &ExistingFileError{FilePath: item.Path()}
			}
		}
		start = end + 1
	}
}

func attachFile(parent Parent, name, path string, chunk util.Chunk, unresolved bool) error {
	if !validName(name) {
		return &InvalidItemNameError{ChunkPath: chunk.PathHash}
	}
	key := NameKey(name)
	if unresolved {
		key = HashKey(chunk.PathHash)
	}
	if existing, ok := parent.Children().Get(key); ok {
		switch item := existing.(type) {
		case *File:
			return &ExistingFileError{FilePath: item.Path()}
		case *Folder:
			return &ItemCreationError{ItemPath: path}
		}
	}

	file, err := newFile(name, path, chunk, unresolved)
	if err != nil {
		return err
	}
	parent.Children().set(key, file)
	return nil
}

// validName rejects components that cannot name an item.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, "/")
}

// compareItems orders folders before files, then by case-insensitive name.
// The raw name breaks ties so the order is total.
func compareItems(a, b Item) int {
	_, aFolder := a.(*Folder)
	_, bFolder := b.(*Folder)
	switch {
	case aFolder && !bFolder:
		return -1
	case !aFolder && bFolder:
		return 1
	}
	if c := strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name())); c != 0 {
		return c
	}
	return strings.Compare(a.Name(), b.Name())
}

// sortChildren sorts parent and every folder below it.
func sortChildren(parent Parent) {
	parent.Children().sortFunc(compareItems)
	for _, item := range parent.Children().All() {
		if folder, ok := item.(*Folder); ok {
			sortChildren(folder)
		}
	}
}

// traverse walks a snapshot of each child list, so fn may reorder the
// siblings of the item it is given without causing revisits.
func traverse(parent Parent, fn func(Item)) {
	for _, item := range parent.Children().Items() {
		fn(item)
		if folder, ok := item.(*Folder); ok {
			traverse(folder, fn)
		}
	}
}

func find(parent Parent, pred func(Item) bool) (Item, bool) {
	for _, item := range parent.Children().All() {
		if pred(item) {
			return item, true
		}
		if folder, ok := item.(*Folder); ok {
			if found, ok := find(folder, pred); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// findParent searches below parent for the item with the given id and
// returns it together with the parent that holds it.
func findParent(parent Parent, id uuid.UUID) (Parent, Item, bool) {
	for _, item := range parent.Children().All() {
		if item.ID() == id {
			return parent, item, true
		}
		if folder, ok := item.(*Folder); ok {
			if p, found, ok := findParent(folder, id); ok {
				return p, found, true
			}
		}
	}
	return nil, nil, false
}

// walkFiles yields every file below parent in traversal order and reports
// whether the walk ran to the end.
func walkFiles(parent Parent, yield func(*File) bool) bool {
	for _, item := range parent.Children().All() {
		switch item := item.(type) {
		case *File:
			if !yield(item) {
				return false
			}
		case *Folder:
			if !walkFiles(item, yield) {
				return false
			}
		}
	}
	return true
}

// joinPath builds the path of a child called name under parent.
func joinPath(parent Parent, name string) string {
	if parent.IsRoot() {
		return name
	}
	return parent.Path() + "/" + name
}

// relocate rewrites the path of item and everything below it after item was
// renamed or moved under parent. Files keep their archive hash.
func relocate(parent Parent, item Item) {
	switch item := item.(type) {
	case *File:
		item.path = joinPath(parent, item.name)
	case *Folder:
		item.path = joinPath(parent, item.name)
		item.pathHash = util.HashPath(item.path)
		for _, child := range item.children.All() {
			relocate(item, child)
		}
	}
}
