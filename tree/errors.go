package tree

import (
	"errors"
	"fmt"

	"github.com/dendrascience/wad-tree/util"
)

// Sentinel errors for package tree. The typed errors below unwrap to the
// first three, so both errors.Is and errors.As work on a Build failure.
var (
	ErrInvalidItemName = errors.New("invalid item name")
	ErrItemCreation    = errors.New("failed to create item")
	ErrExistingFile    = errors.New("existing file")

	ErrNotFound   = errors.New("item not found")
	ErrNameTaken  = errors.New("name already taken")
	ErrNotFolder  = errors.New("item is not a folder")
	ErrCyclicMove = errors.New("cannot move a folder into itself")
)

// InvalidItemNameError reports a path component that cannot be used as a
// name, such as the empty component in "a//b".
type InvalidItemNameError struct {
	ChunkPath uint64
}

func (e *InvalidItemNameError) Error() string {
	return fmt.Sprintf("invalid item name (chunk_path: %s)", util.FormatHash(e.ChunkPath))
}

func (e *InvalidItemNameError) Unwrap() error { return ErrInvalidItemName }

// ItemCreationError reports an item that could not be constructed, either
// because no identity could be minted or because a file would take the key
// of an existing folder.
type ItemCreationError struct {
	ItemPath string
	Err      error
}

func (e *ItemCreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to create item (item_path: %s): %v", e.ItemPath, e.Err)
	}
	return fmt.Sprintf("failed to create item (item_path: %s)", e.ItemPath)
}

func (e *ItemCreationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrItemCreation, e.Err}
	}
	return []error{ErrItemCreation}
}

// ExistingFileError reports a file standing where a folder or another file
// with the same key is needed.
type ExistingFileError struct {
	FilePath string
}

func (e *ExistingFileError) Error() string {
	return fmt.Sprintf("existing file (file_path: %s)", e.FilePath)
}

func (e *ExistingFileError) Unwrap() error { return ErrExistingFile }
