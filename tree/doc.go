// Package tree reconstructs the directory structure of a WAD archive.
//
// A WAD stores its chunks by path hash only. Build takes the decoded chunk
// list and a Resolver (usually a *util.Hashtable), resolves every hash it can
// back to a path, and files each chunk under the folders its path names.
// Chunks whose hash is unknown become root-level files named by the hash's
// hex literal.
//
// The result is a tree of two item kinds, *Folder and *File, both addressed
// inside their parent by a Key. The root *Tree and every *Folder implement
// Parent; every item and the root implement Pathable. Items never point
// back at their parent: ParentOf walks down from the root instead.
//
// After Build every folder's children are ordered folders first, then by
// case-insensitive name. The mutation methods (Rename, Move, Remove,
// AddChunk) keep that order.
//
// A Tree is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves, and callbacks passed to
// Traverse or Find must not mutate the tree they are walking.
package tree
