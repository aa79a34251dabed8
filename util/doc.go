// Package util provides the archive-level plumbing that the wad tree is built on.
//
// A WAD archive stores its entries ("chunks") by a 64-bit hash of their logical
// path and keeps no directory structure of its own. This package holds the
// collaborators that sit on either side of that gap:
//
// Chunks and Manifests:
//   - Chunk records as decoded from the archive header (hash, offsets, sizes)
//   - JSON manifests for handing an already-decoded chunk list between tools
//   - Duplicate path-hash detection backed by a roaring bitmap
//
// Hashing:
//   - xxhash64 of the lowercased path, the function WAD archives index by
//   - Fixed-width hexadecimal rendering used for unresolved names
//
// Hashtables:
//   - Hashtable maps known path hashes back to their original strings
//   - Loading of the community "<hash> <path>" text format, merging several files
//
// Inodes:
//   - InodeTable hands out stable inode numbers keyed by item identity for the
//     FUSE view of a tree
//
// Hashtable and InodeTable are safe for concurrent readers once loaded;
// InodeTable is also safe for concurrent allocation.
package util
