// Package wadfs exposes a reconstructed WAD tree as a read-only FUSE filesystem.
//
// Folders appear as directories and files as regular files sized by their
// chunk's uncompressed size. Unresolved chunks show up under their hex
// literal name at the level the tree placed them. File contents are only
// available when a ChunkReader is configured; without one, reads fail with
// ENOTSUP while listing and stat keep working. FileReader serves stored and
// gzip chunks straight from the archive file.
//
// Inode numbers are keyed by item identity, so they stay stable while the
// tree is edited underneath a mount. The filesystem takes a read lock on
// every request; callers that mutate the tree while it is mounted must do so
// through Update, or drop items with Remove so their inodes are released.
package wadfs
