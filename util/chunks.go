package util

import "github.com/RoaringBitmap/roaring/roaring64"

// DuplicateHashes returns every path hash that occurs more than once in
// chunks, in order of its second occurrence. A chunk list with duplicates
// cannot be turned into a tree without a conflict.
func DuplicateHashes(chunks []Chunk) []uint64 {
	seen := roaring64.New()
	reported := roaring64.New()
	var dups []uint64
	for _, c := range chunks {
		if seen.CheckedAdd(c.PathHash) {
			continue
		}
		if reported.CheckedAdd(c.PathHash) {
			dups = append(dups, c.PathHash)
		}
	}
	return dups
}
