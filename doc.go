// Command wadtree rebuilds the directory tree of a WAD archive.
//
// A WAD stores its entries as chunks keyed by the 64-bit hash of their
// lowercased path; the paths themselves are not in the archive. wadtree pairs
// a chunk manifest with hashtables that map hashes back to paths and builds
// the folder hierarchy from the result. Chunks missing from every hashtable
// are kept at the top level under their hex-encoded hash.
//
// Usage:
//
//	wadtree tree manifest.json -t hashes.game.txt
//	wadtree stats manifest.json
//	wadtree validate manifest.json
//	wadtree mount manifest.json /mnt/wad --wad archive.wad
//	wadtree seed -o testdata/
//
// Hashtables and defaults can be set in ~/.config/wadtree/config.yaml or a
// local .wadtree.yaml:
//
//	hashtables:
//	  - hashes.game.txt
//	color: true
//	log_level: info
package main
