package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Hash errors
	ErrInvalidHash = errors.New("invalid path hash literal")

	// Hashtable errors
	ErrMalformedHashLine = errors.New("malformed hashtable line")

	// Manifest errors
	ErrUnknownCompression = errors.New("unknown chunk compression")
	ErrEmptyManifest      = errors.New("manifest contains no chunks") // a warning, never a read failure
)
