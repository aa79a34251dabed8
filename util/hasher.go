package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// HashPath returns the hash a WAD archive indexes the given path by:
// xxhash64 over the lowercased path.
func HashPath(path string) uint64 {
	return xxhash.Sum64String(strings.ToLower(path))
}

// FormatHash renders a path hash the way unresolved entries are named,
// "0x" followed by 16 lowercase hex digits.
func FormatHash(hash uint64) string {
	return fmt.Sprintf("0x%016x", hash)
}

// ParseHash parses a hash literal with or without its "0x" prefix.
func ParseHash(s string) (uint64, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if trimmed == "" || len(trimmed) > 16 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	h, err := strconv.ParseUint(trimmed, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	return h, nil
}

// IsHashLiteral reports whether name has the exact shape FormatHash produces.
func IsHashLiteral(name string) bool {
	if len(name) != 18 || !strings.HasPrefix(name, "0x") {
		return false
	}
	for i := 2; i < len(name); i++ {
		c := name[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
