package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// ArtifactKey returns the cache key for an artifact of the given format
// rendered from a layout description. The key format is
// artifact:<format>:<sha256 of source>.
func ArtifactKey(format, source string) string {
	return "artifact:" + format + ":" + Hash([]byte(source))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
