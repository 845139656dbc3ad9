package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key returns the cache key for one version of a file.
// Format: {filename}@{contentHash} where the hash is the full SHA-256 hex.
func Key(filename, content string) string {
	return filename + "@" + hashString(content)
}

// hashString returns SHA-256 hash of the input string as hex.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
