package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex computes the SHA-256 digest of data and renders it as 64
// lowercase hex characters with no separators. Assets are hashed fully
// in memory; their size is known from the HTTP content length.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
