// Package checksum computes content digests for scanned notes.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Prefix names the digest algorithm in every value returned by Sum.
const Prefix = "sha256:"

// Sum returns the SHA-256 digest of data as "sha256:<hex>".
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return Prefix + hex.EncodeToString(h[:])
}
