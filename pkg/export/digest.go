package export

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashAlgorithm identifies the digest applied to rendered documents.
const HashAlgorithm = "SHA-256"

// Digest returns the hex SHA-256 of doc. Renders of the same spec
// under a fixed clock digest identically, which is what makes the
// manifest a meaningful provenance record.
func Digest(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}

// ShortDigest returns the first 8 hex characters, enough for display
// in shell output and logs.
func ShortDigest(digest string) string {
	if len(digest) >= 8 {
		return digest[:8]
	}
	return digest
}
