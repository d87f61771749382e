package serialization

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// checksumKey is the metadata entry holding the hex SHA-256 of the data section.
const checksumKey = "sha256"

// computeChecksum returns the hex SHA-256 checksum of data.
func computeChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// verifyChecksum compares data against the stored checksum, if any.
// Files written by other tools carry no checksum and are accepted as is.
func verifyChecksum(metadata map[string]string, data []byte) error {
	stored, ok := metadata[checksumKey]
	if !ok {
		return nil
	}
	if computed := computeChecksum(data); computed != stored {
		return fmt.Errorf("%w: stored %s, computed %s", ErrChecksumMismatch, stored, computed)
	}
	return nil
}
