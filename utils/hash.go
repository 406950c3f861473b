package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
)

// GetEncodedChecksum is used for ETag values on stored raw results.
func GetEncodedChecksum(data ...[]byte) string {
	allData := []byte{}
	for _, bytes := range data {
		allData = append(allData, bytes...)
	}

	sum := md5.Sum(allData)
	return hex.EncodeToString(sum[:])
}

// CreateSHA256Hash fingerprints submitted content so a stored scan can be
// matched back to its source document.
func CreateSHA256Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
