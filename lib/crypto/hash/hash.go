package hash

import (
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/crypto"
)

// Keccak256 hashes the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}

// UsingSha256 get the hash result of data using SHA256
func UsingSha256(data []byte) []byte {
	out := sha256.Sum256(data)
	return out[:]
}

// DoubleSha256 run sha256 twice
func DoubleSha256(data []byte) []byte {
	return UsingSha256(UsingSha256(data))
}
