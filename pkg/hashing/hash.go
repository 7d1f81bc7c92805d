// Package hashing provides the whole-buffer hash primitives shared by every
// chain serializer. All functions are pure and allocate a fresh output slice.
package hashing

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// Sha256 computes SHA-256 over data.
func Sha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// DoubleSha256 computes SHA-256(SHA-256(data)), the Bitcoin-family digest.
func DoubleSha256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Ripemd160 computes RIPEMD-160 over data.
func Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Hash160 computes RIPEMD-160(SHA-256(data)), used for public key hashes
// on Bitcoin-family chains and for XRP AccountIDs.
func Hash160(data []byte) []byte {
	return Ripemd160(Sha256(data))
}

// Keccak256 computes the Keccak-256 hash (the Ethereum variant, not NIST SHA3).
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
