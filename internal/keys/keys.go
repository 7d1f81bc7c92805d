// Package keys handles private key material: parsing, WIF encoding and
// BIP39/BIP44 derivation. Raw key bytes are zeroized as soon as a parsed
// form exists.
package keys

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	ErrInvalidKeyLength = errors.New("keys: invalid key length")
	ErrKeyOutOfRange    = errors.New("keys: scalar outside curve order")
)

// Secp256k1FromBytes parses a 32-byte big-endian scalar as a secp256k1
// private key. Zero and values at or above the group order are rejected
// rather than reduced.
func Secp256k1FromBytes(b []byte) (*btcec.PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes, want 32", ErrInvalidKeyLength, len(b))
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("%w: value >= group order", ErrKeyOutOfRange)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrKeyOutOfRange)
	}

	priv, _ := btcec.PrivKeyFromBytes(b)
	return priv, nil
}

// Ed25519FromSeed expands a 32-byte seed into an Ed25519 signing key.
func Ed25519FromSeed(seed []byte) (ed25519.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(seed), ed25519.SeedSize)
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// Zeroize overwrites key bytes in place.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
