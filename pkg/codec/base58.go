// Package codec implements the byte-exact wire encodings shared by the chain
// builders: Base58Check (Bitcoin and XRP Ledger alphabets), Bech32,
// variable-length integers, and DER signature encoding.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

// Distinct error kinds for malformed encoded input. Callers wrap these with
// context; they are never coerced into each other.
var (
	ErrBadChecksum      = errors.New("codec: checksum mismatch")
	ErrInvalidCharacter = errors.New("codec: invalid character")
	ErrInvalidLength    = errors.New("codec: invalid length")
)

const (
	// btcAlphabet is the Base58 alphabet used by Bitcoin-family chains
	// and Solana.
	btcAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

	// xrpAlphabet is the XRP Ledger Base58 dialect. Same digit expansion,
	// different symbol order ('r' is zero).
	xrpAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"
)

const checksumLen = 4

// Base58CheckEncode encodes payload with a 4-byte double-SHA-256 checksum
// using the Bitcoin alphabet.
func Base58CheckEncode(payload []byte) string {
	return base58CheckEncode(payload, btcAlphabet)
}

// Base58CheckDecode decodes a Bitcoin-alphabet Base58Check string and
// verifies its checksum. The returned payload excludes the checksum.
func Base58CheckDecode(s string) ([]byte, error) {
	return base58CheckDecode(s, btcAlphabet)
}

// XRPBase58CheckEncode encodes payload with a 4-byte checksum using the
// XRP Ledger alphabet (classic addresses, seeds).
func XRPBase58CheckEncode(payload []byte) string {
	return base58CheckEncode(payload, xrpAlphabet)
}

// XRPBase58CheckDecode decodes an XRP-alphabet Base58Check string.
func XRPBase58CheckDecode(s string) ([]byte, error) {
	return base58CheckDecode(s, xrpAlphabet)
}

func base58CheckEncode(payload []byte, alphabet string) string {
	checksum := hashing.DoubleSha256(payload)[:checksumLen]
	full := make([]byte, 0, len(payload)+checksumLen)
	full = append(full, payload...)
	full = append(full, checksum...)
	return base58Encode(full, alphabet)
}

func base58CheckDecode(s string, alphabet string) ([]byte, error) {
	decoded, err := base58Decode(s, alphabet)
	if err != nil {
		return nil, err
	}
	if len(decoded) < checksumLen+1 {
		return nil, fmt.Errorf("%w: %d bytes is too short for a checksummed payload", ErrInvalidLength, len(decoded))
	}
	payload := decoded[:len(decoded)-checksumLen]
	checksum := decoded[len(decoded)-checksumLen:]
	expected := hashing.DoubleSha256(payload)[:checksumLen]
	if !bytes.Equal(checksum, expected) {
		return nil, ErrBadChecksum
	}
	return payload, nil
}

// base58Encode performs big-integer digit expansion. Each leading 0x00 byte
// maps to one leading zero-symbol of the alphabet.
func base58Encode(b []byte, alphabet string) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	n := new(big.Int).SetBytes(b)
	radix := big.NewInt(58)
	mod := new(big.Int)

	// Worst case log(256)/log(58) ≈ 1.37 symbols per byte.
	out := make([]byte, 0, len(b)*137/100+1)
	for n.Sign() > 0 {
		n.DivMod(n, radix, mod)
		out = append(out, alphabet[mod.Int64()])
	}
	for i := 0; i < zeros; i++ {
		out = append(out, alphabet[0])
	}

	// Digits come out least-significant first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

func base58Decode(s string, alphabet string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidLength)
	}

	var digits [256]int8
	for i := range digits {
		digits[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		digits[alphabet[i]] = int8(i)
	}

	zeros := 0
	for zeros < len(s) && s[zeros] == alphabet[0] {
		zeros++
	}

	n := new(big.Int)
	radix := big.NewInt(58)
	for i := 0; i < len(s); i++ {
		d := digits[s[i]]
		if d < 0 {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, s[i], i)
		}
		n.Mul(n, radix)
		n.Add(n, big.NewInt(int64(d)))
	}

	decoded := n.Bytes()
	out := make([]byte, zeros+len(decoded))
	copy(out[zeros:], decoded)
	return out, nil
}
