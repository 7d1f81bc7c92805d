package helpers

import (
	"encoding/hex"
	"math/big"
	"strings"
)

// HexToBytes converts a hex string (with or without 0x prefix) to bytes.
func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// BytesToHex converts bytes to a hex string with 0x prefix.
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// ParseBigInt parses a decimal or 0x-prefixed hex string as a *big.Int.
func ParseBigInt(s string) (*big.Int, bool) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return new(big.Int).SetString(rest, 16)
	}
	return new(big.Int).SetString(s, 10)
}
