package ethereum

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

var ErrInvalidAddress = errors.New("ethereum: invalid address")

// PubKeyToAddress derives the EIP-55 checksummed address of a secp256k1
// public key: the last 20 bytes of Keccak256 over the uncompressed point
// without its 0x04 prefix.
func PubKeyToAddress(pubKey *btcec.PublicKey) string {
	raw := pubKey.SerializeUncompressed()
	hash := hashing.Keccak256(raw[1:])
	return ChecksumAddress(hex.EncodeToString(hash[12:]))
}

// ChecksumAddress applies the EIP-55 mixed-case checksum to an address.
// A hex letter is uppercased when the matching nibble of the keccak hash
// of the lowercase address is >= 8.
func ChecksumAddress(addr string) string {
	addr = strings.ToLower(strings.TrimPrefix(addr, "0x"))
	hash := hex.EncodeToString(hashing.Keccak256([]byte(addr)))

	var b strings.Builder
	b.WriteString("0x")
	for i, c := range addr {
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			b.WriteRune(c - 32)
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ValidChecksum reports whether a mixed-case address carries a correct
// EIP-55 checksum. All-lowercase and all-uppercase addresses are accepted
// as unchecksummed.
func ValidChecksum(address string) bool {
	addr := strings.TrimPrefix(address, "0x")
	if len(addr) != 40 {
		return false
	}
	if addr == strings.ToLower(addr) || addr == strings.ToUpper(addr) {
		_, err := hex.DecodeString(addr)
		return err == nil
	}
	return ChecksumAddress(addr) == "0x"+addr
}

// AddressToBytes decodes a 0x-prefixed address to its 20 raw bytes,
// rejecting bad hex, bad length and bad EIP-55 checksums.
func AddressToBytes(address string) ([]byte, error) {
	if !ValidChecksum(address) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(address, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	return raw, nil
}
