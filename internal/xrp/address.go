// Package xrp serializes and signs XRP Ledger Payment transactions in the
// canonical binary format.
package xrp

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/klingon-exchange/klingsign/pkg/codec"
	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

var ErrInvalidAddress = errors.New("xrp: invalid classic address")

// accountIDVersion prefixes classic addresses, giving the leading 'r'.
const accountIDVersion = 0x00

// AccountID is the 20-byte HASH160 of a signing public key.
type AccountID [20]byte

// AccountIDFromPubKey derives the account of a secp256k1 public key.
func AccountIDFromPubKey(pubKey *btcec.PublicKey) AccountID {
	var id AccountID
	copy(id[:], hashing.Hash160(pubKey.SerializeCompressed()))
	return id
}

// EncodeAddress renders an AccountID as a classic address using the XRPL
// Base58 alphabet.
func EncodeAddress(id AccountID) string {
	payload := make([]byte, 0, 21)
	payload = append(payload, accountIDVersion)
	payload = append(payload, id[:]...)
	return codec.XRPBase58CheckEncode(payload)
}

// DecodeAddress parses a classic address back to its AccountID, rejecting
// bad checksums, wrong versions and wrong payload lengths.
func DecodeAddress(addr string) (AccountID, error) {
	var id AccountID

	payload, err := codec.XRPBase58CheckDecode(addr)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(payload) != 21 {
		return id, fmt.Errorf("%w: payload is %d bytes, want 21", ErrInvalidAddress, len(payload))
	}
	if payload[0] != accountIDVersion {
		return id, fmt.Errorf("%w: version %#x", ErrInvalidAddress, payload[0])
	}

	copy(id[:], payload[1:])
	return id, nil
}
