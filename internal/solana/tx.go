// Package solana builds and signs single-instruction System Program
// transfers as legacy messages.
package solana

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"

	"github.com/klingon-exchange/klingsign/internal/keys"
	"github.com/klingon-exchange/klingsign/pkg/codec"
)

var (
	ErrInvalidPubKey    = errors.New("solana: invalid public key")
	ErrInvalidBlockhash = errors.New("solana: invalid blockhash")
)

// systemProgramID is the all-zero System Program address.
var systemProgramID [32]byte

// transferInstruction is the System Program instruction index for
// Transfer.
const transferInstruction = 2

// TransferRequest describes an unsigned lamport transfer. Recipient and
// RecentBlockhash are Base58 strings.
type TransferRequest struct {
	Recipient       string
	Lamports        uint64
	RecentBlockhash string
}

// SignedTx is the immutable result of a successful build. Signature
// doubles as the transaction id: it is the first signature in Raw, which
// is what explorers index.
type SignedTx struct {
	Raw       string // Base58 transaction
	Signature string // Base58 Ed25519 signature
}

func decode32(s string, kind error) ([32]byte, error) {
	var out [32]byte
	raw, err := base58.Decode(s)
	if err != nil {
		return out, fmt.Errorf("%w: %v", kind, err)
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("%w: %d bytes, want 32", kind, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// IsOnCurve reports whether a public key is a valid Ed25519 curve point.
// Wallet addresses are on-curve; program-derived addresses are not, and
// sending to one is usually a mistake the caller should surface.
func IsOnCurve(pubKey [32]byte) bool {
	_, err := new(edwards25519.Point).SetBytes(pubKey[:])
	return err == nil
}

// buildMessage serializes the legacy message: header, static account
// list [sender, recipient, system program], recent blockhash and the one
// transfer instruction.
func buildMessage(sender, recipient, blockhash [32]byte, lamports uint64) []byte {
	buf := make([]byte, 0, 192)

	// numRequiredSignatures, numReadonlySigned, numReadonlyUnsigned.
	buf = append(buf, 1, 0, 1)

	buf = codec.AppendCompactU16(buf, 3)
	buf = append(buf, sender[:]...)
	buf = append(buf, recipient[:]...)
	buf = append(buf, systemProgramID[:]...)

	buf = append(buf, blockhash[:]...)

	// One instruction: program index 2, accounts [0, 1], data
	// u32 instruction index then u64 lamports, both little-endian.
	data := make([]byte, 0, 12)
	data = binary.LittleEndian.AppendUint32(data, transferInstruction)
	data = binary.LittleEndian.AppendUint64(data, lamports)

	buf = codec.AppendCompactU16(buf, 1)
	buf = append(buf, 2)
	buf = codec.AppendCompactU16(buf, 2)
	buf = append(buf, 0, 1)
	buf = codec.AppendCompactU16(buf, uint16(len(data)))
	return append(buf, data...)
}

// BuildAndSign builds the transfer message, signs its raw bytes with
// Ed25519 and returns the Base58 transaction. seed is the raw 32-byte
// private key.
func BuildAndSign(seed []byte, req *TransferRequest) (*SignedTx, error) {
	priv, err := keys.Ed25519FromSeed(seed)
	if err != nil {
		return nil, err
	}

	recipient, err := decode32(req.Recipient, ErrInvalidPubKey)
	if err != nil {
		return nil, err
	}
	blockhash, err := decode32(req.RecentBlockhash, ErrInvalidBlockhash)
	if err != nil {
		return nil, err
	}

	var sender [32]byte
	copy(sender[:], priv.Public().(ed25519.PublicKey))

	message := buildMessage(sender, recipient, blockhash, req.Lamports)

	// Ed25519 signs the serialized message directly, no pre-hash.
	signature := ed25519.Sign(priv, message)

	tx := make([]byte, 0, 1+len(signature)+len(message))
	tx = codec.AppendCompactU16(tx, 1)
	tx = append(tx, signature...)
	tx = append(tx, message...)

	return &SignedTx{
		Raw:       base58.Encode(tx),
		Signature: base58.Encode(signature),
	}, nil
}
