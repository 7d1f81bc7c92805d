package xrp

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/klingon-exchange/klingsign/internal/keys"
	"github.com/klingon-exchange/klingsign/pkg/codec"
	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

var ErrAmountTooLarge = errors.New("xrp: drop value exceeds 62-bit range")

// Serialized amounts share their top two bits with the issued-currency
// flags, so drop values must fit in 62 bits.
const maxDrops = uint64(1) << 62

var (
	// signingPrefix ("STX\0") precedes the single-SHA-256 signing hash.
	signingPrefix = []byte{0x53, 0x54, 0x58, 0x00}
	// txIDPrefix ("TXN\0") precedes the transaction id hash.
	txIDPrefix = []byte{0x54, 0x58, 0x4e, 0x00}
)

// PaymentRequest describes an unsigned XRP Payment. Amount and Fee are in
// drops. Sequence is the sending account's current sequence number.
type PaymentRequest struct {
	Sequence    uint32
	Amount      uint64
	Fee         uint64
	Destination string
}

// SignedTx is the immutable result of a successful build. RawHex and TxID
// are uppercase, as the XRPL submit interface expects.
type SignedTx struct {
	RawHex  string
	TxID    string
	Account string
}

// BuildAndSign serializes the payment, signs the STX-prefixed hash of the
// unsigned body and re-emits the fields with the signature at its
// canonical slot. privKey is the raw 32-byte scalar; the sending account
// is derived from it.
func BuildAndSign(privKey []byte, req *PaymentRequest) (*SignedTx, error) {
	if req.Amount >= maxDrops {
		return nil, fmt.Errorf("%w: amount %d", ErrAmountTooLarge, req.Amount)
	}
	if req.Fee >= maxDrops {
		return nil, fmt.Errorf("%w: fee %d", ErrAmountTooLarge, req.Fee)
	}

	priv, err := keys.Secp256k1FromBytes(privKey)
	if err != nil {
		return nil, err
	}

	destination, err := DecodeAddress(req.Destination)
	if err != nil {
		return nil, err
	}

	pubKey := priv.PubKey()
	p := &payment{
		sequence:      req.Sequence,
		amount:        req.Amount,
		fee:           req.Fee,
		signingPubKey: pubKey.SerializeCompressed(),
		account:       AccountIDFromPubKey(pubKey),
		destination:   destination,
	}

	unsigned, err := p.serialize(false)
	if err != nil {
		return nil, err
	}

	digest := hashing.Sha256(append(signingPrefix, unsigned...))
	compact := ecdsa.SignCompact(priv, digest, true)
	p.signature, err = codec.SignatureToDER(compact[1:])
	if err != nil {
		return nil, fmt.Errorf("xrp: encode signature: %w", err)
	}

	signed, err := p.serialize(true)
	if err != nil {
		return nil, err
	}

	txid := hashing.Sha256(append(txIDPrefix, signed...))
	return &SignedTx{
		RawHex:  strings.ToUpper(hex.EncodeToString(signed)),
		TxID:    strings.ToUpper(hex.EncodeToString(txid)),
		Account: EncodeAddress(p.account),
	}, nil
}
