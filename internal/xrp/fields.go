package xrp

import (
	"encoding/binary"

	"github.com/klingon-exchange/klingsign/pkg/codec"
)

// payment carries every field of a Payment transaction in decoded form.
type payment struct {
	sequence      uint32
	amount        uint64 // drops
	fee           uint64 // drops
	signingPubKey []byte
	signature     []byte // DER, empty until signed
	account       AccountID
	destination   AccountID
}

const (
	// paymentTxType is the TransactionType code for Payment.
	paymentTxType = 0
	// tfFullyCanonicalSig requires canonical (low-S) signatures on ledger.
	tfFullyCanonicalSig = 0x80000000
	// nativeAmountBit marks an Amount or Fee as XRP drops rather than an
	// issued currency. Bit 62, easy to get backwards.
	nativeAmountBit = 0x4000000000000000
)

// fieldDesc is one serialized field: its type-and-field tag and an
// emitter. Fields are listed once, in canonical ascending tag order, and
// the signature slot is skipped while producing the signing preimage.
type fieldDesc struct {
	tag        byte
	signedOnly bool
	emit       func(*payment, []byte) ([]byte, error)
}

var paymentFields = []fieldDesc{
	{tag: 0x12, emit: func(p *payment, b []byte) ([]byte, error) { // TransactionType
		return binary.BigEndian.AppendUint16(b, paymentTxType), nil
	}},
	{tag: 0x22, emit: func(p *payment, b []byte) ([]byte, error) { // Flags
		return binary.BigEndian.AppendUint32(b, tfFullyCanonicalSig), nil
	}},
	{tag: 0x24, emit: func(p *payment, b []byte) ([]byte, error) { // Sequence
		return binary.BigEndian.AppendUint32(b, p.sequence), nil
	}},
	{tag: 0x61, emit: func(p *payment, b []byte) ([]byte, error) { // Amount
		return binary.BigEndian.AppendUint64(b, p.amount|nativeAmountBit), nil
	}},
	{tag: 0x68, emit: func(p *payment, b []byte) ([]byte, error) { // Fee
		return binary.BigEndian.AppendUint64(b, p.fee|nativeAmountBit), nil
	}},
	{tag: 0x73, emit: func(p *payment, b []byte) ([]byte, error) { // SigningPubKey
		return appendVL(b, p.signingPubKey)
	}},
	{tag: 0x74, signedOnly: true, emit: func(p *payment, b []byte) ([]byte, error) { // TxnSignature
		return appendVL(b, p.signature)
	}},
	{tag: 0x81, emit: func(p *payment, b []byte) ([]byte, error) { // Account
		return appendVL(b, p.account[:])
	}},
	{tag: 0x83, emit: func(p *payment, b []byte) ([]byte, error) { // Destination
		return appendVL(b, p.destination[:])
	}},
}

func appendVL(b, value []byte) ([]byte, error) {
	b, err := codec.AppendXRPLength(b, len(value))
	if err != nil {
		return nil, err
	}
	return append(b, value...), nil
}

// serialize emits the payment in canonical field order. With the
// signature excluded the result is the signing preimage body.
func (p *payment) serialize(withSignature bool) ([]byte, error) {
	buf := make([]byte, 0, 128)
	for _, f := range paymentFields {
		if f.signedOnly && !withSignature {
			continue
		}
		buf = append(buf, f.tag)
		var err error
		buf, err = f.emit(p, buf)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}
