package codec

import (
	"errors"
	"fmt"
)

// ErrInvalidSignature reports a malformed compact ECDSA signature.
var ErrInvalidSignature = errors.New("codec: invalid signature")

// SignatureToDER converts a fixed 64-byte (r ‖ s) ECDSA signature into
// DER: SEQUENCE { INTEGER r, INTEGER s }. Each integer is minimally encoded
// and left-padded with 0x00 when its high bit is set, keeping it
// non-negative under DER rules.
func SignatureToDER(sig []byte) ([]byte, error) {
	if len(sig) != 64 {
		return nil, fmt.Errorf("%w: want 64 bytes, got %d", ErrInvalidSignature, len(sig))
	}

	r, err := derInteger(sig[:32])
	if err != nil {
		return nil, fmt.Errorf("%w: r is zero", ErrInvalidSignature)
	}
	s, err := derInteger(sig[32:])
	if err != nil {
		return nil, fmt.Errorf("%w: s is zero", ErrInvalidSignature)
	}

	body := make([]byte, 0, len(r)+len(s))
	body = append(body, r...)
	body = append(body, s...)

	out := make([]byte, 0, len(body)+2)
	out = append(out, 0x30, byte(len(body)))
	return append(out, body...), nil
}

// derInteger encodes a 32-byte big-endian scalar as a DER INTEGER tlv.
func derInteger(v []byte) ([]byte, error) {
	i := 0
	for i < len(v) && v[i] == 0 {
		i++
	}
	if i == len(v) {
		return nil, errors.New("zero integer")
	}
	trimmed := v[i:]

	pad := 0
	if trimmed[0]&0x80 != 0 {
		pad = 1
	}

	out := make([]byte, 0, 2+pad+len(trimmed))
	out = append(out, 0x02, byte(pad+len(trimmed)))
	if pad == 1 {
		out = append(out, 0x00)
	}
	return append(out, trimmed...), nil
}
