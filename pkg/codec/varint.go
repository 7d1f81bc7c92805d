package codec

import (
	"encoding/binary"
	"fmt"
)

// AppendVarInt appends a Bitcoin variable-length integer to b. Values below
// 0xfd occupy one byte; larger values get a discriminator byte followed by
// 2, 4, or 8 little-endian bytes.
func AppendVarInt(b []byte, v uint64) []byte {
	switch {
	case v < 0xfd:
		return append(b, byte(v))
	case v <= 0xffff:
		b = append(b, 0xfd)
		return binary.LittleEndian.AppendUint16(b, uint16(v))
	case v <= 0xffffffff:
		b = append(b, 0xfe)
		return binary.LittleEndian.AppendUint32(b, uint32(v))
	default:
		b = append(b, 0xff)
		return binary.LittleEndian.AppendUint64(b, v)
	}
}

// VarIntSize returns the serialized size of a Bitcoin VarInt.
func VarIntSize(v uint64) int {
	switch {
	case v < 0xfd:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// maxXRPFieldLen is the largest field length representable in the one- and
// two-byte forms of the XRPL length prefix. Longer fields never occur in a
// Payment transaction and are rejected.
const maxXRPFieldLen = 12480

// AppendXRPLength appends an XRP Ledger variable-length field prefix.
// Lengths up to 192 take one byte; 193-12480 take two.
func AppendXRPLength(b []byte, n int) ([]byte, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: negative field length %d", ErrInvalidLength, n)
	case n <= 192:
		return append(b, byte(n)), nil
	case n <= maxXRPFieldLen:
		n -= 193
		return append(b, byte(193+n>>8), byte(n&0xff)), nil
	default:
		return nil, fmt.Errorf("%w: field length %d exceeds %d", ErrInvalidLength, n, maxXRPFieldLen)
	}
}

// AppendCompactU16 appends a Solana compact-u16: 7-bit groups, little-endian,
// high bit set on every group but the last.
func AppendCompactU16(b []byte, v uint16) []byte {
	for {
		if v < 0x80 {
			return append(b, byte(v))
		}
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
}
