// Package ethereum builds and signs legacy EIP-155 transactions. The RLP
// encoding is produced directly so the emitted bytes match the wire
// format exactly.
package ethereum

import "math/big"

// RLP encoding rules:
// https://ethereum.org/en/developers/docs/data-structures-and-encoding/rlp/

// rlpEncode encodes a value using RLP. Supported kinds are byte strings,
// uint64, *big.Int and lists of those.
func rlpEncode(data interface{}) []byte {
	switch v := data.(type) {
	case []byte:
		return rlpEncodeBytes(v)
	case uint64:
		return rlpEncodeUint(v)
	case *big.Int:
		if v == nil || v.Sign() == 0 {
			return rlpEncodeBytes(nil)
		}
		return rlpEncodeBytes(v.Bytes())
	case []interface{}:
		return rlpEncodeList(v)
	default:
		return nil
	}
}

func rlpEncodeBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte{0x80}
	}
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	if len(b) < 56 {
		return append([]byte{byte(0x80 + len(b))}, b...)
	}
	lenBytes := encodeLength(uint64(len(b)))
	prefix := append([]byte{byte(0xb7 + len(lenBytes))}, lenBytes...)
	return append(prefix, b...)
}

// rlpEncodeUint encodes an integer as its minimal big-endian bytes. Zero
// is the empty string, a single 0x80.
func rlpEncodeUint(n uint64) []byte {
	if n == 0 {
		return []byte{0x80}
	}
	var buf [8]byte
	i := 7
	for n > 0 {
		buf[i] = byte(n & 0xff)
		n >>= 8
		i--
	}
	return rlpEncodeBytes(buf[i+1:])
}

func rlpEncodeList(items []interface{}) []byte {
	var encoded []byte
	for _, item := range items {
		encoded = append(encoded, rlpEncode(item)...)
	}
	if len(encoded) < 56 {
		return append([]byte{byte(0xc0 + len(encoded))}, encoded...)
	}
	lenBytes := encodeLength(uint64(len(encoded)))
	prefix := append([]byte{byte(0xf7 + len(lenBytes))}, lenBytes...)
	return append(prefix, encoded...)
}

func encodeLength(n uint64) []byte {
	if n < 256 {
		return []byte{byte(n)}
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte(n & 0xff)}, buf...)
		n >>= 8
	}
	return buf
}
