package codec

import (
	"errors"
	"fmt"
	"strings"
)

// SegWit address errors.
var (
	ErrUnknownHRP         = errors.New("codec: unknown bech32 prefix")
	ErrUnsupportedVersion = errors.New("codec: unsupported witness version")
	ErrInvalidProgram     = errors.New("codec: invalid witness program")
)

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Checksum constants distinguishing BIP-173 bech32 (witness v0) from
// BIP-350 bech32m (witness v1+).
const (
	bech32Const  uint32 = 1
	bech32mConst uint32 = 0x2bc830a3
)

// DecodeSegWitAddress decodes a bech32/bech32m SegWit address, enforcing the
// expected human-readable prefix. The first data symbol is the witness
// version (0-16) and is not bit-regrouped; the remainder is regrouped 5→8
// bits without padding and must land on a 20- or 32-byte program.
func DecodeSegWitAddress(addr, expectedHRP string) (byte, []byte, error) {
	hrp, data, err := bech32Decode(addr)
	if err != nil {
		return 0, nil, err
	}
	if hrp != expectedHRP {
		return 0, nil, fmt.Errorf("%w: got %q, want %q", ErrUnknownHRP, hrp, expectedHRP)
	}
	// At minimum a version symbol plus the six checksum symbols.
	if len(data) < 7 {
		return 0, nil, fmt.Errorf("%w: empty witness program", ErrInvalidProgram)
	}

	version := data[0]
	if version > 16 {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	wantConst := bech32Const
	if version > 0 {
		wantConst = bech32mConst
	}
	if bech32Polymod(append(bech32HRPExpand(hrp), data...)) != wantConst {
		return 0, nil, ErrBadChecksum
	}

	program, err := convertBits(data[1:len(data)-6], 5, 8, false)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}
	if len(program) != 20 && len(program) != 32 {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrInvalidProgram, len(program))
	}
	return version, program, nil
}

// EncodeSegWitAddress encodes a witness version and program as a bech32
// (v0) or bech32m (v1+) address under hrp.
func EncodeSegWitAddress(hrp string, version byte, program []byte) (string, error) {
	if version > 16 {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if len(program) != 20 && len(program) != 32 {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidProgram, len(program))
	}

	grouped, err := convertBits(program, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}
	data := append([]byte{version}, grouped...)

	checksumConst := bech32Const
	if version > 0 {
		checksumConst = bech32mConst
	}

	// Checksum over hrp-expansion, data, and six zero symbols.
	values := append(bech32HRPExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	polymod := bech32Polymod(values) ^ checksumConst

	var sb strings.Builder
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, v := range data {
		sb.WriteByte(bech32Charset[v])
	}
	for i := 0; i < 6; i++ {
		sb.WriteByte(bech32Charset[(polymod>>uint(5*(5-i)))&31])
	}
	return sb.String(), nil
}

// bech32Decode splits at the last '1' and maps the data part through the
// charset. It does not verify the checksum; callers check it against the
// constant for the witness version in play.
func bech32Decode(s string) (string, []byte, error) {
	if len(s) < 8 || len(s) > 90 {
		return "", nil, fmt.Errorf("%w: %d characters", ErrInvalidLength, len(s))
	}

	// Mixed case is invalid; all-uppercase is folded.
	lower := strings.ToLower(s)
	if s != lower && s != strings.ToUpper(s) {
		return "", nil, fmt.Errorf("%w: mixed case", ErrInvalidCharacter)
	}
	s = lower

	sep := strings.LastIndexByte(s, '1')
	if sep < 1 || sep+7 > len(s) {
		return "", nil, fmt.Errorf("%w: bad separator position", ErrInvalidLength)
	}

	hrp := s[:sep]
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return "", nil, fmt.Errorf("%w: HRP byte 0x%02x", ErrInvalidCharacter, hrp[i])
		}
	}

	dataPart := s[sep+1:]
	data := make([]byte, len(dataPart))
	for i := 0; i < len(dataPart); i++ {
		idx := strings.IndexByte(bech32Charset, dataPart[i])
		if idx < 0 {
			return "", nil, fmt.Errorf("%w: %q in data part", ErrInvalidCharacter, dataPart[i])
		}
		data[i] = byte(idx)
	}
	return hrp, data, nil
}

func bech32HRPExpand(hrp string) []byte {
	out := make([]byte, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		out[i] = hrp[i] >> 5
		out[i+len(hrp)+1] = hrp[i] & 31
	}
	out[len(hrp)] = 0
	return out
}

func bech32Polymod(values []byte) uint32 {
	gen := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		b := chk >> 25
		chk = ((chk & 0x1ffffff) << 5) ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

// convertBits regroups data between bit widths. pad is true when encoding
// (8→5) and false when decoding (5→8), where leftover bits must be zero.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	acc := uint32(0)
	bits := uint(0)
	maxv := uint32(1<<toBits) - 1
	out := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, fmt.Errorf("value %d exceeds %d bits", b, fromBits)
		}
		acc = acc<<fromBits | uint32(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			out = append(out, byte((acc>>bits)&maxv))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, byte((acc<<(toBits-bits))&maxv))
		}
	} else if bits >= fromBits || (acc<<(toBits-bits))&maxv != 0 {
		return nil, errors.New("invalid padding bits")
	}
	return out, nil
}
