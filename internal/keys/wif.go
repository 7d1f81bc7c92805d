package keys

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/klingon-exchange/klingsign/pkg/codec"
)

var ErrWrongWIFVersion = errors.New("keys: WIF version byte does not match chain")

// EncodeWIF serializes a private key in wallet import format under the
// given chain version byte. Compressed keys carry a trailing 0x01 so the
// decoder knows which public key serialization the key pairs with.
func EncodeWIF(priv *btcec.PrivateKey, version byte, compressed bool) string {
	payload := make([]byte, 0, 34)
	payload = append(payload, version)
	payload = append(payload, priv.Serialize()...)
	if compressed {
		payload = append(payload, 0x01)
	}
	return codec.Base58CheckEncode(payload)
}

// DecodeWIF parses a WIF string and checks its version byte against the
// chain the caller is signing for. It returns the key and whether the WIF
// marked it compressed.
func DecodeWIF(wif string, version byte) (*btcec.PrivateKey, bool, error) {
	payload, err := codec.Base58CheckDecode(wif)
	if err != nil {
		return nil, false, fmt.Errorf("keys: decode WIF: %w", err)
	}
	defer Zeroize(payload)

	var compressed bool
	switch len(payload) {
	case 33:
		compressed = false
	case 34:
		if payload[33] != 0x01 {
			return nil, false, fmt.Errorf("%w: bad compression marker %#x", codec.ErrInvalidLength, payload[33])
		}
		compressed = true
	default:
		return nil, false, fmt.Errorf("%w: WIF payload is %d bytes", codec.ErrInvalidLength, len(payload))
	}

	if payload[0] != version {
		return nil, false, fmt.Errorf("%w: got %#x, want %#x", ErrWrongWIFVersion, payload[0], version)
	}

	priv, err := Secp256k1FromBytes(payload[1:33])
	if err != nil {
		return nil, false, err
	}
	return priv, compressed, nil
}
