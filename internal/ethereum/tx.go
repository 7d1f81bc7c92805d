package ethereum

import (
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/klingon-exchange/klingsign/internal/keys"
	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

var (
	ErrMissingGasPrice = errors.New("ethereum: gas price required")
	ErrMissingChainID  = errors.New("ethereum: chain id required for replay protection")
)

const (
	// DefaultGasLimit covers a plain ETH transfer.
	DefaultGasLimit = uint64(21000)
	// DefaultTokenGasLimit covers an ERC-20 transfer.
	DefaultTokenGasLimit = uint64(65000)
)

// TxRequest describes an unsigned legacy transaction. Value is in wei. A
// nil Value with non-empty Data is a contract call.
type TxRequest struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       string
	Value    *big.Int
	Data     []byte
	ChainID  uint64
}

// SignedTx is the immutable result of a successful build.
type SignedTx struct {
	RawHex string // 0x-prefixed signed RLP
	TxHash string // 0x-prefixed keccak of the signed RLP
}

// BuildAndSign encodes the EIP-155 nine-tuple, signs its keccak hash and
// returns the signed transaction. privKey is the raw 32-byte scalar.
func BuildAndSign(privKey []byte, req *TxRequest) (*SignedTx, error) {
	if req.GasPrice == nil {
		return nil, ErrMissingGasPrice
	}
	if req.ChainID == 0 {
		return nil, ErrMissingChainID
	}

	to, err := AddressToBytes(req.To)
	if err != nil {
		return nil, err
	}

	priv, err := keys.Secp256k1FromBytes(privKey)
	if err != nil {
		return nil, err
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		if len(req.Data) > 0 {
			gasLimit = DefaultTokenGasLimit
		} else {
			gasLimit = DefaultGasLimit
		}
	}

	// Signing preimage: [nonce, gasPrice, gasLimit, to, value, data,
	// chainId, 0, 0] per EIP-155.
	unsigned := rlpEncode([]interface{}{
		req.Nonce,
		req.GasPrice,
		gasLimit,
		to,
		req.Value,
		req.Data,
		req.ChainID,
		uint64(0),
		uint64(0),
	})
	digest := hashing.Keccak256(unsigned)

	// SignCompact yields header || r || s with header 27 + recid.
	compact := ecdsa.SignCompact(priv, digest, false)
	recID := uint64(compact[0] - 27)
	v := req.ChainID*2 + 35 + recID
	r := new(big.Int).SetBytes(compact[1:33])
	s := new(big.Int).SetBytes(compact[33:65])

	signed := rlpEncode([]interface{}{
		req.Nonce,
		req.GasPrice,
		gasLimit,
		to,
		req.Value,
		req.Data,
		v,
		r,
		s,
	})

	return &SignedTx{
		RawHex: "0x" + hex.EncodeToString(signed),
		TxHash: "0x" + hex.EncodeToString(hashing.Keccak256(signed)),
	}, nil
}
