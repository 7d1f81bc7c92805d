package ethereum

import (
	"fmt"
	"math/big"

	"github.com/klingon-exchange/klingsign/internal/chain"
)

// transferSelector is keccak256("transfer(address,uint256)")[:4].
var transferSelector = []byte{0xa9, 0x05, 0x9c, 0xbb}

// TransferData encodes the call data for an ERC-20 transfer: the 4-byte
// selector followed by the recipient and amount, each left-padded to 32
// bytes.
func TransferData(to string, amount *big.Int) ([]byte, error) {
	recipient, err := AddressToBytes(to)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, 68)
	data = append(data, transferSelector...)
	data = append(data, leftPad32(recipient)...)
	data = append(data, leftPad32(amount.Bytes())...)
	return data, nil
}

// BuildTokenTransfer rewrites a request into an ERC-20 transfer of the
// registered token: value moves into the call data, the recipient becomes
// the token contract.
func BuildTokenTransfer(symbol string, req *TxRequest) (*TxRequest, error) {
	token := chain.GetToken(req.ChainID, symbol)
	if token == nil {
		return nil, fmt.Errorf("ethereum: token %s not registered on chain %d", symbol, req.ChainID)
	}
	if req.Value == nil {
		return nil, fmt.Errorf("ethereum: token transfer needs an amount")
	}

	data, err := TransferData(req.To, req.Value)
	if err != nil {
		return nil, err
	}

	out := *req
	out.To = token.Address
	out.Value = nil
	out.Data = data
	if out.GasLimit == 0 {
		out.GasLimit = DefaultTokenGasLimit
	}
	return &out, nil
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	padded := make([]byte, 32)
	copy(padded[32-len(b):], b)
	return padded
}
