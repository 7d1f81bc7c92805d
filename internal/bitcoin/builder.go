package bitcoin

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/klingon-exchange/klingsign/internal/chain"
	"github.com/klingon-exchange/klingsign/internal/keys"
	"github.com/klingon-exchange/klingsign/pkg/codec"
	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

// BuildAndSign builds a P2WPKH payment from the request, signs every
// input with the WIF key and returns the broadcast-ready transaction.
// Inputs are caller-selected; the builder only checks sufficiency.
func BuildAndSign(wif string, req *TxRequest, params *chain.Params) (*SignedTx, error) {
	if len(req.Inputs) == 0 {
		return nil, ErrNoInputs
	}

	priv, compressed, err := keys.DecodeWIF(wif, params.WIF)
	if err != nil {
		return nil, err
	}
	if !compressed {
		return nil, ErrUncompressedKey
	}
	pubKey := priv.PubKey().SerializeCompressed()
	keyHash := hashing.Hash160(pubKey)

	destScript, err := outputScriptForAddress(req.To, params.Bech32HRP)
	if err != nil {
		return nil, fmt.Errorf("bitcoin: invalid destination address: %w", err)
	}

	tx := &transaction{version: txVersion, lockTime: req.LockTime}

	var totalInput uint64
	for _, utxo := range req.Inputs {
		in, err := parseInput(utxo)
		if err != nil {
			return nil, err
		}
		tx.inputs = append(tx.inputs, in)
		if utxo.Value > math.MaxUint64-totalInput {
			return nil, ErrValueOverflow
		}
		totalInput += utxo.Value
	}

	fee := req.Fee
	if fee == 0 {
		// Assume the transaction will carry a change output. If change
		// later folds into the fee the estimate is slightly generous.
		fee = EstimateFee(len(req.Inputs), 2, req.FeeRate)
	}

	// Amount+fee itself can wrap, so keep the comparison subtractive.
	if totalInput < fee || totalInput-fee < req.Amount {
		return nil, fmt.Errorf("%w: have %d, need %d plus fee %d", ErrInsufficientFunds, totalInput, req.Amount, fee)
	}

	tx.outputs = append(tx.outputs, txOut{value: req.Amount, script: destScript})

	change := totalInput - req.Amount - fee
	if change > params.DustLimit {
		if req.ChangeAddress == "" {
			return nil, ErrNoChangeAddress
		}
		changeScript, err := outputScriptForAddress(req.ChangeAddress, params.Bech32HRP)
		if err != nil {
			return nil, fmt.Errorf("bitcoin: invalid change address: %w", err)
		}
		tx.outputs = append(tx.outputs, txOut{value: change, script: changeScript})
	} else {
		// Sub-dust change is folded into the fee.
		fee += change
		change = 0
	}

	scriptCode := p2pkhScriptCode(keyHash)
	hashes := tx.midstates()
	for i := range tx.inputs {
		digest := tx.signatureHash(hashes, i, scriptCode, req.Inputs[i].Value)

		compact := ecdsa.SignCompact(priv, digest, true)
		der, err := codec.SignatureToDER(compact[1:])
		if err != nil {
			return nil, fmt.Errorf("bitcoin: encode signature for input %d: %w", i, err)
		}

		tx.inputs[i].witness = [][]byte{append(der, sigHashAll), pubKey}
	}

	return &SignedTx{
		RawHex: hex.EncodeToString(tx.serialize(true)),
		TxID:   tx.txid(),
		VSize:  tx.vsize(),
		Fee:    fee,
		Change: change,
	}, nil
}
