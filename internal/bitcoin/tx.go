// Package bitcoin builds and signs version-2 P2WPKH transactions for
// Bitcoin and its SegWit forks. Serialization and the BIP143 signature
// hash are produced directly so the emitted bytes match the wire format
// exactly.
package bitcoin

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/klingon-exchange/klingsign/pkg/codec"
	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

var (
	ErrNoInputs          = errors.New("bitcoin: no inputs provided")
	ErrInsufficientFunds = errors.New("bitcoin: insufficient funds")
	ErrNoChangeAddress   = errors.New("bitcoin: change exceeds dust but no change address given")
	ErrUncompressedKey   = errors.New("bitcoin: P2WPKH requires a compressed key")
	ErrValueOverflow     = errors.New("bitcoin: input values overflow")
)

const (
	// rbfSequence opts every input into replace-by-fee.
	rbfSequence = 0xfffffffd
	sigHashAll  = 1
	txVersion   = 2
)

// UTXO identifies a previous output being spent. TxID is the display
// (big-endian) hex form. A zero Sequence means the RBF default.
type UTXO struct {
	TxID     string
	Vout     uint32
	Value    uint64
	Sequence uint32
}

// TxRequest describes an unsigned payment. Fee, when non-zero, is used as
// given; otherwise it is estimated from FeeRate.
type TxRequest struct {
	Inputs        []UTXO
	To            string
	ChangeAddress string
	Amount        uint64
	FeeRate       uint64
	Fee           uint64
	LockTime      uint32
}

// SignedTx is the immutable result of a successful build.
type SignedTx struct {
	RawHex string
	TxID   string
	VSize  int
	Fee    uint64
	Change uint64
}

// txIn holds a parsed input. prevTxID is in wire order (reversed display
// hex).
type txIn struct {
	prevTxID [32]byte
	vout     uint32
	sequence uint32
	witness  [][]byte
}

type txOut struct {
	value  uint64
	script []byte
}

type transaction struct {
	version  uint32
	inputs   []txIn
	outputs  []txOut
	lockTime uint32
}

// EstimateFee returns the fee for a transaction of the given shape,
// assuming P2WPKH inputs and outputs: 68 vbytes per input, 31 per output,
// 10 of fixed overhead.
func EstimateFee(inputCount, outputCount int, feeRate uint64) uint64 {
	return uint64(68*inputCount+31*outputCount+10) * feeRate
}

func parseInput(u UTXO) (txIn, error) {
	raw, err := hex.DecodeString(u.TxID)
	if err != nil {
		return txIn{}, fmt.Errorf("bitcoin: invalid txid %q: %w", u.TxID, err)
	}
	if len(raw) != 32 {
		return txIn{}, fmt.Errorf("bitcoin: txid %q is %d bytes, want 32", u.TxID, len(raw))
	}

	in := txIn{vout: u.Vout, sequence: u.Sequence}
	if in.sequence == 0 {
		in.sequence = rbfSequence
	}
	// Display txids are byte-reversed relative to the wire.
	for i := 0; i < 32; i++ {
		in.prevTxID[i] = raw[31-i]
	}
	return in, nil
}

// witnessScript builds the scriptPubKey for a witness program: the
// version opcode followed by a direct push of the program.
func witnessScript(version byte, program []byte) []byte {
	script := make([]byte, 0, len(program)+2)
	if version == 0 {
		script = append(script, 0x00)
	} else {
		script = append(script, 0x50+version)
	}
	script = append(script, byte(len(program)))
	return append(script, program...)
}

// p2pkhScriptCode is the BIP143 scriptCode for a P2WPKH input:
// OP_DUP OP_HASH160 <keyhash> OP_EQUALVERIFY OP_CHECKSIG.
func p2pkhScriptCode(keyHash []byte) []byte {
	script := make([]byte, 0, 25)
	script = append(script, 0x76, 0xa9, 0x14)
	script = append(script, keyHash...)
	return append(script, 0x88, 0xac)
}

func outputScriptForAddress(addr, hrp string) ([]byte, error) {
	version, program, err := codec.DecodeSegWitAddress(addr, hrp)
	if err != nil {
		return nil, err
	}
	return witnessScript(version, program), nil
}

// serialize emits the transaction. With witness data the marker and flag
// bytes and per-input witness stacks are included; without, the result is
// the txid preimage.
func (t *transaction) serialize(withWitness bool) []byte {
	buf := make([]byte, 0, 256)
	buf = binary.LittleEndian.AppendUint32(buf, t.version)

	if withWitness {
		buf = append(buf, 0x00, 0x01)
	}

	buf = codec.AppendVarInt(buf, uint64(len(t.inputs)))
	for i := range t.inputs {
		in := &t.inputs[i]
		buf = append(buf, in.prevTxID[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, in.vout)
		buf = append(buf, 0x00) // empty scriptSig
		buf = binary.LittleEndian.AppendUint32(buf, in.sequence)
	}

	buf = codec.AppendVarInt(buf, uint64(len(t.outputs)))
	for _, out := range t.outputs {
		buf = binary.LittleEndian.AppendUint64(buf, out.value)
		buf = codec.AppendVarInt(buf, uint64(len(out.script)))
		buf = append(buf, out.script...)
	}

	if withWitness {
		for i := range t.inputs {
			witness := t.inputs[i].witness
			buf = codec.AppendVarInt(buf, uint64(len(witness)))
			for _, item := range witness {
				buf = codec.AppendVarInt(buf, uint64(len(item)))
				buf = append(buf, item...)
			}
		}
	}

	return binary.LittleEndian.AppendUint32(buf, t.lockTime)
}

// txid is the reversed double SHA-256 of the non-witness serialization.
func (t *transaction) txid() string {
	digest := hashing.DoubleSha256(t.serialize(false))
	for i, j := 0, len(digest)-1; i < j; i, j = i+1, j-1 {
		digest[i], digest[j] = digest[j], digest[i]
	}
	return hex.EncodeToString(digest)
}

// vsize is ceil((3*base + total) / 4) per BIP141 weight accounting.
func (t *transaction) vsize() int {
	base := len(t.serialize(false))
	total := len(t.serialize(true))
	return (3*base + total + 3) / 4
}
