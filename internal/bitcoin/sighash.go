package bitcoin

import (
	"encoding/binary"

	"github.com/klingon-exchange/klingsign/pkg/codec"
	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

// sigHashes carries the three BIP143 midstate hashes shared by every
// input of one transaction under SIGHASH_ALL.
type sigHashes struct {
	prevouts  []byte
	sequences []byte
	outputs   []byte
}

func (t *transaction) midstates() sigHashes {
	var prevouts, sequences, outputs []byte
	for i := range t.inputs {
		in := &t.inputs[i]
		prevouts = append(prevouts, in.prevTxID[:]...)
		prevouts = binary.LittleEndian.AppendUint32(prevouts, in.vout)
		sequences = binary.LittleEndian.AppendUint32(sequences, in.sequence)
	}
	for _, out := range t.outputs {
		outputs = binary.LittleEndian.AppendUint64(outputs, out.value)
		outputs = codec.AppendVarInt(outputs, uint64(len(out.script)))
		outputs = append(outputs, out.script...)
	}

	return sigHashes{
		prevouts:  hashing.DoubleSha256(prevouts),
		sequences: hashing.DoubleSha256(sequences),
		outputs:   hashing.DoubleSha256(outputs),
	}
}

// signatureHash computes the BIP143 digest for one input. scriptCode is
// the unprefixed script; value is the spent output's amount. The input's
// stored sequence is used, not a transaction-wide constant, so mixed
// sequence values hash correctly.
func (t *transaction) signatureHash(hashes sigHashes, index int, scriptCode []byte, value uint64) []byte {
	in := &t.inputs[index]

	buf := make([]byte, 0, 192)
	buf = binary.LittleEndian.AppendUint32(buf, t.version)
	buf = append(buf, hashes.prevouts...)
	buf = append(buf, hashes.sequences...)
	buf = append(buf, in.prevTxID[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, in.vout)
	buf = codec.AppendVarInt(buf, uint64(len(scriptCode)))
	buf = append(buf, scriptCode...)
	buf = binary.LittleEndian.AppendUint64(buf, value)
	buf = binary.LittleEndian.AppendUint32(buf, in.sequence)
	buf = append(buf, hashes.outputs...)
	buf = binary.LittleEndian.AppendUint32(buf, t.lockTime)
	buf = binary.LittleEndian.AppendUint32(buf, sigHashAll)

	return hashing.DoubleSha256(buf)
}
