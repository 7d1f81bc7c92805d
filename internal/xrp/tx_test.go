package xrp

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/klingon-exchange/klingsign/internal/keys"
	"github.com/klingon-exchange/klingsign/pkg/hashing"
)

var testKey = func() []byte {
	k := make([]byte, 32)
	k[31] = 1
	return k
}()

func paymentRequest() *PaymentRequest {
	return &PaymentRequest{
		Sequence:    7,
		Amount:      1_000_000,
		Fee:         12,
		Destination: genesisAddress,
	}
}

func testPayment(t *testing.T) *payment {
	t.Helper()
	priv, err := keys.Secp256k1FromBytes(testKey)
	if err != nil {
		t.Fatal(err)
	}
	destination, err := DecodeAddress(genesisAddress)
	if err != nil {
		t.Fatal(err)
	}
	return &payment{
		sequence:      7,
		amount:        1_000_000,
		fee:           12,
		signingPubKey: priv.PubKey().SerializeCompressed(),
		account:       AccountIDFromPubKey(priv.PubKey()),
		destination:   destination,
	}
}

func TestSerializeFieldOrder(t *testing.T) {
	p := testPayment(t)
	p.signature = bytes.Repeat([]byte{0x30}, 71)

	blob, err := p.serialize(true)
	if err != nil {
		t.Fatal(err)
	}

	// Walk the blob checking each tag appears at its canonical position.
	// VL fields are one tag byte, one length byte, then the value.
	wantTags := []struct {
		tag  byte
		size int // value bytes, -1 for VL
	}{
		{0x12, 2}, {0x22, 4}, {0x24, 4}, {0x61, 8}, {0x68, 8},
		{0x73, -1}, {0x74, -1}, {0x81, -1}, {0x83, -1},
	}

	offset := 0
	for _, want := range wantTags {
		if blob[offset] != want.tag {
			t.Fatalf("tag at offset %d = %#x, want %#x", offset, blob[offset], want.tag)
		}
		offset++
		if want.size >= 0 {
			offset += want.size
		} else {
			offset += 1 + int(blob[offset])
		}
	}
	if offset != len(blob) {
		t.Errorf("trailing bytes after last field: %d != %d", offset, len(blob))
	}
}

func TestSerializeNativeAmountBit(t *testing.T) {
	blob, err := testPayment(t).serialize(false)
	if err != nil {
		t.Fatal(err)
	}

	// Amount value sits after the 0x61 tag: 1 + 2 + 1 + 4 + 1 + 4 + 1.
	amount := binary.BigEndian.Uint64(blob[14:22])
	if amount != 0x40000000000F4240 {
		t.Errorf("amount field = %#016x, want 0x40000000000F4240", amount)
	}

	fee := binary.BigEndian.Uint64(blob[23:31])
	if fee != 0x400000000000000C {
		t.Errorf("fee field = %#016x, want 0x400000000000000C", fee)
	}
}

func TestSerializeExcludesSignatureWhenUnsigned(t *testing.T) {
	p := testPayment(t)
	unsigned, err := p.serialize(false)
	if err != nil {
		t.Fatal(err)
	}

	// Signed form adds exactly tag + length + signature bytes.
	p.signature = []byte{0x01}
	signed, err := p.serialize(true)
	if err != nil {
		t.Fatal(err)
	}
	if len(signed) != len(unsigned)+3 {
		t.Errorf("signed length %d, unsigned %d, want +3", len(signed), len(unsigned))
	}
}

func TestBuildAndSign(t *testing.T) {
	signed, err := BuildAndSign(testKey, paymentRequest())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if signed.RawHex != strings.ToUpper(signed.RawHex) {
		t.Error("raw hex should be uppercase")
	}
	if len(signed.TxID) != 64 {
		t.Errorf("txid length = %d, want 64", len(signed.TxID))
	}
	if !strings.HasPrefix(signed.Account, "r") {
		t.Errorf("account %s should start with r", signed.Account)
	}

	// The txid is the TXN-prefixed hash of the signed blob.
	blob, err := hex.DecodeString(signed.RawHex)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.ToUpper(hex.EncodeToString(hashing.Sha256(append([]byte{0x54, 0x58, 0x4e, 0x00}, blob...))))
	if signed.TxID != want {
		t.Errorf("txid = %s, want %s", signed.TxID, want)
	}
}

func TestBuildAndSignSignatureVerifies(t *testing.T) {
	signed, err := BuildAndSign(testKey, paymentRequest())
	if err != nil {
		t.Fatal(err)
	}

	// Extract the DER signature field from the blob and verify it over
	// the STX-prefixed unsigned body.
	priv, _ := keys.Secp256k1FromBytes(testKey)
	p := testPayment(t)
	unsigned, err := p.serialize(false)
	if err != nil {
		t.Fatal(err)
	}
	digest := hashing.Sha256(append([]byte{0x53, 0x54, 0x58, 0x00}, unsigned...))

	blob, _ := hex.DecodeString(signed.RawHex)
	// TxnSignature follows the SigningPubKey VL field. Fixed-width fields
	// end at offset 31.
	offset := 31
	if blob[offset] != 0x73 {
		t.Fatalf("expected SigningPubKey tag at %d, got %#x", offset, blob[offset])
	}
	offset += 2 + int(blob[offset+1])
	if blob[offset] != 0x74 {
		t.Fatalf("expected TxnSignature tag at %d, got %#x", offset, blob[offset])
	}
	sigLen := int(blob[offset+1])
	der := blob[offset+2 : offset+2+sigLen]

	sig, err := dcrecdsa.ParseDERSignature(der)
	if err != nil {
		t.Fatalf("signature is not valid DER: %v", err)
	}
	if !sig.Verify(digest, priv.PubKey()) {
		t.Error("signature does not verify over the signing hash")
	}
}

func TestBuildAndSignDeterministic(t *testing.T) {
	first, err := BuildAndSign(testKey, paymentRequest())
	if err != nil {
		t.Fatal(err)
	}
	second, err := BuildAndSign(testKey, paymentRequest())
	if err != nil {
		t.Fatal(err)
	}
	if first.RawHex != second.RawHex || first.TxID != second.TxID {
		t.Error("signing the same request twice gave different bytes")
	}
}

func TestBuildAndSignErrors(t *testing.T) {
	t.Run("amount too large", func(t *testing.T) {
		req := paymentRequest()
		req.Amount = maxDrops
		if _, err := BuildAndSign(testKey, req); !errors.Is(err, ErrAmountTooLarge) {
			t.Errorf("got %v, want ErrAmountTooLarge", err)
		}
	})

	t.Run("fee too large", func(t *testing.T) {
		req := paymentRequest()
		req.Fee = maxDrops
		if _, err := BuildAndSign(testKey, req); !errors.Is(err, ErrAmountTooLarge) {
			t.Errorf("got %v, want ErrAmountTooLarge", err)
		}
	})

	t.Run("bad destination", func(t *testing.T) {
		req := paymentRequest()
		req.Destination = "rNotARealAddress"
		if _, err := BuildAndSign(testKey, req); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("got %v, want ErrInvalidAddress", err)
		}
	})

	t.Run("bad key", func(t *testing.T) {
		if _, err := BuildAndSign(make([]byte, 31), paymentRequest()); err == nil {
			t.Error("want error for short key")
		}
	})
}
