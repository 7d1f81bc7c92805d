package ethereum

import (
	"testing"

	"github.com/klingon-exchange/klingsign/internal/keys"
)

func TestPubKeyToAddress(t *testing.T) {
	keyOne := make([]byte, 32)
	keyOne[31] = 1
	priv, _ := keys.Secp256k1FromBytes(keyOne)

	got := PubKeyToAddress(priv.PubKey())
	want := "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestChecksumAddress(t *testing.T) {
	// EIP-55 reference vectors.
	tests := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}

	for _, want := range tests {
		if got := ChecksumAddress(want); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
		if !ValidChecksum(want) {
			t.Errorf("%s should pass checksum validation", want)
		}
	}
}

func TestValidChecksum(t *testing.T) {
	// All-lowercase is accepted as unchecksummed.
	if !ValidChecksum("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed") {
		t.Error("lowercase address should be accepted")
	}
	// One flipped case character must fail.
	if ValidChecksum("0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed") {
		t.Error("bad checksum should be rejected")
	}
	if ValidChecksum("0x1234") {
		t.Error("short address should be rejected")
	}
	if ValidChecksum("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaeg") {
		t.Error("non-hex address should be rejected")
	}
}

func TestAddressToBytes(t *testing.T) {
	raw, err := AddressToBytes("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(raw) != 20 {
		t.Errorf("length = %d, want 20", len(raw))
	}

	if _, err := AddressToBytes("0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"); err == nil {
		t.Error("want error for bad checksum")
	}
}
