package ethereum

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"
	"testing"
)

func TestRLPEncodeUint(t *testing.T) {
	tests := []struct {
		value uint64
		want  string
	}{
		{0, "80"},
		{1, "01"},
		{15, "0f"},
		{127, "7f"},
		{128, "8180"},
		{1024, "820400"},
		{0xffffff, "83ffffff"},
	}

	for _, tt := range tests {
		got := rlpEncodeUint(tt.value)
		if hex.EncodeToString(got) != tt.want {
			t.Errorf("rlpEncodeUint(%d) = %x, want %s", tt.value, got, tt.want)
		}
	}
}

func TestRLPEncodeBytes(t *testing.T) {
	longString := strings.Repeat("a", 56)

	tests := []struct {
		name  string
		value []byte
		want  string
	}{
		{"empty", nil, "80"},
		{"single low byte", []byte{0x7f}, "7f"},
		{"single high byte", []byte{0x80}, "8180"},
		{"dog", []byte("dog"), "83646f67"},
		{"55 bytes", bytes.Repeat([]byte{0x61}, 55), "b7" + strings.Repeat("61", 55)},
		{"56 bytes", []byte(longString), "b838" + hex.EncodeToString([]byte(longString))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rlpEncodeBytes(tt.value)
			if hex.EncodeToString(got) != tt.want {
				t.Errorf("got %x, want %s", got, tt.want)
			}
		})
	}
}

func TestRLPEncodeList(t *testing.T) {
	// ["cat", "dog"] from the RLP reference examples.
	got := rlpEncode([]interface{}{[]byte("cat"), []byte("dog")})
	if hex.EncodeToString(got) != "c88363617483646f67" {
		t.Errorf("got %x", got)
	}

	if empty := rlpEncode([]interface{}{}); hex.EncodeToString(empty) != "c0" {
		t.Errorf("empty list = %x, want c0", empty)
	}
}

func TestRLPEncodeBigInt(t *testing.T) {
	if got := rlpEncode(big.NewInt(0)); hex.EncodeToString(got) != "80" {
		t.Errorf("zero big.Int = %x, want 80", got)
	}
	if got := rlpEncode((*big.Int)(nil)); hex.EncodeToString(got) != "80" {
		t.Errorf("nil big.Int = %x, want 80", got)
	}
	if got := rlpEncode(big.NewInt(1024)); hex.EncodeToString(got) != "820400" {
		t.Errorf("1024 = %x, want 820400", got)
	}
}
