package helpers

import (
	"bytes"
	"testing"
)

func TestHexToBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{"plain", "deadbeef", []byte{0xde, 0xad, 0xbe, 0xef}, false},
		{"prefixed", "0xdeadbeef", []byte{0xde, 0xad, 0xbe, 0xef}, false},
		{"empty", "", []byte{}, false},
		{"odd length", "abc", nil, true},
		{"not hex", "zz", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !bytes.Equal(got, tt.want) {
				t.Errorf("got %x, want %x", got, tt.want)
			}
		})
	}
}

func TestBytesToHex(t *testing.T) {
	if got := BytesToHex([]byte{0xab, 0xcd}); got != "0xabcd" {
		t.Errorf("got %s, want 0xabcd", got)
	}
}

func TestParseBigInt(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"1000", 1000, true},
		{"0x3e8", 1000, true},
		{"0", 0, true},
		{"nope", 0, false},
		{"0xzz", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseBigInt(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseBigInt(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got.Int64() != tt.want {
			t.Errorf("ParseBigInt(%q) = %s, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   uint64
		decimals uint8
		want     string
	}{
		{100000000, 8, "1"},
		{150000000, 8, "1.5"},
		{1, 8, "0.00000001"},
		{0, 8, "0"},
		{123, 0, "123"},
		{1000000, 6, "1"},
		{1500000000, 9, "1.5"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.amount, tt.decimals); got != tt.want {
			t.Errorf("FormatAmount(%d, %d) = %s, want %s", tt.amount, tt.decimals, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		decimals uint8
		want     uint64
		wantErr  bool
	}{
		{"1", 8, 100000000, false},
		{"1.5", 8, 150000000, false},
		{"0.00000001", 8, 1, false},
		{"0", 8, 0, false},
		{"", 8, 0, true},
		{"1.2.3", 8, 0, true},
		{"abc", 8, 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input, tt.decimals)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAmount(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 546, 100000000, 2100000000000000} {
		s := FormatAmount(v, 8)
		back, err := ParseAmount(s, 8)
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", v, err)
		}
		if back != v {
			t.Errorf("round trip %d -> %s -> %d", v, s, back)
		}
	}
}
