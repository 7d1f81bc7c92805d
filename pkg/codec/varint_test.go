package codec

import (
	"bytes"
	"testing"
)

func TestAppendVarInt(t *testing.T) {
	tests := []struct {
		value uint64
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{252, []byte{0xfc}},
		{253, []byte{0xfd, 0xfd, 0x00}},
		{65535, []byte{0xfd, 0xff, 0xff}},
		{65536, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
		{4294967295, []byte{0xfe, 0xff, 0xff, 0xff, 0xff}},
		{4294967296, []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		got := AppendVarInt(nil, tt.value)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("AppendVarInt(%d): got %x, want %x", tt.value, got, tt.want)
		}
		if size := VarIntSize(tt.value); size != len(tt.want) {
			t.Errorf("VarIntSize(%d): got %d, want %d", tt.value, size, len(tt.want))
		}
	}
}

func TestAppendVarIntPreservesPrefix(t *testing.T) {
	buf := []byte{0xaa, 0xbb}
	got := AppendVarInt(buf, 253)
	want := []byte{0xaa, 0xbb, 0xfd, 0xfd, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

func TestAppendXRPLength(t *testing.T) {
	tests := []struct {
		value int
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{192, []byte{0xc0}},
		{193, []byte{0xc1, 0x00}},
		{194, []byte{0xc1, 0x01}},
		{12480, []byte{0xf0, 0xff}},
	}

	for _, tt := range tests {
		got, err := AppendXRPLength(nil, tt.value)
		if err != nil {
			t.Fatalf("AppendXRPLength(%d): %v", tt.value, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("AppendXRPLength(%d): got %x, want %x", tt.value, got, tt.want)
		}
	}

	if _, err := AppendXRPLength(nil, 12481); err == nil {
		t.Error("want error for length beyond two-byte range")
	}
	if _, err := AppendXRPLength(nil, -1); err == nil {
		t.Error("want error for negative length")
	}
}

func TestAppendCompactU16(t *testing.T) {
	tests := []struct {
		value uint16
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{65535, []byte{0xff, 0xff, 0x03}},
	}

	for _, tt := range tests {
		got := AppendCompactU16(nil, tt.value)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("AppendCompactU16(%d): got %x, want %x", tt.value, got, tt.want)
		}
	}
}
