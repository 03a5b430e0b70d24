package main

import (
	"bytes"
	"math"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	tests := []struct {
		value    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{25565, []byte{0xDD, 0xC7, 0x01}},
		{0x12345678, []byte{0xF8, 0xAC, 0xD1, 0x91, 0x01}},
		{math.MaxInt32, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{math.MinInt32, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			var buf bytes.Buffer
			WriteVarInt(&buf, tt.value)
			if !bytes.Equal(buf.Bytes(), tt.expected) {
				t.Errorf("WriteVarInt(%d) = %v, want %v", tt.value, buf.Bytes(), tt.expected)
			}

			r := bytes.NewReader(buf.Bytes())
			got, err := ReadVarInt(r)
			if err != nil {
				t.Fatalf("ReadVarInt error: %v", err)
			}
			if got != tt.value {
				t.Errorf("ReadVarInt = %d, want %d", got, tt.value)
			}
		})
	}
}

// TestVarIntSizeInvariant covers spec.md §8's "for every n, length(encode(n))
// == size_of(n)".
func TestVarIntSizeInvariant(t *testing.T) {
	values := []int32{0, 1, -1, 127, 128, 25565, 2097151, math.MaxInt32, math.MinInt32, 0x12345678}
	for _, v := range values {
		var buf bytes.Buffer
		WriteVarInt(&buf, v)
		if got, want := buf.Len(), VarintSize(v); got != want {
			t.Errorf("VarintSize(%d) = %d, encoded length = %d", v, want, got)
		}
	}
}

func TestVarIntTooBig(t *testing.T) {
	r := bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})
	if _, err := ReadVarInt(r); err != errVarintTooBig {
		t.Errorf("expected errVarintTooBig, got %v", err)
	}
}
