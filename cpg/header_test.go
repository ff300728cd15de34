package cpg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderV1RoundTrip(t *testing.T) {
	h := HeaderV1{
		Forward:      [2]Widths{{Degree: 3, Delta: 4}, {Degree: 2, Delta: 7}},
		Backward:     [2]Widths{{Degree: 1, Delta: 1}, {}},
		IndexBits:    9,
		SizeBits:     5,
		ClusterCount: 0x01020304,
	}
	region := make([]byte, HeaderBytesV1)
	require.NoError(t, EncodeHeaderV1(region, h))
	assert.Equal(t, []byte{3, 4, 2, 7, 1, 1, 0, 0, 9, 5, 1, 2, 3, 4}, region)

	got, err := DecodeHeaderV1(region)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHeaderV1Rejects(t *testing.T) {
	valid := HeaderV1{IndexBits: 1, SizeBits: 1}

	tests := []struct {
		name   string
		mutate func(h *HeaderV1)
	}{
		{"degree without delta", func(h *HeaderV1) { h.Forward[Singleton] = Widths{Degree: 2} }},
		{"delta without degree", func(h *HeaderV1) { h.Backward[MultiVersion] = Widths{Delta: 2} }},
		{"degree too wide", func(h *HeaderV1) { h.Forward[MultiVersion] = Widths{Degree: 65, Delta: 1} }},
		{"first delta too wide", func(h *HeaderV1) { h.Backward[Singleton] = Widths{Degree: 1, Delta: 64} }},
		{"zero index bits", func(h *HeaderV1) { h.IndexBits = 0 }},
		{"zero size bits", func(h *HeaderV1) { h.SizeBits = 0 }},
		{"size bits too wide", func(h *HeaderV1) { h.SizeBits = 33 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.mutate(&h)
			err := EncodeHeaderV1(make([]byte, HeaderBytesV1), h)
			require.ErrorIs(t, err, ErrBadWidth)
		})
	}

	_, err := DecodeHeaderV1(make([]byte, HeaderBytesV1-1))
	require.ErrorIs(t, err, ErrHeaderTooShort)
	require.ErrorIs(t, EncodeHeaderV1(make([]byte, 3), valid), ErrHeaderTooShort)
}

func TestIndexBitsFor(t *testing.T) {
	assert.Equal(t, uint64(0), IndexBitsFor(0, 8, 8))
	assert.Equal(t, uint64(3), IndexBitsFor(1, 7, 3))
	assert.Equal(t, uint64(4*3+3*7), IndexBitsFor(4, 7, 3))

	h := HeaderV1{IndexBits: 7, SizeBits: 3, ClusterCount: 4}
	assert.Equal(t, uint64(5), h.IndexBytes())
}
