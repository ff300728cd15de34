package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLayout(t *testing.T) {
	w := NewWriter(0)
	w.Write(5, 3)
	w.Write(1, 2)
	w.Write(0x1ff, 9)

	require.Equal(t, uint64(14), w.Len())
	// 101 01 111111111 00
	assert.Equal(t, []byte{0b10101111, 0b11111100}, w.Bytes())
}

func TestWriterZeroWidth(t *testing.T) {
	w := NewWriter(0)
	w.Write(0, 0)
	assert.Equal(t, uint64(0), w.Len())
	assert.Empty(t, w.Bytes())
}

func TestWriterPanicsOnOverflow(t *testing.T) {
	tests := []struct {
		name  string
		v     uint64
		width uint8
	}{
		{"4 in 2 bits", 4, 2},
		{"1 in 0 bits", 1, 0},
		{"256 in 8 bits", 256, 8},
		{"width 65", 0, 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(0)
			assert.Panics(t, func() { w.Write(tt.v, tt.width) })
		})
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	type item struct {
		v     uint64
		width uint8
	}
	items := []item{
		{0, 1}, {1, 1}, {3, 2}, {0, 7}, {127, 7}, {255, 8},
		{0xdeadbeef, 32}, {1 << 32, 33}, {^uint64(0), 64}, {6, 3}, {0, 5},
	}

	w := NewWriter(0)
	var offsets []uint64
	for _, it := range items {
		offsets = append(offsets, w.Len())
		w.Write(it.v, it.width)
	}

	r := NewReader(w.Bytes())
	for _, it := range items {
		got, err := r.Read(it.width)
		require.NoError(t, err)
		assert.Equal(t, it.v, got)
	}

	// random access, in reverse
	for i := len(items) - 1; i >= 0; i-- {
		got, err := r.ReadAt(offsets[i], items[i].width)
		require.NoError(t, err)
		assert.Equal(t, items[i].v, got)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{0xff})
	_, err := r.Read(9)
	require.ErrorIs(t, err, ErrShortRead)

	require.NoError(t, r.Seek(8))
	_, err = r.Read(1)
	require.ErrorIs(t, err, ErrShortRead)

	require.ErrorIs(t, r.Seek(9), ErrShortRead)

	v, err := r.Read(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
}

func TestReaderCloneIsIndependent(t *testing.T) {
	r := NewReader([]byte{0b10100000})
	a, err := r.Read(1)
	require.NoError(t, err)
	c := r.Clone()

	b, err := r.Read(1)
	require.NoError(t, err)
	cb, err := c.Read(2)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), a)
	assert.Equal(t, uint64(0), b)
	assert.Equal(t, uint64(1), cb)
	assert.Equal(t, uint64(2), r.Pos())
	assert.Equal(t, uint64(3), c.Pos())
}
