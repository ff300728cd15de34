package bitstream

import "fmt"

// Writer appends fixed width unsigned values MSB first.
type Writer struct {
	buf []byte
	n   uint64
}

// NewWriter returns a writer with room for sizeHint bits before it needs to
// grow.
func NewWriter(sizeHint uint64) *Writer {
	return &Writer{buf: make([]byte, 0, (sizeHint+7)/8)}
}

// Write appends the low width bits of v and returns width.
//
// It panics if v needs more than width bits, or if width exceeds MaxWidth.
// Widths are derived from true maxima before encoding starts, so either
// condition means the caller computed a width wrongly.
func (w *Writer) Write(v uint64, width uint8) uint64 {
	if width > MaxWidth {
		panic(fmt.Sprintf("bitstream: width %d exceeds %d", width, MaxWidth))
	}
	if BitLength(v) > width {
		panic(fmt.Sprintf("bitstream: value %d does not fit in %d bits", v, width))
	}

	remaining := width
	for remaining > 0 {
		used := uint8(w.n & 7)
		if used == 0 {
			w.buf = append(w.buf, 0)
		}
		free := 8 - used
		take := free
		if remaining < take {
			take = remaining
		}
		// the next `take` bits of v, counting from the MSB of the width
		chunk := byte((v >> (remaining - take)) & (1<<take - 1))
		w.buf[len(w.buf)-1] |= chunk << (free - take)
		remaining -= take
		w.n += uint64(take)
	}
	return uint64(width)
}

// Len returns the number of bits written so far.
func (w *Writer) Len() uint64 { return w.n }

// Bytes returns the written bits, zero padded to a byte boundary. The slice
// aliases the writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf }
