package bitstream

import (
	"errors"
	"fmt"
)

var (
	ErrShortRead = errors.New("bitstream: read past end of stream")
	ErrBadWidth  = errors.New("bitstream: width exceeds 64 bits")
)

// Reader reads fixed width unsigned values MSB first from an immutable
// buffer.
type Reader struct {
	data []byte
	pos  uint64
}

// NewReader returns a reader positioned at bit 0 of data.
func NewReader(data []byte) Reader {
	return Reader{data: data}
}

// Clone returns an independent cursor over the same buffer.
func (r *Reader) Clone() Reader { return Reader{data: r.data, pos: r.pos} }

// Pos returns the current bit offset.
func (r *Reader) Pos() uint64 { return r.pos }

// Len returns the buffer length in bits.
func (r *Reader) Len() uint64 { return uint64(len(r.data)) * 8 }

// Seek moves the cursor to the absolute bit offset pos.
func (r *Reader) Seek(pos uint64) error {
	if pos > r.Len() {
		return fmt.Errorf("%w: seek to bit %d, stream has %d", ErrShortRead, pos, r.Len())
	}
	r.pos = pos
	return nil
}

// Read reads the next width bits as an unsigned value. A zero width read
// returns 0 and does not move the cursor.
func (r *Reader) Read(width uint8) (uint64, error) {
	if width > MaxWidth {
		return 0, ErrBadWidth
	}
	if r.pos+uint64(width) > r.Len() {
		return 0, fmt.Errorf(
			"%w: need %d bits at %d, stream has %d", ErrShortRead, width, r.pos, r.Len())
	}

	var v uint64
	remaining := width
	for remaining > 0 {
		b := r.data[r.pos>>3]
		used := uint8(r.pos & 7)
		avail := 8 - used
		take := avail
		if remaining < take {
			take = remaining
		}
		chunk := (b >> (avail - take)) & (1<<take - 1)
		v = v<<take | uint64(chunk)
		remaining -= take
		r.pos += uint64(take)
	}
	return v, nil
}

// ReadAt seeks to pos and reads width bits.
func (r *Reader) ReadAt(pos uint64, width uint8) (uint64, error) {
	if err := r.Seek(pos); err != nil {
		return 0, err
	}
	return r.Read(width)
}
