package bitstream

import "math/bits"

// MaxWidth is the largest width accepted by Writer.Write and Reader.Read.
const MaxWidth = 64

// BitLength returns the number of bits needed to represent num. Zero needs
// zero bits.
func BitLength(num uint64) uint8 { return uint8(bits.Len64(num)) }

// WidthFor returns the fixed width needed to store every value in [0, max],
// ceil(log2(max+1)), with a minimum of one bit.
func WidthFor(max uint64) uint8 {
	if max == 0 {
		return 1
	}
	return uint8(bits.Len64(max))
}

// ZigZag maps a signed value onto the unsigned range so that small
// magnitudes stay small: v>=0 -> 2v, v<0 -> 2|v|-1.
func ZigZag(v int64) uint64 {
	if v >= 0 {
		return uint64(v) << 1
	}
	return (uint64(-v) << 1) - 1
}

// UnZigZag inverts ZigZag.
func UnZigZag(u uint64) int64 {
	if u&1 == 0 {
		return int64(u >> 1)
	}
	return -int64((u + 1) >> 1)
}
