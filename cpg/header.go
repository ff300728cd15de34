package cpg

import (
	"encoding/binary"
	"fmt"

	"github.com/forestrie/go-provgraph/bitstream"
)

// HeaderBytesV1 is the fixed byte size of the V1 header.
const HeaderBytesV1 = 14

// HeaderV1 carries the bit widths fixed for the whole compressed graph and
// the cluster count.
//
// Byte layout:
//
//	0  forward singleton degree bits
//	1  forward singleton delta bits
//	2  forward multi-version degree bits
//	3  forward multi-version delta bits
//	4  backward singleton degree bits
//	5  backward singleton delta bits
//	6  backward multi-version degree bits
//	7  backward multi-version delta bits
//	8  index entry bits
//	9  size entry bits
//	10 cluster count, uint32 big endian
type HeaderV1 struct {
	Forward      [2]Widths
	Backward     [2]Widths
	IndexBits    uint8
	SizeBits     uint8
	ClusterCount uint32
}

func (h HeaderV1) validate() error {
	for _, ws := range [][2]Widths{h.Forward, h.Backward} {
		for _, w := range ws {
			if w.Degree > bitstream.MaxWidth || w.Delta >= bitstream.MaxWidth {
				return fmt.Errorf("%w: %+v", ErrBadWidth, w)
			}
			if (w.Degree == 0) != (w.Delta == 0) {
				return fmt.Errorf("%w: degree and delta widths must both be zero or both set: %+v", ErrBadWidth, w)
			}
		}
	}
	if h.IndexBits == 0 || h.IndexBits > bitstream.MaxWidth {
		return fmt.Errorf("%w: index bits %d", ErrBadWidth, h.IndexBits)
	}
	if h.SizeBits == 0 || h.SizeBits > 32 {
		return fmt.Errorf("%w: size bits %d", ErrBadWidth, h.SizeBits)
	}
	return nil
}

// EncodeHeaderV1 writes h into region.
func EncodeHeaderV1(region []byte, h HeaderV1) error {
	if len(region) < HeaderBytesV1 {
		return ErrHeaderTooShort
	}
	if err := h.validate(); err != nil {
		return err
	}
	region[0] = h.Forward[Singleton].Degree
	region[1] = h.Forward[Singleton].Delta
	region[2] = h.Forward[MultiVersion].Degree
	region[3] = h.Forward[MultiVersion].Delta
	region[4] = h.Backward[Singleton].Degree
	region[5] = h.Backward[Singleton].Delta
	region[6] = h.Backward[MultiVersion].Degree
	region[7] = h.Backward[MultiVersion].Delta
	region[8] = h.IndexBits
	region[9] = h.SizeBits
	binary.BigEndian.PutUint32(region[10:14], h.ClusterCount)
	return nil
}

// DecodeHeaderV1 decodes the header at the start of data.
func DecodeHeaderV1(data []byte) (HeaderV1, error) {
	if len(data) < HeaderBytesV1 {
		return HeaderV1{}, ErrHeaderTooShort
	}
	var h HeaderV1
	h.Forward[Singleton] = Widths{Degree: data[0], Delta: data[1]}
	h.Forward[MultiVersion] = Widths{Degree: data[2], Delta: data[3]}
	h.Backward[Singleton] = Widths{Degree: data[4], Delta: data[5]}
	h.Backward[MultiVersion] = Widths{Degree: data[6], Delta: data[7]}
	h.IndexBits = data[8]
	h.SizeBits = data[9]
	h.ClusterCount = binary.BigEndian.Uint32(data[10:14])
	if err := h.validate(); err != nil {
		return HeaderV1{}, err
	}
	return h, nil
}

// IndexBytes returns the byte size of the packed index that follows the
// header.
func (h HeaderV1) IndexBytes() uint64 {
	return (IndexBitsFor(h.ClusterCount, h.IndexBits, h.SizeBits) + 7) / 8
}

// IndexBitsFor returns the unpadded bit size of an index of n clusters.
func IndexBitsFor(n uint32, indexBits, sizeBits uint8) uint64 {
	if n == 0 {
		return 0
	}
	return uint64(n)*uint64(sizeBits) + uint64(n-1)*uint64(indexBits)
}
