package cpg

import (
	"fmt"
	"math"

	"github.com/forestrie/go-provgraph/bitstream"
	"github.com/forestrie/go-provgraph/numbering"
	"github.com/forestrie/go-provgraph/provgraph"
)

// Encoded is a compressed graph before serialization.
type Encoded struct {
	Header HeaderV1
	// Sizes holds the member count of each cluster, in base id order.
	Sizes []uint32
	// ClusterBits holds the encoded bit length of each cluster.
	ClusterBits []uint64
	Stream      []byte
	StreamBits  uint64
}

// Encode compresses the topology of g using the canonical ids of num.
// Edges classified as version edges are implied by the numbering and are
// not stored.
func Encode(g *provgraph.Graph, num *numbering.Numbering, classify provgraph.Classifier) (*Encoded, error) {
	lists, err := buildAdjacency(g, num, classify)
	if err != nil {
		return nil, err
	}
	if uint64(len(lists)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyClusters, len(lists))
	}

	fwd, back, sizeBits := computeWidths(lists)
	e := &Encoded{
		Header: HeaderV1{
			Forward:      fwd,
			Backward:     back,
			SizeBits:     sizeBits,
			ClusterCount: uint32(len(lists)),
		},
		Sizes:       make([]uint32, len(lists)),
		ClusterBits: make([]uint64, len(lists)),
	}

	var hint, maxBits uint64
	for i := range lists {
		c := &lists[i]
		cl := c.class()
		bits := listBits(len(c.fwd), fwd[cl], 0)
		bits += listBits(len(c.back), back[cl], backTagBits(cl, sizeBits))
		e.Sizes[i] = c.size
		e.ClusterBits[i] = bits
		hint += bits
		maxBits = max(maxBits, bits)
	}
	e.Header.IndexBits = bitstream.WidthFor(maxBits)

	w := bitstream.NewWriter(hint)
	for i := range lists {
		c := &lists[i]
		cl := c.class()
		start := w.Len()
		writeList(w, c.base, c.fwd, fwd[cl], 0)
		writeList(w, c.base, c.back, back[cl], backTagBits(cl, sizeBits))
		if w.Len()-start != e.ClusterBits[i] {
			panic(fmt.Sprintf("cpg: cluster %d wrote %d bits, sized %d", i, w.Len()-start, e.ClusterBits[i]))
		}
	}
	e.Stream = w.Bytes()
	e.StreamBits = w.Len()
	return e, nil
}

// backTagBits is the width of the receiver offset carried by backward
// entries of the given class.
func backTagBits(cl SizeClass, sizeBits uint8) uint8 {
	if cl == MultiVersion {
		return sizeBits
	}
	return 0
}

func writeList(w *bitstream.Writer, base uint32, list []entry, widths Widths, tagBits uint8) {
	w.Write(uint64(len(list)), widths.Degree)
	for i, v := range list {
		if i == 0 {
			w.Write(bitstream.ZigZag(int64(v.node)-int64(base)), widths.FirstDelta())
		} else {
			w.Write(uint64(v.node-list[i-1].node), widths.Delta)
		}
		if tagBits > 0 {
			w.Write(uint64(v.offset), tagBits)
		}
	}
}

// Offsets returns the stream bit offset of every cluster.
func (e *Encoded) Offsets() []uint64 {
	offsets := make([]uint64, len(e.ClusterBits))
	for i := 1; i < len(offsets); i++ {
		offsets[i] = offsets[i-1] + e.ClusterBits[i-1]
	}
	return offsets
}

// Size returns the serialized byte size.
func (e *Encoded) Size() int {
	return HeaderBytesV1 + int(e.Header.IndexBytes()) + len(e.Stream)
}

// MarshalBinary serializes the header, index and stream.
func (e *Encoded) MarshalBinary() ([]byte, error) {
	out := make([]byte, HeaderBytesV1, e.Size())
	if err := EncodeHeaderV1(out, e.Header); err != nil {
		return nil, err
	}

	h := e.Header
	iw := bitstream.NewWriter(IndexBitsFor(h.ClusterCount, h.IndexBits, h.SizeBits))
	for i, size := range e.Sizes {
		if i > 0 {
			iw.Write(e.ClusterBits[i-1], h.IndexBits)
		}
		iw.Write(uint64(size), h.SizeBits)
	}
	out = append(out, iw.Bytes()...)
	return append(out, e.Stream...), nil
}
