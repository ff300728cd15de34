package cpg

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/forestrie/go-provgraph/bitstream"
)

// ClusterInfo locates one cluster in the stream.
type ClusterInfo struct {
	Index  uint32
	Base   uint32
	Size   uint32
	Offset uint64
	Bits   uint64
}

// Graph is a read only view over a serialized compressed graph.
type Graph struct {
	header    HeaderV1
	stream    []byte
	bases     []uint32
	sizes     []uint32
	offsets   []uint64
	lengths   []uint64
	nodeCount uint32
}

// Open validates data and returns a queryable view over it. data is
// retained and must not be modified afterwards.
func Open(data []byte) (*Graph, error) {
	h, err := DecodeHeaderV1(data)
	if err != nil {
		return nil, err
	}
	indexEnd := uint64(HeaderBytesV1) + h.IndexBytes()
	if uint64(len(data)) < indexEnd {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrIndexTruncated, indexEnd, len(data))
	}

	g := &Graph{
		header:  h,
		stream:  data[indexEnd:],
		bases:   make([]uint32, h.ClusterCount),
		sizes:   make([]uint32, h.ClusterCount),
		offsets: make([]uint64, h.ClusterCount),
		lengths: make([]uint64, h.ClusterCount),
	}

	r := bitstream.NewReader(data[HeaderBytesV1:indexEnd])
	var nodes, bits uint64
	for i := range g.sizes {
		if i > 0 {
			prev, err := r.Read(h.IndexBits)
			if err != nil {
				return nil, err
			}
			g.lengths[i-1] = prev
			if bits+prev < bits {
				return nil, fmt.Errorf("%w: offset overflow at cluster %d", ErrIndexCorrupt, i)
			}
			bits += prev
			g.offsets[i] = bits
		}
		size, err := r.Read(h.SizeBits)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return nil, fmt.Errorf("%w: cluster %d is empty", ErrIndexCorrupt, i)
		}
		if nodes+size > math.MaxUint32 {
			return nil, fmt.Errorf("%w: node count overflows at cluster %d", ErrIndexCorrupt, i)
		}
		g.bases[i] = uint32(nodes)
		g.sizes[i] = uint32(size)
		nodes += size
	}
	g.nodeCount = uint32(nodes)

	// the last length is not stored; it runs to the end of the stream
	streamBits := uint64(len(g.stream)) * 8
	if bits > streamBits {
		return nil, fmt.Errorf("%w: cluster offsets exceed the %d bit stream", ErrIndexCorrupt, streamBits)
	}
	if n := len(g.lengths); n > 0 {
		g.lengths[n-1] = streamBits - bits
	} else if len(g.stream) != 0 {
		return nil, fmt.Errorf("%w: stream data without clusters", ErrStreamCorrupt)
	}
	return g, nil
}

// Header returns the decoded header.
func (g *Graph) Header() HeaderV1 { return g.header }

// NodeCount returns the number of canonical ids.
func (g *Graph) NodeCount() uint32 { return g.nodeCount }

// ClusterCount returns the number of clusters.
func (g *Graph) ClusterCount() uint32 { return g.header.ClusterCount }

// Offsets returns a copy of the cluster bit offsets.
func (g *Graph) Offsets() []uint64 { return slices.Clone(g.offsets) }

// Cluster returns the cluster owning node id.
func (g *Graph) Cluster(id uint32) (ClusterInfo, error) {
	if id >= g.nodeCount {
		return ClusterInfo{}, fmt.Errorf("%w: %d, node count %d", ErrNodeOutOfRange, id, g.nodeCount)
	}
	i := sort.Search(len(g.bases), func(i int) bool { return g.bases[i] > id }) - 1
	return g.cluster(i), nil
}

func (g *Graph) cluster(i int) ClusterInfo {
	return ClusterInfo{
		Index:  uint32(i),
		Base:   g.bases[i],
		Size:   g.sizes[i],
		Offset: g.offsets[i],
		Bits:   g.lengths[i],
	}
}

// GetOutgoingEdges returns the sorted ids that id has edges to, including
// the implied version edge to its previous version.
func (g *Graph) GetOutgoingEdges(id uint32) ([]uint32, error) {
	c, err := g.Cluster(id)
	if err != nil {
		return nil, err
	}
	r := g.reader(c)
	fwd, err := g.readList(&r, c, g.header.Forward[classOf(c.Size)], 0)
	if err != nil {
		return nil, err
	}
	if c.Size == 1 {
		return nodes(fwd), nil
	}

	// The forward list is merged over the cluster. Keep a destination only
	// if its cluster names this node as a sender to that exact member.
	backs := make(map[uint32][]entry)
	out := make([]uint32, 0, len(fwd)+1)
	for _, d := range fwd {
		dc, err := g.Cluster(d.node)
		if err != nil {
			return nil, fmt.Errorf("%w: forward entry %d", ErrStreamCorrupt, d.node)
		}
		back, ok := backs[dc.Index]
		if !ok {
			if back, err = g.backward(dc); err != nil {
				return nil, err
			}
			backs[dc.Index] = back
		}
		want := entry{node: id}
		if dc.Size > 1 {
			want.offset = d.node - dc.Base
		}
		if contains(back, want) {
			out = append(out, d.node)
		}
	}
	if id > c.Base {
		out = append(out, id-1)
	}
	return sortedUnique(out), nil
}

// GetIncomingEdges returns the sorted ids that have edges to id, including
// the implied version edge from its next version.
func (g *Graph) GetIncomingEdges(id uint32) ([]uint32, error) {
	c, err := g.Cluster(id)
	if err != nil {
		return nil, err
	}
	back, err := g.backward(c)
	if err != nil {
		return nil, err
	}
	if c.Size == 1 {
		return nodes(back), nil
	}

	offset := id - c.Base
	in := make([]uint32, 0, len(back)+1)
	for _, e := range back {
		if e.offset == offset {
			in = append(in, e.node)
		}
	}
	if offset+1 < c.Size {
		in = append(in, id+1)
	}
	return sortedUnique(in), nil
}

func (g *Graph) reader(c ClusterInfo) bitstream.Reader {
	r := bitstream.NewReader(g.stream)
	// Open checked every offset against the stream length
	_ = r.Seek(c.Offset)
	return r
}

// backward decodes the backward list of c, skipping its forward list
// without materializing it.
func (g *Graph) backward(c ClusterInfo) ([]entry, error) {
	cl := classOf(c.Size)
	r := g.reader(c)
	fw := g.header.Forward[cl]
	n, err := r.Read(fw.Degree)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		skip := uint64(fw.FirstDelta()) + (n-1)*uint64(fw.Delta)
		if skip > c.Bits || r.Seek(r.Pos()+skip) != nil {
			return nil, fmt.Errorf("%w: forward list of cluster %d overruns", ErrStreamCorrupt, c.Index)
		}
	}
	return g.readList(&r, c, g.header.Backward[cl], backTagBits(cl, g.header.SizeBits))
}

func (g *Graph) readList(r *bitstream.Reader, c ClusterInfo, w Widths, tagBits uint8) ([]entry, error) {
	n, err := r.Read(w.Degree)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if n > uint64(g.nodeCount)*uint64(c.Size) {
		return nil, fmt.Errorf("%w: cluster %d degree %d", ErrStreamCorrupt, c.Index, n)
	}

	list := make([]entry, 0, min(n, 1024))
	var v int64
	for i := uint64(0); i < n; i++ {
		if i == 0 {
			u, err := r.Read(w.FirstDelta())
			if err != nil {
				return nil, err
			}
			v = int64(c.Base) + bitstream.UnZigZag(u)
		} else {
			d, err := r.Read(w.Delta)
			if err != nil {
				return nil, err
			}
			if d >= uint64(g.nodeCount) {
				return nil, fmt.Errorf("%w: cluster %d delta %d", ErrStreamCorrupt, c.Index, d)
			}
			v += int64(d)
		}
		if v < 0 || v >= int64(g.nodeCount) {
			return nil, fmt.Errorf("%w: cluster %d lists node %d", ErrStreamCorrupt, c.Index, v)
		}
		e := entry{node: uint32(v)}
		if tagBits > 0 {
			off, err := r.Read(tagBits)
			if err != nil {
				return nil, err
			}
			if off >= uint64(c.Size) {
				return nil, fmt.Errorf("%w: cluster %d member offset %d", ErrStreamCorrupt, c.Index, off)
			}
			e.offset = uint32(off)
		}
		list = append(list, e)
	}
	return list, nil
}

func contains(list []entry, want entry) bool {
	i := sort.Search(len(list), func(i int) bool { return !entryLess(list[i], want) })
	return i < len(list) && list[i] == want
}

func nodes(list []entry) []uint32 {
	out := make([]uint32, 0, len(list))
	for _, e := range list {
		out = append(out, e.node)
	}
	return sortedUnique(out)
}

func sortedUnique(ids []uint32) []uint32 {
	slices.Sort(ids)
	return slices.Compact(ids)
}
