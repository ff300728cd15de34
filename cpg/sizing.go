package cpg

import "github.com/forestrie/go-provgraph/bitstream"

// listStats accumulates the maxima that fix one class's widths.
type listStats struct {
	maxDegree uint64
	maxDelta  uint64
}

func (s *listStats) add(base uint32, list []entry) {
	if len(list) == 0 {
		return
	}
	s.maxDegree = max(s.maxDegree, uint64(len(list)))
	first := int64(list[0].node) - int64(base)
	if first < 0 {
		first = -first
	}
	s.maxDelta = max(s.maxDelta, uint64(first))
	for i := 1; i < len(list); i++ {
		s.maxDelta = max(s.maxDelta, uint64(list[i].node-list[i-1].node))
	}
}

// widths returns the class widths. A class without any entries encodes
// nothing and gets zero widths.
func (s listStats) widths() Widths {
	if s.maxDegree == 0 {
		return Widths{}
	}
	return Widths{
		Degree: bitstream.WidthFor(s.maxDegree),
		Delta:  bitstream.WidthFor(s.maxDelta),
	}
}

// computeWidths fixes the four list width pairs and the size entry width.
func computeWidths(lists []clusterLists) (fwd, back [2]Widths, sizeBits uint8) {
	var fs, bs [2]listStats
	var maxSize uint64
	for i := range lists {
		c := &lists[i]
		fs[c.class()].add(c.base, c.fwd)
		bs[c.class()].add(c.base, c.back)
		maxSize = max(maxSize, uint64(c.size))
	}
	for _, cl := range []SizeClass{Singleton, MultiVersion} {
		fwd[cl] = fs[cl].widths()
		back[cl] = bs[cl].widths()
	}
	return fwd, back, bitstream.WidthFor(maxSize)
}

// listBits returns the encoded bit length of one list.
func listBits(n int, w Widths, tagBits uint8) uint64 {
	bits := uint64(w.Degree)
	if n == 0 {
		return bits
	}
	bits += uint64(w.FirstDelta()) + uint64(n-1)*uint64(w.Delta)
	return bits + uint64(n)*uint64(tagBits)
}
