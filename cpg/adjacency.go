package cpg

import (
	"fmt"
	"sort"

	"github.com/forestrie/go-provgraph/numbering"
	"github.com/forestrie/go-provgraph/provgraph"
)

// entry is one list element: a node id and, in multi-version backward
// lists, the offset of the receiving member within its cluster.
type entry struct {
	node   uint32
	offset uint32
}

func entryLess(a, b entry) bool {
	if a.node != b.node {
		return a.node < b.node
	}
	return a.offset < b.offset
}

// clusterLists is the asymmetric adjacency of one cluster.
type clusterLists struct {
	base uint32
	size uint32
	fwd  []entry
	back []entry
}

func (c *clusterLists) class() SizeClass { return classOf(c.size) }

// buildAdjacency derives the forward and backward lists of every cluster,
// ordered by base id.
func buildAdjacency(
	g *provgraph.Graph, num *numbering.Numbering, classify provgraph.Classifier,
) ([]clusterLists, error) {
	clusters := num.Clusters()
	lists := make([]clusterLists, 0, clusters.Len())
	for _, l := range clusters.Leaders() {
		base, ok := num.ID(l)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, l)
		}
		lists = append(lists, clusterLists{base: base, size: uint32(len(clusters.Chain(l)))})
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].base < lists[j].base })

	// node id -> cluster position, via the sorted bases
	owner := func(id uint32) int {
		return sort.Search(len(lists), func(i int) bool { return lists[i].base > id }) - 1
	}

	fwdSeen := make([]map[uint32]struct{}, len(lists))
	for _, v := range g.Vertices() {
		src, ok := num.ID(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, v)
		}
		sc := owner(src)
		for _, e := range g.Outgoing(v) {
			if provgraph.IsVersion(classify, e) {
				continue
			}
			dst, ok := num.ID(e.Dst)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownNode, e.Dst)
			}

			if fwdSeen[sc] == nil {
				fwdSeen[sc] = make(map[uint32]struct{})
			}
			if _, dup := fwdSeen[sc][dst]; !dup {
				fwdSeen[sc][dst] = struct{}{}
				lists[sc].fwd = append(lists[sc].fwd, entry{node: dst})
			}

			dc := owner(dst)
			back := entry{node: src}
			if lists[dc].class() == MultiVersion {
				back.offset = dst - lists[dc].base
			}
			lists[dc].back = append(lists[dc].back, back)
		}
	}

	for i := range lists {
		fwd, back := lists[i].fwd, lists[i].back
		sort.Slice(fwd, func(a, b int) bool { return entryLess(fwd[a], fwd[b]) })
		sort.Slice(back, func(a, b int) bool { return entryLess(back[a], back[b]) })
	}
	return lists, nil
}
