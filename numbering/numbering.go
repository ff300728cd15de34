// Package numbering assigns every identifier of a collapsed provenance graph
// a dense canonical id.
//
// The ids satisfy one invariant the codec depends on: a cluster of size k
// whose leader has id b occupies exactly {b, ..., b+k-1}, ordered along its
// version chain from the oldest version to the newest. A version edge
// therefore always points from id n to id n-1, which is why the codec never
// stores version edges explicitly.
//
// Relation records (edge labels) are not ranked. Their ids are derived from
// their endpoints and offset past the node id space:
//
//	(sender << NodeBits) + receiver + NodeCount
package numbering

import (
	"errors"
	"fmt"
	"math"

	"github.com/forestrie/go-provgraph/bitstream"
	"github.com/forestrie/go-provgraph/collapse"
	"github.com/forestrie/go-provgraph/provgraph"
)

var (
	ErrUnknownLeader     = errors.New("numbering: visit order names an identifier that leads no cluster")
	ErrIncompleteOrder   = errors.New("numbering: ranking did not cover every identifier")
	ErrDuplicateRank     = errors.New("numbering: identifier ranked twice")
	ErrNotContiguous     = errors.New("numbering: cluster ids are not contiguous in chain order")
	ErrTooManyNodes      = errors.New("numbering: node count does not fit in 32 bits")
	ErrUnknownIdentifier = errors.New("numbering: identifier has no canonical id")
)

// Numbering is the identifier <-> canonical id bijection. It is immutable.
type Numbering struct {
	ids      map[string]uint32
	names    []string
	clusters *collapse.Clusters
	nodeBits uint8
}

// Assign ranks res with r and builds the numbering. A nil r uses the
// transpose BFS ranker in ascending visit order.
func Assign(res collapse.Result, r Ranker) (*Numbering, error) {
	if r == nil {
		r = TransposeBFSRanker{Order: AscendingOrder{}}
	}
	order, err := r.Rank(res)
	if err != nil {
		return nil, err
	}
	return New(order, res.Clusters)
}

// New builds a numbering from a canonical order, verifying the cluster
// contiguity invariant.
func New(order []string, clusters *collapse.Clusters) (*Numbering, error) {
	if uint64(len(order)) > math.MaxUint32 {
		return nil, ErrTooManyNodes
	}
	n := &Numbering{
		ids:      make(map[string]uint32, len(order)),
		names:    order,
		clusters: clusters,
		nodeBits: bitstream.WidthFor(uint64(len(order))),
	}
	for i, name := range order {
		if _, dup := n.ids[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRank, name)
		}
		n.ids[name] = uint32(i)
	}

	for _, l := range clusters.Leaders() {
		base, ok := n.ids[l]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrIncompleteOrder, l)
		}
		for i, m := range clusters.Chain(l) {
			if id, ok := n.ids[m]; !ok || id != base+uint32(i) {
				return nil, fmt.Errorf("%w: cluster %s member %s", ErrNotContiguous, l, m)
			}
		}
	}
	return n, nil
}

// ID returns the canonical id of identifier.
func (n *Numbering) ID(identifier string) (uint32, bool) {
	id, ok := n.ids[identifier]
	return id, ok
}

// Identifier returns the identifier with canonical id id.
func (n *Numbering) Identifier(id uint32) (string, bool) {
	if uint64(id) >= uint64(len(n.names)) {
		return "", false
	}
	return n.names[id], true
}

// Identifiers returns every identifier indexed by canonical id. The slice
// must not be modified.
func (n *Numbering) Identifiers() []string { return n.names }

func (n *Numbering) NodeCount() uint32 { return uint32(len(n.names)) }

// NodeBits is the width of a node id used to derive relation ids.
func (n *Numbering) NodeBits() uint8 { return n.nodeBits }

// Clusters returns the clustering the numbering was built over.
func (n *Numbering) Clusters() *collapse.Clusters { return n.clusters }

// ClusterSize returns the size of identifier's cluster, 0 if unknown.
func (n *Numbering) ClusterSize(identifier string) int {
	return n.clusters.Size(identifier)
}

// RelationID derives the id of the relation record sent by sender and
// received by receiver.
func (n *Numbering) RelationID(sender, receiver uint32) uint64 {
	return uint64(sender)<<n.nodeBits + uint64(receiver) + uint64(len(n.names))
}

// EdgeRelationID derives the relation id of e. Edges point from receiver to
// sender.
func (n *Numbering) EdgeRelationID(e provgraph.Edge) (uint64, error) {
	sender, ok := n.ids[e.Dst]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownIdentifier, e.Dst)
	}
	receiver, ok := n.ids[e.Src]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownIdentifier, e.Src)
	}
	return n.RelationID(sender, receiver), nil
}

// RelationIDs derives the id of every labeled edge of g, keyed by label.
func (n *Numbering) RelationIDs(g *provgraph.Graph) (map[string]uint64, error) {
	ids := make(map[string]uint64, g.EdgeCount())
	for _, e := range g.Edges() {
		if e.Label == "" {
			continue
		}
		id, err := n.EdgeRelationID(e)
		if err != nil {
			return nil, err
		}
		ids[e.Label] = id
	}
	return ids, nil
}
