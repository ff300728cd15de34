// Package collapse clusters the successive versions of each logical object
// of a provenance graph and derives the collapsed, object level graph.
package collapse

import (
	"errors"
	"fmt"

	"github.com/forestrie/go-provgraph/provgraph"
)

var ErrBranchingVersionChain = errors.New("collapse: version chain is not a simple path")

// Result is the output of Collapse.
type Result struct {
	Clusters *Clusters

	// Collapsed has one vertex per cluster leader and one unlabeled edge
	// Leader(u) -> Leader(v) for each non-version edge u -> v of the input,
	// without parallel edges or self loops.
	Collapsed *provgraph.Graph
}

// Collapse unions the endpoints of every version edge of g and validates
// that each resulting cluster is a single version chain.
//
// A cluster whose version edges branch, or form a cycle, makes a contiguous
// chain ordered numbering impossible; Collapse fails with
// ErrBranchingVersionChain naming a member of the offending cluster.
func Collapse(g *provgraph.Graph, classify provgraph.Classifier) (Result, error) {
	vs := g.Vertices()
	index := make(map[string]int, len(vs))
	for i, v := range vs {
		index[v] = i
	}

	uf := NewUnionFind(len(vs))
	for _, v := range vs {
		for _, e := range g.Outgoing(v) {
			if provgraph.IsVersion(classify, e) {
				uf.Union(index[e.Src], index[e.Dst])
			}
		}
	}

	// vs is sorted, so members are too.
	groups := make(map[int][]string)
	for i, v := range vs {
		r := uf.Find(i)
		groups[r] = append(groups[r], v)
	}

	chains := make(map[string][]string, len(groups))
	for _, members := range groups {
		chain, err := versionChain(g, classify, members)
		if err != nil {
			return Result{}, err
		}
		chains[chain[0]] = chain
	}
	clusters := newClusters(chains)

	collapsed := provgraph.New()
	for _, l := range clusters.Leaders() {
		collapsed.AddVertex(l)
	}
	for _, v := range vs {
		lv := clusters.leader[v]
		for _, e := range g.Outgoing(v) {
			if provgraph.IsVersion(classify, e) {
				continue
			}
			ld := clusters.leader[e.Dst]
			if ld == lv {
				continue
			}
			if _, ok := collapsed.Edge(lv, ld); ok {
				continue
			}
			if err := collapsed.AddEdge(lv, ld, ""); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{Clusters: clusters, Collapsed: collapsed}, nil
}

// versionChain orders the members of one cluster from the chain head (the
// member with no outgoing version edge) along incoming version edges.
func versionChain(g *provgraph.Graph, classify provgraph.Classifier, members []string) ([]string, error) {
	if len(members) == 1 {
		// a lone member can still carry a version self loop
		for _, e := range g.Outgoing(members[0]) {
			if provgraph.IsVersion(classify, e) {
				return nil, fmt.Errorf("%w: %s has a version edge to itself", ErrBranchingVersionChain, members[0])
			}
		}
		return members, nil
	}

	newer := make(map[string]string, len(members))
	var heads []string
	for _, m := range members {
		older := 0
		for _, e := range g.Outgoing(m) {
			if provgraph.IsVersion(classify, e) {
				older++
			}
		}
		nnewer := 0
		for _, e := range g.Incoming(m) {
			if provgraph.IsVersion(classify, e) {
				nnewer++
				newer[m] = e.Src
			}
		}
		if older > 1 || nnewer > 1 {
			return nil, fmt.Errorf(
				"%w: cluster of %s (%d members): %s has %d older and %d newer versions",
				ErrBranchingVersionChain, members[0], len(members), m, older, nnewer)
		}
		if older == 0 {
			heads = append(heads, m)
		}
	}
	if len(heads) != 1 {
		return nil, fmt.Errorf(
			"%w: cluster of %s (%d members) has %d chain heads",
			ErrBranchingVersionChain, members[0], len(members), len(heads))
	}

	chain := make([]string, 0, len(members))
	for cur, ok := heads[0], true; ok; cur, ok = newer[cur] {
		chain = append(chain, cur)
		if len(chain) > len(members) {
			break
		}
	}
	if len(chain) != len(members) {
		return nil, fmt.Errorf(
			"%w: cluster of %s (%d members) walks %d chain members",
			ErrBranchingVersionChain, members[0], len(members), len(chain))
	}
	return chain, nil
}
