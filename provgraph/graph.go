// Package provgraph holds the in-memory provenance graph handed from
// ingestion to the compressor: a directed, labeled graph over opaque string
// identifiers plus the metadata used to classify its edges.
package provgraph

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateEdge = errors.New("provgraph: an edge between these nodes already exists")
	ErrEmptyID       = errors.New("provgraph: identifiers must be non empty")
)

// Edge is a directed relation record. Edges point from the dependent record
// to the record it depends on (receiver to sender); a version edge points
// from the newer state of an object to the older one.
type Edge struct {
	Src   string
	Dst   string
	Label string
}

type adjacency struct {
	out []Edge
	in  []Edge
}

// Graph is a directed labeled graph. At most one edge exists per ordered
// (Src, Dst) pair. Graph is not safe for concurrent mutation.
type Graph struct {
	nodes map[string]*adjacency
	edges int
}

func New() *Graph {
	return &Graph{nodes: make(map[string]*adjacency)}
}

// AddVertex adds id if it is not present and reports whether it was added.
func (g *Graph) AddVertex(id string) bool {
	if _, ok := g.nodes[id]; ok {
		return false
	}
	g.nodes[id] = &adjacency{}
	return true
}

// AddEdge adds src -> dst labeled label, adding either endpoint as needed.
func (g *Graph) AddEdge(src, dst, label string) error {
	if src == "" || dst == "" {
		return ErrEmptyID
	}
	g.AddVertex(src)
	g.AddVertex(dst)
	if _, ok := g.Edge(src, dst); ok {
		return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, src, dst)
	}
	e := Edge{Src: src, Dst: dst, Label: label}
	g.nodes[src].out = append(g.nodes[src].out, e)
	g.nodes[dst].in = append(g.nodes[dst].in, e)
	g.edges++
	return nil
}

// Edge returns the edge src -> dst if there is one.
func (g *Graph) Edge(src, dst string) (Edge, bool) {
	a, ok := g.nodes[src]
	if !ok {
		return Edge{}, false
	}
	for _, e := range a.out {
		if e.Dst == dst {
			return e, true
		}
	}
	return Edge{}, false
}

func (g *Graph) HasVertex(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Outgoing returns the edges leaving id, in insertion order. The slice must
// not be modified.
func (g *Graph) Outgoing(id string) []Edge {
	if a, ok := g.nodes[id]; ok {
		return a.out
	}
	return nil
}

// Incoming returns the edges arriving at id, in insertion order. The slice
// must not be modified.
func (g *Graph) Incoming(id string) []Edge {
	if a, ok := g.nodes[id]; ok {
		return a.in
	}
	return nil
}

// Vertices returns every identifier in ascending order.
func (g *Graph) Vertices() []string {
	vs := make([]string, 0, len(g.nodes))
	for v := range g.nodes {
		vs = append(vs, v)
	}
	sort.Strings(vs)
	return vs
}

// Len returns the vertex count.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the edge count.
func (g *Graph) EdgeCount() int { return g.edges }

// Edges returns every edge ordered by (Src, Dst).
func (g *Graph) Edges() []Edge {
	es := make([]Edge, 0, g.edges)
	for _, a := range g.nodes {
		es = append(es, a.out...)
	}
	sort.Slice(es, func(i, j int) bool {
		if es[i].Src != es[j].Src {
			return es[i].Src < es[j].Src
		}
		return es[i].Dst < es[j].Dst
	})
	return es
}
