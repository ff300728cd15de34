package cpgtesting

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/forestrie/go-provgraph/provgraph"
)

// VersionLabel labels every version edge produced by RandomGraph.
const VersionLabel = "version"

type GraphConfig struct {
	// Seed makes the generated graph the same from run to run.
	Seed int64
	// Objects is the number of logical objects.
	Objects int
	// MaxVersions bounds the version chain length of each object.
	MaxVersions int
	// Edges is the number of non-version edges attempted. Duplicates and
	// self loops are skipped, so the graph may hold fewer.
	Edges int
}

// Classifier classifies the labels produced by RandomGraph.
func Classifier() provgraph.Classifier { return provgraph.VersionLabels(VersionLabel) }

// RandomGraph builds a version heavy graph. Object o's versions are named
// "o<o>.v<i>" and each version i > 0 has a version edge to version i-1.
func RandomGraph(cfg GraphConfig) *provgraph.Graph {
	rng := rand.New(rand.NewSource(cfg.Seed))
	g := provgraph.New()

	var names []string
	for o := 0; o < cfg.Objects; o++ {
		n := 1
		if cfg.MaxVersions > 1 {
			n += rng.Intn(cfg.MaxVersions)
		}
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("o%d.v%d", o, i)
			g.AddVertex(name)
			names = append(names, name)
			if i > 0 {
				if err := g.AddEdge(name, fmt.Sprintf("o%d.v%d", o, i-1), VersionLabel); err != nil {
					panic(err)
				}
			}
		}
	}
	if len(names) < 2 {
		return g
	}
	for i := 0; i < cfg.Edges; i++ {
		src := names[rng.Intn(len(names))]
		dst := names[rng.Intn(len(names))]
		if src == dst {
			continue
		}
		// a duplicate pair is simply not added
		_ = g.AddEdge(src, dst, fmt.Sprintf("r%d", i))
	}
	return g
}

// Neighborhoods returns, for every vertex of g, the sorted canonical ids of
// its outgoing and incoming neighbors over all edges, version edges
// included. id maps identifiers to canonical ids.
func Neighborhoods(g *provgraph.Graph, id func(string) (uint32, bool)) (out, in map[uint32][]uint32) {
	out = make(map[uint32][]uint32)
	in = make(map[uint32][]uint32)
	mustID := func(s string) uint32 {
		v, ok := id(s)
		if !ok {
			panic(fmt.Sprintf("cpgtesting: %q has no canonical id", s))
		}
		return v
	}
	for _, v := range g.Vertices() {
		out[mustID(v)] = []uint32{}
		in[mustID(v)] = []uint32{}
	}
	for _, e := range g.Edges() {
		src, dst := mustID(e.Src), mustID(e.Dst)
		out[src] = append(out[src], dst)
		in[dst] = append(in[dst], src)
	}
	for _, m := range []map[uint32][]uint32{out, in} {
		for k, ids := range m {
			slices.Sort(ids)
			m[k] = slices.Compact(ids)
		}
	}
	return out, in
}
