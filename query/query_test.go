package query

import (
	"fmt"
	"testing"

	"github.com/forestrie/go-provgraph/collapse"
	"github.com/forestrie/go-provgraph/cpg"
	"github.com/forestrie/go-provgraph/numbering"
	"github.com/forestrie/go-provgraph/provgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamond plus a version chain:
//
//	d -> b -> a
//	d -> c -> a
//	a.v2 -> a (version)
//	e -> a.v2
type fixture struct {
	g   *cpg.Graph
	num *numbering.Numbering
}

func newFixture(t *testing.T) fixture {
	g := provgraph.New()
	for _, e := range [][3]string{
		{"d", "b", "r1"}, {"d", "c", "r2"}, {"b", "a", "r3"}, {"c", "a", "r4"},
		{"a.v2", "a", "ver"}, {"e", "a.v2", "r5"},
	} {
		require.NoError(t, g.AddEdge(e[0], e[1], e[2]))
	}
	classify := provgraph.VersionLabels("ver")
	res, err := collapse.Collapse(g, classify)
	require.NoError(t, err)
	num, err := numbering.Assign(res, nil)
	require.NoError(t, err)
	enc, err := cpg.Encode(g, num, classify)
	require.NoError(t, err)
	data, err := enc.MarshalBinary()
	require.NoError(t, err)
	cg, err := cpg.Open(data)
	require.NoError(t, err)
	return fixture{g: cg, num: num}
}

func (f fixture) id(t *testing.T, s string) uint32 {
	id, ok := f.num.ID(s)
	require.True(t, ok, s)
	return id
}

func (f fixture) names(ids []uint32) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		s, _ := f.num.Identifier(id)
		out = append(out, s)
	}
	return out
}

func TestDescendantsAncestors(t *testing.T) {
	f := newFixture(t)

	desc, err := Descendants(f.g, f.id(t, "e"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.v2", "a"}, f.names(desc))

	desc, err = Descendants(f.g, f.id(t, "d"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, f.names(desc))

	anc, err := Ancestors(f.g, f.id(t, "a"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.v2", "b", "c", "d", "e"}, f.names(anc))

	anc, err = Ancestors(f.g, f.id(t, "d"))
	require.NoError(t, err)
	assert.Empty(t, anc)

	_, err = Ancestors(f.g, 99)
	require.ErrorIs(t, err, ErrNodeOutOfRange)
}

func TestPaths(t *testing.T) {
	f := newFixture(t)

	paths, err := Paths(f.g, f.id(t, "d"), f.id(t, "a"), 0)
	require.NoError(t, err)
	var got []string
	for _, p := range paths {
		got = append(got, fmt.Sprint(f.names(p)))
	}
	assert.ElementsMatch(t, []string{"[d b a]", "[d c a]"}, got)

	paths, err = Paths(f.g, f.id(t, "d"), f.id(t, "a"), 1)
	require.ErrorIs(t, err, ErrPathLimit)
	assert.Len(t, paths, 1)

	paths, err = Paths(f.g, f.id(t, "a"), f.id(t, "d"), 0)
	require.NoError(t, err)
	assert.Empty(t, paths)

	paths, err = Paths(f.g, f.id(t, "b"), f.id(t, "b"), 0)
	require.NoError(t, err)
	assert.Equal(t, [][]uint32{{f.id(t, "b")}}, paths)
}

// cycle is a hand built Neighbors with a cycle 0 -> 1 -> 2 -> 0 and 2 -> 3.
type cycle struct{}

var cycleOut = map[uint32][]uint32{0: {1}, 1: {2}, 2: {0, 3}, 3: {}}

func (cycle) GetOutgoingEdges(id uint32) ([]uint32, error) { return cycleOut[id], nil }
func (cycle) GetIncomingEdges(id uint32) ([]uint32, error) {
	var in []uint32
	for src, outs := range cycleOut {
		for _, d := range outs {
			if d == id {
				in = append(in, src)
			}
		}
	}
	return in, nil
}
func (cycle) NodeCount() uint32 { return 4 }

func TestCycles(t *testing.T) {
	desc, err := Descendants(cycle{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3}, desc)

	desc, err = Descendants(cycle{}, 3)
	require.NoError(t, err)
	assert.Empty(t, desc)

	paths, err := Paths(cycle{}, 0, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]uint32{{0, 1, 2, 3}}, paths)
}
