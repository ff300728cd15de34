package compress

import (
	"strings"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-provgraph/camflow"
	"github.com/forestrie/go-provgraph/collapse"
	"github.com/forestrie/go-provgraph/cpg"
	"github.com/forestrie/go-provgraph/cpgtesting"
	"github.com/forestrie/go-provgraph/numbering"
	"github.com/forestrie/go-provgraph/provgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versions = `{"entity":{"f1":{"cf:type":"file"},"f2":{"cf:type":"file"},"f3":{"cf:type":"file"}},"activity":{"p":{"cf:type":"task"},"q":{"cf:type":"task"}}}
{"wasDerivedFrom":{"v12":{"cf:type":"version","prov:usedEntity":"f1","prov:generatedEntity":"f2"},"v23":{"cf:type":"version","prov:usedEntity":"f2","prov:generatedEntity":"f3"}}}
{"used":{"u1":{"cf:type":"read","prov:entity":"f1","prov:activity":"p"},"u2":{"cf:type":"read","prov:entity":"f3","prov:activity":"q"}}}
{"wasGeneratedBy":{"g1":{"cf:type":"write","prov:activity":"p","prov:entity":"f2"}}}
`

func TestCompressCamFlow(t *testing.T) {
	logger.New("NOOP")
	g, md, err := camflow.Ingest(strings.NewReader(versions))
	require.NoError(t, err)

	res, err := New().Compress(g, md)
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Nodes:                5,
		Edges:                5,
		VersionEdges:         2,
		Clusters:             3,
		MultiVersionClusters: 1,
		StreamBits:           res.Encoded.StreamBits,
		Bytes:                res.Encoded.Size(),
	}, res.Stats)
	assert.Equal(t, 3, res.Numbering.ClusterSize("f2"))

	f1, _ := res.Numbering.ID("f1")
	f2, _ := res.Numbering.ID("f2")
	f3, _ := res.Numbering.ID("f3")
	assert.Equal(t, []uint32{f1, f1 + 1, f1 + 2}, []uint32{f1, f2, f3})

	// g1 is sent by p and received by f2
	p, _ := res.Numbering.ID("p")
	assert.Equal(t, res.Numbering.RelationID(p, f2), res.Relations["g1"])
	assert.Len(t, res.Relations, 5)

	data, err := res.MarshalBinary()
	require.NoError(t, err)
	dg, err := cpg.Open(data)
	require.NoError(t, err)

	out, err := dg.GetOutgoingEdges(f2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{f1, p}, out)

	in, err := dg.GetIncomingEdges(f1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint32{f2, p}, in)
}

type reversedRanker struct {
	inner numbering.Ranker
}

// Rank reverses the cluster order while keeping each chain contiguous.
func (r reversedRanker) Rank(res collapse.Result) ([]string, error) {
	order, err := r.inner.Rank(res)
	if err != nil {
		return nil, err
	}
	var runs [][]string
	for i := 0; i < len(order); {
		l, _ := res.Clusters.Leader(order[i])
		n := len(res.Clusters.Chain(l))
		runs = append(runs, order[i:i+n])
		i += n
	}
	out := make([]string, 0, len(order))
	for i := len(runs) - 1; i >= 0; i-- {
		out = append(out, runs[i]...)
	}
	return out, nil
}

func TestCompressWithOptions(t *testing.T) {
	g := cpgtesting.RandomGraph(cpgtesting.GraphConfig{Seed: 3, Objects: 30, MaxVersions: 4, Edges: 100})

	for name, opts := range map[string][]Option{
		"reachability": {WithVisitOrder(numbering.ReachabilityOrder{})},
		"ranker":       {WithRanker(reversedRanker{inner: numbering.TransposeBFSRanker{}})},
	} {
		t.Run(name, func(t *testing.T) {
			opts = append(opts, WithClassifier(cpgtesting.Classifier()))
			res, err := New(opts...).Compress(g, nil)
			require.NoError(t, err)

			data, err := res.MarshalBinary()
			require.NoError(t, err)
			dg, err := cpg.Open(data)
			require.NoError(t, err)

			expectOut, expectIn := cpgtesting.Neighborhoods(g, res.Numbering.ID)
			for id := uint32(0); id < dg.NodeCount(); id++ {
				out, err := dg.GetOutgoingEdges(id)
				require.NoError(t, err)
				require.Equal(t, expectOut[id], out)
				in, err := dg.GetIncomingEdges(id)
				require.NoError(t, err)
				require.Equal(t, expectIn[id], in)
			}
		})
	}
}

func TestCompressRejectsBranchingVersions(t *testing.T) {
	g := provgraph.New()
	require.NoError(t, g.AddEdge("b", "a", "v1"))
	require.NoError(t, g.AddEdge("c", "a", "v2"))

	_, err := New(WithClassifier(provgraph.VersionLabels("v1", "v2"))).Compress(g, nil)
	require.ErrorIs(t, err, collapse.ErrBranchingVersionChain)
}
