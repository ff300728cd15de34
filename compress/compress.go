// Package compress runs the whole topology compression pipeline: version
// collapsing, canonical numbering and encoding.
package compress

import (
	"github.com/forestrie/go-provgraph/collapse"
	"github.com/forestrie/go-provgraph/cpg"
	"github.com/forestrie/go-provgraph/numbering"
	"github.com/forestrie/go-provgraph/provgraph"
)

// Stats summarizes one compression run.
type Stats struct {
	Nodes                int
	Edges                int
	VersionEdges         int
	Clusters             int
	MultiVersionClusters int
	StreamBits           uint64
	Bytes                int
}

// Result is everything a compression run produces. Numbering is the
// identifier bijection the metadata codec cross references.
type Result struct {
	Encoded   *cpg.Encoded
	Numbering *numbering.Numbering
	Clusters  *collapse.Clusters
	// Relations maps each edge label to its derived relation id.
	Relations map[string]uint64
	Stats     Stats
}

// MarshalBinary returns the serialized compressed graph.
func (r Result) MarshalBinary() ([]byte, error) { return r.Encoded.MarshalBinary() }

type Compressor struct {
	Options
}

func New(opts ...Option) *Compressor {
	c := &Compressor{}
	for _, o := range opts {
		o(&c.Options)
	}
	if c.log == nil {
		c.log = defaultLogger()
	}
	if c.ranker == nil {
		c.ranker = numbering.TransposeBFSRanker{Order: c.order}
	}
	return c
}

// Compress compresses the topology of g. Unless a classifier was configured,
// version edges are recognized from the relation records in md.
func (c *Compressor) Compress(g *provgraph.Graph, md provgraph.Metadata) (Result, error) {
	classify := c.classify
	if classify == nil {
		classify = provgraph.MetadataClassifier{Metadata: md}
	}

	res, err := collapse.Collapse(g, classify)
	if err != nil {
		return Result{}, err
	}
	c.log.Debugf("collapsed %d vertices into %d clusters (%d multi-version)",
		g.Len(), res.Clusters.Len(), res.Clusters.MultiVersion())

	num, err := numbering.Assign(res, c.ranker)
	if err != nil {
		return Result{}, err
	}
	relations, err := num.RelationIDs(g)
	if err != nil {
		return Result{}, err
	}

	enc, err := cpg.Encode(g, num, classify)
	if err != nil {
		return Result{}, err
	}

	stats := Stats{
		Nodes:                g.Len(),
		Edges:                g.EdgeCount(),
		Clusters:             res.Clusters.Len(),
		MultiVersionClusters: res.Clusters.MultiVersion(),
		StreamBits:           enc.StreamBits,
		Bytes:                enc.Size(),
	}
	for _, e := range g.Edges() {
		if provgraph.IsVersion(classify, e) {
			stats.VersionEdges++
		}
	}
	h := enc.Header
	c.log.Debugf("widths forward %+v backward %+v index %d size %d",
		h.Forward, h.Backward, h.IndexBits, h.SizeBits)
	c.log.Infof("compressed %d nodes, %d edges (%d version) into %d bytes",
		stats.Nodes, stats.Edges, stats.VersionEdges, stats.Bytes)

	return Result{
		Encoded:   enc,
		Numbering: num,
		Clusters:  res.Clusters,
		Relations: relations,
		Stats:     stats,
	}, nil
}
