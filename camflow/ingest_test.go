package camflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-provgraph/provgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger keeps warnings so tests can assert on them.
type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debugf(string, ...any) {}
func (l *recordingLogger) Infof(string, ...any)  {}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

const sample = `
garbage before the payload {"prefix":{"cf":"http://www.camflow.org"},"entity":{"e1":{"cf:type":"file","cf:version":1},"e2":{"cf:type":"file","cf:version":2}},"activity":{"a1":{"cf:type":"task"}}}
not json at all
{"used":{"u1":{"cf:type":"read","prov:entity":"e1","prov:activity":"a1"}}}
{"wasGeneratedBy":{"g1":{"cf:type":"write","prov:activity":"a1","prov:entity":"e2"}}}
{"wasDerivedFrom":{"v1":{"cf:type":"version","prov:usedEntity":"e1","prov:generatedEntity":"e2"}}}
{"wasInformedBy":{"i1":{"cf:type":"clone","prov:informant":"a0","prov:informed":"a1"}}}
`

func TestIngestBuildsReceiverToSenderEdges(t *testing.T) {
	logger.New("NOOP")
	g, md, err := Ingest(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"a0", "a1", "e1", "e2"}, g.Vertices())
	assert.Equal(t, 4, g.EdgeCount())

	tests := []struct {
		src, dst, label string
	}{
		{"a1", "e1", "u1"},
		{"e2", "a1", "g1"},
		{"e2", "e1", "v1"},
		{"a1", "a0", "i1"},
	}
	for _, tt := range tests {
		e, ok := g.Edge(tt.src, tt.dst)
		require.True(t, ok, "%s -> %s", tt.src, tt.dst)
		assert.Equal(t, tt.label, e.Label)
	}

	// a0 is only referenced, never defined
	assert.Equal(t, provgraph.TypeUnknown, md["a0"].Type)
	assert.Equal(t, "entity", md["e1"].Type)
	assert.Equal(t, "wasDerivedFrom", md["v1"].Type)
	assert.NotContains(t, md, "cf")

	classify := provgraph.MetadataClassifier{Metadata: md}
	assert.Equal(t, provgraph.EdgeVersion, classify.ClassifyEdge("v1"))
	assert.Equal(t, provgraph.EdgeOther, classify.ClassifyEdge("u1"))
}

func TestIngestLaterDefinitionClearsPlaceholder(t *testing.T) {
	in := NewIngester(WithLogger(&recordingLogger{}))
	require.NoError(t, in.AddLine([]byte(`{"relation":{"r1":{"prov:sender":"s","prov:receiver":"r"}}}`)))
	require.NoError(t, in.AddLine([]byte(`{"entity":{"s":{"cf:type":"socket"}}}`)))

	_, md := in.Finish()
	assert.Equal(t, "entity", md["s"].Type)
	assert.Equal(t, provgraph.TypeUnknown, md["r"].Type)
}

func TestIngestWarnings(t *testing.T) {
	log := &recordingLogger{}
	in := NewIngester(WithLogger(log))

	lines := []string{
		`{"entity":{"e1":{"cf:type":"file","cf:mode":"0644"}}}`,
		`{"entity":{"e1":{"cf:type":"file","cf:mode":"0600"}}}`,
		`{"used":{"u1":{"prov:entity":"e1","prov:activity":"a1"}}}`,
		`{"used":{"u2":{"prov:entity":"e1","prov:activity":"a1"}}}`,
		`{"used":{"u3":{"prov:entity":"e1"}}}`,
	}
	for _, l := range lines {
		require.NoError(t, in.AddLine([]byte(l)))
	}
	g, md := in.Finish()

	require.Len(t, log.warnings, 3)
	assert.Contains(t, log.warnings[0], "different metadata for e1")
	assert.Contains(t, log.warnings[1], "multiple edges from a1 to e1")
	assert.Contains(t, log.warnings[2], "u3")

	// last definition wins, the duplicate relation keeps its metadata only
	mode, _ := md["e1"].AttrString("cf:mode")
	assert.Equal(t, "0600", mode)
	assert.Contains(t, md, "u2")
	e, ok := g.Edge("a1", "e1")
	require.True(t, ok)
	assert.Equal(t, "u1", e.Label)
}

func TestIngestErrors(t *testing.T) {
	in := NewIngester(WithLogger(&recordingLogger{}))
	require.NoError(t, in.AddLine([]byte(`{"entity":{"x":{}}}`)))
	err := in.AddLine([]byte(`{"activity":{"x":{}}}`))
	require.ErrorIs(t, err, ErrTypeConflict)

	err = in.AddLine([]byte(`prefix {"entity": [1, 2]}`))
	require.ErrorIs(t, err, ErrBadLine)
}

func TestIngestSkipsPrefixSection(t *testing.T) {
	log := &recordingLogger{}
	in := NewIngester(WithLogger(log))
	lines := []string{
		`{"prefix":{"cf":"http://www.camflow.org"},"entity":{"e1":{"cf:type":"file"}}}`,
		`{"prefix":{"prov":"http://www.w3.org/ns/prov#"}}`,
		`{"activity":{"a1":{"cf:type":"task"}},"prefix":{"cf":"http://www.camflow.org"},"used":{"u1":{"prov:entity":"e1","prov:activity":"a1"}}}`,
	}
	for _, l := range lines {
		require.NoError(t, in.AddLine([]byte(l)))
	}
	g, md := in.Finish()

	assert.Empty(t, log.warnings)
	assert.Equal(t, []string{"a1", "e1"}, g.Vertices())
	e, ok := g.Edge("a1", "e1")
	require.True(t, ok)
	assert.Equal(t, "u1", e.Label)
	assert.Equal(t, "entity", md["e1"].Type)
	assert.NotContains(t, md, "cf")
	assert.NotContains(t, md, "prov")

	// other sections still have to be records
	err := in.AddLine([]byte(`{"prefix":{"cf":"x"},"entity":{"e2":"file"}}`))
	require.ErrorIs(t, err, ErrBadLine)
}
