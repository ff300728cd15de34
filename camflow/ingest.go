package camflow

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/forestrie/go-provgraph/provgraph"
)

var (
	ErrTypeConflict = errors.New("camflow: identifier redefined with a different type")
	ErrBadLine      = errors.New("camflow: line is not a PROV-JSON object")
)

const prefixSection = "prefix"

// endpoints names the sender and receiver attributes of each relation type.
var endpoints = map[string][2]string{
	"used":           {"prov:entity", "prov:activity"},
	"wasGeneratedBy": {"prov:activity", "prov:entity"},
	"wasDerivedFrom": {"prov:usedEntity", "prov:generatedEntity"},
	"wasInformedBy":  {"prov:informant", "prov:informed"},
	"relation":       {"prov:sender", "prov:receiver"},
}

// IsRelationType reports whether records of type typ are edges.
func IsRelationType(typ string) bool {
	_, ok := endpoints[typ]
	return ok
}

// Ingester accumulates PROV-JSON lines into a graph.
type Ingester struct {
	Options
	graph    *provgraph.Graph
	metadata provgraph.Metadata
	missing  map[string]struct{}
	lines    int
}

func NewIngester(opts ...Option) *Ingester {
	in := &Ingester{
		graph:    provgraph.New(),
		metadata: make(provgraph.Metadata),
		missing:  make(map[string]struct{}),
	}
	for _, o := range opts {
		o(&in.Options)
	}
	if in.log == nil {
		in.log = defaultLogger()
	}
	return in
}

// ReadFrom ingests every line of r.
func (in *Ingester) ReadFrom(r io.Reader) (int64, error) {
	var n int64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		n += int64(len(line)) + 1
		if err := in.AddLine(line); err != nil {
			return n, err
		}
	}
	return n, sc.Err()
}

// AddLine ingests one line. Lines without a '{' are skipped.
func (in *Ingester) AddLine(line []byte) error {
	in.lines++
	i := bytes.IndexByte(line, '{')
	if i == -1 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(line[i:]))
	dec.UseNumber()
	// prefix sections are flat string maps, so decode sections lazily
	var sections map[string]json.RawMessage
	if err := dec.Decode(&sections); err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrBadLine, in.lines, err)
	}

	// map order is random; sort so warnings and edge precedence are stable
	types := make([]string, 0, len(sections))
	for typ := range sections {
		types = append(types, typ)
	}
	sort.Strings(types)

	for _, typ := range types {
		if typ == prefixSection {
			continue
		}
		var entries map[string]map[string]any
		sd := json.NewDecoder(bytes.NewReader(sections[typ]))
		sd.UseNumber()
		if err := sd.Decode(&entries); err != nil {
			return fmt.Errorf("%w: line %d: section %s: %v", ErrBadLine, in.lines, typ, err)
		}
		ids := make([]string, 0, len(entries))
		for id := range entries {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if err := in.addRecord(typ, id, entries[id]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (in *Ingester) addRecord(typ, id string, attrs map[string]any) error {
	if err := in.checkRedefinition(typ, id, attrs); err != nil {
		return err
	}
	in.metadata[id] = provgraph.Record{Type: typ, Attributes: attrs}
	delete(in.missing, id)

	keys, ok := endpoints[typ]
	if !ok {
		in.graph.AddVertex(id)
		return nil
	}

	sender, okS := attrs[keys[0]].(string)
	receiver, okR := attrs[keys[1]].(string)
	if !okS || !okR || sender == "" || receiver == "" {
		in.log.Warnf("relation %s (%s) lacks %s or %s, no edge added", id, typ, keys[0], keys[1])
		return nil
	}
	for _, v := range []string{sender, receiver} {
		if _, defined := in.metadata[v]; !defined {
			in.missing[v] = struct{}{}
		}
		in.graph.AddVertex(v)
	}

	err := in.graph.AddEdge(receiver, sender, id)
	if errors.Is(err, provgraph.ErrDuplicateEdge) {
		in.log.Warnf("multiple edges from %s to %s, ignoring relation %s", receiver, sender, id)
		return nil
	}
	return err
}

func (in *Ingester) checkRedefinition(typ, id string, attrs map[string]any) error {
	prev, ok := in.metadata[id]
	if !ok {
		return nil
	}
	if prev.Type != typ {
		return fmt.Errorf("%w: %s was %s, now %s", ErrTypeConflict, id, prev.Type, typ)
	}
	for k, v := range attrs {
		if old, ok := prev.Attributes[k]; ok && !reflect.DeepEqual(old, v) {
			in.log.Warnf("different metadata for %s: %s was %v, now %v", id, k, old, v)
		}
	}
	return nil
}

// Finish adds placeholder records for every identifier that was referenced
// but never defined, and returns the graph and metadata. The Ingester must
// not be used afterwards.
func (in *Ingester) Finish() (*provgraph.Graph, provgraph.Metadata) {
	if len(in.missing) > 0 {
		in.log.Infof("%d referenced identifiers were never defined", len(in.missing))
	}
	for id := range in.missing {
		in.metadata[id] = provgraph.Record{Type: provgraph.TypeUnknown, Attributes: map[string]any{}}
	}
	in.missing = nil
	in.log.Debugf("ingested %d lines: %d vertices, %d edges", in.lines, in.graph.Len(), in.graph.EdgeCount())
	return in.graph, in.metadata
}

// Ingest reads all of r and returns the finished graph and metadata.
func Ingest(r io.Reader, opts ...Option) (*provgraph.Graph, provgraph.Metadata, error) {
	in := NewIngester(opts...)
	if _, err := in.ReadFrom(r); err != nil {
		return nil, nil, err
	}
	g, md := in.Finish()
	return g, md, nil
}
