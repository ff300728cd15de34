package archive

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/forestrie/go-provgraph/compress"
	"github.com/forestrie/go-provgraph/cpg"
	"github.com/forestrie/go-provgraph/query"
)

const (
	TagArchiveID = "archiveid"
	TagNodeCount = "nodecount"
)

// Archive is a loaded compressed graph with its dictionary.
type Archive struct {
	ID         uuid.UUID
	Graph      *cpg.Graph
	Dictionary Dictionary
	ids        map[string]uint32
}

// Save stores the compressed graph and dictionary of res under a new archive
// id, which it returns.
func Save(ctx context.Context, store Store, res compress.Result) (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, err
	}
	return id, SaveAs(ctx, store, id, res)
}

// SaveAs stores res under id, replacing any archive already there.
func SaveAs(ctx context.Context, store Store, id uuid.UUID, res compress.Result) error {
	codec, err := NewCodec()
	if err != nil {
		return err
	}
	dict, err := codec.MarshalDictionary(NewDictionary(id, res))
	if err != nil {
		return err
	}
	graph, err := res.MarshalBinary()
	if err != nil {
		return err
	}

	tags := map[string]string{
		TagArchiveID: id.String(),
		TagNodeCount: strconv.FormatUint(uint64(res.Numbering.NodeCount()), 10),
	}
	// the dictionary goes first so a visible graph always has one
	if err := store.Put(ctx, IdentifiersPath(id), dict, tags); err != nil {
		return err
	}
	return store.Put(ctx, GraphPath(id), graph, tags)
}

// Load reads and validates archive id.
func Load(ctx context.Context, store Store, id uuid.UUID) (*Archive, error) {
	data, err := store.Get(ctx, GraphPath(id))
	if err != nil {
		return nil, err
	}
	g, err := cpg.Open(data)
	if err != nil {
		return nil, err
	}

	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	raw, err := store.Get(ctx, IdentifiersPath(id))
	if err != nil {
		return nil, err
	}
	dict, err := codec.UnmarshalDictionary(raw)
	if err != nil {
		return nil, err
	}
	if dict.ArchiveID != id {
		return nil, fmt.Errorf("%w: dictionary belongs to %s", ErrDictionaryMismatch, dict.ArchiveID)
	}
	if dict.NodeCount != g.NodeCount() || uint64(len(dict.Identifiers)) != uint64(g.NodeCount()) {
		return nil, fmt.Errorf("%w: %d identifiers, %d nodes",
			ErrDictionaryMismatch, len(dict.Identifiers), g.NodeCount())
	}

	a := &Archive{ID: id, Graph: g, Dictionary: dict, ids: make(map[string]uint32, len(dict.Identifiers))}
	for i, s := range dict.Identifiers {
		a.ids[s] = uint32(i)
	}
	return a, nil
}

// CanonicalID returns the canonical id of identifier.
func (a *Archive) CanonicalID(identifier string) (uint32, bool) {
	id, ok := a.ids[identifier]
	return id, ok
}

// Outgoing returns the identifiers identifier has edges to, in canonical id
// order.
func (a *Archive) Outgoing(identifier string) ([]string, error) {
	id, ok := a.ids[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, identifier)
	}
	ids, err := a.Graph.GetOutgoingEdges(id)
	if err != nil {
		return nil, err
	}
	return a.identifiers(ids), nil
}

// Incoming returns the identifiers with edges to identifier, in canonical
// id order.
func (a *Archive) Incoming(identifier string) ([]string, error) {
	id, ok := a.ids[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, identifier)
	}
	ids, err := a.Graph.GetIncomingEdges(id)
	if err != nil {
		return nil, err
	}
	return a.identifiers(ids), nil
}

// Descendants returns every identifier reachable from identifier.
func (a *Archive) Descendants(identifier string) ([]string, error) {
	return a.transitive(identifier, query.Descendants)
}

// Ancestors returns every identifier from which identifier is reachable.
func (a *Archive) Ancestors(identifier string) ([]string, error) {
	return a.transitive(identifier, query.Ancestors)
}

func (a *Archive) transitive(identifier string, f func(query.Neighbors, uint32) ([]uint32, error)) ([]string, error) {
	id, ok := a.ids[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, identifier)
	}
	ids, err := f(a.Graph, id)
	if err != nil {
		return nil, err
	}
	return a.identifiers(ids), nil
}

func (a *Archive) identifiers(ids []uint32) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.Dictionary.Identifiers[id])
	}
	return out
}
