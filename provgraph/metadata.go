package provgraph

const (
	// TypeUnknown is the record type given to identifiers referenced by a
	// relation but never defined.
	TypeUnknown = "unknown"

	// AttrType is the attribute naming a record's CamFlow type.
	AttrType = "cf:type"

	// VersionType is the AttrType value of a version relation.
	VersionType = "version"
)

// Record is the metadata for one identifier: its PROV type (entity,
// activity, used, ...) and its attributes.
type Record struct {
	Type       string
	Attributes map[string]any
}

// AttrString returns the named attribute if it is a string.
func (r Record) AttrString(name string) (string, bool) {
	v, ok := r.Attributes[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Metadata maps identifiers to their records.
type Metadata map[string]Record

// EdgeClass distinguishes version edges from causal ones.
type EdgeClass uint8

const (
	EdgeOther EdgeClass = iota
	EdgeVersion
)

func (c EdgeClass) String() string {
	if c == EdgeVersion {
		return "version"
	}
	return "other"
}

// Classifier decides whether an edge label denotes a version edge.
type Classifier interface {
	ClassifyEdge(label string) EdgeClass
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(label string) EdgeClass

func (f ClassifierFunc) ClassifyEdge(label string) EdgeClass { return f(label) }

// MetadataClassifier classifies a label as a version edge when its record's
// cf:type attribute is "version". Labels without a record are causal.
type MetadataClassifier struct {
	Metadata Metadata
}

func (c MetadataClassifier) ClassifyEdge(label string) EdgeClass {
	rec, ok := c.Metadata[label]
	if !ok {
		return EdgeOther
	}
	if t, _ := rec.AttrString(AttrType); t == VersionType {
		return EdgeVersion
	}
	return EdgeOther
}

// VersionLabels returns a classifier treating exactly the given labels as
// version edges.
func VersionLabels(labels ...string) Classifier {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return ClassifierFunc(func(label string) EdgeClass {
		if _, ok := set[label]; ok {
			return EdgeVersion
		}
		return EdgeOther
	})
}

// IsVersion reports whether e is a version edge under c.
func IsVersion(c Classifier, e Edge) bool {
	return c.ClassifyEdge(e.Label) == EdgeVersion
}
