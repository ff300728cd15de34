package archive

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	V1ProvGraphPrefix     = "v1/provgraphs/"
	GraphObjectName       = "graph.cpg"
	IdentifiersObjectName = "identifiers.cbor"

	// LenUUIDString is the length of the canonical uuid string form.
	LenUUIDString = 36
)

// Prefix returns the path prefix of every object of archive id.
func Prefix(id uuid.UUID) string {
	return fmt.Sprintf("%s%s/", V1ProvGraphPrefix, id.String())
}

// GraphPath returns the path of the compressed graph of archive id.
func GraphPath(id uuid.UUID) string { return Prefix(id) + GraphObjectName }

// IdentifiersPath returns the path of the dictionary of archive id.
func IdentifiersPath(id uuid.UUID) string { return Prefix(id) + IdentifiersObjectName }

// ParsePath returns the archive id and object name of an archive object
// path. The path may carry a leading store specific prefix.
func ParsePath(storagePath string) (uuid.UUID, string, error) {
	i := strings.Index(storagePath, V1ProvGraphPrefix)
	if i == -1 {
		return uuid.Nil, "", fmt.Errorf("%w: %s", ErrBadPath, storagePath)
	}
	rest := storagePath[i+len(V1ProvGraphPrefix):]

	// the uuid may be followed by a slash or end the path
	j := strings.Index(rest, "/")
	if j == -1 {
		j = len(rest)
	}
	id, err := uuid.Parse(rest[:j])
	if err != nil || j != LenUUIDString {
		return uuid.Nil, "", fmt.Errorf("%w: %s: bad archive id", ErrBadPath, storagePath)
	}
	name := strings.TrimPrefix(rest[j:], "/")
	switch name {
	case "", GraphObjectName, IdentifiersObjectName:
		return id, name, nil
	default:
		return uuid.Nil, "", fmt.Errorf("%w: %s: unknown object %q", ErrBadPath, storagePath, name)
	}
}
