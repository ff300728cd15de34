package archive

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/forestrie/go-provgraph/compress"
)

// Dictionary maps canonical ids back to identifiers. Identifiers[i] is the
// identifier numbered i. Relations maps each relation record identifier to
// its derived relation id.
type Dictionary struct {
	ArchiveID   uuid.UUID         `cbor:"1,keyasint"`
	NodeCount   uint32            `cbor:"2,keyasint"`
	Identifiers []string          `cbor:"3,keyasint"`
	Relations   map[string]uint64 `cbor:"4,keyasint,omitempty"`
}

// NewDictionary captures the numbering of a compression run.
func NewDictionary(id uuid.UUID, res compress.Result) Dictionary {
	return Dictionary{
		ArchiveID:   id,
		NodeCount:   res.Numbering.NodeCount(),
		Identifiers: res.Numbering.Identifiers(),
		Relations:   res.Relations,
	}
}

// Codec encodes dictionaries deterministically, so equal dictionaries give
// equal bytes.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCodec returns a codec using CBOR core deterministic encoding.
func NewCodec() (Codec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return Codec{}, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return Codec{}, err
	}
	return Codec{enc: enc, dec: dec}, nil
}

func (c Codec) MarshalDictionary(d Dictionary) ([]byte, error) {
	return c.enc.Marshal(d)
}

func (c Codec) UnmarshalDictionary(data []byte) (Dictionary, error) {
	var d Dictionary
	if err := c.dec.Unmarshal(data, &d); err != nil {
		return Dictionary{}, err
	}
	return d, nil
}
