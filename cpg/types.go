package cpg

import "errors"

// SizeClass selects the width pair used for a cluster's lists.
type SizeClass uint8

const (
	Singleton    SizeClass = 0
	MultiVersion SizeClass = 1
)

func classOf(size uint32) SizeClass {
	if size > 1 {
		return MultiVersion
	}
	return Singleton
}

// Widths are the fixed bit widths of one list class.
type Widths struct {
	Degree uint8
	Delta  uint8
}

// FirstDelta is the width of a list's zig-zag encoded first delta.
func (w Widths) FirstDelta() uint8 {
	if w.Delta == 0 {
		return 0
	}
	return w.Delta + 1
}

var (
	ErrHeaderTooShort  = errors.New("cpg: data too short for header")
	ErrBadWidth        = errors.New("cpg: header width is invalid")
	ErrIndexTruncated  = errors.New("cpg: data too short for index")
	ErrIndexCorrupt    = errors.New("cpg: index is inconsistent")
	ErrStreamCorrupt   = errors.New("cpg: adjacency stream is inconsistent")
	ErrNodeOutOfRange  = errors.New("cpg: node id out of range")
	ErrUnknownNode     = errors.New("cpg: graph vertex has no canonical id")
	ErrTooManyClusters = errors.New("cpg: cluster count does not fit in 32 bits")
)
