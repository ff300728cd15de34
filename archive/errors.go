package archive

import "errors"

var (
	ErrNotFound           = errors.New("archive: object not found")
	ErrBadPath            = errors.New("archive: path is not an archive object path")
	ErrDictionaryMismatch = errors.New("archive: dictionary does not match the compressed graph")
	ErrUnknownIdentifier  = errors.New("archive: identifier is not in the dictionary")
)
