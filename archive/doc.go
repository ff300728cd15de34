// Package archive persists compressed provenance graphs together with the
// identifier dictionary needed to map canonical ids back to CamFlow
// identifiers.
//
// An archive is identified by a uuid and stored as two objects:
//
//	v1/provgraphs/{uuid}/graph.cpg         the compressed topology
//	v1/provgraphs/{uuid}/identifiers.cbor  the Dictionary, deterministic CBOR
//
// Objects go to a Store: DirStore for a local directory tree, BlobStore for
// Azure blob storage.
package archive
