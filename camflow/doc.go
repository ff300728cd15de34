// Package camflow reads CamFlow W3C PROV-JSON output into a provenance
// graph and its metadata.
//
// Each input line holds one JSON object keyed by PROV type. Anything before
// the first '{' on a line is ignored, as is every "prefix" section. Records
// of a relation type become edges from the relation's receiver to its
// sender, labelled with the relation's identifier:
//
//	used            prov:entity      <- prov:activity
//	wasGeneratedBy  prov:activity    <- prov:entity
//	wasDerivedFrom  prov:usedEntity  <- prov:generatedEntity
//	wasInformedBy   prov:informant   <- prov:informed
//	relation        prov:sender      <- prov:receiver
//
// Every other record type becomes a vertex. Identifiers referenced by a
// relation but never defined are given a placeholder record of type
// provgraph.TypeUnknown when ingestion finishes.
package camflow
