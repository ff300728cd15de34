package cpg

/*

# Compressed provenance graphs (.cpg)

This package encodes the topology of a numbered provenance graph into an
immutable, random access binary form and answers per node neighborhood
queries directly against it.

It follows the "functional primitives" style of the bitstream package:

- explicit byte and bit layouts
- index arithmetic over a single immutable buffer
- decoding without materializing the graph

## Asymmetric adjacency

Successive versions of one object are numbered contiguously (see package
numbering), so a cluster of size k with base id b owns {b..b+k-1} and each
version edge is the implied link n -> n-1. Version edges are never stored.

For every cluster the stream holds two lists:

- forward: the exact destination ids of every non-version edge leaving any
  member, merged over the whole cluster.
- backward: the exact sender ids of every non-version edge arriving at any
  member. In a multi-version cluster each backward entry also carries the
  offset of the receiving member inside the cluster.

A singleton cluster's lists are its node's exact neighborhoods. For a member
of a multi-version cluster, incoming edges are the backward entries tagged
with its offset, and outgoing edges are the forward destinations whose own
cluster lists this node, with the destination's offset, as a sender.

## List encoding

	degree          Widths.Degree bits
	zigzag(v0-b)    Widths.Delta+1 bits    (first entry, relative to base b)
	[offset]        SizeBits bits          (multi-version backward lists only)
	v1-v0           Widths.Delta bits
	[offset]
	...

Entries are sorted ascending (by sender, then offset, for backward lists).
Widths are chosen per direction and per size class (singleton or
multi-version), so the header carries four width pairs. A class with no
edges at all has zero widths and contributes no bits.

## Layout

	+--------------------------+  14 bytes
	| HeaderV1                 |  widths, index widths, cluster count
	+--------------------------+
	| index                    |  per cluster: [bit length of previous
	|                          |  cluster] size; zero padded to a byte
	+--------------------------+
	| stream                   |  per cluster, in base id order:
	|                          |  forward list, backward list
	+--------------------------+

The first cluster always starts at stream bit 0, so only the N-1 lengths of
the clusters preceding each cluster are stored. The decoder prefix sums
lengths into bit offsets and sizes into base ids, and finds the cluster of a
node by binary search.

## Concurrency

A Graph is immutable. Every query uses its own bit cursor, so a Graph may be
queried from many goroutines.

*/
