package bitstream

/*

# Packed bit streams

This package provides the bit level primitives the compressed provenance graph
format is built from. It follows the "functional primitives" style used for
the rest of the format:

- small, composable functions
- explicit bit layouts
- a burden of knowledge on the caller for hot paths

## Bit numbering

Values are written most-significant-bit first. The first bit of the stream is
bit 7 of byte 0, the ninth bit is bit 7 of byte 1, and so on. A stream that
ends part way through a byte is zero padded to the byte boundary.

	Write(5, 3); Write(1, 2); Write(0x1ff, 9)

	byte 0          byte 1
	1 0 1 0 1 1 1 1 1 1 1 1 1 1 0 0
	|5   |1 |0x1ff            |pad

## Widths

Every value is written with a width declared by the caller. Widths are
computed as true maxima before any value is written, so a value that does not
fit its declared width is a programming error. Writer.Write panics rather
than truncate.

## Cursors

A Reader is a small value holding a slice header and a bit cursor. It is not
safe for concurrent use, but it is cheap to create: concurrent readers of one
immutable buffer should each use their own Reader (or a Clone).

*/
