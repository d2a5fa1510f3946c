/*
Package bitio provides MSB-first, bit-addressable reading and writing over
byte buffers.

Integers are packed most-significant-bit first within each byte; bytes
are written in natural order. The writer is append-only and never
truncates; the reader supports arbitrary positioning so that a caller
can seek directly to the bit offset recorded for a graph node and begin
decoding from there.
*/
package bitio

import "errors"

// ErrEOF is returned when a read would consume bits past the end of
// the underlying byte slice.
var ErrEOF = errors.New("bitio: read past end of stream")

// ErrBitWidth is returned when a bit width outside [0, 64] is requested.
var ErrBitWidth = errors.New("bitio: bit width out of range")
