/*
Package codes implements the universal and entropy integer codes used
to serialize the graph's bit streams: Unary, Gamma, Delta, Zeta(k),
Nibble, and (via the huffman package) contextual Huffman.

Every code exposes the same read/write contract so that a role
(outdegree, block, interval, residual, offset, reference) can be bound
to any of them at runtime, and so the properties sidecar can record
which one was used.
*/
package codes

import "github.com/webgraph-go/bvgraph/bitio"

// EncodingType is the stable tag recorded in the properties sidecar
// for each role. Values match the code tag set in the properties file
// format exactly.
type EncodingType string

const (
	Unary   EncodingType = "UNARY"
	Gamma   EncodingType = "GAMMA"
	Delta   EncodingType = "DELTA"
	Zeta    EncodingType = "ZETA"
	Nibble  EncodingType = "NIBBLE"
	Huffman EncodingType = "HUFFMAN"
)

// Code is implemented by every universal code. zetaK is only consulted
// by the Zeta code; other implementations ignore it, which lets a
// caller pass the graph's configured zetaK uniformly to whichever code
// a role is bound to.
type Code interface {
	ReadNext(r *bitio.Reader, zetaK int) (uint64, error)
	WriteNext(w *bitio.Writer, value uint64, zetaK int) int
	Tag() EncodingType
}

// ByTag resolves a properties-file code tag to its Code implementation.
// Huffman is excluded: it is not self-delimiting and requires a
// context-specific table built in advance, so it is never returned
// here (see package huffman).
func ByTag(tag EncodingType) (Code, bool) {
	switch tag {
	case Unary:
		return UnaryCode{}, true
	case Gamma:
		return GammaCode{}, true
	case Delta:
		return DeltaCode{}, true
	case Zeta:
		return ZetaCode{}, true
	case Nibble:
		return NibbleCode{}, true
	default:
		return nil, false
	}
}
