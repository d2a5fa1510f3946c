package codes

import (
	"math/bits"

	"github.com/webgraph-go/bvgraph/bitio"
)

// ZetaCode is the Zeta(k) family: v+1 is located in a bucket
// [2^(hk), 2^((h+1)k)), h is written in unary, and the offset of v+1
// within the bucket is written as a minimal (truncated) binary code
// over the bucket's domain size. k == 1 degenerates to Gamma on v+1's
// bucket index but is not special-cased, since minimal binary over a
// power-of-two domain is already plain fixed-width binary.
type ZetaCode struct{}

func (ZetaCode) Tag() EncodingType { return Zeta }

func (ZetaCode) WriteNext(w *bitio.Writer, value uint64, zetaK int) int {
	k := zetaK
	x := value + 1
	msb := bits.Len64(x) - 1
	h := msb / k
	n := (UnaryCode{}).WriteNext(w, uint64(h), 0)
	left := uint64(1) << uint(h*k)
	domain := left*(uint64(1)<<uint(k)) - left
	residual := x - left
	n += writeMinimalBinary(w, residual, domain)
	return n
}

func (ZetaCode) ReadNext(r *bitio.Reader, zetaK int) (uint64, error) {
	k := zetaK
	h, err := (UnaryCode{}).ReadNext(r, 0)
	if err != nil {
		return 0, err
	}
	left := uint64(1) << uint(int(h)*k)
	domain := left*(uint64(1)<<uint(k)) - left
	residual, err := readMinimalBinary(r, domain)
	if err != nil {
		return 0, err
	}
	return left + residual - 1, nil
}

// writeMinimalBinary encodes x in [0, n) using the fewest possible
// bits: values below the "short" threshold use floor(log2 n) bits,
// the rest use one bit more. It degenerates to plain fixed-width
// binary when n is a power of two.
func writeMinimalBinary(w *bitio.Writer, x, n uint64) int {
	if n <= 1 {
		return 0
	}
	s := uint(bits.Len64(n) - 1)
	short := (uint64(1) << (s + 1)) - n
	if x < short {
		return w.WriteBits(x, int(s))
	}
	return w.WriteBits(x+short, int(s)+1)
}

func readMinimalBinary(r *bitio.Reader, n uint64) (uint64, error) {
	if n <= 1 {
		return 0, nil
	}
	s := uint(bits.Len64(n) - 1)
	short := (uint64(1) << (s + 1)) - n
	prefix, err := r.ReadBits(int(s))
	if err != nil {
		return 0, err
	}
	if prefix < short {
		return prefix, nil
	}
	extra, err := r.ReadBits(1)
	if err != nil {
		return 0, err
	}
	v := (prefix << 1) | extra
	return v - short, nil
}
