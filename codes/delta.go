package codes

import (
	"math/bits"

	"github.com/webgraph-go/bvgraph/bitio"
)

// DeltaCode is Elias delta: floor(log2(v+1)) (the bit length of v+1
// minus one), gamma-coded, followed by the low bits of v+1 below its
// leading one. Delta pays a larger
// fixed cost than Gamma for small values but grows more slowly, so it
// is preferred for roles with a heavy tail (e.g. residuals).
type DeltaCode struct{}

func (DeltaCode) Tag() EncodingType { return Delta }

func (DeltaCode) WriteNext(w *bitio.Writer, value uint64, _ int) int {
	x := value + 1
	length := bits.Len64(x) - 1
	n := writeGamma(w, uint64(length))
	mask := uint64(1)<<uint(length) - 1
	n += w.WriteBits(x&mask, length)
	return n
}

func (DeltaCode) ReadNext(r *bitio.Reader, _ int) (uint64, error) {
	length, err := readGamma(r)
	if err != nil {
		return 0, err
	}
	low, err := r.ReadBits(int(length))
	if err != nil {
		return 0, err
	}
	x := (uint64(1) << uint(length)) | low
	return x - 1, nil
}
