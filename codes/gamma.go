package codes

import (
	"math/bits"

	"github.com/webgraph-go/bvgraph/bitio"
)

// GammaCode is Elias gamma: floor(log2(v+1)) (the bit length of v+1
// minus one), in unary, followed by the low bits of v+1 below its
// leading one.
type GammaCode struct{}

func (GammaCode) Tag() EncodingType { return Gamma }

func (GammaCode) WriteNext(w *bitio.Writer, value uint64, _ int) int {
	return writeGamma(w, value)
}

func (GammaCode) ReadNext(r *bitio.Reader, _ int) (uint64, error) {
	return readGamma(r)
}

func writeGamma(w *bitio.Writer, value uint64) int {
	x := value + 1
	length := bits.Len64(x) - 1
	n := (UnaryCode{}).WriteNext(w, uint64(length), 0)
	mask := uint64(1)<<uint(length) - 1
	n += w.WriteBits(x&mask, length)
	return n
}

func readGamma(r *bitio.Reader) (uint64, error) {
	length, err := (UnaryCode{}).ReadNext(r, 0)
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
