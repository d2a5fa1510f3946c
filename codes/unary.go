package codes

import "github.com/webgraph-go/bvgraph/bitio"

// UnaryCode writes v as v zero bits followed by a terminating one bit.
type UnaryCode struct{}

func (UnaryCode) Tag() EncodingType { return Unary }

func (UnaryCode) WriteNext(w *bitio.Writer, value uint64, _ int) int {
	n := 0
	v := value
	for v >= 32 {
		n += w.WriteBits(0, 32)
		v -= 32
	}
	if v > 0 {
		n += w.WriteBits(0, int(v))
	}
	n += w.WriteBits(1, 1)
	return n
}

func (UnaryCode) ReadNext(r *bitio.Reader, _ int) (uint64, error) {
	var v uint64
	for {
		bit, err := r.ReadBits(1)
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			return v, nil
		}
		v++
	}
}
