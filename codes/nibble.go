package codes

import "github.com/webgraph-go/bvgraph/bitio"

// NibbleCode packs a value into 4-bit groups: the high bit of each
// nibble is a continuation flag, the low 3 bits carry data, most
// significant group first. Zero is written as a single all-zero
// nibble.
type NibbleCode struct{}

func (NibbleCode) Tag() EncodingType { return Nibble }

func (NibbleCode) WriteNext(w *bitio.Writer, value uint64, _ int) int {
	var groups []uint64
	v := value
	if v == 0 {
		groups = []uint64{0}
	} else {
		for v > 0 {
			groups = append(groups, v&0x7)
			v >>= 3
		}
		for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
			groups[i], groups[j] = groups[j], groups[i]
		}
	}
	n := 0
	for i, g := range groups {
		cont := uint64(0)
		if i != len(groups)-1 {
			cont = 1
		}
		n += w.WriteBits((cont<<3)|g, 4)
	}
	return n
}

func (NibbleCode) ReadNext(r *bitio.Reader, _ int) (uint64, error) {
	var v uint64
	for {
		nibble, err := r.ReadBits(4)
		if err != nil {
			return 0, err
		}
		v = (v << 3) | (nibble & 0x7)
		if nibble&0x8 == 0 {
			return v, nil
		}
	}
}
