package codes_test

import (
	"testing"

	"github.com/webgraph-go/bvgraph/bitio"
	"github.com/webgraph-go/bvgraph/codes"
)

func roundTrip(t *testing.T, c codes.Code, zetaK int, values []uint64) {
	t.Helper()
	w := bitio.NewWriter()
	for _, v := range values {
		c.WriteNext(w, v, zetaK)
	}
	r := bitio.NewReader(w.Finish())
	for _, want := range values {
		got, err := c.ReadNext(r, zetaK)
		if err != nil {
			t.Fatalf("%s: ReadNext(%d): %v", c.Tag(), want, err)
		}
		if got != want {
			t.Errorf("%s: round trip of %d produced %d", c.Tag(), want, got)
		}
	}
}

func sampleValues() []uint64 {
	values := []uint64{0, 1, 2, 3, 4, 5, 7, 8, 15, 16, 31, 32, 63, 64, 127, 128,
		255, 256, 1023, 1024, 65535, 65536, 1 << 20, 1<<32 - 1}
	return values
}

func TestUnaryRoundTrip(t *testing.T) {
	roundTrip(t, codes.UnaryCode{}, 0, sampleValues())
}

func TestGammaRoundTrip(t *testing.T) {
	roundTrip(t, codes.GammaCode{}, 0, sampleValues())
}

func TestDeltaRoundTrip(t *testing.T) {
	roundTrip(t, codes.DeltaCode{}, 0, sampleValues())
}

func TestNibbleRoundTrip(t *testing.T) {
	roundTrip(t, codes.NibbleCode{}, 0, sampleValues())
}

func TestZetaRoundTripAcrossK(t *testing.T) {
	for k := 1; k <= 6; k++ {
		roundTrip(t, codes.ZetaCode{}, k, sampleValues())
	}
}

func TestByTagKnowsEveryUniversalCode(t *testing.T) {
	for _, tag := range []codes.EncodingType{codes.Unary, codes.Gamma, codes.Delta, codes.Zeta, codes.Nibble} {
		if _, ok := codes.ByTag(tag); !ok {
			t.Errorf("ByTag(%s) = not found", tag)
		}
	}
	if _, ok := codes.ByTag(codes.Huffman); ok {
		t.Errorf("ByTag(HUFFMAN) should not resolve to a plain Code")
	}
}

func TestInt2NatRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 1000, -1000, 1 << 30, -(1 << 30)}
	for _, v := range values {
		n := codes.Int2Nat(v)
		got := codes.Nat2Int(n)
		if got != v {
			t.Errorf("Nat2Int(Int2Nat(%d)) = %d", v, got)
		}
	}
}

func TestInt2NatOrdering(t *testing.T) {
	// Small magnitudes, positive or negative, must fold to small naturals.
	cases := []struct {
		v    int64
		want uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
	}
	for _, c := range cases {
		if got := codes.Int2Nat(c.v); got != c.want {
			t.Errorf("Int2Nat(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

// TestGammaCodeLengthNonDecreasing is a property check: Gamma's encoded length
// must be non-decreasing in v, since larger values never compress
// better under a universal code.
func TestGammaCodeLengthNonDecreasing(t *testing.T) {
	prev := 0
	for v := uint64(0); v < 4096; v++ {
		w := bitio.NewWriter()
		n := (codes.GammaCode{}).WriteNext(w, v, 0)
		if n < prev {
			t.Fatalf("gamma length decreased at v=%d: %d < %d", v, n, prev)
		}
		prev = n
	}
}
