package huffman_test

import (
	"sort"
	"testing"

	"github.com/webgraph-go/bvgraph/bitio"
	"github.com/webgraph-go/bvgraph/huffman"
)

func TestTableRoundTrip(t *testing.T) {
	hist := map[uint64]uint64{0: 100, 1: 50, 2: 25, 5: 10, 100: 1, 1000: 1}
	values := []uint64{0, 0, 1, 2, 0, 5, 100, 1, 1000, 0}

	table := huffman.NewTable(hist)
	w := bitio.NewWriter()
	for _, v := range values {
		if _, err := table.WriteNext(w, v); err != nil {
			t.Fatalf("WriteNext(%d): %v", v, err)
		}
	}

	r := bitio.NewReader(w.Finish())
	for _, want := range values {
		got, err := table.ReadNext(r)
		if err != nil {
			t.Fatalf("ReadNext: %v", err)
		}
		if got != want {
			t.Errorf("ReadNext() = %d, want %d", got, want)
		}
	}
}

func TestTableHeaderRoundTrip(t *testing.T) {
	hist := map[uint64]uint64{3: 9, 7: 4, 8: 4, 9: 1, 42: 1}
	table := huffman.NewTable(hist)

	w := bitio.NewWriter()
	table.MarshalHeader(w)
	r := bitio.NewReader(w.Finish())
	got, err := huffman.UnmarshalTable(r)
	if err != nil {
		t.Fatalf("UnmarshalTable: %v", err)
	}

	w2 := bitio.NewWriter()
	for v := range hist {
		if _, err := got.WriteNext(w2, v); err != nil {
			t.Fatalf("reconstructed table rejected observed value %d: %v", v, err)
		}
	}
}

func TestEmptyContextTable(t *testing.T) {
	table := huffman.NewTable(nil)
	w := bitio.NewWriter()
	if _, err := table.WriteNext(w, 0); err == nil {
		t.Errorf("WriteNext on empty table should fail")
	}
	r := bitio.NewReader(nil)
	if _, err := table.ReadNext(r); err != huffman.ErrEmptyContext {
		t.Errorf("ReadNext on empty table = %v, want ErrEmptyContext", err)
	}
}

func TestSingleSymbolTable(t *testing.T) {
	table := huffman.NewTable(map[uint64]uint64{7: 100})
	w := bitio.NewWriter()
	for i := 0; i < 5; i++ {
		if _, err := table.WriteNext(w, 7); err != nil {
			t.Fatalf("WriteNext: %v", err)
		}
	}
	r := bitio.NewReader(w.Finish())
	for i := 0; i < 5; i++ {
		got, err := table.ReadNext(r)
		if err != nil || got != 7 {
			t.Errorf("ReadNext() = (%d, %v), want (7, nil)", got, err)
		}
	}
}

// TestContextCoverage exercises a full encode/decode pass across each
// family of contexts the graph codec routes into and checks that the
// header built in a statistics pass defines a code for exactly the
// values a matching emit pass writes. Contexts are written and read
// back in the same (ascending) order.
func TestContextCoverage(t *testing.T) {
	hist := huffman.NewHistograms()
	plan := map[int][]uint64{
		huffman.OutdegreeContext(0):         {3, 4, 5},
		huffman.OutdegreeContext(1):         {0, 1},
		huffman.BlockContext(0):             {2},
		huffman.BlockContext(1):             {0, 1},
		huffman.ResidualContext(true, 2):    {10, 20},
		huffman.ResidualContext(false, 5):   {1, 2, 3},
		huffman.IntervalLeftContext(true, 0): {7},
		huffman.IntervalLenContext(true, 0):  {1, 2},
	}
	for ctx, values := range plan {
		for _, v := range values {
			hist.Observe(ctx, v)
		}
	}
	cs := hist.Build()

	ctxs := make([]int, 0, len(plan))
	for ctx := range plan {
		ctxs = append(ctxs, ctx)
	}
	sort.Ints(ctxs)

	w := bitio.NewWriter()
	cs.WriteHeader(w)
	for _, ctx := range ctxs {
		values := plan[ctx]
		for _, v := range values {
			if _, err := cs.WriteNext(w, ctx, v); err != nil {
				t.Fatalf("ctx %d: WriteNext(%d): %v", ctx, v, err)
			}
		}
	}

	r := bitio.NewReader(w.Finish())
	decoded, err := huffman.ReadContextSet(r)
	if err != nil {
		t.Fatalf("ReadContextSet: %v", err)
	}
	for _, ctx := range ctxs {
		values := plan[ctx]
		for _, want := range values {
			got, err := decoded.ReadNext(r, ctx)
			if err != nil {
				t.Fatalf("ctx %d: ReadNext: %v", ctx, err)
			}
			if got != want {
				t.Errorf("ctx %d: ReadNext() = %d, want %d", ctx, got, want)
			}
		}
	}
}

func TestBucketSmallValuesAreIdentity(t *testing.T) {
	for v := uint64(0); v < 16; v++ {
		if got := huffman.Bucket(v); got != int(v) {
			t.Errorf("Bucket(%d) = %d, want %d", v, got, v)
		}
	}
}

func TestBucketMonotonic(t *testing.T) {
	prev := huffman.Bucket(0)
	for v := uint64(1); v < 1<<20; v++ {
		b := huffman.Bucket(v)
		if b < prev {
			t.Fatalf("Bucket(%d) = %d < Bucket(%d) = %d", v, b, v-1, prev)
		}
		prev = b
	}
}
