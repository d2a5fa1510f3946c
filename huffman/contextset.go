package huffman

import "github.com/webgraph-go/bvgraph/bitio"

// Histograms accumulates per-context frequency counts during the
// encoder's statistics pass.
type Histograms struct {
	counts [NumContexts]map[uint64]uint64
}

// NewHistograms returns an empty set of per-context histograms.
func NewHistograms() *Histograms {
	h := &Histograms{}
	for i := range h.counts {
		h.counts[i] = make(map[uint64]uint64)
	}
	return h
}

// Observe routes value into context ctx's histogram.
func (h *Histograms) Observe(ctx int, value uint64) {
	h.counts[ctx][value]++
}

// Build constructs a ContextSet of canonical Huffman tables, one per
// context, from the accumulated histograms. Contexts with no observed
// values get an empty table.
func (h *Histograms) Build() *ContextSet {
	cs := &ContextSet{}
	for i := range h.counts {
		cs.tables[i] = NewTable(h.counts[i])
	}
	return cs
}

// ContextSet is the full vector of per-context tables, used by the
// encoder's emit pass and by the decoder after reading the header.
type ContextSet struct {
	tables [NumContexts]*Table
}

// WriteHeader serializes every context's table header in context
// order and returns the number of bits written.
func (cs *ContextSet) WriteHeader(w *bitio.Writer) int {
	n := 0
	for _, t := range cs.tables {
		n += t.MarshalHeader(w)
	}
	return n
}

// ReadContextSet reads a header previously written by WriteHeader.
func ReadContextSet(r *bitio.Reader) (*ContextSet, error) {
	cs := &ContextSet{}
	for i := range cs.tables {
		t, err := UnmarshalTable(r)
		if err != nil {
			return nil, err
		}
		cs.tables[i] = t
	}
	return cs, nil
}

// WriteNext writes value to context ctx and returns the number of bits
// written.
func (cs *ContextSet) WriteNext(w *bitio.Writer, ctx int, value uint64) (int, error) {
	return cs.tables[ctx].WriteNext(w, value)
}

// ReadNext reads the next value from context ctx.
func (cs *ContextSet) ReadNext(r *bitio.Reader, ctx int) (uint64, error) {
	return cs.tables[ctx].ReadNext(r)
}
