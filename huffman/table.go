package huffman

import (
	"errors"
	"fmt"
	"sort"

	"github.com/webgraph-go/bvgraph/bitio"
	"github.com/webgraph-go/bvgraph/codes"
)

// ErrNoCode is returned when a value has no assigned code in its
// context's table, which indicates the histogram collected in pass 1
// did not see that value for that context.
var ErrNoCode = errors.New("huffman: value has no code in this context")

// ErrEmptyContext is returned when reading from a context whose header
// advertised zero symbols.
var ErrEmptyContext = errors.New("huffman: read from empty context")

// ErrInvalidCode is returned when a bit sequence does not resolve to
// any symbol in the context's table, which indicates a corrupt or
// mismatched stream.
var ErrInvalidCode = errors.New("huffman: bit sequence does not resolve to a symbol")

// Table is a single context's canonical Huffman code: encode by direct
// lookup, decode by the classic canonical-code walk (count-per-length
// plus a canonically ordered symbol list).
type Table struct {
	symbols []uint64 // ascending by value; encode-side order
	lengths []int    // aligned with symbols
	codes   []uint32 // aligned with symbols

	index map[uint64]int // symbol value -> position in symbols/lengths/codes

	count []int    // count[length] for length in [0, maxLen]
	order []uint64 // symbols in canonical (length, value) order, for decode
}

// NewTable builds a length-limited canonical Huffman table from a
// histogram of observed values. An empty histogram yields a table that
// always returns ErrEmptyContext on read and ErrNoCode on write.
func NewTable(histogram map[uint64]uint64) *Table {
	symbols := make([]uint64, 0, len(histogram))
	for s := range histogram {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	freqs := make([]uint64, len(symbols))
	for i, s := range symbols {
		freqs[i] = histogram[s]
	}
	lengths := buildLengths(symbols, freqs)
	limitLengths(lengths, MaxCodeLength)
	return buildTable(symbols, lengths)
}

func buildTable(symbols []uint64, lengths []int) *Table {
	maxLen := 0
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	t := &Table{symbols: symbols, lengths: lengths, index: make(map[uint64]int, len(symbols))}
	for i, s := range symbols {
		t.index[s] = i
	}
	if len(symbols) == 0 {
		t.count = []int{0}
		return t
	}
	t.codes = assignCanonicalCodes(lengths, maxLen)

	order := make([]int, len(symbols))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if lengths[order[a]] != lengths[order[b]] {
			return lengths[order[a]] < lengths[order[b]]
		}
		return symbols[order[a]] < symbols[order[b]]
	})
	t.order = make([]uint64, len(order))
	t.count = make([]int, maxLen+1)
	for i, idx := range order {
		t.order[i] = symbols[idx]
		t.count[lengths[idx]]++
	}
	return t
}

// WriteNext writes value's canonical code and returns the number of
// bits written.
func (t *Table) WriteNext(w *bitio.Writer, value uint64) (int, error) {
	idx, ok := t.index[value]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNoCode, value)
	}
	return w.WriteBits(uint64(t.codes[idx]), t.lengths[idx]), nil
}

// ReadNext decodes the next value from r using this context's table.
func (t *Table) ReadNext(r *bitio.Reader) (uint64, error) {
	if len(t.order) == 0 {
		return 0, ErrEmptyContext
	}
	maxLen := len(t.count) - 1
	code, first, index := 0, 0, 0
	for length := 1; length <= maxLen; length++ {
		bit, err := r.ReadBits(1)
		if err != nil {
			return 0, err
		}
		code = (code << 1) | int(bit)
		count := t.count[length]
		if count > 0 && code-first < count {
			return t.order[index+(code-first)], nil
		}
		index += count
		first = (first + count) << 1
	}
	return 0, ErrInvalidCode
}

// MarshalHeader emits this table's compact description: the number of
// distinct symbols, then each (symbol, length) pair in ascending
// symbol order, symbols under Gamma and lengths as Gamma(length-1).
func (t *Table) MarshalHeader(w *bitio.Writer) int {
	n := (codes.GammaCode{}).WriteNext(w, uint64(len(t.symbols)), 0)
	for i, s := range t.symbols {
		n += (codes.GammaCode{}).WriteNext(w, s, 0)
		n += (codes.GammaCode{}).WriteNext(w, uint64(t.lengths[i]-1), 0)
	}
	return n
}

// UnmarshalTable reads a table header previously written by
// MarshalHeader and reconstructs the table.
func UnmarshalTable(r *bitio.Reader) (*Table, error) {
	n, err := (codes.GammaCode{}).ReadNext(r, 0)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return buildTable(nil, nil), nil
	}
	symbols := make([]uint64, n)
	lengths := make([]int, n)
	for i := range symbols {
		s, err := (codes.GammaCode{}).ReadNext(r, 0)
		if err != nil {
			return nil, err
		}
		l, err := (codes.GammaCode{}).ReadNext(r, 0)
		if err != nil {
			return nil, err
		}
		symbols[i] = s
		lengths[i] = int(l) + 1
	}
	return buildTable(symbols, lengths), nil
}
