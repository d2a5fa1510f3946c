package huffman

import "container/heap"

// MaxCodeLength is the implementation-defined cap on canonical Huffman
// code length for any single context.
const MaxCodeLength = 11

// buildLengths runs the textbook Huffman algorithm over a frequency
// histogram (symbol -> count, count > 0) and returns the resulting
// code length per symbol, in the same iteration-independent order as
// the input slices. Ties in frequency are broken by insertion order,
// which keeps the resulting tree (and therefore the header emitted
// from it) deterministic across runs.
func buildLengths(symbols []uint64, freqs []uint64) []int {
	n := len(symbols)
	lengths := make([]int, n)
	if n == 0 {
		return lengths
	}
	if n == 1 {
		lengths[0] = 1
		return lengths
	}

	pq := make(huffmanHeap, n)
	for i := range symbols {
		pq[i] = &huffmanNode{freq: freqs[i], leaf: i, seq: i}
	}
	heap.Init(&pq)

	seq := n
	for pq.Len() > 1 {
		a := heap.Pop(&pq).(*huffmanNode)
		b := heap.Pop(&pq).(*huffmanNode)
		parent := &huffmanNode{freq: a.freq + b.freq, left: a, right: b, seq: seq}
		seq++
		heap.Push(&pq, parent)
	}
	root := pq[0]
	assignDepths(root, 0, lengths)
	return lengths
}

func assignDepths(node *huffmanNode, depth int, lengths []int) {
	if node.left == nil && node.right == nil {
		if depth == 0 {
			depth = 1 // single-symbol tree, degenerate case guarded above too
		}
		lengths[node.leaf] = depth
		return
	}
	assignDepths(node.left, depth+1, lengths)
	assignDepths(node.right, depth+1, lengths)
}

type huffmanNode struct {
	freq        uint64
	leaf        int // index into symbols/lengths, valid when left == right == nil
	seq         int // tie-breaker for determinism
	left, right *huffmanNode
}

type huffmanHeap []*huffmanNode

func (h huffmanHeap) Len() int { return len(h) }
func (h huffmanHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].seq < h[j].seq
}
func (h huffmanHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *huffmanHeap) Push(x interface{}) { *h = append(*h, x.(*huffmanNode)) }
func (h *huffmanHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	*h = old[:n-1]
	return node
}

// limitLengths rebalances code lengths that exceed maxLen by
// repeatedly extending the shortest extendable length, which strictly
// decreases the Kraft sum until it satisfies the inequality (or no
// length remains below maxLen, in which case the alphabet simply does
// not fit the cap and the resulting code is left over-subscribed).
func limitLengths(lengths []int, maxLen int) {
	for i := range lengths {
		if lengths[i] > maxLen {
			lengths[i] = maxLen
		}
	}
	total := uint64(1) << uint(maxLen)
	kraft := func() uint64 {
		var s uint64
		for _, l := range lengths {
			s += total >> uint(l)
		}
		return s
	}
	for kraft() > total {
		shortest := -1
		for i, l := range lengths {
			if l < maxLen && (shortest == -1 || l < lengths[shortest]) {
				shortest = i
			}
		}
		if shortest == -1 {
			break // alphabet does not fit under the cap; leave as-is
		}
		lengths[shortest]++
	}
}

// assignCanonicalCodes assigns canonical code values to symbols given
// their lengths, following RFC 1951 §3.2.2: codes of the same length
// are consecutive integers in symbol order, and the first code of
// each length is derived from the count of shorter codes.
func assignCanonicalCodes(lengths []int, maxLen int) []uint32 {
	codes := make([]uint32, len(lengths))
	var counts, nextCode []uint32
	counts = make([]uint32, maxLen+1)
	nextCode = make([]uint32, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			counts[l]++
		}
	}
	code := uint32(0)
	counts[0] = 0
	for l := 1; l <= maxLen; l++ {
		code = (code + counts[l-1]) << 1
		nextCode[l] = code
	}
	for i, l := range lengths {
		if l > 0 {
			codes[i] = nextCode[l]
			nextCode[l]++
		}
	}
	return codes
}
