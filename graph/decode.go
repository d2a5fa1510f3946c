package graph

import (
	"fmt"

	"github.com/webgraph-go/bvgraph/bitio"
	"github.com/webgraph-go/bvgraph/codes"
	"github.com/webgraph-go/bvgraph/huffman"
	"github.com/webgraph-go/bvgraph/properties"
)

// CompressedGraph is a loaded, random-access view over an encoded
// graph stream: successor lists are decoded on demand, recursively
// resolving reference chains up to Params.MaxRefCount deep.
type CompressedGraph struct {
	n      int
	m      uint64
	params Params
	cs     CodeSet
	cset   *huffman.ContextSet // nil unless huffman-coded

	data      []byte
	positions []uint64 // positions[x] = bit offset where node x's outdegree starts

	lastNode      int
	lastOutdegree int
	lastBitPtr    uint64
	haveLast      bool
}

// Load parses a properties sidecar and reconstructs a CompressedGraph
// over the paired graph and offsets byte streams previously produced
// by Compress.
func Load(props *properties.Properties, graphBytes, offsetBytes []byte) (*CompressedGraph, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}
	params := Params{
		WindowSize:     props.WindowSize,
		MaxRefCount:    props.MaxRefCount,
		MinIntervalLen: props.MinIntervalLen,
		ZetaK:          props.ZetaK,
	}
	cs, err := codeSetFromProperties(props)
	if err != nil {
		return nil, err
	}

	r := bitio.NewReader(graphBytes)
	var cset *huffman.ContextSet
	if props.IsHuffman() {
		cset, err = huffman.ReadContextSet(r)
		if err != nil {
			return nil, fmt.Errorf("graph: reading huffman header: %w", err)
		}
	}
	headerBits := r.GetPosition()

	n := int(props.Nodes)
	positions := make([]uint64, n+1)
	or := bitio.NewReader(offsetBytes)
	first, err := cs.Offset.ReadNext(or, params.ZetaK)
	if err != nil {
		return nil, fmt.Errorf("%w: offsets: %v", ErrTruncated, err)
	}
	if first != headerBits {
		return nil, fmt.Errorf("%w: offsets: node 0 start %d does not match header length %d", ErrFormat, first, headerBits)
	}
	positions[0] = first
	for i := 1; i <= n; i++ {
		gap, err := cs.Offset.ReadNext(or, params.ZetaK)
		if err != nil {
			return nil, fmt.Errorf("%w: offsets: %v", ErrTruncated, err)
		}
		positions[i] = positions[i-1] + gap
	}

	return &CompressedGraph{
		n: n, m: props.Arcs, params: params, cs: cs, cset: cset,
		data: graphBytes, positions: positions, lastNode: -1,
	}, nil
}

// NumNodes returns n.
func (cg *CompressedGraph) NumNodes() int { return cg.n }

// NumArcs returns the arc count recorded in the properties sidecar.
func (cg *CompressedGraph) NumArcs() uint64 { return cg.m }

func (cg *CompressedGraph) checkNode(x int) error {
	if x < 0 || x >= cg.n {
		return fmt.Errorf("%w: %d", ErrNodeOOB, x)
	}
	return nil
}

func (cg *CompressedGraph) readOutdegree(r *bitio.Reader, x int) (uint64, error) {
	if cg.cset != nil {
		return cg.cset.ReadNext(r, huffman.OutdegreeContext(uint64(x)))
	}
	return cg.cs.Outdegree.ReadNext(r, cg.params.ZetaK)
}

// Outdegree returns x's outdegree without decoding its full successor
// list, using a one-slot cache of the most recently touched node so a
// sequential scan never re-reads the same outdegree field twice.
func (cg *CompressedGraph) Outdegree(x int) (int, error) {
	if err := cg.checkNode(x); err != nil {
		return 0, err
	}
	if cg.haveLast && cg.lastNode == x {
		return cg.lastOutdegree, nil
	}
	r := bitio.NewReader(cg.data)
	r.Position(cg.positions[x])
	d, err := cg.readOutdegree(r, x)
	if err != nil {
		return 0, fmt.Errorf("%w: outdegree of node %d: %v", ErrTruncated, x, err)
	}
	cg.lastNode = x
	cg.lastOutdegree = int(d)
	cg.lastBitPtr = r.GetPosition()
	cg.haveLast = true
	return int(d), nil
}

// Successors decodes and returns x's full successor list.
func (cg *CompressedGraph) Successors(x int) ([]uint64, error) {
	if err := cg.checkNode(x); err != nil {
		return nil, err
	}
	return cg.decodeList(x, 0)
}

// decodeList decodes node x's successor list, recursing into its
// reference node (if any) up to MaxRefCount levels deep.
func (cg *CompressedGraph) decodeList(x int, depth int) ([]uint64, error) {
	if depth > cg.params.MaxRefCount {
		return nil, ErrReferenceDepth
	}

	var r *bitio.Reader
	var outd int
	if cg.haveLast && cg.lastNode == x {
		outd = cg.lastOutdegree
		r = bitio.NewReader(cg.data)
		r.Position(cg.lastBitPtr)
	} else {
		r = bitio.NewReader(cg.data)
		r.Position(cg.positions[x])
		d, err := cg.readOutdegree(r, x)
		if err != nil {
			return nil, fmt.Errorf("%w: outdegree of node %d: %v", ErrTruncated, x, err)
		}
		outd = int(d)
		cg.lastNode = x
		cg.lastOutdegree = outd
		cg.lastBitPtr = r.GetPosition()
		cg.haveLast = true
	}

	if outd == 0 {
		return nil, nil
	}

	reference := 0
	if cg.params.WindowSize > 0 {
		v, err := cg.cs.Reference.ReadNext(r, cg.params.ZetaK)
		if err != nil {
			return nil, fmt.Errorf("%w: reference of node %d: %v", ErrTruncated, x, err)
		}
		reference = int(v)
	}

	var refList []uint64
	if reference != 0 {
		var err error
		refList, err = cg.decodeList(x-reference, depth+1)
		if err != nil {
			return nil, err
		}
	}

	var blocks []uint64
	if reference != 0 {
		bc, err := cg.cs.BlockCount.ReadNext(r, cg.params.ZetaK)
		if err != nil {
			return nil, fmt.Errorf("%w: block count of node %d: %v", ErrTruncated, x, err)
		}
		for i := 0; i < int(bc); i++ {
			var v uint64
			var err error
			if cg.cset != nil {
				v, err = cg.cset.ReadNext(r, huffman.BlockContext(i))
			} else {
				v, err = cg.cs.Block.ReadNext(r, cg.params.ZetaK)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: block %d of node %d: %v", ErrTruncated, i, x, err)
			}
			if i > 0 {
				v++
			}
			blocks = append(blocks, v)
		}
	}

	copiedList := applyBlocks(refList, blocks)
	extraCount := outd - len(copiedList)
	if extraCount < 0 {
		return nil, fmt.Errorf("%w: node %d", ErrOutdegreeMismatch, x)
	}

	var left, length []uint64
	if extraCount > 0 && cg.params.MinIntervalLen > 0 {
		ic, err := (codes.GammaCode{}).ReadNext(r, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: interval count of node %d: %v", ErrTruncated, x, err)
		}
		var prevEnd int64
		var lastLeft, lastLen uint64
		for i := 0; i < int(ic); i++ {
			var leftRaw uint64
			var err error
			if cg.cset != nil {
				leftRaw, err = cg.cset.ReadNext(r, huffman.IntervalLeftContext(i == 0, lastLeft))
			} else {
				leftRaw, err = cg.cs.Interval.ReadNext(r, cg.params.ZetaK)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: interval left of node %d: %v", ErrTruncated, x, err)
			}
			var leftVal int64
			if i == 0 {
				leftVal = int64(x) + codes.Nat2Int(leftRaw)
			} else {
				leftVal = prevEnd + int64(leftRaw) + 1
			}
			lastLeft = leftRaw

			var lenRaw uint64
			if cg.cset != nil {
				lenRaw, err = cg.cset.ReadNext(r, huffman.IntervalLenContext(i == 0, lastLen))
			} else {
				lenRaw, err = cg.cs.Interval.ReadNext(r, cg.params.ZetaK)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: interval length of node %d: %v", ErrTruncated, x, err)
			}
			ln := int(lenRaw) + cg.params.MinIntervalLen
			lastLen = lenRaw

			left = append(left, uint64(leftVal))
			length = append(length, uint64(ln))
			prevEnd = leftVal + int64(ln)
			extraCount -= ln
		}
	}

	var residuals []uint64
	if extraCount > 0 {
		var firstRaw uint64
		var err error
		if cg.cset != nil {
			firstRaw, err = cg.cset.ReadNext(r, huffman.ResidualContext(true, uint64(extraCount)))
		} else {
			firstRaw, err = cg.cs.Residual.ReadNext(r, cg.params.ZetaK)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: residual of node %d: %v", ErrTruncated, x, err)
		}
		prev := uint64(int64(x) + codes.Nat2Int(firstRaw))
		residuals = append(residuals, prev)
		prevRaw := firstRaw
		for i := 1; i < extraCount; i++ {
			var raw uint64
			if cg.cset != nil {
				raw, err = cg.cset.ReadNext(r, huffman.ResidualContext(false, prevRaw))
			} else {
				raw, err = cg.cs.Residual.ReadNext(r, cg.params.ZetaK)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: residual %d of node %d: %v", ErrTruncated, i, x, err)
			}
			prev = prev + raw + 1
			residuals = append(residuals, prev)
			prevRaw = raw
		}
	}

	extraList := Deintervalize(left, length, residuals)
	result := mergeSorted(copiedList, extraList)
	if len(result) != outd {
		return nil, fmt.Errorf("%w: node %d decoded %d successors, want %d", ErrOutdegreeMismatch, x, len(result), outd)
	}
	return result, nil
}

// Iter returns a sequential decoder iterator visiting every node in
// id order.
func (cg *CompressedGraph) Iter() *CompressedNodeIterator {
	return &CompressedNodeIterator{cg: cg, cur: -1}
}

// CompressedNodeIterator sequentially decodes every node of a
// CompressedGraph, matching the Graph.Iter contract.
type CompressedNodeIterator struct {
	cg      *CompressedGraph
	cur     int
	succ    []uint64
	lastErr error
}

// HasNext reports whether Next would return another node.
func (it *CompressedNodeIterator) HasNext() bool {
	return it.cur+1 < it.cg.n
}

// Next advances to and decodes the next node, caching its successor
// list for Outdegree/SuccessorArray. Decode errors surface from
// SuccessorArray via Err.
func (it *CompressedNodeIterator) Next() int {
	it.cur++
	it.succ, it.lastErr = it.cg.Successors(it.cur)
	return it.cur
}

// Err returns any error encountered decoding the node Next last
// returned.
func (it *CompressedNodeIterator) Err() error { return it.lastErr }

// Outdegree returns the outdegree of the node Next last returned.
func (it *CompressedNodeIterator) Outdegree() int { return len(it.succ) }

// SuccessorArray returns the successor list of the node Next last
// returned.
func (it *CompressedNodeIterator) SuccessorArray() []uint64 { return it.succ }
