package graph

import (
	"fmt"

	"github.com/webgraph-go/bvgraph/bitio"
	"github.com/webgraph-go/bvgraph/codes"
	"github.com/webgraph-go/bvgraph/huffman"
	"github.com/webgraph-go/bvgraph/properties"
)

// candidate is the chosen (reference node, reference distance) pair
// for a single node, cached during the statistics pass so the final
// emit pass never has to redo the reference search.
type candidate struct {
	cand int // cyclic-window slot of the reference list; unused (zero) for empty lists
	ref  int // distance in [0, WindowSize]; 0 means no reference
}

// Compress encodes g into a graph bitstream and a parallel offsets
// bitstream, choosing for every node the reference distance within
// params.WindowSize that minimizes the node's encoded bit length, then
// emitting either the default universal CodeSet or, when huffmanMode
// is set, contextual Huffman tables built from the statistics pass.
func Compress(g *Graph, params Params, huffmanMode bool) (graphBytes, offsetBytes []byte, props *properties.Properties, err error) {
	n := g.NumNodes()
	cyclicSize := params.WindowSize + 1
	cs := DefaultCodeSet()

	lists := make([][]uint64, cyclicSize)
	refCount := make([]int, cyclicSize)
	best := make([]candidate, n)
	hist := huffman.NewHistograms()

	it := g.Iter()
	for it.HasNext() {
		x := it.Next()
		outd := it.Outdegree()
		curIdx := x % cyclicSize
		lists[curIdx] = it.SuccessorArray()

		if huffmanMode {
			hist.Observe(huffman.OutdegreeContext(uint64(x)), uint64(outd))
		}

		if outd == 0 {
			continue
		}
		for i := 1; i < len(lists[curIdx]); i++ {
			if lists[curIdx][i] == lists[curIdx][i-1] {
				return nil, nil, nil, fmt.Errorf("%w: node %d, value %d", ErrRepeatedSuccessor, x, lists[curIdx][i])
			}
		}

		refCount[curIdx] = -1
		bestCost := int64(-1)
		bestCand, bestRef := -1, -1

		for r := 0; r < cyclicSize; r++ {
			cand := ((x + cyclicSize - r) % cyclicSize)
			if refCount[cand] >= params.MaxRefCount || lists[cand] == nil {
				continue
			}
			shape := computeShape(lists[curIdx], lists[cand], r, params.MinIntervalLen)
			scratch := bitio.NewWriter()
			writeDiffBody(scratch, cs, params, uint64(x), r, shape)
			cost := int64(scratch.WrittenBits())
			if bestCost < 0 || cost < bestCost {
				bestCost = cost
				bestCand = cand
				bestRef = r
			}
		}
		if bestCand < 0 {
			return nil, nil, nil, fmt.Errorf("graph: node %d has no eligible reference candidate", x)
		}
		refCount[curIdx] = refCount[bestCand] + 1
		best[x] = candidate{cand: bestCand, ref: bestRef}

		if huffmanMode {
			shape := computeShape(lists[curIdx], lists[bestCand], bestRef, params.MinIntervalLen)
			observeDiffBody(hist, params, uint64(x), bestRef, shape)
		}
	}

	var cset *huffman.ContextSet
	graphW := bitio.NewWriter()
	if huffmanMode {
		cset = hist.Build()
		cset.WriteHeader(graphW)
	}

	starts := make([]uint64, n+1)
	starts[0] = graphW.WrittenBits() // bit position where node 0 begins, i.e. the header length

	for i := range lists {
		lists[i] = nil
		refCount[i] = 0
	}

	it = g.Iter()
	for it.HasNext() {
		x := it.Next()
		outd := it.Outdegree()
		curIdx := x % cyclicSize
		lists[curIdx] = it.SuccessorArray()

		if huffmanMode {
			if _, err := cset.WriteNext(graphW, huffman.OutdegreeContext(uint64(x)), uint64(outd)); err != nil {
				return nil, nil, nil, err
			}
		} else {
			cs.Outdegree.WriteNext(graphW, uint64(outd), params.ZetaK)
		}

		if outd > 0 {
			b := best[x]
			refCount[curIdx] = refCount[b.cand] + 1
			shape := computeShape(lists[curIdx], lists[b.cand], b.ref, params.MinIntervalLen)
			if huffmanMode {
				if err := writeDiffBodyHuffman(graphW, cs, cset, params, uint64(x), b.ref, shape); err != nil {
					return nil, nil, nil, err
				}
			} else {
				writeDiffBody(graphW, cs, params, uint64(x), b.ref, shape)
			}
		}

		starts[x+1] = graphW.WrittenBits()
	}

	// The offsets stream holds n+1 delta-coded values: the absolute
	// position of node 0 (the header length), n-1 deltas between
	// consecutive node starts, and a trailing delta giving the length
	// of the last node.
	offsetW := bitio.NewWriter()
	cs.Offset.WriteNext(offsetW, starts[0], params.ZetaK)
	for i := 1; i <= n; i++ {
		cs.Offset.WriteNext(offsetW, starts[i]-starts[i-1], params.ZetaK)
	}

	props = properties.New()
	props.Nodes = uint64(n)
	props.Arcs = uint64(g.NumArcs())
	props.WindowSize = params.WindowSize
	props.MaxRefCount = params.MaxRefCount
	props.MinIntervalLen = params.MinIntervalLen
	props.ZetaK = params.ZetaK
	if huffmanMode {
		for _, role := range []string{
			properties.RoleOutdegree, properties.RoleBlock,
			properties.RoleInterval, properties.RoleResidual,
		} {
			props.SetCode(role, codes.Huffman)
		}
	} else {
		for role, c := range cs.roleCodes() {
			props.SetCode(role, c.Tag())
		}
	}
	props.SetCode(properties.RoleBlockCount, cs.BlockCount.Tag())
	props.SetCode(properties.RoleReference, cs.Reference.Tag())
	props.SetCode(properties.RoleOffset, cs.Offset.Tag())

	if err := props.Validate(); err != nil {
		return nil, nil, nil, err
	}

	return graphW.Finish(), offsetW.Finish(), props, nil
}
