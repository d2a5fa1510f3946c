package graph

import (
	"github.com/webgraph-go/bvgraph/bitio"
	"github.com/webgraph-go/bvgraph/codes"
	"github.com/webgraph-go/bvgraph/huffman"
)

// nodeShape is the fully-decomposed "extra" information a node's
// successor list needs beyond its chosen reference: the copy/skip
// block lengths, the interval split of whatever the blocks didn't
// cover, and the residuals left after pulling out intervals.
// extraCount is the total size of the pre-interval extras list, used
// to decide whether the interval and residual sections are written at
// all.
type nodeShape struct {
	blocks     []uint64
	left       []uint64
	length     []uint64
	residuals  []uint64
	extraCount int
}

// computeShape runs the differential copy search and intervalizer
// against a chosen reference, turning (curr, ref, reference) into the
// pieces the wire format serializes.
func computeShape(curr, ref []uint64, reference int, minIntervalLen int) nodeShape {
	var extras []uint64
	var blocks []uint64
	if reference != 0 {
		blocks, extras = diffLists(curr, ref)
	} else {
		extras = append([]uint64(nil), curr...)
	}
	var left, length, residuals []uint64
	if minIntervalLen > 0 {
		left, length, residuals = Intervalize(extras, minIntervalLen)
	} else {
		residuals = extras
	}
	return nodeShape{blocks: blocks, left: left, length: length, residuals: residuals, extraCount: len(extras)}
}

// writeDiffBody serializes a node's reference, block list, interval
// list and residual list using the universal codes bound in cs. It is
// used both to measure the bit cost of a candidate reference (against
// a scratch writer) and to emit the final non-Huffman stream.
func writeDiffBody(w *bitio.Writer, cs CodeSet, params Params, curNode uint64, reference int, shape nodeShape) {
	if params.WindowSize > 0 {
		cs.Reference.WriteNext(w, uint64(reference), params.ZetaK)
	}
	if reference != 0 {
		cs.BlockCount.WriteNext(w, uint64(len(shape.blocks)), params.ZetaK)
		for i, b := range shape.blocks {
			v := b
			if i > 0 {
				v = b - 1
			}
			cs.Block.WriteNext(w, v, params.ZetaK)
		}
	}
	if shape.extraCount > 0 {
		if params.MinIntervalLen > 0 {
			(codes.GammaCode{}).WriteNext(w, uint64(len(shape.left)), 0)
			var prevEnd int64
			for i := range shape.left {
				if i == 0 {
					cs.Interval.WriteNext(w, codes.Int2Nat(int64(shape.left[i])-int64(curNode)), params.ZetaK)
				} else {
					cs.Interval.WriteNext(w, shape.left[i]-uint64(prevEnd)-1, params.ZetaK)
				}
				cs.Interval.WriteNext(w, shape.length[i]-uint64(params.MinIntervalLen), params.ZetaK)
				prevEnd = int64(shape.left[i]) + int64(shape.length[i])
			}
		}
		if len(shape.residuals) > 0 {
			prev := shape.residuals[0]
			cs.Residual.WriteNext(w, codes.Int2Nat(int64(prev)-int64(curNode)), params.ZetaK)
			for i := 1; i < len(shape.residuals); i++ {
				cs.Residual.WriteNext(w, shape.residuals[i]-prev-1, params.ZetaK)
				prev = shape.residuals[i]
			}
		}
	}
}

// writeDiffBodyHuffman serializes the same shape through a context
// set. Block count, reference and offset are never contextually
// Huffman-coded (see CodeSet); only the per-block, per-interval and
// per-residual values are routed through cset.
func writeDiffBodyHuffman(w *bitio.Writer, cs CodeSet, cset *huffman.ContextSet, params Params, curNode uint64, reference int, shape nodeShape) error {
	write := func(ctx int, v uint64) error {
		_, err := cset.WriteNext(w, ctx, v)
		return err
	}
	if params.WindowSize > 0 {
		cs.Reference.WriteNext(w, uint64(reference), params.ZetaK)
	}
	if reference != 0 {
		cs.BlockCount.WriteNext(w, uint64(len(shape.blocks)), params.ZetaK)
		for i, b := range shape.blocks {
			v := b
			ctx := huffman.BlockContext(i)
			if i > 0 {
				v = b - 1
			}
			if err := write(ctx, v); err != nil {
				return err
			}
		}
	}
	if shape.extraCount > 0 {
		if params.MinIntervalLen > 0 {
			(codes.GammaCode{}).WriteNext(w, uint64(len(shape.left)), 0)
			var prevEnd int64
			var lastLeft, lastLen uint64
			for i := range shape.left {
				var leftVal uint64
				if i == 0 {
					leftVal = codes.Int2Nat(int64(shape.left[i]) - int64(curNode))
				} else {
					leftVal = shape.left[i] - uint64(prevEnd) - 1
				}
				if err := write(huffman.IntervalLeftContext(i == 0, lastLeft), leftVal); err != nil {
					return err
				}
				lastLeft = leftVal
				lenVal := shape.length[i] - uint64(params.MinIntervalLen)
				if err := write(huffman.IntervalLenContext(i == 0, lastLen), lenVal); err != nil {
					return err
				}
				lastLen = lenVal
				prevEnd = int64(shape.left[i]) + int64(shape.length[i])
			}
		}
		if len(shape.residuals) > 0 {
			prev := shape.residuals[0]
			firstVal := codes.Int2Nat(int64(prev) - int64(curNode))
			if err := write(huffman.ResidualContext(true, uint64(len(shape.residuals))), firstVal); err != nil {
				return err
			}
			prevResidual := firstVal
			for i := 1; i < len(shape.residuals); i++ {
				v := shape.residuals[i] - prev - 1
				if err := write(huffman.ResidualContext(false, prevResidual), v); err != nil {
					return err
				}
				prevResidual = v
				prev = shape.residuals[i]
			}
		}
	}
	return nil
}

// observeDiffBody routes the same values into histograms during the
// encoder's statistics pass, without writing any bits.
func observeDiffBody(h *huffman.Histograms, params Params, curNode uint64, reference int, shape nodeShape) {
	if reference != 0 {
		for i, b := range shape.blocks {
			v := b
			if i > 0 {
				v = b - 1
			}
			h.Observe(huffman.BlockContext(i), v)
		}
	}
	if shape.extraCount > 0 {
		if params.MinIntervalLen > 0 {
			var prevEnd int64
			var lastLeft, lastLen uint64
			for i := range shape.left {
				var leftVal uint64
				if i == 0 {
					leftVal = codes.Int2Nat(int64(shape.left[i]) - int64(curNode))
				} else {
					leftVal = shape.left[i] - uint64(prevEnd) - 1
				}
				h.Observe(huffman.IntervalLeftContext(i == 0, lastLeft), leftVal)
				lastLeft = leftVal
				lenVal := shape.length[i] - uint64(params.MinIntervalLen)
				h.Observe(huffman.IntervalLenContext(i == 0, lastLen), lenVal)
				lastLen = lenVal
				prevEnd = int64(shape.left[i]) + int64(shape.length[i])
			}
		}
		if len(shape.residuals) > 0 {
			prev := shape.residuals[0]
			firstVal := codes.Int2Nat(int64(prev) - int64(curNode))
			h.Observe(huffman.ResidualContext(true, uint64(len(shape.residuals))), firstVal)
			prevResidual := firstVal
			for i := 1; i < len(shape.residuals); i++ {
				v := shape.residuals[i] - prev - 1
				h.Observe(huffman.ResidualContext(false, prevResidual), v)
				prevResidual = v
				prev = shape.residuals[i]
			}
		}
	}
}
