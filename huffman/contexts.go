/*
Package huffman implements the contextual canonical Huffman coding
layer: a fixed vector of per-role, per-magnitude-bucket code tables
built from a first statistics pass and replayed during the emit pass.
*/
package huffman

import "math/bits"

// NumContexts is the total number of Huffman context slots.
const NumContexts = 211

// Context ranges. Slot assignment within each range is described on
// the exported helper that computes it.
const (
	OutdegreeBase    = 0   // [0, 32)
	BlockBase        = 32  // [32, 35)
	ResidualBase     = 35  // [35, 147)
	IntervalLeftBase = 147 // [147, 179)
	IntervalLenBase  = 179 // [179, 211)
)

const (
	residualFirstContexts = 32
	residualRestContexts  = 80
	intervalRestContexts  = 31 // slots 1..31; slot 0 is "first"
)

// bucketParamI is the magnitude-bucket parameter from the Zuckerli
// position encoder used to route values to contexts. The routing is
// deliberately coarse (it leaves the top of each range's bucket space
// sparsely populated for small alphabets) and is preserved exactly for
// wire compatibility rather than rebalanced.
const bucketParamI = 4

// Bucket computes the Zuckerli-style magnitude bucket of v: small
// values map to themselves, larger values are routed into
// exponentially widening buckets keyed by their bit length.
func Bucket(v uint64) int {
	const i = bucketParamI
	if v < 1<<i {
		return int(v)
	}
	n := bits.Len64(v) - 1
	s := n - i
	return (s+1)<<i + int((v-(uint64(1)<<uint(n)))>>uint(n-i))
}

func clampBucket(v uint64, cap int) int {
	b := Bucket(v)
	if b > cap {
		return cap
	}
	return b
}

// OutdegreeContext routes a node's outdegree by its id: a round
// multiple of 32 (and node 0) gets its own slot, everything else is
// bucketed by the Zuckerli position of (nodeID%32)+1. This is
// arbitrary and always leaves the top of the bucket space sparsely
// populated, but it is preserved literally for wire compatibility.
func OutdegreeContext(nodeID uint64) int {
	if nodeID == 0 || nodeID%32 == 0 {
		return OutdegreeBase
	}
	return OutdegreeBase + 1 + clampBucket((nodeID%32)+1, 30)
}

// BlockContext routes a copy-block length by its position in the
// block list: the first block gets its own slot, subsequent blocks
// alternate between two slots, starting with the second slot on the
// first subsequent block. This is a known sub-optimal bucketing
// carried over unchanged.
func BlockContext(index int) int {
	if index == 0 {
		return BlockBase
	}
	if index%2 == 1 {
		return BlockBase + 2
	}
	return BlockBase + 1
}

// ResidualContext routes a residual gap. The first residual of a list
// is keyed by the list's residual count; subsequent residuals are
// keyed by the previous gap.
func ResidualContext(first bool, key uint64) int {
	if first {
		return ResidualBase + clampBucket(key, residualFirstContexts-1)
	}
	return ResidualBase + residualFirstContexts + clampBucket(key, residualRestContexts-1)
}

// IntervalLeftContext routes an interval's left endpoint. The first
// interval of a list gets its own slot; subsequent ones are keyed by
// the previous interval's left endpoint.
func IntervalLeftContext(first bool, key uint64) int {
	if first {
		return IntervalLeftBase
	}
	return IntervalLeftBase + 1 + clampBucket(key, intervalRestContexts-1)
}

// IntervalLenContext routes an interval's length (already offset by
// L_min). The first interval of a list gets its own slot; subsequent
// ones are keyed by the previous interval's length.
func IntervalLenContext(first bool, key uint64) int {
	if first {
		return IntervalLenBase
	}
	return IntervalLenBase + 1 + clampBucket(key, intervalRestContexts-1)
}
