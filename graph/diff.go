package graph

// mergeSorted merges two sorted, duplicate-free, mutually disjoint
// slices into one sorted slice.
func mergeSorted(a, b []uint64) []uint64 {
	out := make([]uint64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// diffLists compares curr against a reference list ref and returns
// the alternating copy/skip block-length sequence plus the extras
// (the elements of curr not covered by any copy block).
//
// blocks always starts with a copy-block length (possibly zero, if
// the first reference element is not copied); the mode alternates
// copy, skip, copy, skip, ... The whole reference list is consumed.
// A trailing copy block is written explicitly; a trailing skip block
// is omitted, its elements being implicitly skipped. The block count
// is therefore always odd, so the decode side's applyBlocks never
// applies its implicit trailing copy to lists produced here.
func diffLists(curr, ref []uint64) (blocks []uint64, extras []uint64) {
	i, j := 0, 0 // i walks curr, j walks ref
	copying := true
	blockLen := uint64(0)

	for j < len(ref) {
		if i < len(curr) && curr[i] == ref[j] {
			if copying {
				blockLen++
				i++
				j++
			} else {
				blocks = append(blocks, blockLen)
				copying = true
				blockLen = 0
				// do not advance i/j: re-examine this pair under copy mode
			}
		} else if i < len(curr) && curr[i] < ref[j] {
			extras = append(extras, curr[i])
			i++
		} else {
			if copying {
				blocks = append(blocks, blockLen)
				copying = false
				blockLen = 0
				// do not advance i/j: re-examine this pair under skip mode
			} else {
				blockLen++
				j++
			}
		}
	}
	if copying && blockLen > 0 {
		blocks = append(blocks, blockLen)
	}
	for ; i < len(curr); i++ {
		extras = append(extras, curr[i])
	}
	return blocks, extras
}

// applyBlocks reconstructs the copied subsequence of ref named by an
// alternating copy/skip block-length sequence. The first block is
// always a copy length; an even-length blocks slice means the final,
// unwritten block is an implicit copy running to the end of ref, and
// an odd-length one means the rest of ref is skipped.
func applyBlocks(ref []uint64, blocks []uint64) []uint64 {
	var out []uint64
	pos := 0
	copying := true
	for _, b := range blocks {
		if copying {
			for k := uint64(0); k < b && pos < len(ref); k++ {
				out = append(out, ref[pos])
				pos++
			}
		} else {
			pos += int(b)
		}
		copying = !copying
	}
	if copying {
		out = append(out, ref[pos:]...)
	}
	return out
}
