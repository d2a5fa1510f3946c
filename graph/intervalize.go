package graph

// Intervalize scans a sorted, duplicate-free list of values and
// splits out maximal runs of consecutive integers of length >= minLen
// into (left, length) pairs, leaving everything else as residuals.
// Runs shorter than minLen are not worth the interval's own overhead
// and stay in the residual list untouched.
func Intervalize(extras []uint64, minLen int) (left, length, residuals []uint64) {
	n := len(extras)
	i := 0
	for i < n {
		j := i
		for j+1 < n && extras[j+1] == extras[j]+1 {
			j++
		}
		runLen := j - i + 1
		if runLen >= minLen {
			left = append(left, extras[i])
			length = append(length, uint64(runLen))
			i = j + 1
		} else {
			residuals = append(residuals, extras[i])
			i++
		}
	}
	return left, length, residuals
}

// Deintervalize reconstructs the merged, sorted successor list from a
// set of (left, length) interval pairs and the residual values left
// outside of them. Both inputs are already sorted; the merge produces
// a single sorted, duplicate-free output.
func Deintervalize(left, length, residuals []uint64) []uint64 {
	var out []uint64
	ri := 0
	for k := range left {
		for ; ri < len(residuals) && residuals[ri] < left[k]; ri++ {
			out = append(out, residuals[ri])
		}
		for v := left[k]; v < left[k]+length[k]; v++ {
			out = append(out, v)
		}
	}
	for ; ri < len(residuals); ri++ {
		out = append(out, residuals[ri])
	}
	return out
}
