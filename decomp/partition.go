package decomp

// indexRange is a half-open block [start, end) of segment indices assigned
// to one worker.
type indexRange struct {
	start, end int
}

func (r indexRange) empty() bool { return r.start >= r.end }

// partitionRanges splits [0, n) into count contiguous non-overlapping
// blocks whose union covers every index exactly once. Ceiling division
// keeps the blocks balanced; when n < count the trailing blocks clamp to
// empty rather than over- or under-covering.
func partitionRanges(n, count int) []indexRange {
	if count < 1 {
		count = 1
	}
	out := make([]indexRange, count)
	size := (n + count - 1) / count
	for w := 0; w < count; w++ {
		start := w * size
		end := start + size
		if start > n {
			start = n
		}
		if end > n {
			end = n
		}
		out[w] = indexRange{start: start, end: end}
	}
	return out
}
