package decomp

import "testing"

func TestPartitionRangesExactCover(t *testing.T) {
	// Every index in [0, n) must be assigned exactly once, for any worker
	// count, including the degenerate n < workers cases.
	for n := 0; n <= 25; n++ {
		for workers := 1; workers <= 6; workers++ {
			covered := make([]int, n)
			prevEnd := 0
			for _, r := range partitionRanges(n, workers) {
				if r.start < 0 || r.end > n || r.start > r.end {
					t.Fatalf("n=%d workers=%d: bad range [%d,%d)", n, workers, r.start, r.end)
				}
				if !r.empty() && r.start != prevEnd {
					t.Fatalf("n=%d workers=%d: gap before [%d,%d)", n, workers, r.start, r.end)
				}
				for i := r.start; i < r.end; i++ {
					covered[i]++
				}
				if !r.empty() {
					prevEnd = r.end
				}
			}
			for i, c := range covered {
				if c != 1 {
					t.Errorf("n=%d workers=%d: index %d covered %d times", n, workers, i, c)
				}
			}
		}
	}
}

func TestPartitionRangesBlockCount(t *testing.T) {
	if got := len(partitionRanges(10, 4)); got != 4 {
		t.Errorf("got %d blocks, want 4", got)
	}
	// Worker counts below 1 clamp to a single block.
	rs := partitionRanges(5, 0)
	if len(rs) != 1 || rs[0].start != 0 || rs[0].end != 5 {
		t.Errorf("clamped partition = %v", rs)
	}
}
