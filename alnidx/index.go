package alnidx

import (
	"github.com/exascience/pargo/parallel"

	"github.com/eernst/Flye/graph"
)

// BuildIndex indexes every alignment of length >= 2 under each distinct
// edge it touches, the preprocessing step the complex-haplotype finder
// needs: collect the set of distinct edges a read touches, and index the
// alignment under each such edge. The index itself is read by a
// single-threaded pass afterwards, but building it is embarrassingly
// parallel over independent reads, so it is sharded and merged the same
// way filters.MarkOpticalDuplicates shards per-read work into local maps
// and merges them with parallel.RangeReduce.
func BuildIndex(alignments []GraphAlignment) map[*graph.Edge][]GraphAlignment {
	if len(alignments) == 0 {
		return nil
	}
	result := parallel.RangeReduce(0, len(alignments), 0,
		func(low, high int) interface{} {
			local := make(map[*graph.Edge][]GraphAlignment)
			for _, aln := range alignments[low:high] {
				if len(aln) < 2 {
					continue
				}
				seen := make(map[*graph.Edge]bool, len(aln))
				for _, ea := range aln {
					if seen[ea.Edge] {
						continue
					}
					seen[ea.Edge] = true
					local[ea.Edge] = append(local[ea.Edge], aln)
				}
			}
			return local
		},
		func(a, b interface{}) interface{} {
			m1 := a.(map[*graph.Edge][]GraphAlignment)
			m2 := b.(map[*graph.Edge][]GraphAlignment)
			for e, als := range m2 {
				m1[e] = append(m1[e], als...)
			}
			return m1
		})
	return result.(map[*graph.Edge][]GraphAlignment)
}
