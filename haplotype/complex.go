package haplotype

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/eernst/Flye/alnidx"
	"github.com/eernst/Flye/graph"
)

// ScoredPath is a read-alignment walk together with the number of reads
// that were clustered into it — either a raw outgoing-path group or a
// bubble branch formed by merging groups that agree from the bubble's
// start edge to its end edge.
type ScoredPath struct {
	Path  alnidx.GraphAlignment
	Score int
}

// Bubble is one multi-branch region the complex-haplotype finder
// reports: the shared edge the branches diverge from, the shared edge
// they reconverge on, every surviving alignment group that crosses the
// start edge, and the distinct branches those groups collapse into.
type Bubble struct {
	StartEdge *graph.Edge
	EndEdge   *graph.Edge
	Groups    []ScoredPath
	Branches  []ScoredPath
}

// FindComplexHaplotypes is a diagnostic-only pass over every branch
// node, clustering the read alignments that leave it
// into groups, and reporting any branch where at least two distinct,
// well-supported branches diverge and later reconverge. It never mutates
// the graph; the returned count is always 0; bubbles are returned for the
// caller (or a later pass) to inspect.
func (r *Resolver) FindComplexHaplotypes() (int, []Bubble) {
	alignments := r.aligner.GetAlignments()
	index := alnidx.BuildIndex(alignments)

	paths := r.proc.UnbranchingPaths()

	loopedEdges := bitset.New(0)
	for _, path := range paths {
		if path.IsLooped() {
			for _, e := range path.Edges {
				loopedEdges.Set(uint(e.ID()))
			}
		}
	}

	var bubbles []Bubble

	for _, startPath := range paths {
		if !startPath.ID().Strand() {
			continue
		}
		if startPath.NodeRight().OutDegree() < 2 {
			continue
		}
		startEdge := startPath.Last()
		if loopedEdges.Test(uint(startEdge.ID())) {
			continue
		}

		var outPaths []alnidx.GraphAlignment
		for _, aln := range index[startEdge] {
			for i, ea := range aln {
				if ea.Edge == startEdge {
					outPaths = append(outPaths, aln[i:])
					break
				}
			}
		}
		if len(outPaths) == 0 {
			continue
		}
		sort.Slice(outPaths, func(i, j int) bool {
			return len(outPaths[i]) > len(outPaths[j])
		})

		minScore := len(outPaths) / 10
		if minScore < 2 {
			minScore = 2
		}

		groups := clusterGroups(outPaths)
		var survivors []*ScoredPath
		for _, g := range groups {
			if g.Score >= minScore {
				survivors = append(survivors, g)
			}
		}
		if len(survivors) < 2 {
			continue
		}

		repeated := findRepeatedEdges(survivors)

		ref := survivors[0]
		convergent := make(map[*graph.Edge]bool)
		for _, ea := range ref.Path {
			if !loopedEdges.Test(uint(ea.Edge.ID())) && !repeated[ea.Edge] {
				convergent[ea.Edge] = true
			}
		}
		for _, g := range survivors[1:] {
			present := make(map[*graph.Edge]bool, len(g.Path))
			for _, ea := range g.Path {
				present[ea.Edge] = true
			}
			for e := range convergent {
				if !present[e] {
					delete(convergent, e)
				}
			}
		}

		bubbleStart := 0
		for bubbleStart+1 < len(ref.Path) {
			nextEdge := ref.Path[bubbleStart+1].Edge
			if !convergent[nextEdge] {
				break
			}
			agree := true
			for _, g := range survivors[1:] {
				if bubbleStart+1 >= len(g.Path) || g.Path[bubbleStart+1].Edge != nextEdge {
					agree = false
					break
				}
			}
			if !agree {
				break
			}
			bubbleStart++
		}

		bubbleEnd := -1
		for i := bubbleStart + 1; i < len(ref.Path); i++ {
			if convergent[ref.Path[i].Edge] {
				bubbleEnd = i
				break
			}
		}
		if bubbleEnd < 0 {
			continue
		}

		branches := mergeBranches(survivors, ref.Path[bubbleStart].Edge, ref.Path[bubbleEnd].Edge)
		if len(branches) < 2 {
			continue
		}

		r.sink.Debugf("haplo branch point: edge=%d candidates=%d", startEdge.EdgeId, len(outPaths))
		for _, g := range survivors {
			r.sink.Debugf("group: %s score=%d", edgeIDsString(g.Path), g.Score)
		}
		for _, b := range branches {
			r.sink.Debugf("branch: %s score=%d", edgeIDsString(b.Path), b.Score)
		}
		r.sink.Debugf("bubble boundaries: %d -> %d", ref.Path[bubbleStart].Edge.EdgeId, ref.Path[bubbleEnd].Edge.EdgeId)

		bubbles = append(bubbles, Bubble{
			StartEdge: ref.Path[bubbleStart].Edge,
			EndEdge:   ref.Path[bubbleEnd].Edge,
			Groups:    toValues(survivors),
			Branches:  branches,
		})
	}

	r.sink.Printf("Found %d complex haplotype bubbles", len(bubbles))
	return 0, bubbles
}

// clusterGroups assigns each alignment to the first previously-seen
// group whose path it is a prefix-compatible extension of, using a
// greedy clustering over alignments sorted longest-first, so a group's
// representative path is always its longest member.
func clusterGroups(outPaths []alnidx.GraphAlignment) []*ScoredPath {
	var groups []*ScoredPath
	for _, cand := range outPaths {
		matched := false
		for _, g := range groups {
			if isPrefixCompatible(cand, g.Path) {
				g.Score++
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, &ScoredPath{Path: cand, Score: 1})
		}
	}
	return groups
}

func isPrefixCompatible(a, b alnidx.GraphAlignment) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].Edge != b[i].Edge {
			return false
		}
	}
	return true
}

func findRepeatedEdges(groups []*ScoredPath) map[*graph.Edge]bool {
	repeated := make(map[*graph.Edge]bool)
	for _, g := range groups {
		seen := make(map[*graph.Edge]bool, len(g.Path))
		for _, ea := range g.Path {
			if seen[ea.Edge] {
				repeated[ea.Edge] = true
			}
			seen[ea.Edge] = true
		}
	}
	return repeated
}

// mergeBranches trims every surviving group to the [start, end] edge
// span and merges groups whose trimmed span is edge-for-edge identical,
// summing their scores.
func mergeBranches(groups []*ScoredPath, start, end *graph.Edge) []ScoredPath {
	var branches []ScoredPath
	for _, g := range groups {
		startIdx, endIdx := -1, -1
		for i, ea := range g.Path {
			if ea.Edge == start {
				startIdx = i
			}
			if ea.Edge == end {
				endIdx = i
			}
		}
		if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
			continue
		}
		trimmed := append(alnidx.GraphAlignment{}, g.Path[startIdx:endIdx+1]...)

		merged := false
		for i := range branches {
			if pathEdgesEqual(trimmed, branches[i].Path) {
				branches[i].Score += g.Score
				merged = true
				break
			}
		}
		if !merged {
			branches = append(branches, ScoredPath{Path: trimmed, Score: g.Score})
		}
	}
	return branches
}

func pathEdgesEqual(a, b alnidx.GraphAlignment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Edge != b[i].Edge {
			return false
		}
	}
	return true
}

func toValues(groups []*ScoredPath) []ScoredPath {
	out := make([]ScoredPath, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	return out
}

func edgeIDsString(path alnidx.GraphAlignment) string {
	ids := make([]string, len(path))
	for i, ea := range path {
		ids[i] = fmt.Sprintf("%d", ea.Edge.EdgeId)
	}
	return strings.Join(ids, ",")
}
