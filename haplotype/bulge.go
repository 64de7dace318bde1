package haplotype

import (
	"github.com/eernst/Flye/config"
	"github.com/eernst/Flye/graph"
	"github.com/eernst/Flye/unbranch"
)

// CollapseHeterozygousBulges finds pairs of unbranching paths that share
// both boundary nodes, forming a simple
// 2-branch bubble, and marks both branches as AltHaplotype. In mask mode
// (removeAlternatives == false) it only sets AltHaplotype and returns the
// count of newly masked bubbles. In collapse mode it additionally detaches
// the lower-coverage branch into an orphan chain owned by fresh boundary
// nodes, folds its coverage into the surviving branch, and calls
// UpdateAlignments once at the end.
func (r *Resolver) CollapseHeterozygousBulges(removeAlternatives bool) int {
	paths := r.proc.UnbranchingPaths()

	toSeparate := make(map[graph.SeqId]bool)
	numMasked := 0

	for _, path := range paths {
		if path.IsLooped() {
			continue
		}

		var pair []*unbranch.Path
		for _, cand := range paths {
			if cand.NodeLeft() == path.NodeLeft() && cand.NodeRight() == path.NodeRight() {
				pair = append(pair, cand)
			}
		}
		if len(pair) != 2 {
			continue
		}
		a, b := pair[0], pair[1]
		if a.ID() == b.ID().Rc() {
			continue
		}
		if toSeparate[a.ID()] || toSeparate[b.ID()] {
			continue
		}

		left, right := a.NodeLeft(), a.NodeRight()
		if left.InDegree() != 1 || left.OutDegree() != 2 || right.InDegree() != 2 || right.OutDegree() != 1 {
			continue
		}

		var entrance, exit *unbranch.Path
		for _, cand := range paths {
			if cand.NodeRight() == left {
				entrance = cand
			}
			if cand.NodeLeft() == right {
				exit = cand
			}
		}
		if entrance == nil || exit == nil {
			continue
		}

		if maxInt(a.Length(), b.Length()) > r.cfg.MaxBubbleLength {
			continue
		}
		covSum := a.MeanCoverage() + b.MeanCoverage()
		if covSum > minFloat(entrance.MeanCoverage(), exit.MeanCoverage())*config.MaxCoverageVariance {
			continue
		}
		if maxInt(a.Length(), b.Length()) > maxInt(entrance.Length(), exit.Length()) {
			continue
		}

		if a.MeanCoverage() > b.MeanCoverage() {
			a, b = b, a
		}

		if !a.First().AltHaplotype || !b.First().AltHaplotype {
			numMasked++
		}
		for _, e := range a.Edges {
			r.g.SetAltHaplotype(e, true)
		}
		for _, e := range b.Edges {
			r.g.SetAltHaplotype(e, true)
		}

		if removeAlternatives {
			lowerCov := a.MeanCoverage()
			toSeparate[a.ID()] = true
			toSeparate[a.ID().Rc()] = true
			for _, e := range b.Edges {
				r.g.AddCoverage(e, lowerCov)
				r.g.SetAltHaplotype(e, false)
			}
		}
	}

	if !removeAlternatives {
		r.sink.Printf("Masked %d heterozygous bulges", numMasked)
		return numMasked
	}

	for _, path := range paths {
		if toSeparate[path.ID()] {
			separatePath(r.g, path)
		}
	}
	count := len(toSeparate) / 2
	r.sink.Printf("Removed %d heterozygous bulges", count)
	r.aligner.UpdateAlignments()
	return count
}

// separatePath detaches path from its current boundary nodes, giving it
// two fresh nodes of its own and leaving an orphan chain behind. The
// path's own interior adjacency is untouched; only its two endpoint
// edges move.
func separatePath(g *graph.Graph, path *unbranch.Path) {
	oldLeft, oldRight := path.NodeLeft(), path.NodeRight()
	oldLeft.RemoveOutEdge(path.First())
	oldRight.RemoveInEdge(path.Last())

	newLeft := g.AddNode()
	newRight := g.AddNode()
	path.RebindLeft(newLeft)
	path.RebindRight(newRight)
	newLeft.AddOutEdge(path.First())
	newRight.AddInEdge(path.Last())
}
