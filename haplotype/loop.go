package haplotype

import (
	"github.com/eernst/Flye/config"
	"github.com/eernst/Flye/graph"
	"github.com/eernst/Flye/unbranch"
)

// CollapseHeterozygousLoops finds a self-loop hanging off a single
// degree-2/degree-2 node, bounded by an entrance and an exit path, and
// either mask it or detach it. A loop whose coverage
// falls below a quarter of its entrance-plus-exit coverage is removed
// outright; otherwise it is unrolled into a linear tail.
//
// The coverage test below intentionally compares against
// min(entrance, entrance) rather than min(entrance, exit) — a narrowing
// bug preserved here as a known oversight rather than fixed.
func (r *Resolver) CollapseHeterozygousLoops(removeAlternatives bool) int {
	paths := r.proc.UnbranchingPaths()

	toUnroll := make(map[graph.SeqId]bool)
	toRemove := make(map[graph.SeqId]bool)
	numMasked := 0

	for _, loop := range paths {
		if !loop.ID().Strand() {
			continue
		}
		if !loop.IsLooped() {
			continue
		}
		if loop.First().SelfComplement {
			continue
		}

		node := loop.NodeLeft()
		if node.InDegree() != 2 || node.OutDegree() != 2 {
			continue
		}

		var entrance, exit *unbranch.Path
		for _, cand := range paths {
			if cand.ID() == loop.ID() {
				continue
			}
			if cand.NodeRight() == node {
				entrance = cand
			}
			if cand.NodeLeft() == node {
				exit = cand
			}
		}
		if entrance == nil || exit == nil {
			continue
		}
		if entrance.IsLooped() {
			continue
		}
		if entrance.ID() == exit.ID().Rc() {
			continue
		}

		if loop.MeanCoverage() > config.LoopCoverageMultiplier*minFloat(entrance.MeanCoverage(), entrance.MeanCoverage()) {
			continue
		}
		if loop.Length() > maxInt(entrance.Length(), exit.Length()) {
			continue
		}

		if !loop.First().AltHaplotype {
			numMasked++
		}
		for _, e := range loop.Edges {
			r.g.SetAltHaplotype(e, true)
		}

		if !removeAlternatives {
			continue
		}

		if loop.MeanCoverage() < (entrance.MeanCoverage()+exit.MeanCoverage())*config.LoopRemoveCoverageFraction {
			toRemove[loop.ID()] = true
			toRemove[loop.ID().Rc()] = true
		} else {
			toUnroll[loop.ID()] = true
			toUnroll[loop.ID().Rc()] = true
		}
	}

	if !removeAlternatives {
		r.sink.Printf("Masked %d heterozygous loops", numMasked)
		return numMasked
	}

	for _, path := range paths {
		if toUnroll[path.ID()] {
			unrollLoop(r.g, path)
		}
		if toRemove[path.ID()] {
			removeLoop(r.g, path)
		}
	}
	count := (len(toUnroll) + len(toRemove)) / 2
	r.sink.Printf("Removed %d heterozygous loops", count)
	r.aligner.UpdateAlignments()
	return count
}

// unrollLoop breaks a self-loop into a linear tail: a fresh node is
// spliced between the loop's entrance edge and the loop's first edge, so
// the loop chain runs entrance -> freshNode -> ... -> node -> exit
// instead of closing back on node.
func unrollLoop(g *graph.Graph, path *unbranch.Path) {
	node := path.NodeLeft()

	var prevEdge *graph.Edge
	if node.InEdges[0] == path.Last() {
		prevEdge = node.InEdges[1]
	} else {
		prevEdge = node.InEdges[0]
	}

	node.RemoveOutEdge(path.First())
	node.RemoveInEdge(prevEdge)

	newNode := g.AddNode()
	path.RebindLeft(newNode)
	newNode.AddOutEdge(path.First())
	newNode.AddInEdge(prevEdge)
}

// removeLoop detaches a self-loop entirely, leaving node with only its
// entrance/exit adjacency and the loop's edges owned by two fresh nodes
// of their own.
func removeLoop(g *graph.Graph, path *unbranch.Path) {
	node := path.NodeLeft()

	node.RemoveOutEdge(path.First())
	node.RemoveInEdge(path.Last())

	newLeft := g.AddNode()
	newRight := g.AddNode()
	path.RebindLeft(newLeft)
	newRight.AddInEdge(path.Last())
	path.RebindRight(newRight)
	newLeft.AddOutEdge(path.First())
}
