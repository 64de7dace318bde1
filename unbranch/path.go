// Package unbranch extracts maximal unbranching paths from a graph: runs
// of edges whose interior nodes all have in-degree 1 and out-degree 1.
// The three haplotype passes never walk Node adjacency directly; they
// always ask a Processor for the current set of paths.
package unbranch

import (
	"sort"

	"github.com/eernst/Flye/graph"
)

// Path is a maximal simple walk through the graph: an ordered,
// non-empty sequence of edges. NodeLeft/NodeRight are a mutable view
// onto the path's boundary nodes — RebindLeft/RebindRight only update
// this view; the caller is responsible for the graph-adjacency
// bookkeeping around the call, in the order the bulge and loop passes
// prescribe.
type Path struct {
	Edges []*graph.Edge

	nodeLeft, nodeRight *graph.Node
}

// NodeLeft is the source of the path's first edge.
func (p *Path) NodeLeft() *graph.Node {
	return p.nodeLeft
}

// NodeRight is the target of the path's last edge.
func (p *Path) NodeRight() *graph.Node {
	return p.nodeRight
}

// RebindLeft replaces the path's left boundary-node reference. The
// caller must already have removed First() from the old node's
// OutEdges and must insert it into the new node's adjacency itself.
func (p *Path) RebindLeft(n *graph.Node) {
	p.nodeLeft = n
}

// RebindRight replaces the path's right boundary-node reference,
// with the same caller obligations as RebindLeft.
func (p *Path) RebindRight(n *graph.Node) {
	p.nodeRight = n
}

// First is the path's first edge.
func (p *Path) First() *graph.Edge {
	return p.Edges[0]
}

// Last is the path's last edge.
func (p *Path) Last() *graph.Edge {
	return p.Edges[len(p.Edges)-1]
}

// ID is the signed id of the path's first edge.
func (p *Path) ID() graph.SeqId {
	return p.Edges[0].EdgeId
}

// IsLooped reports whether the path forms a closed cycle: its two
// boundary nodes coincide.
func (p *Path) IsLooped() bool {
	return p.nodeLeft == p.nodeRight
}

// Length is the sum of the path's edge lengths.
func (p *Path) Length() int {
	total := 0
	for _, e := range p.Edges {
		total += e.Length
	}
	return total
}

// MeanCoverage is the length-weighted mean of the path's edge coverages.
func (p *Path) MeanCoverage() float64 {
	var weighted float64
	var totalLen int
	for _, e := range p.Edges {
		weighted += e.MeanCoverage * float64(e.Length)
		totalLen += e.Length
	}
	if totalLen == 0 {
		// Zero-length edges (never produced by a well-formed assembly
		// graph, but not itself a fatal condition) fall back to a plain
		// average so MeanCoverage stays defined.
		var sum float64
		for _, e := range p.Edges {
			sum += e.MeanCoverage
		}
		return sum / float64(len(p.Edges))
	}
	return weighted / float64(totalLen)
}

// Processor returns the current set of maximal unbranching paths for a
// graph. Committing edits invalidates any previously returned slice —
// callers must fetch a fresh one after every commit.
type Processor interface {
	UnbranchingPaths() []*Path
}

type defaultProcessor struct {
	g *graph.Graph
}

// NewProcessor returns the default Processor for g: the maximal-run
// extractor walking pass-through nodes until it hits a branch, a source
// or sink, or closes a cycle.
func NewProcessor(g *graph.Graph) Processor {
	return &defaultProcessor{g: g}
}

func isPassThrough(n *graph.Node) bool {
	return n.InDegree() == 1 && n.OutDegree() == 1
}

func extend(start *graph.Edge, visited map[*graph.Edge]bool) *Path {
	edges := []*graph.Edge{start}
	visited[start] = true
	cur := start
	for {
		next := cur.To
		if !isPassThrough(next) {
			break
		}
		nextEdge := next.OutEdges[0]
		if visited[nextEdge] {
			// Closed cycle: nextEdge is `start` itself, so cur.To (== next)
			// is the same node as start.From, giving NodeLeft == NodeRight.
			break
		}
		edges = append(edges, nextEdge)
		visited[nextEdge] = true
		cur = nextEdge
	}
	return &Path{Edges: edges, nodeLeft: start.From, nodeRight: cur.To}
}

// UnbranchingPaths returns every maximal unbranching path in the graph,
// including singleton-edge paths and fully-looped paths with no branch
// node anywhere on the cycle. Each strand-twin pair of paths appears
// independently; strand(path.ID()) selects one representative.
func (p *defaultProcessor) UnbranchingPaths() []*Path {
	visited := make(map[*graph.Edge]bool)
	var paths []*Path

	// First pass: start a path at every edge leaving a branch (or
	// source/sink) node — the normal, non-looped case.
	for _, n := range p.g.Nodes() {
		for _, e := range n.OutEdges {
			if visited[e] || isPassThrough(n) {
				continue
			}
			paths = append(paths, extend(e, visited))
		}
	}

	// Second pass: any edge left unvisited lies on a closed cycle made
	// entirely of pass-through nodes — a path with no branch anywhere to
	// anchor the first pass. Walk it starting from an arbitrary edge on
	// it; deterministic order keeps path ids reproducible across runs.
	var remaining []*graph.Edge
	for _, e := range p.g.Edges() {
		if !visited[e] {
			remaining = append(remaining, e)
		}
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].ID() < remaining[j].ID() })
	for _, e := range remaining {
		if visited[e] {
			continue
		}
		paths = append(paths, extend(e, visited))
	}

	return paths
}
