// Package graph implements the bidirected multigraph that the haplotype
// resolution passes operate on: nodes with ordered in/out adjacency,
// edges paired with a reverse-complement twin that must be mutated in
// lockstep with its partner.
package graph

import "log"

// SeqId is an opaque sequence identifier: a numeric identity together
// with a strand bit folded into its sign. Rc yields the reverse-complement
// twin of an id; Strand reports the canonical-strand predicate.
type SeqId int32

// Rc returns the reverse-complement twin of id. Rc(Rc(id)) == id always.
func (id SeqId) Rc() SeqId {
	return -id
}

// Strand reports whether id names the canonical strand. Strand(id) !=
// Strand(Rc(id)) for every non-zero id; id 0 is its own Rc and is not on
// the canonical strand.
func (id SeqId) Strand() bool {
	return id > 0
}

// Edge is a directed connection between two nodes, carrying a sequence
// fragment and its coverage estimate. Every edge has a Complement that
// represents the same sequence on the opposite strand; the two must be
// kept in sync by every mutator.
type Edge struct {
	id int

	EdgeId         SeqId
	From, To       *Node
	Length         int
	MeanCoverage   float64
	AltHaplotype   bool
	SelfComplement bool

	twin *Edge
}

// ID is this edge's stable arena index, used by the passes to index
// membership sets (bitset.BitSet) without a map keyed on pointers.
func (e *Edge) ID() int {
	return e.id
}

// Complement returns e's reverse-complement twin. Complement(Complement(e))
// == e always; Complement(e).EdgeId == e.EdgeId.Rc() for every edge made
// by AddEdgePair. An edge made by AddSelfComplementEdge is its own twin,
// so its Complement keeps the same EdgeId.
func (e *Edge) Complement() *Edge {
	return e.twin
}

// Node is an element of the graph: an ordered pair of adjacency lists.
// Nodes carry no payload; their identity is their address. Nodes are
// never freed while the owning Graph is alive, even once every edge in
// their adjacency has been detached.
type Node struct {
	id int

	InEdges  []*Edge
	OutEdges []*Edge
}

// InDegree is len(n.InEdges).
func (n *Node) InDegree() int {
	return len(n.InEdges)
}

// OutDegree is len(n.OutEdges).
func (n *Node) OutDegree() int {
	return len(n.OutEdges)
}

// Graph is an arena owning every Node and Edge ever allocated for it.
// Adjacency lists and path references are non-owning handles into this
// arena; detaching a branch never frees it, it only rewires adjacency.
type Graph struct {
	nodes []*Node
	edges []*Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode allocates a fresh node with empty adjacency. Fresh nodes are
// allocated on every branch detachment; graph growth is additive within
// a pass, no compaction is performed here.
func (g *Graph) AddNode() *Node {
	n := &Node{id: len(g.nodes)}
	g.nodes = append(g.nodes, n)
	return n
}

// Nodes returns every node ever allocated in the arena, including
// detached orphans.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns every edge ever allocated in the arena, including
// detached orphans.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

func (g *Graph) newEdge(from, to *Node, edgeId SeqId, length int, meanCoverage float64, selfComplement bool) *Edge {
	e := &Edge{
		id:             len(g.edges),
		EdgeId:         edgeId,
		From:           from,
		To:             to,
		Length:         length,
		MeanCoverage:   meanCoverage,
		SelfComplement: selfComplement,
	}
	g.edges = append(g.edges, e)
	from.OutEdges = append(from.OutEdges, e)
	to.InEdges = append(to.InEdges, e)
	return e
}

// AddEdgePair allocates two edges that are each other's reverse-complement
// twin: one from `from1` to `to1` carrying `id`, the other from `from2`
// to `to2` carrying `id.Rc()`. Both start with the same coverage and
// `AltHaplotype == false`, matching the at-rest twin invariant.
func (g *Graph) AddEdgePair(from1, to1 *Node, id SeqId, length int, meanCoverage float64, from2, to2 *Node) (e, twin *Edge) {
	e = g.newEdge(from1, to1, id, length, meanCoverage, false)
	twin = g.newEdge(from2, to2, id.Rc(), length, meanCoverage, false)
	e.twin = twin
	twin.twin = e
	return e, twin
}

// AddSelfComplementEdge allocates a single edge that is its own
// complement, used for palindromic sequence fragments. Such an edge must
// never be collapsed by the loop-collapsing pass.
func (g *Graph) AddSelfComplementEdge(from, to *Node, id SeqId, length int, meanCoverage float64) *Edge {
	e := g.newEdge(from, to, id, length, meanCoverage, true)
	e.twin = e
	return e
}

// VecRemove removes the first occurrence of elem from list, preserving
// the order of the rest. It is the caller's responsibility to apply the
// symmetric removal to elem's twin where required.
func VecRemove(list []*Edge, elem *Edge) []*Edge {
	for i, e := range list {
		if e == elem {
			return append(list[:i], list[i+1:]...)
		}
	}
	log.Panicf("vecRemove: edge %d not found in adjacency list", elem.id)
	return list
}

// RemoveOutEdge splices e out of n.OutEdges. Panics if e is not present.
func (n *Node) RemoveOutEdge(e *Edge) {
	n.OutEdges = VecRemove(n.OutEdges, e)
}

// RemoveInEdge splices e out of n.InEdges. Panics if e is not present.
func (n *Node) RemoveInEdge(e *Edge) {
	n.InEdges = VecRemove(n.InEdges, e)
}

// AddOutEdge appends e to n.OutEdges and rebinds e.From to n. Callers
// must keep e.To/n.InEdges consistent separately; this only performs one
// side of the bookkeeping.
func (n *Node) AddOutEdge(e *Edge) {
	n.OutEdges = append(n.OutEdges, e)
	e.From = n
}

// AddInEdge appends e to n.InEdges and rebinds e.To to n.
func (n *Node) AddInEdge(e *Edge) {
	n.InEdges = append(n.InEdges, e)
	e.To = n
}

// ComplementEdge returns e's twin. Panics if e has no twin, which would
// indicate a malformed graph handed to the core.
func (g *Graph) ComplementEdge(e *Edge) *Edge {
	if e.twin == nil {
		log.Panicf("complementEdge: edge %d has no twin", e.id)
	}
	return e.twin
}

// SetAltHaplotype sets AltHaplotype on e and its twin together, the only
// way the passes are allowed to touch this field: coverage and
// AltHaplotype stay equal across twins at rest.
func (g *Graph) SetAltHaplotype(e *Edge, alt bool) {
	e.AltHaplotype = alt
	g.ComplementEdge(e).AltHaplotype = alt
}

// AddCoverage adds delta to e's coverage and its twin's, together.
func (g *Graph) AddCoverage(e *Edge, delta float64) {
	e.MeanCoverage += delta
	g.ComplementEdge(e).MeanCoverage += delta
}
