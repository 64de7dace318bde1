package haplotype

import (
	"testing"

	"github.com/eernst/Flye/alnidx"
	"github.com/eernst/Flye/config"
	"github.com/eernst/Flye/graph"
)

// buildComplexFixture wires source -s-> branch -(x|y)-> converge -t-> sink,
// mirrored on the reverse strand, the shape the complex finder looks for a
// divergence/reconvergence pair on.
func buildComplexFixture(g *graph.Graph) (s, x, y, tEdge *graph.Edge) {
	source, branch, converge, sink := g.AddNode(), g.AddNode(), g.AddNode(), g.AddNode()
	rSource, rBranch, rConverge, rSink := g.AddNode(), g.AddNode(), g.AddNode(), g.AddNode()

	s, _ = g.AddEdgePair(source, branch, 1, 100, 20, rBranch, rSource)
	x, _ = g.AddEdgePair(branch, converge, 2, 100, 20, rConverge, rBranch)
	y, _ = g.AddEdgePair(branch, converge, 3, 100, 5, rConverge, rBranch)
	tEdge, _ = g.AddEdgePair(converge, sink, 4, 100, 25, rSink, rConverge)
	return s, x, y, tEdge
}

func repeatAlignment(path alnidx.GraphAlignment, n int) []alnidx.GraphAlignment {
	out := make([]alnidx.GraphAlignment, n)
	for i := range out {
		out[i] = path
	}
	return out
}

func TestFindComplexHaplotypesDetectsBubble(t *testing.T) {
	g := graph.New()
	s, x, y, tEdge := buildComplexFixture(g)

	var alignments []alnidx.GraphAlignment
	alignments = append(alignments, repeatAlignment(alnidx.GraphAlignment{{Edge: s}, {Edge: x}, {Edge: tEdge}}, 20)...)
	alignments = append(alignments, repeatAlignment(alnidx.GraphAlignment{{Edge: s}, {Edge: y}, {Edge: tEdge}}, 5)...)

	r := NewResolver(g, nil, alnidx.NewMemAligner(alignments), config.Default(), nil)
	count, bubbles := r.FindComplexHaplotypes()

	if count != 0 {
		t.Errorf("the complex finder must never report a mutation count, got %d", count)
	}
	if len(bubbles) != 1 {
		t.Fatalf("expected 1 bubble, got %d", len(bubbles))
	}

	b := bubbles[0]
	if b.StartEdge != s {
		t.Errorf("expected start edge %d, got %d", s.EdgeId, b.StartEdge.EdgeId)
	}
	if b.EndEdge != tEdge {
		t.Errorf("expected end edge %d, got %d", tEdge.EdgeId, b.EndEdge.EdgeId)
	}
	if len(b.Branches) != 2 {
		t.Fatalf("expected 2 distinct branches, got %d", len(b.Branches))
	}
	total := 0
	for _, br := range b.Branches {
		total += br.Score
	}
	if total != 25 {
		t.Errorf("expected branch scores to sum to 25 reads, got %d", total)
	}
}

func TestFindComplexHaplotypesRejectsUndersupportedBranch(t *testing.T) {
	g := graph.New()
	s, x, y, tEdge := buildComplexFixture(g)

	// Only the x branch has enough support; a single stray y read must
	// not be promoted to a second branch.
	var alignments []alnidx.GraphAlignment
	alignments = append(alignments, repeatAlignment(alnidx.GraphAlignment{{Edge: s}, {Edge: x}, {Edge: tEdge}}, 20)...)
	alignments = append(alignments, alnidx.GraphAlignment{{Edge: s}, {Edge: y}, {Edge: tEdge}})

	r := NewResolver(g, nil, alnidx.NewMemAligner(alignments), config.Default(), nil)
	_, bubbles := r.FindComplexHaplotypes()
	if len(bubbles) != 0 {
		t.Errorf("expected no bubble when only one branch has enough support, got %d", len(bubbles))
	}
}

func TestFindComplexHaplotypesNoAlignments(t *testing.T) {
	g := graph.New()
	buildComplexFixture(g)

	r := NewResolver(g, nil, alnidx.NewMemAligner(nil), config.Default(), nil)
	count, bubbles := r.FindComplexHaplotypes()
	if count != 0 || len(bubbles) != 0 {
		t.Errorf("expected no bubbles with no alignments, got count=%d bubbles=%d", count, len(bubbles))
	}
}
