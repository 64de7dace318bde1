package unbranch

import (
	"testing"

	"github.com/eernst/Flye/graph"
)

// buildBulge wires E -> (A | B) -> X on both strands, the § end-to-end
// scenario 1 fixture.
func buildBulge(g *graph.Graph) (left, right *graph.Node) {
	e1, e2 := g.AddNode(), g.AddNode()
	left, right = g.AddNode(), g.AddNode()
	x1, x2 := g.AddNode(), g.AddNode()

	g.AddEdgePair(e1, left, 1, 1000, 30, right, e2)
	g.AddEdgePair(left, right, 2, 500, 10, right, left)
	g.AddEdgePair(left, right, 3, 500, 20, right, left)
	g.AddEdgePair(right, x1, 4, 1000, 30, x2, left)
	return left, right
}

func TestUnbranchingPathsBulge(t *testing.T) {
	g := graph.New()
	buildBulge(g)

	paths := NewProcessor(g).UnbranchingPaths()
	// 4 forward edges + 4 twins = 8 single-edge paths; no interior
	// pass-through nodes to merge since every node here is a branch node.
	if len(paths) != 8 {
		t.Fatalf("expected 8 unbranching paths, got %d", len(paths))
	}
	for _, p := range paths {
		if p.IsLooped() {
			t.Error("no path in a simple bulge should be looped")
		}
	}
}

func TestUnbranchingPathsMergeChain(t *testing.T) {
	g := graph.New()
	a, b, c, d := g.AddNode(), g.AddNode(), g.AddNode(), g.AddNode()
	ra, rb, rc, rd := g.AddNode(), g.AddNode(), g.AddNode(), g.AddNode()

	g.AddEdgePair(a, b, 1, 100, 5, rb, ra)
	g.AddEdgePair(b, c, 2, 100, 5, rc, rb)
	g.AddEdgePair(c, d, 3, 100, 5, rd, rc)

	paths := NewProcessor(g).UnbranchingPaths()
	if len(paths) != 2 {
		t.Fatalf("expected the 3-edge chain to merge into 2 strand-twin paths, got %d", len(paths))
	}
	for _, p := range paths {
		if len(p.Edges) != 3 {
			t.Errorf("expected a 3-edge merged path, got %d edges", len(p.Edges))
		}
		if p.Length() != 300 {
			t.Errorf("expected length 300, got %d", p.Length())
		}
	}
}

func TestUnbranchingPathsFullyLoopedCycle(t *testing.T) {
	g := graph.New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	ra, rb, rc := g.AddNode(), g.AddNode(), g.AddNode()

	g.AddEdgePair(a, b, 1, 10, 1, rb, ra)
	g.AddEdgePair(b, c, 2, 10, 1, rc, rb)
	g.AddEdgePair(c, a, 3, 10, 1, ra, rc)

	paths := NewProcessor(g).UnbranchingPaths()
	if len(paths) != 2 {
		t.Fatalf("expected 2 strand-twin looped paths, got %d", len(paths))
	}
	for _, p := range paths {
		if !p.IsLooped() {
			t.Error("a cycle of pass-through nodes must be reported as looped")
		}
		if len(p.Edges) != 3 {
			t.Errorf("expected all 3 edges merged into one looped path, got %d", len(p.Edges))
		}
	}
}

func TestMeanCoverageWeighting(t *testing.T) {
	g := graph.New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	ra, rb, rc := g.AddNode(), g.AddNode(), g.AddNode()
	g.AddEdgePair(a, b, 1, 100, 10, rb, ra)
	g.AddEdgePair(b, c, 2, 300, 30, rc, rb)

	paths := NewProcessor(g).UnbranchingPaths()
	var found bool
	for _, p := range paths {
		if p.ID().Strand() && len(p.Edges) == 2 {
			found = true
			want := (100.0*10 + 300.0*30) / 400.0
			if p.MeanCoverage() != want {
				t.Errorf("MeanCoverage = %v, want %v", p.MeanCoverage(), want)
			}
		}
	}
	if !found {
		t.Fatal("expected a merged 2-edge forward-strand path")
	}
}
