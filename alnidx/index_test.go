package alnidx

import (
	"testing"

	"github.com/eernst/Flye/graph"
)

func TestBuildIndex(t *testing.T) {
	g := graph.New()
	a, b, c := g.AddNode(), g.AddNode(), g.AddNode()
	ra, rb, rc := g.AddNode(), g.AddNode(), g.AddNode()
	e1, _ := g.AddEdgePair(a, b, 1, 10, 1, rb, ra)
	e2, _ := g.AddEdgePair(b, c, 2, 10, 1, rc, rb)

	aln := GraphAlignment{{Edge: e1, CurEnd: 10}, {Edge: e2, CurEnd: 20}, {Edge: e1, CurEnd: 25}}
	single := GraphAlignment{{Edge: e1, CurEnd: 5}}

	idx := BuildIndex([]GraphAlignment{aln, single})
	if len(idx[e1]) != 1 {
		t.Fatalf("expected exactly 1 alignment indexed under e1 (singleton alignment excluded, duplicate edge deduped), got %d", len(idx[e1]))
	}
	if len(idx[e2]) != 1 {
		t.Fatalf("expected exactly 1 alignment indexed under e2, got %d", len(idx[e2]))
	}
}

func TestBuildIndexEmpty(t *testing.T) {
	if BuildIndex(nil) != nil {
		t.Error("expected nil index for no alignments")
	}
}
