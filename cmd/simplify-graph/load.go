package main

import (
	"encoding/json"
	"log"

	"github.com/eernst/Flye/alnidx"
	"github.com/eernst/Flye/graph"
	"github.com/eernst/Flye/internal"
)

// edgeSpec is the on-disk representation of one bidirected edge pair (or,
// with SelfComplement set, a single palindromic edge). It mirrors the
// graph package's AddEdgePair/AddSelfComplementEdge constructors field
// for field, so loading a graph is a direct replay of those calls.
type edgeSpec struct {
	ID             graph.SeqId `json:"id"`
	From           int         `json:"from"`
	To             int         `json:"to"`
	Length         int         `json:"length"`
	MeanCoverage   float64     `json:"meanCoverage"`
	SelfComplement bool        `json:"selfComplement,omitempty"`
	TwinFrom       int         `json:"twinFrom,omitempty"`
	TwinTo         int         `json:"twinTo,omitempty"`
}

type graphSpec struct {
	NumNodes int        `json:"numNodes"`
	Edges    []edgeSpec `json:"edges"`
}

// loadGraph reads a graphSpec from filename and replays it against a
// fresh graph.Graph, returning the graph together with a lookup from
// edge id to the allocated *graph.Edge for the alignment loader to use.
func loadGraph(filename string) (*graph.Graph, map[graph.SeqId]*graph.Edge) {
	pathname, err := internal.FullPathname(filename)
	if err != nil {
		log.Panic(err)
	}
	f := internal.FileOpen(pathname)
	defer internal.Close(f)

	var spec graphSpec
	if err := json.NewDecoder(f).Decode(&spec); err != nil {
		log.Panic(err)
	}

	g := graph.New()
	nodes := make([]*graph.Node, spec.NumNodes)
	for i := range nodes {
		nodes[i] = g.AddNode()
	}

	byID := make(map[graph.SeqId]*graph.Edge, 2*len(spec.Edges))
	for _, es := range spec.Edges {
		if es.SelfComplement {
			e := g.AddSelfComplementEdge(nodes[es.From], nodes[es.To], es.ID, es.Length, es.MeanCoverage)
			byID[es.ID] = e
			continue
		}
		e, twin := g.AddEdgePair(nodes[es.From], nodes[es.To], es.ID, es.Length, es.MeanCoverage, nodes[es.TwinFrom], nodes[es.TwinTo])
		byID[es.ID] = e
		byID[twin.EdgeId] = twin
	}
	return g, byID
}

// alignmentSpec is one read's walk across the graph, named by edge id in
// the order the read traverses them.
type alignmentSpec struct {
	Reads [][]graph.SeqId `json:"reads"`
}

// loadAlignments reads an alignmentSpec from filename and resolves each
// edge id against byID, the lookup loadGraph returned.
func loadAlignments(filename string, byID map[graph.SeqId]*graph.Edge) []alnidx.GraphAlignment {
	pathname, err := internal.FullPathname(filename)
	if err != nil {
		log.Panic(err)
	}
	f := internal.FileOpen(pathname)
	defer internal.Close(f)

	var spec alignmentSpec
	if err := json.NewDecoder(f).Decode(&spec); err != nil {
		log.Panic(err)
	}

	alignments := make([]alnidx.GraphAlignment, len(spec.Reads))
	for i, read := range spec.Reads {
		aln := make(alnidx.GraphAlignment, len(read))
		for j, id := range read {
			e, ok := byID[id]
			if !ok {
				log.Panicf("simplify-graph: alignment references unknown edge id %d", id)
			}
			aln[j] = alnidx.EdgeAlignment{Edge: e, CurEnd: int32(e.Length)}
		}
		alignments[i] = aln
	}
	return alignments
}
