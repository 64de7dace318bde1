// Package haplotype implements the three haplotype-resolution passes:
// heterozygous bulge collapse, heterozygous loop collapse, and complex
// (multi-branch) haplotype detection. Each pass pattern-matches over the
// graph's unbranching paths and either annotates alternative branches
// (mask mode) or detaches them and folds their coverage into the
// retained branch (collapse mode).
package haplotype

import (
	"github.com/eernst/Flye/alnidx"
	"github.com/eernst/Flye/config"
	"github.com/eernst/Flye/graph"
	"github.com/eernst/Flye/logsink"
	"github.com/eernst/Flye/unbranch"
)

// Resolver wires together the graph and its collaborators — the
// unbranching-path extractor, the aligner, configuration, and an
// observability sink — the way filters.NewHaplotypeCaller gathers its
// collaborators into one struct rather than threading them through
// every call individually.
type Resolver struct {
	g       *graph.Graph
	proc    unbranch.Processor
	aligner alnidx.Aligner
	cfg     config.Config
	sink    logsink.Sink
}

// NewResolver builds a Resolver over g. proc, aligner and sink may be
// nil, in which case the default unbranch.Processor, a no-op alnidx.Aligner
// over an empty alignment set, and a discarding logsink.Sink are used.
func NewResolver(g *graph.Graph, proc unbranch.Processor, aligner alnidx.Aligner, cfg config.Config, sink logsink.Sink) *Resolver {
	if proc == nil {
		proc = unbranch.NewProcessor(g)
	}
	if aligner == nil {
		aligner = alnidx.NewMemAligner(nil)
	}
	if sink == nil {
		sink = logsink.NewNopSink()
	}
	return &Resolver{g: g, proc: proc, aligner: aligner, cfg: cfg, sink: sink}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
