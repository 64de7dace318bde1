// Package alnidx models read-to-graph alignments and the Aligner
// collaborator the haplotype passes read from. Construction of the
// alignments themselves is out of scope for this module: the
// read-to-graph aligner is an external collaborator. This package
// provides the data types the passes consume and a minimal in-memory
// Aligner so the module is runnable end to end without one.
package alnidx

import "github.com/eernst/Flye/graph"

// EdgeAlignment is one step of a read's alignment onto the graph: the
// edge it lands on, plus the read-coordinate position (CurEnd) where the
// alignment's overlap with that edge ends.
type EdgeAlignment struct {
	Edge   *graph.Edge
	CurEnd int32
}

// GraphAlignment is a single read's ordered walk across graph edges.
type GraphAlignment []EdgeAlignment

// Aligner is the external collaborator the core asks for alignments and
// notifies after a structural edit. GetAlignments must return a frozen,
// immutable-during-the-pass set; UpdateAlignments is called exactly once
// at the end of a collapse-mode pass.
type Aligner interface {
	GetAlignments() []GraphAlignment
	UpdateAlignments()
}

// MemAligner is a minimal in-memory Aligner over a fixed alignment set,
// useful for tests and the CLI harness. A production aligner would
// recompute alignments against the mutated graph in UpdateAlignments;
// MemAligner's alignments reference edges by pointer, which the passes
// never delete (only detach), so the recorded alignments remain valid
// to read — UpdateAlignments is therefore a no-op here.
type MemAligner struct {
	alignments []GraphAlignment
}

// NewMemAligner wraps a fixed, frozen set of alignments.
func NewMemAligner(alignments []GraphAlignment) *MemAligner {
	return &MemAligner{alignments: alignments}
}

// GetAlignments returns the frozen alignment set.
func (a *MemAligner) GetAlignments() []GraphAlignment {
	return a.alignments
}

// UpdateAlignments is a no-op: see the MemAligner doc comment.
func (a *MemAligner) UpdateAlignments() {}
