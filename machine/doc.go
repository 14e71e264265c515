// Package machine simulates the state of a V-bed weft knitting machine.
//
// # Reading Guide
//
// Start with these files to understand the machine model:
//   - needle.go, needle_bed.go: needles, sliders and the loops they hold
//   - insertion.go, carrier.go: yarn carriers and the single inserting hook
//   - instructions.go: knit, tuck, split, miss, xfer and drop on a live Machine
//
// # Architecture
//
// A Machine owns two needle beds, a yarn insertion system, a carriage and the
// racking between the beds. Every operation it executes also extends a knit
// graph of loops, stitches and crossings:
//   - machine/knitgraph/: stitch graph, braid graph and yarn sequences
//   - machine/trace/: per-instruction execution records
//   - machine/swatch/: small programs (tuck, stockinette, rib, seed, cable)
//
// Racking follows R = F - B: a back needle at position b sits in slot b + R of
// the front bed's frame.
//
// Physical constraints are routed through a ViolationPolicy that raises, warns
// or ignores per violation kind. Non-fatal oddities are reported on the
// Diagnostics channel rather than as errors.
//
// # Key Interfaces
//
//   - State: read-only queries shared by a live Machine and a frozen Snapshot
//   - Instruction: one program step executed by a Runner
//   - BedState, CarrierSystemState, CarrierState, CarriageState: read-only component views
package machine
