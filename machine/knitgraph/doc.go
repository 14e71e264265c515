// Package knitgraph holds the fabric topology built by the machine engine.
//
// A Graph records three relations between loops:
//
//   - stitches: parent loop → child loop pulled through it, with a pull direction
//   - crossings (the braid graph): left loop → right loop with the direction the
//     left loop passed the right one during a transfer
//   - float registrations: loops that sit in front of or behind the float that
//     starts at a given loop
//
// A Yarn records the order in which loops were formed on one strand.
//
// All relations are stored in gonum directed graphs. Loops are any type that
// satisfies gonum's graph.Node, so the machine package can keep its own loop
// type with needle history while this package stays free of machine state.
// This package has no dependencies on machine/.
package knitgraph
