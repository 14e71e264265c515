package knitgraph

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// FloatEdge connects two consecutive loops on a yarn.
type FloatEdge struct {
	F, T graph.Node
}

func (e FloatEdge) From() graph.Node         { return e.F }
func (e FloatEdge) To() graph.Node           { return e.T }
func (e FloatEdge) ReversedEdge() graph.Edge { return FloatEdge{F: e.T, T: e.F} }

// Yarn is the append-only order of loops formed on one strand.
type Yarn[L graph.Node] struct {
	id    string
	order *simple.DirectedGraph
	loops map[int64]L
	first int64
	last  int64
}

// NewYarn creates an empty yarn.
func NewYarn[L graph.Node](id string) *Yarn[L] {
	return &Yarn[L]{
		id:    id,
		order: simple.NewDirectedGraph(),
		loops: make(map[int64]L),
		first: -1,
		last:  -1,
	}
}

// ID returns the yarn's identifier.
func (y *Yarn[L]) ID() string { return y.id }

// Len returns the number of loops on the yarn.
func (y *Yarn[L]) Len() int { return len(y.loops) }

// AddLoopToEnd appends a loop after the current last loop.
func (y *Yarn[L]) AddLoopToEnd(loop L) {
	if _, ok := y.loops[loop.ID()]; ok {
		return
	}
	y.loops[loop.ID()] = loop
	if y.last < 0 {
		y.order.AddNode(loop)
		y.first = loop.ID()
	} else {
		y.order.SetEdge(FloatEdge{F: y.loops[y.last], T: loop})
	}
	y.last = loop.ID()
}

// Contains reports whether the loop was formed on this yarn.
func (y *Yarn[L]) Contains(loop L) bool {
	_, ok := y.loops[loop.ID()]
	return ok
}

// FirstLoop returns the first loop formed on the yarn.
func (y *Yarn[L]) FirstLoop() (L, bool) {
	l, ok := y.loops[y.first]
	return l, ok
}

// LastLoop returns the most recently formed loop.
func (y *Yarn[L]) LastLoop() (L, bool) {
	l, ok := y.loops[y.last]
	return l, ok
}

// NextLoop returns the loop formed after the given loop.
func (y *Yarn[L]) NextLoop(loop L) (L, bool) {
	return y.neighbor(y.order.From(loop.ID()))
}

// PriorLoop returns the loop formed before the given loop.
func (y *Yarn[L]) PriorLoop(loop L) (L, bool) {
	return y.neighbor(y.order.To(loop.ID()))
}

// Loops returns the yarn's loops in formation order.
func (y *Yarn[L]) Loops() []L {
	out := make([]L, 0, len(y.loops))
	cur, ok := y.FirstLoop()
	for ok {
		out = append(out, cur)
		cur, ok = y.NextLoop(cur)
	}
	return out
}

func (y *Yarn[L]) neighbor(nodes graph.Nodes) (L, bool) {
	var zero L
	if nodes == nil || !nodes.Next() {
		return zero, false
	}
	l, ok := y.loops[nodes.Node().ID()]
	return l, ok
}
