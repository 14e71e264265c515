package knitgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// StitchEdge connects a parent loop to the child loop pulled through it.
type StitchEdge struct {
	F, T graph.Node
	Pull PullDirection
}

func (e StitchEdge) From() graph.Node { return e.F }
func (e StitchEdge) To() graph.Node   { return e.T }

// ReversedEdge returns the child → parent edge with the same pull direction.
func (e StitchEdge) ReversedEdge() graph.Edge { return StitchEdge{F: e.T, T: e.F, Pull: e.Pull} }

// CrossingEdge connects a left loop to a right loop it crossed.
type CrossingEdge struct {
	F, T      graph.Node
	Direction CrossingDirection
}

func (e CrossingEdge) From() graph.Node { return e.F }
func (e CrossingEdge) To() graph.Node   { return e.T }

// ReversedEdge returns the right → left view of the crossing, which inverts its direction.
func (e CrossingEdge) ReversedEdge() graph.Edge {
	return CrossingEdge{F: e.T, T: e.F, Direction: e.Direction.Opposite()}
}

// floatCrossings holds the loops registered against the float that starts at one loop.
// Registrations are appended, never deduplicated.
type floatCrossings struct {
	inFront []int64
	behind  []int64
}

// Graph is the knit graph: stitch graph, braid graph and float registrations over loops of type L.
type Graph[L graph.Node] struct {
	stitches *simple.DirectedGraph
	braid    *simple.DirectedGraph
	loops    map[int64]L
	floats   map[int64]*floatCrossings
	lastID   int64
}

// New creates an empty knit graph.
func New[L graph.Node]() *Graph[L] {
	return &Graph[L]{
		stitches: simple.NewDirectedGraph(),
		braid:    simple.NewDirectedGraph(),
		loops:    make(map[int64]L),
		floats:   make(map[int64]*floatCrossings),
		lastID:   -1,
	}
}

// NextLoopID returns the id the next formed loop should take. It does not reserve the id.
func (g *Graph[L]) NextLoopID() int64 {
	return g.lastID + 1
}

// LastLoopID returns the highest loop id added to the graph, or -1 when empty.
func (g *Graph[L]) LastLoopID() int64 {
	return g.lastID
}

// AddLoop registers a loop as a node of the stitch graph.
func (g *Graph[L]) AddLoop(loop L) {
	id := loop.ID()
	if _, ok := g.loops[id]; ok {
		return
	}
	g.loops[id] = loop
	if g.stitches.Node(id) == nil {
		g.stitches.AddNode(loop)
	}
	if id > g.lastID {
		g.lastID = id
	}
}

// HasLoop reports whether a loop with the same id is in the graph.
func (g *Graph[L]) HasLoop(loop L) bool {
	_, ok := g.loops[loop.ID()]
	return ok
}

// Loop looks up a loop by id.
func (g *Graph[L]) Loop(id int64) (L, bool) {
	l, ok := g.loops[id]
	return l, ok
}

// Len returns the number of loops in the graph.
func (g *Graph[L]) Len() int {
	return len(g.loops)
}

// Loops returns all loops ordered by id.
func (g *Graph[L]) Loops() []L {
	ids := make([]int64, 0, len(g.loops))
	for id := range g.loops {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]L, len(ids))
	for i, id := range ids {
		out[i] = g.loops[id]
	}
	return out
}

// ConnectLoops adds a stitch edge from parent to child.
func (g *Graph[L]) ConnectLoops(parent, child L, pull PullDirection) {
	g.AddLoop(parent)
	g.AddLoop(child)
	g.stitches.SetEdge(StitchEdge{F: parent, T: child, Pull: pull})
}

// Stitch returns the stitch edge from parent to child if one exists.
func (g *Graph[L]) Stitch(parent, child L) (StitchEdge, bool) {
	e := g.stitches.Edge(parent.ID(), child.ID())
	if e == nil {
		return StitchEdge{}, false
	}
	se, ok := e.(StitchEdge)
	return se, ok
}

// Parents returns the loops the child was pulled through, ordered by id.
func (g *Graph[L]) Parents(child L) []L {
	return g.collect(g.stitches.To(child.ID()))
}

// Children returns the loops pulled through the parent, ordered by id.
func (g *Graph[L]) Children(parent L) []L {
	return g.collect(g.stitches.From(parent.ID()))
}

// StitchCount returns the number of stitch edges.
func (g *Graph[L]) StitchCount() int {
	return g.stitches.Edges().Len()
}

// AddCrossing records that left crossed right in the given direction.
func (g *Graph[L]) AddCrossing(left, right L, direction CrossingDirection) {
	g.AddLoop(left)
	g.AddLoop(right)
	g.braid.SetEdge(CrossingEdge{F: left, T: right, Direction: direction})
}

// HasCrossing reports whether the braid graph has an edge from left to right.
func (g *Graph[L]) HasCrossing(left, right L) bool {
	return g.braid.HasEdgeFromTo(left.ID(), right.ID())
}

// Crossing returns the direction stored on the left → right braid edge.
func (g *Graph[L]) Crossing(left, right L) (CrossingDirection, bool) {
	e := g.braid.Edge(left.ID(), right.ID())
	if e == nil {
		return NoCross, false
	}
	ce, ok := e.(CrossingEdge)
	if !ok {
		return NoCross, false
	}
	return ce.Direction, true
}

// RemoveCrossing deletes the left → right braid edge if present.
func (g *Graph[L]) RemoveCrossing(left, right L) {
	g.braid.RemoveEdge(left.ID(), right.ID())
}

// Crossings returns every braid edge ordered by (left id, right id).
func (g *Graph[L]) Crossings() []CrossingEdge {
	edges := graph.EdgesOf(g.braid.Edges())
	out := make([]CrossingEdge, 0, len(edges))
	for _, e := range edges {
		if ce, ok := e.(CrossingEdge); ok {
			out = append(out, ce)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].F.ID() != out[j].F.ID() {
			return out[i].F.ID() < out[j].F.ID()
		}
		return out[i].T.ID() < out[j].T.ID()
	})
	return out
}

// CrossingCount returns the number of braid edges.
func (g *Graph[L]) CrossingCount() int {
	return g.braid.Edges().Len()
}

// AddLoopInFrontOfFloat registers crossed as sitting in front of the float that starts at start.
func (g *Graph[L]) AddLoopInFrontOfFloat(start, crossed L) {
	fc := g.floatAt(start)
	fc.inFront = append(fc.inFront, crossed.ID())
}

// AddLoopBehindFloat registers crossed as sitting behind the float that starts at start.
func (g *Graph[L]) AddLoopBehindFloat(start, crossed L) {
	fc := g.floatAt(start)
	fc.behind = append(fc.behind, crossed.ID())
}

// LoopsInFrontOfFloat returns every registration in front of the float from start, duplicates included.
func (g *Graph[L]) LoopsInFrontOfFloat(start L) []L {
	fc, ok := g.floats[start.ID()]
	if !ok {
		return nil
	}
	return g.resolve(fc.inFront)
}

// LoopsBehindFloat returns every registration behind the float from start, duplicates included.
func (g *Graph[L]) LoopsBehindFloat(start L) []L {
	fc, ok := g.floats[start.ID()]
	if !ok {
		return nil
	}
	return g.resolve(fc.behind)
}

func (g *Graph[L]) floatAt(start L) *floatCrossings {
	g.AddLoop(start)
	fc, ok := g.floats[start.ID()]
	if !ok {
		fc = &floatCrossings{}
		g.floats[start.ID()] = fc
	}
	return fc
}

func (g *Graph[L]) resolve(ids []int64) []L {
	out := make([]L, 0, len(ids))
	for _, id := range ids {
		if l, ok := g.loops[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (g *Graph[L]) collect(nodes graph.Nodes) []L {
	var out []L
	for nodes.Next() {
		if l, ok := g.loops[nodes.Node().ID()]; ok {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
