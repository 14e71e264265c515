package machine

import (
	"fmt"

	"github.com/inference-sim/vknit/machine/knitgraph"
)

// InHook brings a carrier in on the yarn inserting hook.
func (m *Machine) InHook(carrierID int) error { return m.carriers.Inhook(carrierID) }

// ReleaseHook frees the yarn inserting hook; the hooked yarn stays in use.
func (m *Machine) ReleaseHook() { m.carriers.ReleaseHook() }

// OutHook takes a carrier out with the inserting hook, cutting its yarn.
func (m *Machine) OutHook(carrierID int) error { return m.carriers.Outhook(carrierID) }

// BringIn takes a carrier off the grippers without the inserting hook.
func (m *Machine) BringIn(carrierID int) error { return m.carriers.BringIn(carrierID) }

// Out returns a carrier to the grippers without cutting its yarn.
func (m *Machine) Out(carrierID int) error { return m.carriers.Out(carrierID) }

// Miss moves the carriers to hover at a needle and advances the carriage, forming no loops.
func (m *Machine) Miss(carriers *CarrierSet, needle *Needle, direction Direction) error {
	n, err := m.GetNeedle(needle)
	if err != nil {
		return err
	}
	if err := carriers.PositionCarriersAtNeedle(m.carriers, n, direction); err != nil {
		return err
	}
	m.carriage.MoveInDirection(n, direction)
	return nil
}

// Tuck forms new loops on a needle without releasing the loops it already holds.
func (m *Machine) Tuck(carriers *CarrierSet, needle *Needle, direction Direction) ([]*Loop, error) {
	n, err := m.GetNeedle(needle)
	if err != nil {
		return nil, err
	}
	if err := m.requireClearSliders(n); err != nil {
		return nil, err
	}
	if err := m.Miss(carriers, n, direction); err != nil {
		return nil, err
	}
	loops, err := m.carriers.MakeLoops(carriers.IDs(), n, direction)
	if err != nil {
		return loops, err
	}
	return m.bed(n.isFront).AddLoops(n, loops, false)
}

// Knit pulls new loops through every loop on a needle, drops the old loops and
// holds the new ones. It returns the dropped parents and the new children; each
// parent is stitched to each child.
func (m *Machine) Knit(carriers *CarrierSet, needle *Needle, direction Direction) (parents, children []*Loop, err error) {
	n, err := m.GetNeedle(needle)
	if err != nil {
		return nil, nil, err
	}
	if err := m.requireClearSliders(n); err != nil {
		return nil, nil, err
	}
	if !n.HasLoops() {
		m.diag.add(DiagKnitOnEmptyNeedle, fmt.Sprintf("knitting on empty needle %s", n))
	}
	if err := m.Miss(carriers, n, direction); err != nil {
		return nil, nil, err
	}
	bed := m.bed(n.isFront)
	parents = bed.Drop(n)
	children, err = m.carriers.MakeLoops(carriers.IDs(), n, direction)
	if err != nil {
		return parents, children, err
	}
	if _, err := bed.AddLoops(n, children, false); err != nil {
		return parents, children, err
	}
	m.stitch(parents, children, n.PullDirection())
	return parents, children, nil
}

// Drop releases every loop on a needle. The carriage moves without recording a direction.
func (m *Machine) Drop(needle *Needle) ([]*Loop, error) {
	n, err := m.GetNeedle(needle)
	if err != nil {
		return nil, err
	}
	m.carriage.MoveToNeedle(n)
	return m.bed(n.isFront).Drop(n), nil
}

// Xfer moves every loop on a needle to the needle aligned with it on the other bed,
// or to that position's slider when toSlider is set. Loops held between the two
// slots are crossed by the transferred loops. Transfers that are part of a split
// leave the carriage where it is.
func (m *Machine) Xfer(needle *Needle, toSlider, fromSplit bool) ([]*Loop, error) {
	start, err := m.GetNeedle(needle)
	if err != nil {
		return nil, err
	}
	aligned, err := m.GetAlignedNeedle(start, toSlider)
	if err != nil {
		return nil, err
	}
	if !start.HasLoops() {
		m.diag.add(DiagTransferFromEmptyNeedle, fmt.Sprintf("transferring from empty needle %s", start))
	}
	held := m.bed(start.isFront).Drop(start)
	for _, l := range held {
		l.reverseDrop()
		if err := l.transferLoop(aligned); err != nil {
			return nil, err
		}
	}
	moved, err := m.bed(aligned.isFront).AddLoops(aligned, held, false)
	if err != nil {
		return nil, err
	}
	m.crossLoopsByXfer(start, aligned, moved)
	if !fromSplit {
		m.carriage.MoveToNeedle(start)
	}
	return moved, nil
}

// XferTo transfers from start to target, failing when the current rack does not align them.
func (m *Machine) XferTo(start, target *Needle) ([]*Loop, error) {
	rack, err := GetTransferRack(start, target)
	if err != nil {
		return nil, err
	}
	if rack != m.rack {
		return nil, &MisalignedNeedleError{Start: start, Target: target}
	}
	return m.Xfer(start, target.isSlider, false)
}

// Split transfers a needle's loops to the aligned needle, then tucks new loops on
// the emptied needle and stitches each transferred parent to each new child.
// With no carriers it is a transfer. It returns the children and the parents.
func (m *Machine) Split(carriers *CarrierSet, needle *Needle, direction Direction) (children, parents []*Loop, err error) {
	n, err := m.GetNeedle(needle)
	if err != nil {
		return nil, nil, err
	}
	if err := m.requireClearSliders(n); err != nil {
		return nil, nil, err
	}
	parents, err = m.Xfer(n, false, true)
	if err != nil {
		return nil, parents, err
	}
	children, err = m.Tuck(carriers, needle, direction)
	if err != nil {
		return children, parents, err
	}
	m.stitch(parents, children, n.PullDirection())
	return children, parents, nil
}

func (m *Machine) stitch(parents, children []*Loop, pull knitgraph.PullDirection) {
	for _, p := range parents {
		for _, c := range children {
			m.graph.ConnectLoops(p, c, pull)
		}
	}
}

// requireClearSliders rejects forming loops on a regular needle while any slider holds loops.
func (m *Machine) requireClearSliders(n *Needle) error {
	if n.isSlider {
		return nil
	}
	return m.policy.checked(func() error {
		return m.policy.handle("", nil, func() error {
			if !m.SlidersAreClear() {
				return &ClearNeedleError{Needle: n}
			}
			return nil
		})
	})
}

// crossLoopsByXfer records the crossings a transfer makes with the loops it passes.
// At a negative rack loops move right; at a positive rack they move left.
func (m *Machine) crossLoopsByXfer(start, aligned *Needle, moved []*Loop) {
	switch {
	case m.rack < 0:
		m.crossRightward(start, aligned, moved)
	case m.rack > 0:
		m.crossLeftward(start, aligned, moved)
	}
}

// crossRightward passes the moved loops under loops on the front bed and over loops on the back bed.
func (m *Machine) crossRightward(start, aligned *Needle, moved []*Loop) {
	lo := start.SlotNumber()
	hi := lo + abs(m.rack)
	for _, n := range crossedNeedles(m.front, lo, hi, start, aligned) {
		for _, l := range moved {
			for _, r := range n.held {
				m.addXferCrossing(l, r, knitgraph.UnderRight)
			}
		}
	}
	for _, n := range crossedNeedles(m.back, lo, hi, start, aligned) {
		for _, l := range moved {
			for _, r := range n.held {
				m.addXferCrossing(l, r, knitgraph.OverRight)
			}
		}
	}
}

// crossLeftward passes front-bed loops over the moved loops and back-bed loops under them.
func (m *Machine) crossLeftward(start, aligned *Needle, moved []*Loop) {
	hi := start.SlotNumber()
	lo := hi - m.rack
	for _, n := range crossedNeedles(m.front, lo, hi, start, aligned) {
		for _, r := range moved {
			for _, l := range n.held {
				m.addXferCrossing(l, r, knitgraph.OverRight)
			}
		}
	}
	for _, n := range crossedNeedles(m.back, lo, hi, start, aligned) {
		for _, r := range moved {
			for _, l := range n.held {
				m.addXferCrossing(l, r, knitgraph.UnderRight)
			}
		}
	}
}

// crossedNeedles returns the loop-holding needles of a bed at positions lo..hi other than the transfer's ends.
func crossedNeedles(bed *NeedleBed, lo, hi int, start, aligned *Needle) []*Needle {
	var out []*Needle
	for _, n := range bed.Slice(lo, hi+1) {
		if n.Equal(start) || n.Equal(aligned) || !n.HasLoops() {
			continue
		}
		out = append(out, n)
	}
	return out
}

// addXferCrossing records left crossing right. A crossing that reverses an
// existing one between the same loops removes it instead.
func (m *Machine) addXferCrossing(left, right *Loop, direction knitgraph.CrossingDirection) {
	if current, ok := m.graph.Crossing(right, left); ok {
		if current.Opposite() == direction {
			m.graph.RemoveCrossing(right, left)
		} else {
			m.graph.AddCrossing(right, left, direction.Opposite())
		}
		return
	}
	m.graph.AddCrossing(left, right, direction)
}
