package machine

import (
	"fmt"

	"github.com/inference-sim/vknit/machine/knitgraph"
)

// racker supplies the live racking a needle's slot is measured against.
type racker interface {
	Rack() int
}

// Needle is one needle or slider slot on a bed. Needles created with NewNeedle
// are detached specifications; the machine resolves them to its own needles,
// which hold loops and read the machine's rack.
type Needle struct {
	isFront  bool
	isSlider bool
	position int
	held     []*Loop
	machine  racker
}

// NewNeedle returns a detached regular needle specification.
func NewNeedle(isFront bool, position int) *Needle {
	return &Needle{isFront: isFront, position: position}
}

// NewSliderNeedle returns a detached slider needle specification.
func NewSliderNeedle(isFront bool, position int) *Needle {
	return &Needle{isFront: isFront, position: position, isSlider: true}
}

// Front is shorthand for a front-bed needle specification.
func Front(position int) *Needle { return NewNeedle(true, position) }

// Back is shorthand for a back-bed needle specification.
func Back(position int) *Needle { return NewNeedle(false, position) }

func (n *Needle) IsFront() bool  { return n.isFront }
func (n *Needle) IsBack() bool   { return !n.isFront }
func (n *Needle) IsSlider() bool { return n.isSlider }
func (n *Needle) Position() int  { return n.position }

// SlotNumber is the needle's position on the front bed's frame at the live rack.
// Detached needles read a rack of zero.
func (n *Needle) SlotNumber() int {
	rack := 0
	if n.machine != nil {
		rack = n.machine.Rack()
	}
	return n.SlotAtRack(rack)
}

// SlotAtRack is the needle's front-frame slot at the given rack (R = F - B).
func (n *Needle) SlotAtRack(rack int) int {
	if n.isFront {
		return n.position
	}
	return n.position + rack
}

// HeldLoops returns the loops on the needle in the order they were added.
func (n *Needle) HeldLoops() []*Loop {
	out := make([]*Loop, len(n.held))
	copy(out, n.held)
	return out
}

// HasLoops reports whether the needle holds any loop.
func (n *Needle) HasLoops() bool { return len(n.held) > 0 }

// PullDirection is the way new loops are pulled through held loops when knitting here.
func (n *Needle) PullDirection() knitgraph.PullDirection {
	if n.isFront {
		return knitgraph.BackToFront
	}
	return knitgraph.FrontToBack
}

// Opposite returns a detached specification of the needle at the same position on the other bed.
func (n *Needle) Opposite() *Needle {
	return &Needle{isFront: !n.isFront, position: n.position, isSlider: n.isSlider}
}

// Offset returns a detached specification shifted along the same bed.
func (n *Needle) Offset(offset int) *Needle {
	return &Needle{isFront: n.isFront, position: n.position + offset, isSlider: n.isSlider}
}

// MainNeedle returns the regular needle at this position.
func (n *Needle) MainNeedle() *Needle {
	return &Needle{isFront: n.isFront, position: n.position}
}

// Equal compares bed, position and slider flag.
func (n *Needle) Equal(other *Needle) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.isFront == other.isFront && n.isSlider == other.isSlider && n.position == other.position
}

// Less orders needles by position with front before back at the same position.
func (n *Needle) Less(other *Needle) bool {
	if n.position != other.position {
		return n.position < other.position
	}
	return n.isFront && !other.isFront
}

// AtRackingComparison returns -1, 0 or 1 comparing slots at the given rack.
// Under all-needle racking a front needle precedes the back needle sharing its slot.
func (n *Needle) AtRackingComparison(other *Needle, rack int, allNeedleRack bool) int {
	a, b := n.SlotAtRack(rack), other.SlotAtRack(rack)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case !allNeedleRack || n.isFront == other.isFront:
		return 0
	case n.isFront:
		return -1
	default:
		return 1
	}
}

func (n *Needle) String() string {
	bed := "b"
	if n.isFront {
		bed = "f"
	}
	if n.isSlider {
		bed += "s"
	}
	return fmt.Sprintf("%s%d", bed, n.position)
}

// addLoop holds the loop and marks it active on its yarn.
func (n *Needle) addLoop(loop *Loop) {
	n.held = append(n.held, loop)
	if loop.yarn != nil {
		loop.yarn.activeLoops[loop] = n
	}
}

// drop releases every held loop and returns them.
func (n *Needle) drop() []*Loop {
	old := n.held
	for _, loop := range old {
		if loop.yarn != nil {
			delete(loop.yarn.activeLoops, loop)
		}
		loop.drop()
	}
	n.held = nil
	return old
}
