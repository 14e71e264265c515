package machine

import (
	"fmt"
	"sort"

	"github.com/inference-sim/vknit/machine/knitgraph"
)

// YarnProperties describes the fiber loaded on a carrier.
type YarnProperties struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Yarn is the strand fed by one carrier. It tracks which of its loops are still
// held on needles so floats between them can be found.
type Yarn struct {
	strand      *knitgraph.Yarn[*Loop]
	carrier     *YarnCarrier
	properties  YarnProperties
	activeLoops map[*Loop]*Needle
	cut         bool
}

func newYarn(carrier *YarnCarrier, props YarnProperties) *Yarn {
	if props.Name == "" {
		props.Name = fmt.Sprintf("%d", carrier.id)
	}
	return &Yarn{
		strand:      knitgraph.NewYarn[*Loop](props.Name),
		carrier:     carrier,
		properties:  props,
		activeLoops: make(map[*Loop]*Needle),
	}
}

func (y *Yarn) ID() string                 { return y.strand.ID() }
func (y *Yarn) Properties() YarnProperties { return y.properties }
func (y *Yarn) Carrier() *YarnCarrier      { return y.carrier }

// IsCut reports whether the yarn was cut by an outhook.
func (y *Yarn) IsCut() bool { return y.cut }

// IsActive reports whether the yarn can form new loops.
func (y *Yarn) IsActive() bool { return !y.cut && y.carrier.IsActive() }

// IsHooked reports whether the yarn's carrier is on the inserting hook.
func (y *Yarn) IsHooked() bool { return y.IsActive() && y.carrier.IsHooked() }

// LastLoop is the most recent loop on the yarn, or nil.
func (y *Yarn) LastLoop() *Loop {
	l, ok := y.strand.LastLoop()
	if !ok {
		return nil
	}
	return l
}

// LastNeedle is the needle holding the last loop, or nil when it is not held.
func (y *Yarn) LastNeedle() *Needle {
	if l := y.LastLoop(); l != nil {
		return l.HoldingNeedle()
	}
	return nil
}

// Loops returns the yarn's loops in formation order.
func (y *Yarn) Loops() []*Loop { return y.strand.Loops() }

// ActiveLoops returns the held loops of this yarn ordered by id.
func (y *Yarn) ActiveLoops() []*Loop {
	out := make([]*Loop, 0, len(y.activeLoops))
	for l := range y.activeLoops {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// ActiveFloats maps each held loop to the next loop on the yarn when that loop is also held.
func (y *Yarn) ActiveFloats() map[*Loop]*Loop {
	floats := make(map[*Loop]*Loop)
	for l := range y.activeLoops {
		if next := l.NextLoopOnYarn(); next != nil {
			if _, held := y.activeLoops[next]; held {
				floats[l] = next
			}
		}
	}
	return floats
}

// addLoopToEnd appends a new loop, warning when the float from the previous loop is too long.
func (y *Yarn) addLoopToEnd(loop *Loop, maxFloat int, diag *Diagnostics) {
	if last := y.LastNeedle(); last != nil {
		newSlot := loop.SourceNeedle().SlotNumber()
		if abs(newSlot-last.SlotNumber()) > maxFloat {
			diag.add(DiagLongFloat, fmt.Sprintf("float of carrier %d from %s to %s exceeds maximum float of %d",
				y.carrier.id, last, loop.SourceNeedle(), maxFloat))
		}
	}
	y.strand.AddLoopToEnd(loop)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
