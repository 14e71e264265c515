package machine

import (
	"fmt"
	"sort"

	"github.com/inference-sim/vknit/machine/knitgraph"
)

// Float is the yarn between two consecutive loops that are both held on needles.
type Float struct {
	Start, End *Loop
}

// view holds the bed and rack state read by both the live machine and its snapshots.
type view struct {
	spec      Specification
	graph     *knitgraph.Graph[*Loop]
	front     *NeedleBed
	back      *NeedleBed
	rack      int
	allNeedle bool
	gauge     int
}

func (v *view) Specification() Specification        { return v.spec }
func (v *view) KnitGraph() *knitgraph.Graph[*Loop] { return v.graph }
func (v *view) FrontBed() BedState                  { return v.front }
func (v *view) BackBed() BedState                   { return v.back }

// Rack is the integer racking between the beds (R = F - B).
func (v *view) Rack() int { return v.rack }

// AllNeedleRack reports whether the beds are offset by an extra half pitch.
func (v *view) AllNeedleRack() bool { return v.allNeedle }

// GaugedLayers is the number of sheets knitted in gauge, at least 1.
func (v *view) GaugedLayers() int { return v.gauge }

func (v *view) NeedleCount() int { return v.spec.NeedleCount }
func (v *view) MaxRack() int     { return v.spec.MaximumRack }

func (v *view) bed(isFront bool) *NeedleBed {
	if isFront {
		return v.front
	}
	return v.back
}

// SlidersAreClear reports whether no slider on either bed holds a loop.
func (v *view) SlidersAreClear() bool {
	return v.front.SlidersAreClear() && v.back.SlidersAreClear()
}

// SlotRange is the leftmost and rightmost slot holding a loop, or (0, 0) when nothing is held.
func (v *view) SlotRange() (int, int) {
	holding := append(v.AllLoops(), v.AllSliderLoops()...)
	if len(holding) == 0 {
		return 0, 0
	}
	lo, hi := holding[0].SlotNumber(), holding[0].SlotNumber()
	for _, n := range holding[1:] {
		s := n.SlotNumber()
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}

func (v *view) FrontNeedles() []*Needle { return v.front.Needles() }
func (v *view) FrontSliders() []*Needle { return v.front.Sliders() }
func (v *view) BackNeedles() []*Needle  { return v.back.Needles() }
func (v *view) BackSliders() []*Needle  { return v.back.Sliders() }

// FrontLoops returns the front needles that hold loops.
func (v *view) FrontLoops() []*Needle { return v.front.LoopHoldingNeedles() }

// FrontSliderLoops returns the front sliders that hold loops.
func (v *view) FrontSliderLoops() []*Needle { return v.front.LoopHoldingSliders() }

// BackLoops returns the back needles that hold loops.
func (v *view) BackLoops() []*Needle { return v.back.LoopHoldingNeedles() }

// BackSliderLoops returns the back sliders that hold loops.
func (v *view) BackSliderLoops() []*Needle { return v.back.LoopHoldingSliders() }

// AllNeedles returns the front needles followed by the back needles.
func (v *view) AllNeedles() []*Needle { return append(v.FrontNeedles(), v.BackNeedles()...) }

// AllSliders returns the front sliders followed by the back sliders.
func (v *view) AllSliders() []*Needle { return append(v.FrontSliders(), v.BackSliders()...) }

// AllLoops returns every regular needle holding loops, front bed first.
func (v *view) AllLoops() []*Needle { return append(v.FrontLoops(), v.BackLoops()...) }

// AllSliderLoops returns every slider holding loops, front bed first.
func (v *view) AllSliderLoops() []*Needle { return append(v.FrontSliderLoops(), v.BackSliderLoops()...) }

// ActiveLoops returns every loop held on a needle or slider, ordered by loop id.
func (v *view) ActiveLoops() []*Loop {
	var loops []*Loop
	for _, b := range []*NeedleBed{v.front, v.back} {
		loops = append(loops, b.ActiveLoops()...)
		loops = append(loops, b.ActiveSliderLoops()...)
	}
	sort.Slice(loops, func(i, j int) bool { return loops[i].id < loops[j].id })
	return loops
}

// ActiveFloats returns the floats whose both ends are held, ordered by start loop id.
func (v *view) ActiveFloats() []Float {
	active := v.ActiveLoops()
	held := make(map[*Loop]bool, len(active))
	for _, l := range active {
		held[l] = true
	}
	var floats []Float
	for _, l := range active {
		if next := l.NextLoopOnYarn(); next != nil && held[next] {
			floats = append(floats, Float{Start: l, End: next})
		}
	}
	return floats
}

// LoopsCrossedByFloat returns the held loops on slots strictly between the needles of the float's ends.
func (v *view) LoopsCrossedByFloat(start, end *Loop) ([]*Loop, error) {
	n1, n2 := v.GetNeedleOfLoop(start), v.GetNeedleOfLoop(end)
	if n1 == nil || n2 == nil {
		return nil, fmt.Errorf("float from loop %s to loop %s is not held on the beds", start, end)
	}
	left, right := n1.SlotNumber(), n2.SlotNumber()
	if left > right {
		left, right = right, left
	}
	var crossed []*Loop
	for _, l := range v.ActiveLoops() {
		n := v.GetNeedleOfLoop(l)
		if n == nil {
			continue
		}
		if s := n.SlotNumber(); left < s && s < right {
			crossed = append(crossed, l)
		}
	}
	return crossed, nil
}

// GetNeedleOfLoop returns the needle holding a loop, or nil.
func (v *view) GetNeedleOfLoop(loop *Loop) *Needle {
	if n := v.front.NeedleOfLoop(loop); n != nil {
		return n
	}
	return v.back.NeedleOfLoop(loop)
}

// HasLoop reports whether the loop is held on either bed.
func (v *view) HasLoop(loop *Loop) bool { return v.GetNeedleOfLoop(loop) != nil }

// HasNeedle reports whether the needle's position is on the beds.
func (v *view) HasNeedle(needle *Needle) bool {
	return needle.position >= 0 && needle.position < v.spec.NeedleCount
}

// GetSpecifiedNeedle returns the needle or slider at a position on one bed.
func (v *view) GetSpecifiedNeedle(isFront bool, position int, isSlider bool) (*Needle, error) {
	return v.bed(isFront).Needle(position, isSlider)
}

// GetFrontNeedle returns the front needle or slider at a position.
func (v *view) GetFrontNeedle(position int, isSlider bool) (*Needle, error) {
	return v.GetSpecifiedNeedle(true, position, isSlider)
}

// GetBackNeedle returns the back needle or slider at a position.
func (v *view) GetBackNeedle(position int, isSlider bool) (*Needle, error) {
	return v.GetSpecifiedNeedle(false, position, isSlider)
}

// GetNeedle resolves a needle specification to this state's needle.
func (v *view) GetNeedle(needle *Needle) (*Needle, error) {
	if needle.position < 0 || needle.position >= v.spec.NeedleCount {
		return nil, &NeedleOutOfRangeError{Needle: needle, NeedleCount: v.spec.NeedleCount}
	}
	return v.GetSpecifiedNeedle(needle.isFront, needle.position, needle.isSlider)
}

// GetAlignedNeedle returns the needle on the opposite bed that a transfer from needle
// reaches at the current rack: B = F - R and F = B + R.
func (v *view) GetAlignedNeedle(needle *Needle, alignedSlider bool) (*Needle, error) {
	pos := needle.position + v.rack
	if needle.isFront {
		pos = needle.position - v.rack
	}
	aligned := NewNeedle(!needle.isFront, pos)
	if alignedSlider {
		aligned = NewSliderNeedle(!needle.isFront, pos)
	}
	return v.GetNeedle(aligned)
}

// ValidRack reports whether the current rack aligns the two positions.
func (v *view) ValidRack(frontPos, backPos int) bool {
	return v.rack == GetRack(frontPos, backPos)
}

// GetRack is the racking that aligns a front and back position (R = F - B).
func GetRack(frontPos, backPos int) int {
	return frontPos - backPos
}

// GetTransferRack is the racking needed to transfer between two needles on opposite beds.
func GetTransferRack(start, target *Needle) (int, error) {
	switch {
	case start.isFront == target.isFront:
		return 0, &SameBedTransferError{Start: start, Target: target}
	case start.isFront:
		return GetRack(start.position, target.position), nil
	default:
		return GetRack(target.position, start.position), nil
	}
}
