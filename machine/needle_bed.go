package machine

import (
	"fmt"
	"sort"
)

// BedState is the read-only view of a needle bed.
type BedState interface {
	IsFront() bool
	NeedleCount() int
	Needles() []*Needle
	Sliders() []*Needle
	LoopHoldingNeedles() []*Needle
	LoopHoldingSliders() []*Needle
	ActiveLoops() []*Loop
	ActiveSliderLoops() []*Loop
	SlidersAreClear() bool
	Needle(position int, isSlider bool) (*Needle, error)
	NeedleOfLoop(loop *Loop) *Needle
	Slice(start, end int) []*Needle
	Contains(position int) bool
}

// NeedleBed owns the regular needles and sliders of one bed.
type NeedleBed struct {
	isFront       bool
	needles       []*Needle
	sliders       []*Needle
	activeSliders map[*Needle]struct{}
	maxHold       int
	diag          *Diagnostics
	loopIndex     map[*Loop]*Needle // set on frozen copies only
}

func newNeedleBed(r racker, isFront bool, count, maxHold int, diag *Diagnostics) *NeedleBed {
	b := &NeedleBed{
		isFront:       isFront,
		needles:       make([]*Needle, count),
		sliders:       make([]*Needle, count),
		activeSliders: make(map[*Needle]struct{}),
		maxHold:       maxHold,
		diag:          diag,
	}
	for i := 0; i < count; i++ {
		b.needles[i] = &Needle{isFront: isFront, position: i, machine: r}
		b.sliders[i] = &Needle{isFront: isFront, position: i, isSlider: true, machine: r}
	}
	return b
}

func (b *NeedleBed) IsFront() bool    { return b.isFront }
func (b *NeedleBed) NeedleCount() int { return len(b.needles) }

// Needles returns the bed's regular needles ordered by position.
func (b *NeedleBed) Needles() []*Needle { return append([]*Needle(nil), b.needles...) }

// Sliders returns the bed's slider needles ordered by position.
func (b *NeedleBed) Sliders() []*Needle { return append([]*Needle(nil), b.sliders...) }

// AddLoops puts loops on a needle of this bed and returns them. When dropPrior is
// set the needle's current loops are dropped first. Holding at least the maximum
// number of loops is reported but not prevented.
func (b *NeedleBed) AddLoops(needle *Needle, loops []*Loop, dropPrior bool) ([]*Loop, error) {
	n, err := b.resolve(needle)
	if err != nil {
		return nil, err
	}
	if dropPrior {
		b.Drop(n)
	}
	for _, l := range loops {
		n.addLoop(l)
	}
	if len(n.held) >= b.maxHold {
		b.diag.add(DiagNeedleHoldsTooManyLoops,
			fmt.Sprintf("%s holds %d loops, maximum is %d", n, len(n.held), b.maxHold))
	}
	if n.isSlider && len(n.held) > 0 {
		b.activeSliders[n] = struct{}{}
	}
	return loops, nil
}

// Drop removes and returns every loop on a needle of this bed. Dropping an empty needle returns nothing.
func (b *NeedleBed) Drop(needle *Needle) []*Loop {
	n, err := b.resolve(needle)
	if err != nil {
		return nil
	}
	delete(b.activeSliders, n)
	return n.drop()
}

// LoopHoldingNeedles returns the regular needles that hold loops.
func (b *NeedleBed) LoopHoldingNeedles() []*Needle {
	return holding(b.needles)
}

// LoopHoldingSliders returns the sliders that hold loops, ordered by position.
func (b *NeedleBed) LoopHoldingSliders() []*Needle {
	out := make([]*Needle, 0, len(b.activeSliders))
	for n := range b.activeSliders {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].position < out[j].position })
	return out
}

// ActiveLoops returns the loops held on regular needles.
func (b *NeedleBed) ActiveLoops() []*Loop {
	return loopsOn(b.LoopHoldingNeedles())
}

// ActiveSliderLoops returns the loops held on sliders.
func (b *NeedleBed) ActiveSliderLoops() []*Loop {
	return loopsOn(b.LoopHoldingSliders())
}

// SlidersAreClear reports whether no slider holds a loop.
func (b *NeedleBed) SlidersAreClear() bool {
	return len(b.activeSliders) == 0
}

// Contains reports whether a position indexes this bed. Negative positions count
// from the right edge.
func (b *NeedleBed) Contains(position int) bool {
	if position < 0 {
		return -position <= len(b.needles)
	}
	return position < len(b.needles)
}

// Needle returns the bed's needle or slider at a position.
func (b *NeedleBed) Needle(position int, isSlider bool) (*Needle, error) {
	if !b.Contains(position) {
		return nil, &NeedleOutOfRangeError{Needle: &Needle{isFront: b.isFront, position: position, isSlider: isSlider}, NeedleCount: len(b.needles)}
	}
	if position < 0 {
		position += len(b.needles)
	}
	if isSlider {
		return b.sliders[position], nil
	}
	return b.needles[position], nil
}

// NeedleOfLoop returns the needle of this bed holding the loop, or nil.
func (b *NeedleBed) NeedleOfLoop(loop *Loop) *Needle {
	if b.loopIndex != nil {
		return b.loopIndex[loop]
	}
	h := loop.HoldingNeedle()
	if h == nil || h.isFront != b.isFront {
		return nil
	}
	n, err := b.Needle(h.position, h.isSlider)
	if err != nil {
		return nil
	}
	for _, held := range n.held {
		if held == loop {
			return n
		}
	}
	return nil
}

// Slice returns regular needles with positions in [start, end), clamped to the bed.
func (b *NeedleBed) Slice(start, end int) []*Needle {
	if start < 0 {
		start = 0
	}
	if end > len(b.needles) {
		end = len(b.needles)
	}
	if start >= end {
		return nil
	}
	return append([]*Needle(nil), b.needles[start:end]...)
}

// freeze copies the bed's loop placement onto new needles that read rack from r.
// The copy shares loops with the live bed but not their placement.
func (b *NeedleBed) freeze(r racker) *NeedleBed {
	f := &NeedleBed{
		isFront:       b.isFront,
		needles:       make([]*Needle, len(b.needles)),
		sliders:       make([]*Needle, len(b.sliders)),
		activeSliders: make(map[*Needle]struct{}, len(b.activeSliders)),
		maxHold:       b.maxHold,
		loopIndex:     make(map[*Loop]*Needle),
	}
	copyNeedle := func(n *Needle) *Needle {
		c := &Needle{isFront: n.isFront, isSlider: n.isSlider, position: n.position, machine: r}
		c.held = append([]*Loop(nil), n.held...)
		for _, l := range c.held {
			f.loopIndex[l] = c
		}
		return c
	}
	for i, n := range b.needles {
		f.needles[i] = copyNeedle(n)
	}
	for i, n := range b.sliders {
		f.sliders[i] = copyNeedle(n)
		if _, ok := b.activeSliders[n]; ok {
			f.activeSliders[f.sliders[i]] = struct{}{}
		}
	}
	return f
}

func (b *NeedleBed) resolve(needle *Needle) (*Needle, error) {
	if needle.isFront != b.isFront {
		return nil, fmt.Errorf("needle %s is not on the %s bed", needle, bedName(b.isFront))
	}
	return b.Needle(needle.position, needle.isSlider)
}

func bedName(isFront bool) string {
	if isFront {
		return "front"
	}
	return "back"
}

func holding(needles []*Needle) []*Needle {
	var out []*Needle
	for _, n := range needles {
		if n.HasLoops() {
			out = append(out, n)
		}
	}
	return out
}

func loopsOn(needles []*Needle) []*Loop {
	var out []*Loop
	for _, n := range needles {
		out = append(out, n.held...)
	}
	return out
}
