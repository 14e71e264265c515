package machine

import "strconv"

// Loop is a loop formed on the machine. Its needle history records every needle
// it has been held on; a trailing nil entry means it has been dropped.
type Loop struct {
	id      int64
	yarn    *Yarn
	history []*Needle
}

// newLoop forms a loop on its source needle. Sliders cannot form loops.
func newLoop(id int64, yarn *Yarn, source *Needle) (*Loop, error) {
	if source.IsSlider() {
		return nil, &SliderLoopError{Needle: source}
	}
	return &Loop{id: id, yarn: yarn, history: []*Needle{source}}, nil
}

// ID is the loop's id in the knit graph.
func (l *Loop) ID() int64 { return l.id }

// Yarn is the yarn the loop was formed on.
func (l *Loop) Yarn() *Yarn { return l.yarn }

// NeedleHistory returns a copy of every needle the loop has occupied.
func (l *Loop) NeedleHistory() []*Needle {
	out := make([]*Needle, len(l.history))
	copy(out, l.history)
	return out
}

// HoldingNeedle is the needle currently holding the loop, or nil once dropped.
func (l *Loop) HoldingNeedle() *Needle {
	return l.history[len(l.history)-1]
}

// SourceNeedle is the needle the loop was formed on.
func (l *Loop) SourceNeedle() *Needle {
	return l.history[0]
}

func (l *Loop) OnNeedle() bool { return l.HoldingNeedle() != nil }
func (l *Loop) Dropped() bool  { return !l.OnNeedle() }

// NextLoopOnYarn returns the loop formed after this one on the same yarn.
func (l *Loop) NextLoopOnYarn() *Loop {
	if l.yarn == nil {
		return nil
	}
	next, ok := l.yarn.strand.NextLoop(l)
	if !ok {
		return nil
	}
	return next
}

// PriorLoopOnYarn returns the loop formed before this one on the same yarn.
func (l *Loop) PriorLoopOnYarn() *Loop {
	if l.yarn == nil {
		return nil
	}
	prior, ok := l.yarn.strand.PriorLoop(l)
	if !ok {
		return nil
	}
	return prior
}

func (l *Loop) String() string { return strconv.FormatInt(l.id, 10) }

// transferLoop records a move to the target needle.
func (l *Loop) transferLoop(target *Needle) error {
	if l.Dropped() {
		return &XferDroppedLoopError{Target: target}
	}
	l.history = append(l.history, target)
	return nil
}

func (l *Loop) drop() {
	l.history = append(l.history, nil)
}

// reverseDrop undoes a drop so the loop can be transferred.
func (l *Loop) reverseDrop() {
	if n := len(l.history); n > 1 && l.history[n-1] == nil {
		l.history = l.history[:n-1]
	}
}
