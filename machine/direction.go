package machine

import "sort"

// Direction is the direction of a carriage pass. Needles are numbered left to right.
type Direction string

const (
	// Leftward passes move toward decreasing slots.
	Leftward Direction = "-"
	// Rightward passes move toward increasing slots.
	Rightward Direction = "+"
)

// DirectionFromString maps "-" to Leftward and anything else to Rightward.
func DirectionFromString(s string) Direction {
	if s == string(Leftward) {
		return Leftward
	}
	return Rightward
}

// Opposite returns the reverse pass direction.
func (d Direction) Opposite() Direction {
	if d == Leftward {
		return Rightward
	}
	return Leftward
}

// Name returns "Leftward" or "Rightward".
func (d Direction) Name() string {
	if d == Leftward {
		return "Leftward"
	}
	return "Rightward"
}

func (d Direction) String() string { return string(d) }

// SortNeedles orders needles in pass order at the given rack. Ties on slot are broken
// by bed so that a Rightward pass sees back before front and a Leftward pass the reverse.
func (d Direction) SortNeedles(needles []*Needle, rack int) []*Needle {
	out := make([]*Needle, len(needles))
	copy(out, needles)
	less := func(a, b *Needle) bool {
		as, bs := a.SlotAtRack(rack), b.SlotAtRack(rack)
		if as != bs {
			return as < bs
		}
		return !a.IsFront() && b.IsFront()
	}
	sort.SliceStable(out, func(i, j int) bool {
		if d == Rightward {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}
