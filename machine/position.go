package machine

// NeedleBedPosition tracks where a moving component (carriage or carrier) sits
// relative to the beds: parked off one edge, or beside a needle having last moved
// in some direction.
type NeedleBedPosition struct {
	rightmostSlot    int
	parking          Side
	stoppingDistance int
	needle           *Needle // nil while parked
	lastDirection    Direction
}

// NewNeedleBedPosition parks a component on the given side.
func NewNeedleBedPosition(parking Side, rightmostSlot, stoppingDistance int) *NeedleBedPosition {
	return &NeedleBedPosition{
		rightmostSlot:    rightmostSlot,
		parking:          parking,
		stoppingDistance: stoppingDistance,
		lastDirection:    parking.ParkedDirection().Opposite(),
	}
}

func (p *NeedleBedPosition) ParkingPosition() Side      { return p.parking }
func (p *NeedleBedPosition) ParkedSlot() int            { return p.parking.Slot(p.rightmostSlot) }
func (p *NeedleBedPosition) ParkedDirection() Direction { return p.parking.ParkedDirection() }
func (p *NeedleBedPosition) LastDirection() Direction   { return p.lastDirection }

// ReverseOfLastDirection is the direction opposite the last movement.
func (p *NeedleBedPosition) ReverseOfLastDirection() Direction { return p.lastDirection.Opposite() }

// Needle is the needle the component is beside, or nil when parked.
func (p *NeedleBedPosition) Needle() *Needle { return p.needle }

// OnBed reports whether the component is beside a needle.
func (p *NeedleBedPosition) OnBed() bool { return p.needle != nil }

// SlotNumber is the slot of the needle, or the parked slot off the edge.
func (p *NeedleBedPosition) SlotNumber() int {
	if p.needle != nil {
		return p.needle.SlotNumber()
	}
	return p.ParkedSlot()
}

// DirectionToSlot is the direction from this position to a slot. It returns false when aligned.
func (p *NeedleBedPosition) DirectionToSlot(slot int) (Direction, bool) {
	cur := p.SlotNumber()
	switch {
	case cur == slot:
		return "", false
	case cur < slot:
		return Rightward, true
	default:
		return Leftward, true
	}
}

// BetweenNeedles returns the needles on either side of the position. A nil needle
// means the edge of the beds.
func (p *NeedleBedPosition) BetweenNeedles() (left, right *Needle) {
	switch {
	case p.needle != nil:
		if p.lastDirection == Rightward {
			left, right = p.needle, p.needle.Offset(1)
		} else {
			left, right = p.needle.Offset(-1), p.needle
		}
		if left.SlotNumber() < 0 {
			left = nil
		}
		if right.SlotNumber() > p.rightmostSlot {
			right = nil
		}
	case p.parking == LeftSide:
		right = Front(0)
	default:
		left = Front(p.rightmostSlot)
	}
	return left, right
}

// ConflictingNeedleSlot is the slot a component blocks after moving in its last direction.
// It returns false while parked.
func (p *NeedleBedPosition) ConflictingNeedleSlot() (int, bool) {
	if !p.OnBed() {
		return 0, false
	}
	if p.lastDirection == Leftward {
		return p.SlotNumber() - 1, true
	}
	return p.SlotNumber() + 1, true
}

// SlotRange is the span of slots the component may occupy after stopping.
func (p *NeedleBedPosition) SlotRange() (int, int) {
	slot := p.SlotNumber()
	switch {
	case !p.OnBed():
		return slot, slot
	case p.lastDirection == Leftward:
		return slot - p.stoppingDistance, slot
	default:
		return slot, slot + p.stoppingDistance
	}
}

// TakeOffBed parks the component.
func (p *NeedleBedPosition) TakeOffBed() {
	p.SetPosition(nil, "")
}

// SetPosition moves the component beside a needle, or parks it when needle is nil.
// An empty direction is inferred from the move; a move that does not change the
// slot reverses the last direction.
func (p *NeedleBedPosition) SetPosition(needle *Needle, direction Direction) {
	if needle == nil {
		if direction == "" {
			if d, ok := p.DirectionToSlot(p.ParkedSlot()); ok {
				direction = d
			} else {
				direction = p.ParkedDirection()
			}
		}
		p.lastDirection = direction
		p.needle = nil
		return
	}
	if direction == "" {
		if d, ok := p.DirectionToSlot(needle.SlotNumber()); ok {
			direction = d
		} else {
			direction = p.lastDirection.Opposite()
		}
	}
	p.lastDirection = direction
	p.needle = needle
}

// UpdateFromPosition copies another position's needle and direction.
func (p *NeedleBedPosition) UpdateFromPosition(other *NeedleBedPosition) {
	p.SetPosition(other.needle, other.lastDirection)
}

// Equal compares needle placement and last direction.
func (p *NeedleBedPosition) Equal(other *NeedleBedPosition) bool {
	if p.needle == nil || other.needle == nil {
		return p.needle == nil && other.needle == nil && p.parking == other.parking && p.lastDirection == other.lastDirection
	}
	return p.needle.Equal(other.needle) && p.lastDirection == other.lastDirection
}

func (p *NeedleBedPosition) clone() *NeedleBedPosition {
	c := *p
	return &c
}
