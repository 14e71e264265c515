package machine

// Side is an edge of the needle beds where a carriage or carrier parks.
type Side string

const (
	LeftSide  Side = "Left_Side"
	RightSide Side = "Right_Side"
)

// Opposite returns the other edge of the beds.
func (s Side) Opposite() Side {
	if s == LeftSide {
		return RightSide
	}
	return LeftSide
}

// Slot is the slot number of the parked position: -1 on the left, one past the
// rightmost slot on the right.
func (s Side) Slot(rightmostSlot int) int {
	if s == LeftSide {
		return -1
	}
	return rightmostSlot + 1
}

// ParkedDirection is the direction a component moves when leaving this side.
func (s Side) ParkedDirection() Direction {
	if s == RightSide {
		return Leftward
	}
	return Rightward
}
