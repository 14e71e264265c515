package machine

// CarriageState is the read-only view of the carriage.
type CarriageState interface {
	Position() *NeedleBedPosition
	SlotNumber() int
	LastDirection() Direction
	LastSetDirection() Direction
}

// Carriage tracks the machine's pass position. It parks on the left edge and
// stops exactly at the needle it moves to.
type Carriage struct {
	position         *NeedleBedPosition
	lastSetDirection Direction
}

func newCarriage(needleCount int) *Carriage {
	pos := NewNeedleBedPosition(LeftSide, needleCount, 0)
	return &Carriage{position: pos, lastSetDirection: pos.LastDirection()}
}

func (c *Carriage) Position() *NeedleBedPosition { return c.position }
func (c *Carriage) SlotNumber() int              { return c.position.SlotNumber() }
func (c *Carriage) LastDirection() Direction     { return c.position.LastDirection() }

// LastSetDirection is the direction of the last explicit pass (knit, tuck, miss, split).
func (c *Carriage) LastSetDirection() Direction { return c.lastSetDirection }

// MoveInDirection moves the carriage to a needle as part of an explicit pass.
func (c *Carriage) MoveInDirection(needle *Needle, direction Direction) {
	c.position.SetPosition(needle, direction)
	c.lastSetDirection = direction
}

// MoveToNeedle moves the carriage without recording a pass direction, as for drops and transfers.
func (c *Carriage) MoveToNeedle(needle *Needle) {
	c.position.SetPosition(needle, "")
}

func (c *Carriage) clone() *Carriage {
	return &Carriage{position: c.position.clone(), lastSetDirection: c.lastSetDirection}
}
