package machine

import "fmt"

// carrierStoppingDistance is how far past its last needle a carrier may come to rest.
const carrierStoppingDistance = 10

// CarrierState is the read-only view of a yarn carrier.
type CarrierState interface {
	ID() int
	IsActive() bool
	IsHooked() bool
	Position() *NeedleBedPosition
	SlotNumber() int
	Yarn() *Yarn
}

// YarnCarrier feeds one yarn. Inactive carriers rest on the grippers to the
// right of the beds.
type YarnCarrier struct {
	id       int
	active   bool
	hooked   bool
	position *NeedleBedPosition
	yarn     *Yarn
	m        *Machine
}

func newYarnCarrier(m *Machine, id int) *YarnCarrier {
	c := &YarnCarrier{
		id:       id,
		position: NewNeedleBedPosition(RightSide, m.spec.NeedleCount, carrierStoppingDistance),
		m:        m,
	}
	c.yarn = newYarn(c, YarnProperties{Color: m.spec.CarrierColor(id)})
	return c
}

func (c *YarnCarrier) ID() int                      { return c.id }
func (c *YarnCarrier) IsActive() bool               { return c.active }
func (c *YarnCarrier) IsHooked() bool               { return c.hooked }
func (c *YarnCarrier) Position() *NeedleBedPosition { return c.position }
func (c *YarnCarrier) SlotNumber() int              { return c.position.SlotNumber() }
func (c *YarnCarrier) Yarn() *Yarn                  { return c.yarn }

// SetYarn loads a new yarn. The yarn of an active carrier cannot be changed.
func (c *YarnCarrier) SetYarn(props YarnProperties) error {
	if c.active {
		return &ChangeActiveYarnError{CarrierID: c.id}
	}
	c.yarn = newYarn(c, props)
	return nil
}

// SetPosition moves the carrier beside a needle, or parks it when needle is nil.
func (c *YarnCarrier) SetPosition(needle *Needle, direction Direction) {
	c.position.SetPosition(needle, direction)
}

// BringIn takes the carrier off the grippers.
func (c *YarnCarrier) BringIn() {
	if c.active {
		c.m.diag.add(DiagInActiveCarrier, fmt.Sprintf("carrier %d is already active", c.id))
	}
	c.active = true
}

// Inhook brings the carrier in on the inserting hook.
func (c *YarnCarrier) Inhook() {
	c.BringIn()
	c.hooked = true
}

// ReleaseHook frees the carrier from the inserting hook.
func (c *YarnCarrier) ReleaseHook() {
	c.hooked = false
}

// Out returns the carrier to the grippers.
func (c *YarnCarrier) Out() {
	if !c.active {
		c.m.diag.add(DiagOutInactiveCarrier, fmt.Sprintf("carrier %d is not active", c.id))
	}
	c.deactivate()
}

// Outhook cuts the yarn and returns the carrier to the grippers.
func (c *YarnCarrier) Outhook() error {
	if c.hooked {
		return &HookedCarrierError{CarrierID: c.id}
	}
	c.Out()
	c.yarn.cut = true
	return nil
}

func (c *YarnCarrier) deactivate() {
	c.active = false
	c.hooked = false
	c.position.TakeOffBed()
}

// makeLoop forms a loop from this carrier's yarn on a needle. The loop is not
// placed on the needle. A nil loop with no error means the policy skipped it.
func (c *YarnCarrier) makeLoop(needle *Needle) (*Loop, error) {
	return checkedResult(c.m.policy, func() (*Loop, error) {
		err := c.m.policy.handle("", nil, func() error {
			switch {
			case c.yarn.cut:
				return &UseCutYarnError{CarrierID: c.id}
			case !c.active:
				return &UseInactiveCarrierError{CarrierID: c.id}
			case needle.IsSlider():
				return &SliderLoopError{Needle: needle}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if !c.m.policy.Proceed() || needle.IsSlider() {
			return nil, nil
		}
		loop, err := newLoop(c.m.graph.NextLoopID(), c.yarn, needle)
		if err != nil {
			return nil, err
		}
		c.m.graph.AddLoop(loop)
		return loop, nil
	})
}

func (c *YarnCarrier) String() string {
	if c.yarn.ID() == fmt.Sprintf("%d", c.id) {
		return fmt.Sprintf("%d", c.id)
	}
	return fmt.Sprintf("%d:%s", c.id, c.yarn.ID())
}

// frozenCarrier is a point-in-time copy of a carrier.
type frozenCarrier struct {
	id       int
	active   bool
	hooked   bool
	position *NeedleBedPosition
	yarn     *Yarn
}

func (c *frozenCarrier) ID() int                      { return c.id }
func (c *frozenCarrier) IsActive() bool               { return c.active }
func (c *frozenCarrier) IsHooked() bool               { return c.hooked }
func (c *frozenCarrier) Position() *NeedleBedPosition { return c.position }
func (c *frozenCarrier) SlotNumber() int              { return c.position.SlotNumber() }
func (c *frozenCarrier) Yarn() *Yarn                  { return c.yarn }
