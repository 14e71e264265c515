package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// Effect counts the loop events of one executed instruction.
type Effect struct {
	Formed      int
	Dropped     int
	Transferred int
}

// Instruction is one machine operation of a program.
type Instruction interface {
	// Op is the instruction name, e.g. "knit".
	Op() string
	Execute(m *Machine) (Effect, error)
	String() string
}

func carrierText(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

func needleOpText(op string, d Direction, n *Needle, carriers []int) string {
	s := fmt.Sprintf("%s %s %s", op, d, n)
	if len(carriers) > 0 {
		s += " " + carrierText(carriers)
	}
	return s
}

// Knit pulls new loops through the loops on Needle.
type Knit struct {
	Direction Direction
	Needle    *Needle
	Carriers  []int
}

func (i Knit) Op() string     { return "knit" }
func (i Knit) String() string { return needleOpText(i.Op(), i.Direction, i.Needle, i.Carriers) }

func (i Knit) Execute(m *Machine) (Effect, error) {
	parents, children, err := m.Knit(m.NewCarrierSet(i.Carriers...), i.Needle, i.Direction)
	return Effect{Formed: len(children), Dropped: len(parents)}, err
}

// Tuck adds new loops to Needle.
type Tuck struct {
	Direction Direction
	Needle    *Needle
	Carriers  []int
}

func (i Tuck) Op() string     { return "tuck" }
func (i Tuck) String() string { return needleOpText(i.Op(), i.Direction, i.Needle, i.Carriers) }

func (i Tuck) Execute(m *Machine) (Effect, error) {
	loops, err := m.Tuck(m.NewCarrierSet(i.Carriers...), i.Needle, i.Direction)
	return Effect{Formed: len(loops)}, err
}

// Miss moves carriers past Needle.
type Miss struct {
	Direction Direction
	Needle    *Needle
	Carriers  []int
}

func (i Miss) Op() string     { return "miss" }
func (i Miss) String() string { return needleOpText(i.Op(), i.Direction, i.Needle, i.Carriers) }

func (i Miss) Execute(m *Machine) (Effect, error) {
	return Effect{}, m.Miss(m.NewCarrierSet(i.Carriers...), i.Needle, i.Direction)
}

// Split transfers Needle's loops to Target and forms new loops on Needle.
// Target must be aligned with Needle at the current rack; nil uses the aligned needle.
type Split struct {
	Direction Direction
	Needle    *Needle
	Target    *Needle
	Carriers  []int
}

func (i Split) Op() string { return "split" }

func (i Split) String() string {
	s := fmt.Sprintf("split %s %s", i.Direction, i.Needle)
	if i.Target != nil {
		s += " " + i.Target.String()
	}
	if len(i.Carriers) > 0 {
		s += " " + carrierText(i.Carriers)
	}
	return s
}

func (i Split) Execute(m *Machine) (Effect, error) {
	if err := checkTarget(m, i.Needle, i.Target); err != nil {
		return Effect{}, err
	}
	children, parents, err := m.Split(m.NewCarrierSet(i.Carriers...), i.Needle, i.Direction)
	return Effect{Formed: len(children), Transferred: len(parents)}, err
}

// Xfer transfers Needle's loops to Target. A nil Target uses the aligned needle.
type Xfer struct {
	Needle *Needle
	Target *Needle
}

func (i Xfer) Op() string { return "xfer" }

func (i Xfer) String() string {
	if i.Target == nil {
		return fmt.Sprintf("xfer %s", i.Needle)
	}
	return fmt.Sprintf("xfer %s %s", i.Needle, i.Target)
}

func (i Xfer) Execute(m *Machine) (Effect, error) {
	var (
		loops []*Loop
		err   error
	)
	if i.Target == nil {
		loops, err = m.Xfer(i.Needle, false, false)
	} else {
		loops, err = m.XferTo(i.Needle, i.Target)
	}
	return Effect{Transferred: len(loops)}, err
}

// Drop releases the loops on Needle.
type Drop struct {
	Needle *Needle
}

func (i Drop) Op() string     { return "drop" }
func (i Drop) String() string { return fmt.Sprintf("drop %s", i.Needle) }

func (i Drop) Execute(m *Machine) (Effect, error) {
	loops, err := m.Drop(i.Needle)
	return Effect{Dropped: len(loops)}, err
}

// Rack sets the racking. A fractional value selects all-needle racking.
type Rack struct {
	Value float64
}

func (i Rack) Op() string     { return "rack" }
func (i Rack) String() string { return "rack " + strconv.FormatFloat(i.Value, 'f', -1, 64) }

func (i Rack) Execute(m *Machine) (Effect, error) {
	return Effect{}, m.SetRack(i.Value)
}

// InHook brings a carrier in on the yarn inserting hook.
type InHook struct {
	Carrier int
}

func (i InHook) Op() string                         { return "inhook" }
func (i InHook) String() string                     { return fmt.Sprintf("inhook %d", i.Carrier) }
func (i InHook) Execute(m *Machine) (Effect, error) { return Effect{}, m.InHook(i.Carrier) }

// ReleaseHook frees the yarn inserting hook.
type ReleaseHook struct{}

func (ReleaseHook) Op() string     { return "releasehook" }
func (ReleaseHook) String() string { return "releasehook" }

func (ReleaseHook) Execute(m *Machine) (Effect, error) {
	m.ReleaseHook()
	return Effect{}, nil
}

// OutHook takes a carrier out with the inserting hook and cuts its yarn.
type OutHook struct {
	Carrier int
}

func (i OutHook) Op() string                         { return "outhook" }
func (i OutHook) String() string                     { return fmt.Sprintf("outhook %d", i.Carrier) }
func (i OutHook) Execute(m *Machine) (Effect, error) { return Effect{}, m.OutHook(i.Carrier) }

// BringIn takes a carrier off the grippers.
type BringIn struct {
	Carrier int
}

func (i BringIn) Op() string                         { return "in" }
func (i BringIn) String() string                     { return fmt.Sprintf("in %d", i.Carrier) }
func (i BringIn) Execute(m *Machine) (Effect, error) { return Effect{}, m.BringIn(i.Carrier) }

// Out returns a carrier to the grippers.
type Out struct {
	Carrier int
}

func (i Out) Op() string                         { return "out" }
func (i Out) String() string                     { return fmt.Sprintf("out %d", i.Carrier) }
func (i Out) Execute(m *Machine) (Effect, error) { return Effect{}, m.Out(i.Carrier) }

// checkTarget verifies that target, when given, is the needle aligned with start.
func checkTarget(m *Machine, start, target *Needle) error {
	if target == nil {
		return nil
	}
	rack, err := GetTransferRack(start, target)
	if err != nil {
		return err
	}
	if rack != m.Rack() {
		return &MisalignedNeedleError{Start: start, Target: target}
	}
	return nil
}
