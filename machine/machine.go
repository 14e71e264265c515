package machine

import (
	"fmt"
	"math"

	"github.com/inference-sim/vknit/machine/knitgraph"
)

// Machine is a live V-bed knitting machine: two needle beds, a yarn insertion
// system, a carriage, the racking between the beds, and the knit graph the
// executed instructions build.
type Machine struct {
	view
	policy   *ViolationPolicy
	diag     *Diagnostics
	carriers *YarnInsertionSystem
	carriage *Carriage
}

// Option configures a Machine at construction.
type Option func(*Machine)

// WithPolicy sets the violation policy. The default raises on every violation.
func WithPolicy(p *ViolationPolicy) Option {
	return func(m *Machine) { m.policy = p }
}

// WithKnitGraph builds onto an existing knit graph.
func WithKnitGraph(g *knitgraph.Graph[*Loop]) Option {
	return func(m *Machine) { m.graph = g }
}

// WithDiagnostics collects advisories into d instead of a fresh collector.
func WithDiagnostics(d *Diagnostics) Option {
	return func(m *Machine) { m.diag = d }
}

// New builds a machine with empty beds, every carrier on the grippers and rack 0.
// Panics if spec is invalid.
func New(spec Specification, opts ...Option) *Machine {
	if err := spec.Validate(); err != nil {
		panic(fmt.Sprintf("machine.New: %v", err))
	}
	m := &Machine{view: view{spec: spec, gauge: 1}}
	for _, opt := range opts {
		opt(m)
	}
	if m.graph == nil {
		m.graph = knitgraph.New[*Loop]()
	}
	if m.diag == nil {
		m.diag = NewDiagnostics()
	}
	if m.policy == nil {
		m.policy = NewViolationPolicy()
	}
	if m.policy.diag == nil {
		m.policy.diag = m.diag
	}
	m.front = newNeedleBed(&m.view, true, spec.NeedleCount, spec.MaximumLoopHold, m.diag)
	m.back = newNeedleBed(&m.view, false, spec.NeedleCount, spec.MaximumLoopHold, m.diag)
	m.carriers = newYarnInsertionSystem(m, spec.CarrierCount)
	m.carriage = newCarriage(spec.NeedleCount)
	return m
}

// Policy is the violation policy consulted by every mutating operation.
func (m *Machine) Policy() *ViolationPolicy { return m.policy }

// Diagnostics is the advisory channel of this machine.
func (m *Machine) Diagnostics() *Diagnostics { return m.diag }

func (m *Machine) CarrierSystem() CarrierSystemState { return m.carriers }
func (m *Machine) Carriage() CarriageState           { return m.carriage }

// InsertionSystem exposes the mutable yarn insertion system.
func (m *Machine) InsertionSystem() *YarnInsertionSystem { return m.carriers }

// Carrier returns a carrier by id.
func (m *Machine) Carrier(id int) (CarrierState, error) { return m.carriers.Carrier(id) }

// YarnCarrier returns the mutable carrier by id.
func (m *Machine) YarnCarrier(id int) (*YarnCarrier, error) { return m.carriers.YarnCarrier(id) }

// NewCarrierSet builds a carrier set, recording a diagnostic for each repeated id.
func (m *Machine) NewCarrierSet(ids ...int) *CarrierSet {
	cs := NewCarrierSet(ids...)
	for _, d := range cs.Duplicates() {
		m.diag.add(DiagDuplicateCarriersInSet, fmt.Sprintf("carrier %d appears more than once in set %v", d, ids))
	}
	return cs
}

// SetGaugedLayers sets the number of sheets knitted in gauge, clamped to at least 1.
func (m *Machine) SetGaugedLayers(layers int) {
	if layers < 1 {
		layers = 1
	}
	m.gauge = layers
}

// SetRack moves the back bed. A fractional rack selects all-needle racking; a
// negative fractional rack rounds down, anything else truncates.
func (m *Machine) SetRack(rack float64) error {
	return m.policy.checked(func() error {
		if err := m.policy.handle("", nil, func() error {
			if math.Abs(rack) > float64(m.spec.MaximumRack) {
				return &MaxRackError{Racking: rack, MaxRack: m.spec.MaximumRack}
			}
			return nil
		}); err != nil {
			return err
		}
		if m.policy.Proceed() {
			whole := math.Trunc(rack)
			m.allNeedle = rack != whole
			if rack < 0 && m.allNeedle {
				m.rack = int(whole) - 1
			} else {
				m.rack = int(whole)
			}
		}
		return nil
	})
}

// UpdateRack racks to align a front and back position and reports whether the rack changed.
func (m *Machine) UpdateRack(frontPos, backPos int) (bool, error) {
	original := m.rack
	if err := m.SetRack(float64(GetRack(frontPos, backPos))); err != nil {
		return false, err
	}
	return original != m.rack, nil
}

// Snapshot copies the machine's current state.
func (m *Machine) Snapshot() *Snapshot { return newSnapshot(m) }
