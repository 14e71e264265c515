package machine

import "github.com/inference-sim/vknit/machine/knitgraph"

// State is the read-only query surface shared by a live Machine and a Snapshot.
type State interface {
	Specification() Specification
	KnitGraph() *knitgraph.Graph[*Loop]
	FrontBed() BedState
	BackBed() BedState
	CarrierSystem() CarrierSystemState
	Carriage() CarriageState
	Carrier(id int) (CarrierState, error)

	Rack() int
	AllNeedleRack() bool
	GaugedLayers() int
	NeedleCount() int
	MaxRack() int

	SlidersAreClear() bool
	SlotRange() (int, int)
	AllLoops() []*Needle
	AllSliderLoops() []*Needle
	ActiveLoops() []*Loop
	ActiveFloats() []Float
	LoopsCrossedByFloat(start, end *Loop) ([]*Loop, error)

	GetSpecifiedNeedle(isFront bool, position int, isSlider bool) (*Needle, error)
	GetNeedle(needle *Needle) (*Needle, error)
	GetAlignedNeedle(needle *Needle, alignedSlider bool) (*Needle, error)
	GetNeedleOfLoop(loop *Loop) *Needle
	HasLoop(loop *Loop) bool
	HasNeedle(needle *Needle) bool
	ValidRack(frontPos, backPos int) bool
}

var (
	_ State = (*Machine)(nil)
	_ State = (*Snapshot)(nil)
)
