package machine

import "fmt"

// violator is implemented by errors that name the constraint they break.
type violator interface {
	Violation() Violation
}

// MaxRackError reports a racking beyond the machine's mechanical limit.
type MaxRackError struct {
	Racking float64
	MaxRack int
}

func (e *MaxRackError) Error() string {
	return fmt.Sprintf("cannot perform racking of %v: max rack allowed is %d", e.Racking, e.MaxRack)
}
func (e *MaxRackError) Violation() Violation { return ViolationRackingOutOfRange }

// SliderLoopError reports an attempt to form a new loop on a slider needle.
type SliderLoopError struct {
	Needle *Needle
}

func (e *SliderLoopError) Error() string {
	return fmt.Sprintf("slider %s cannot form a new loop", e.Needle)
}
func (e *SliderLoopError) Violation() Violation { return ViolationMakeLoopOnSlider }

// XferDroppedLoopError reports a transfer of a loop that has already been dropped.
type XferDroppedLoopError struct {
	Target *Needle
}

func (e *XferDroppedLoopError) Error() string {
	return fmt.Sprintf("cannot transfer dropped loop to target needle %s", e.Target)
}
func (e *XferDroppedLoopError) Violation() Violation { return ViolationMachineState }

// MisalignedNeedleError reports a transfer between needles that the current rack does not align.
type MisalignedNeedleError struct {
	Start, Target *Needle
}

func (e *MisalignedNeedleError) Error() string {
	return fmt.Sprintf("needles %s and %s are not aligned", e.Start, e.Target)
}
func (e *MisalignedNeedleError) Violation() Violation { return ViolationMachineState }

// ClearNeedleError reports use of a needle while sliders still hold loops.
type ClearNeedleError struct {
	Needle *Needle
}

func (e *ClearNeedleError) Error() string {
	return fmt.Sprintf("cannot use %s until sliders are clear", e.Needle)
}
func (e *ClearNeedleError) Violation() Violation { return ViolationMachineState }

// NeedleOutOfRangeError reports a needle position outside the bed.
type NeedleOutOfRangeError struct {
	Needle      *Needle
	NeedleCount int
}

func (e *NeedleOutOfRangeError) Error() string {
	return fmt.Sprintf("needle %s is not on a bed of %d needles", e.Needle, e.NeedleCount)
}
func (e *NeedleOutOfRangeError) Violation() Violation { return ViolationMachineState }

// HookedCarrierError reports an operation that cannot happen while the carrier is on the inserting hook.
type HookedCarrierError struct {
	CarrierID int
}

func (e *HookedCarrierError) Error() string {
	return fmt.Sprintf("cannot move carrier %d out because it is on the yarn inserting hook", e.CarrierID)
}
func (e *HookedCarrierError) Violation() Violation { return ViolationHookedCarrier }

// InsertingHookInUseError reports the inserting hook being held by another carrier.
type InsertingHookInUseError struct {
	CarrierID int
}

func (e *InsertingHookInUseError) Error() string {
	return fmt.Sprintf("cannot use carrier %d because the yarn inserting hook is in use", e.CarrierID)
}
func (e *InsertingHookInUseError) Violation() Violation { return ViolationInsertingHookInUse }

// UseInactiveCarrierError reports loop formation with a carrier that is on the grippers.
type UseInactiveCarrierError struct {
	CarrierID int
}

func (e *UseInactiveCarrierError) Error() string {
	return fmt.Sprintf("cannot use inactive yarn on carrier %d", e.CarrierID)
}
func (e *UseInactiveCarrierError) Violation() Violation { return ViolationInactiveCarrier }

// UseCutYarnError reports loop formation with a yarn that was cut by an outhook.
type UseCutYarnError struct {
	CarrierID int
}

func (e *UseCutYarnError) Error() string {
	return fmt.Sprintf("cannot use cut yarn on carrier %d", e.CarrierID)
}
func (e *UseCutYarnError) Violation() Violation { return ViolationInactiveCarrier }

// Unwrap lets errors.As match a cut yarn as an inactive carrier.
func (e *UseCutYarnError) Unwrap() error { return &UseInactiveCarrierError{CarrierID: e.CarrierID} }

// ChangeActiveYarnError reports replacing the yarn of an active carrier.
type ChangeActiveYarnError struct {
	CarrierID int
}

func (e *ChangeActiveYarnError) Error() string {
	return fmt.Sprintf("cannot change active yarn on carrier %d", e.CarrierID)
}
func (e *ChangeActiveYarnError) Violation() Violation { return ViolationYarnCarrier }

// BlockedByHookError reports a carrier move onto a slot the inserting hook occupies.
type BlockedByHookError struct {
	HookedCarrierID int
	Needle          *Needle
}

func (e *BlockedByHookError) Error() string {
	return fmt.Sprintf("needle %s is blocked by the yarn inserting hook holding carrier %d", e.Needle, e.HookedCarrierID)
}
func (e *BlockedByHookError) Violation() Violation { return ViolationBlockedByHook }

// InhookDirectionError reports an inserting hook starting in a rightward pass.
type InhookDirectionError struct {
	Direction Direction
}

func (e *InhookDirectionError) Error() string {
	return fmt.Sprintf("yarn inserting hook must start in a leftward direction, got %s", e.Direction.Name())
}
func (e *InhookDirectionError) Violation() Violation { return ViolationInhookRightwards }

// InvalidCarrierError reports a carrier id outside 1..carrier count.
type InvalidCarrierError struct {
	CarrierID    int
	CarrierCount int
}

func (e *InvalidCarrierError) Error() string {
	return fmt.Sprintf("invalid carrier: %d. Carriers range from 1 to %d", e.CarrierID, e.CarrierCount)
}
func (e *InvalidCarrierError) Violation() Violation { return ViolationYarnCarrier }

// SameBedTransferError reports a racking request between two needles on one bed.
type SameBedTransferError struct {
	Start, Target *Needle
}

func (e *SameBedTransferError) Error() string {
	return fmt.Sprintf("%s and %s cannot be aligned by racking because they are on the same bed", e.Start, e.Target)
}
func (e *SameBedTransferError) Violation() Violation { return ViolationMachineState }
