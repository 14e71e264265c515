package machine

import (
	"errors"
	"fmt"
)

// Violation identifies a physical constraint of the machine that an operation broke.
type Violation string

const (
	ViolationMachineState       Violation = "machine-state"
	ViolationYarnCarrier        Violation = "yarn-carrier"
	ViolationInsertingHookInUse Violation = "inserting-hook-in-use"
	ViolationHookedCarrier      Violation = "hooked-carrier"
	ViolationBlockedByHook      Violation = "blocked-by-hook"
	ViolationInactiveCarrier    Violation = "inactive-carrier"
	ViolationInhookRightwards   Violation = "inhook-rightwards"
	ViolationMakeLoopOnSlider   Violation = "make-loop-on-slider"
	ViolationRackingOutOfRange  Violation = "racking-out-of-range"
)

// ValidViolations is the set of recognized violation kinds.
var ValidViolations = map[Violation]bool{
	ViolationMachineState:       true,
	ViolationYarnCarrier:        true,
	ViolationInsertingHookInUse: true,
	ViolationHookedCarrier:      true,
	ViolationBlockedByHook:      true,
	ViolationInactiveCarrier:    true,
	ViolationInhookRightwards:   true,
	ViolationMakeLoopOnSlider:   true,
	ViolationRackingOutOfRange:  true,
}

// ViolationAction is what the policy does when a violation occurs.
type ViolationAction string

const (
	// ActionRaise returns the violation to the caller and stops the operation.
	ActionRaise ViolationAction = "raise"
	// ActionWarn records a passed-machine-error diagnostic instead of failing.
	ActionWarn ViolationAction = "warn"
	// ActionIgnore takes no visible action.
	ActionIgnore ViolationAction = "ignore"
)

// ValidViolationActions is the set of recognized action names.
var ValidViolationActions = map[ViolationAction]bool{ActionRaise: true, ActionWarn: true, ActionIgnore: true}

// ViolationResponse is how the policy reacts to one kind of violation.
type ViolationResponse struct {
	Action               ViolationAction
	Handle               bool // run the operation's recovery handler, which always proceeds
	ProceedWithOperation bool // continue the operation after a non-raising response
}

// NewViolationResponse builds a response. Raising responses never proceed.
func NewViolationResponse(action ViolationAction, handle, proceed bool) ViolationResponse {
	if action == ActionRaise {
		proceed = false
	}
	return ViolationResponse{Action: action, Handle: handle, ProceedWithOperation: proceed}
}

// ViolationPolicy maps violation kinds to responses and tracks whether the
// operation currently executing may proceed.
//
// Every mutating operation runs inside checked, which restores proceed when it
// returns. Inside an operation, each precondition is evaluated with handle.
type ViolationPolicy struct {
	responses map[Violation]ViolationResponse
	Default   ViolationResponse
	proceed   bool
	diag      *Diagnostics
}

// NewViolationPolicy returns a policy that raises on every violation.
func NewViolationPolicy() *ViolationPolicy {
	return &ViolationPolicy{
		responses: make(map[Violation]ViolationResponse),
		Default:   NewViolationResponse(ActionRaise, false, false),
		proceed:   true,
	}
}

// SetResponseFor assigns a response to a violation kind.
func (p *ViolationPolicy) SetResponseFor(v Violation, r ViolationResponse) {
	p.responses[v] = r
}

// ResetResponseFor makes a violation kind fall back to the default response.
func (p *ViolationPolicy) ResetResponseFor(v Violation) {
	p.responses[v] = p.Default
}

// ResponseFor returns the response for a violation kind.
func (p *ViolationPolicy) ResponseFor(v Violation) ViolationResponse {
	if r, ok := p.responses[v]; ok {
		return r
	}
	return p.Default
}

// Proceed reports whether the current operation may continue.
func (p *ViolationPolicy) Proceed() bool {
	return p.proceed
}

// checkViolation applies a response to a violation error. It returns the error
// when the response is to raise.
func (p *ViolationPolicy) checkViolation(r ViolationResponse, err error, handler func()) error {
	switch r.Action {
	case ActionRaise:
		p.proceed = false
		return err
	case ActionWarn:
		p.diag.add(DiagPassedMachineError, fmt.Sprintf("passed error, ignoring operation: %v", err))
	}
	if r.Handle && handler != nil {
		handler()
		p.proceed = true
	} else {
		p.proceed = r.ProceedWithOperation
	}
	return nil
}

// handle runs check and routes any error it returns through the policy.
// When kind is empty, the error's own violation kind is used, falling back to
// the default response. A block that follows an earlier stop never proceeds.
func (p *ViolationPolicy) handle(kind Violation, handler func(), check func() error) error {
	priorProceed := p.proceed
	err := check()
	if err == nil {
		return nil
	}
	var r ViolationResponse
	switch {
	case kind != "":
		r = p.ResponseFor(kind)
	default:
		var v violator
		if errors.As(err, &v) {
			r = p.ResponseFor(v.Violation())
		} else {
			r = p.Default
		}
	}
	if raised := p.checkViolation(r, err, handler); raised != nil {
		return raised
	}
	if !priorProceed {
		p.proceed = false
	}
	return nil
}

// checked runs a mutating operation and re-enables proceed afterwards.
func (p *ViolationPolicy) checked(op func() error) error {
	defer func() { p.proceed = true }()
	return op()
}

// checkedResult is checked for operations that also return a value.
func checkedResult[T any](p *ViolationPolicy, op func() (T, error)) (T, error) {
	defer func() { p.proceed = true }()
	return op()
}
