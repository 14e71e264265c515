package machine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DiagnosticKind classifies a non-fatal oddity in the machine program.
type DiagnosticKind string

const (
	DiagKnitOnEmptyNeedle       DiagnosticKind = "knit-on-empty-needle"
	DiagNeedleHoldsTooManyLoops DiagnosticKind = "needle-holds-too-many-loops"
	DiagTransferFromEmptyNeedle DiagnosticKind = "transfer-from-empty-needle"
	DiagLongFloat               DiagnosticKind = "long-float"
	DiagInActiveCarrier         DiagnosticKind = "in-active-carrier"
	DiagOutInactiveCarrier      DiagnosticKind = "out-inactive-carrier"
	DiagDuplicateCarriersInSet  DiagnosticKind = "duplicate-carriers-in-set"
	DiagPassedMachineError      DiagnosticKind = "passed-machine-error"
)

// Diagnostic is one advisory record emitted while executing an operation.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Diagnostics collects advisories in emission order. A nil *Diagnostics discards them.
type Diagnostics struct {
	records []Diagnostic
	hook    func(Diagnostic)
}

// NewDiagnostics creates an empty collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{records: make([]Diagnostic, 0)}
}

// OnRecord installs a callback invoked for each new diagnostic.
func (d *Diagnostics) OnRecord(fn func(Diagnostic)) {
	if d != nil {
		d.hook = fn
	}
}

func (d *Diagnostics) add(kind DiagnosticKind, message string) {
	if d == nil {
		return
	}
	rec := Diagnostic{Kind: kind, Message: message}
	d.records = append(d.records, rec)
	logrus.Warnf("[%s] %s", kind, message)
	if d.hook != nil {
		d.hook(rec)
	}
}

// Records returns a copy of every diagnostic collected so far.
func (d *Diagnostics) Records() []Diagnostic {
	if d == nil {
		return nil
	}
	out := make([]Diagnostic, len(d.records))
	copy(out, d.records)
	return out
}

// Drain returns the collected diagnostics and clears the collector.
func (d *Diagnostics) Drain() []Diagnostic {
	out := d.Records()
	if d != nil {
		d.records = d.records[:0]
	}
	return out
}

// Count returns how many diagnostics of a kind were recorded.
func (d *Diagnostics) Count(kind DiagnosticKind) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, r := range d.records {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of collected diagnostics.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}
