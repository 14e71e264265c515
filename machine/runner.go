package machine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/vknit/machine/trace"
)

// Runner executes programs on a machine, recording metrics and an optional trace.
type Runner struct {
	machine *Machine
	metrics *Metrics
	trace   *trace.InstructionTrace
	index   int
	pending []Diagnostic
}

// NewRunner wires a runner to a machine. Metrics and trace may be nil.
// The runner takes over the machine's diagnostic callback.
func NewRunner(m *Machine, metrics *Metrics, tr *trace.InstructionTrace) *Runner {
	r := &Runner{machine: m, metrics: metrics, trace: tr}
	m.diag.OnRecord(func(d Diagnostic) {
		r.pending = append(r.pending, d)
		if r.metrics != nil {
			r.metrics.ObserveDiagnostic(d)
		}
	})
	return r
}

// Machine is the machine the runner drives.
func (r *Runner) Machine() *Machine { return r.machine }

// Executed is the number of instructions run so far.
func (r *Runner) Executed() int { return r.index }

// Run executes a program in order and stops at the first error.
func (r *Runner) Run(program []Instruction) error {
	for _, instr := range program {
		if err := r.Step(instr); err != nil {
			return err
		}
	}
	return nil
}

// Step executes one instruction.
func (r *Runner) Step(instr Instruction) error {
	idx := r.index
	r.index++
	r.pending = r.pending[:0]
	logrus.Debugf("[instr %05d] %s", idx, instr)

	effect, err := instr.Execute(r.machine)

	if r.metrics != nil {
		r.metrics.ObserveInstruction(instr.Op(), err)
		r.metrics.ObserveEffect(effect)
		r.metrics.ObserveState(r.machine)
	}
	if r.trace != nil {
		rec := trace.InstructionRecord{
			Index:       idx,
			Op:          instr.Op(),
			Text:        instr.String(),
			Rack:        r.machine.Rack(),
			Formed:      effect.Formed,
			Dropped:     effect.Dropped,
			Transferred: effect.Transferred,
			ActiveLoops: len(r.machine.ActiveLoops()),
		}
		for _, d := range r.pending {
			rec.Diagnostics = append(rec.Diagnostics, string(d.Kind))
		}
		if err != nil {
			rec.Err = err.Error()
		}
		r.trace.RecordInstruction(rec)
	}
	if err != nil {
		return fmt.Errorf("instruction %d (%s): %w", idx, instr, err)
	}
	return nil
}
