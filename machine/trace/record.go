// Package trace records executed machine instructions for later inspection.
// It stores pure data and does not depend on the machine package.
package trace

// InstructionRecord captures one executed instruction and its effect on the beds.
type InstructionRecord struct {
	Index       int
	Op          string // instruction name, e.g. "knit"
	Text        string // full instruction, e.g. "knit + f5 1"
	Rack        int
	Formed      int // loops formed
	Dropped     int // loops released from needles
	Transferred int // loops moved between beds
	ActiveLoops int // loops held after the instruction
	Diagnostics []string
	Err         string // empty when the instruction succeeded
}

// Failed reports whether the instruction returned an error.
func (r InstructionRecord) Failed() bool { return r.Err != "" }
