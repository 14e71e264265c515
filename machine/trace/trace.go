package trace

// TraceLevel controls the verbosity of instruction tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelInstructions captures every executed instruction.
	TraceLevelInstructions TraceLevel = "instructions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:         true,
	TraceLevelInstructions: true,
	"":                     true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether instructions should be recorded.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelInstructions
}

// InstructionTrace collects instruction records during a machine run.
type InstructionTrace struct {
	Config       TraceConfig
	Instructions []InstructionRecord
}

// NewInstructionTrace creates an InstructionTrace ready for recording.
func NewInstructionTrace(config TraceConfig) *InstructionTrace {
	return &InstructionTrace{
		Config:       config,
		Instructions: make([]InstructionRecord, 0),
	}
}

// RecordInstruction appends an instruction record. Nil traces and disabled traces drop it.
func (it *InstructionTrace) RecordInstruction(record InstructionRecord) {
	if it == nil || !it.Config.Enabled() {
		return
	}
	it.Instructions = append(it.Instructions, record)
}
