package trace

// TraceSummary aggregates statistics from an InstructionTrace.
type TraceSummary struct {
	TotalInstructions int
	FailedCount       int
	LoopsFormed       int
	LoopsDropped      int
	LoopsTransferred  int
	PeakActiveLoops   int
	DiagnosticCount   int
	MinRack           int
	MaxRack           int
	OpDistribution    map[string]int // op name → count of instructions
}

// Summarize computes aggregate statistics from an InstructionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(it *InstructionTrace) *TraceSummary {
	summary := &TraceSummary{
		OpDistribution: make(map[string]int),
	}
	if it == nil || len(it.Instructions) == 0 {
		return summary
	}

	summary.TotalInstructions = len(it.Instructions)
	summary.MinRack = it.Instructions[0].Rack
	summary.MaxRack = it.Instructions[0].Rack
	for _, r := range it.Instructions {
		summary.OpDistribution[r.Op]++
		if r.Failed() {
			summary.FailedCount++
		}
		summary.LoopsFormed += r.Formed
		summary.LoopsDropped += r.Dropped
		summary.LoopsTransferred += r.Transferred
		summary.DiagnosticCount += len(r.Diagnostics)
		if r.ActiveLoops > summary.PeakActiveLoops {
			summary.PeakActiveLoops = r.ActiveLoops
		}
		if r.Rack < summary.MinRack {
			summary.MinRack = r.Rack
		}
		if r.Rack > summary.MaxRack {
			summary.MaxRack = r.Rack
		}
	}

	return summary
}
