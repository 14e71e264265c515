package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	it := NewInstructionTrace(TraceConfig{Level: TraceLevelInstructions})

	// WHEN summarized
	summary := Summarize(it)

	// THEN all counts are zero
	if summary.TotalInstructions != 0 || summary.FailedCount != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if len(summary.OpDistribution) != 0 {
		t.Error("expected empty op distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary == nil || summary.TotalInstructions != 0 {
		t.Fatal("expected zero-valued summary for nil trace")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace of a short cast-on and transfer
	it := NewInstructionTrace(TraceConfig{Level: TraceLevelInstructions})
	it.RecordInstruction(InstructionRecord{Op: "tuck", Formed: 1, ActiveLoops: 1})
	it.RecordInstruction(InstructionRecord{Op: "tuck", Formed: 1, ActiveLoops: 2, Diagnostics: []string{"long-float"}})
	it.RecordInstruction(InstructionRecord{Op: "rack", Rack: -1, ActiveLoops: 2})
	it.RecordInstruction(InstructionRecord{Op: "xfer", Rack: -1, Transferred: 1, ActiveLoops: 2})
	it.RecordInstruction(InstructionRecord{Op: "knit", Formed: 1, Dropped: 1, ActiveLoops: 2, Err: "boom"})

	// WHEN summarized
	summary := Summarize(it)

	// THEN counts match
	if summary.TotalInstructions != 5 {
		t.Errorf("expected 5 instructions, got %d", summary.TotalInstructions)
	}
	if summary.FailedCount != 1 {
		t.Errorf("expected 1 failed, got %d", summary.FailedCount)
	}
	if summary.LoopsFormed != 3 || summary.LoopsDropped != 1 || summary.LoopsTransferred != 1 {
		t.Errorf("unexpected loop totals %d/%d/%d", summary.LoopsFormed, summary.LoopsDropped, summary.LoopsTransferred)
	}
	if summary.PeakActiveLoops != 2 {
		t.Errorf("expected peak 2, got %d", summary.PeakActiveLoops)
	}
	if summary.DiagnosticCount != 1 {
		t.Errorf("expected 1 diagnostic, got %d", summary.DiagnosticCount)
	}
	if summary.MinRack != -1 || summary.MaxRack != 0 {
		t.Errorf("expected rack range [-1, 0], got [%d, %d]", summary.MinRack, summary.MaxRack)
	}
}

func TestSummarize_OpDistribution_CountsPerOp(t *testing.T) {
	// GIVEN repeated ops
	it := NewInstructionTrace(TraceConfig{Level: TraceLevelInstructions})
	it.RecordInstruction(InstructionRecord{Op: "knit"})
	it.RecordInstruction(InstructionRecord{Op: "knit"})
	it.RecordInstruction(InstructionRecord{Op: "xfer"})

	// WHEN summarized
	summary := Summarize(it)

	// THEN the distribution reflects counts
	if summary.OpDistribution["knit"] != 2 {
		t.Errorf("expected knit count 2, got %d", summary.OpDistribution["knit"])
	}
	if summary.OpDistribution["xfer"] != 1 {
		t.Errorf("expected xfer count 1, got %d", summary.OpDistribution["xfer"])
	}
}
