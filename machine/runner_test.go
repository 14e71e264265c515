package machine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/vknit/machine/trace"
)

func newTestRunner(t *testing.T) (*Runner, *Metrics, *trace.InstructionTrace) {
	t.Helper()
	metrics, err := NewMetrics(nil)
	require.NoError(t, err)
	tr := trace.NewInstructionTrace(trace.TraceConfig{Level: trace.TraceLevelInstructions})
	return NewRunner(newTestMachine(t), metrics, tr), metrics, tr
}

func TestRunner_Run_RecordsEveryInstruction(t *testing.T) {
	// GIVEN a short program that casts on two loops, knits them and drops one
	r, metrics, tr := newTestRunner(t)
	program := []Instruction{
		InHook{Carrier: 1},
		Tuck{Direction: Leftward, Needle: Front(2), Carriers: []int{1}},
		Tuck{Direction: Leftward, Needle: Front(1), Carriers: []int{1}},
		ReleaseHook{},
		Knit{Direction: Rightward, Needle: Front(1), Carriers: []int{1}},
		Knit{Direction: Rightward, Needle: Front(2), Carriers: []int{1}},
		Xfer{Needle: Front(2)},
		Drop{Needle: Back(2)},
	}

	// WHEN it runs
	require.NoError(t, r.Run(program))

	// THEN every instruction is traced in order with its effect
	assert.Equal(t, 8, r.Executed())
	require.Len(t, tr.Instructions, 8)
	assert.Equal(t, "tuck - f2 1", tr.Instructions[1].Text)
	assert.Equal(t, 2, tr.Instructions[3].ActiveLoops)
	assert.Equal(t, "xfer", tr.Instructions[6].Op)
	assert.Equal(t, 1, tr.Instructions[6].Transferred)
	assert.Equal(t, 1, tr.Instructions[7].ActiveLoops)

	// THEN the summary and the metrics agree
	summary := trace.Summarize(tr)
	assert.Equal(t, 4, summary.LoopsFormed)
	assert.Equal(t, 3, summary.LoopsDropped)
	assert.Equal(t, 1, summary.LoopsTransferred)
	assert.Equal(t, 2, summary.OpDistribution["knit"])
	assert.Equal(t, summary.LoopsFormed, metrics.LoopsFormed)
	assert.Equal(t, summary.PeakActiveLoops, metrics.PeakActiveLoops)
	assert.Equal(t, 8, metrics.Instructions)
	assert.Equal(t, 2, r.Machine().KnitGraph().StitchCount())
}

func TestRunner_Step_WrapsErrors(t *testing.T) {
	r, metrics, tr := newTestRunner(t)

	err := r.Run([]Instruction{Rack{Value: 9}, Rack{Value: 1}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "instruction 0 (rack 9)")
	var maxRack *MaxRackError
	assert.True(t, errors.As(err, &maxRack))
	assert.Equal(t, 1, r.Executed(), "run stops at the first error")
	require.Len(t, tr.Instructions, 1)
	assert.True(t, tr.Instructions[0].Failed())
	assert.Equal(t, 1, metrics.FailedOps)
	assert.Equal(t, 0, r.Machine().Rack())
}

func TestRunner_Step_AttachesDiagnosticsToTheirInstruction(t *testing.T) {
	r, metrics, tr := newTestRunner(t)

	require.NoError(t, r.Run([]Instruction{
		BringIn{Carrier: 1},
		Knit{Direction: Leftward, Needle: Front(5), Carriers: []int{1}},
		Xfer{Needle: Back(9)},
	}))

	assert.Empty(t, tr.Instructions[0].Diagnostics)
	assert.Equal(t, []string{string(DiagKnitOnEmptyNeedle)}, tr.Instructions[1].Diagnostics)
	assert.Equal(t, []string{string(DiagTransferFromEmptyNeedle)}, tr.Instructions[2].Diagnostics)
	assert.Equal(t, 1, metrics.Diagnostics[DiagKnitOnEmptyNeedle])
	assert.Equal(t, 2, trace.Summarize(tr).DiagnosticCount)
}

func TestRunner_NilMetricsAndTrace(t *testing.T) {
	r := NewRunner(newTestMachine(t), nil, nil)

	require.NoError(t, r.Step(BringIn{Carrier: 2}))

	c, err := r.Machine().Carrier(2)
	require.NoError(t, err)
	assert.True(t, c.IsActive())
}
