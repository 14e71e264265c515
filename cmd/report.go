package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/inference-sim/vknit/machine"
	"github.com/inference-sim/vknit/machine/trace"
)

// printRunReport writes the aggregated run metrics and the resulting fabric.
func printRunReport(w io.Writer, m *machine.Machine, metrics *machine.Metrics) {
	metrics.Print(w)

	g := m.KnitGraph()
	fmt.Fprintln(w, "=== Fabric ===")
	fmt.Fprintf(w, "Loops                : %d\n", g.Len())
	fmt.Fprintf(w, "Stitches             : %d\n", g.StitchCount())
	fmt.Fprintf(w, "Crossings            : %d\n", g.CrossingCount())
	fmt.Fprintf(w, "Front Needles Holding: %d\n", len(m.FrontLoops()))
	fmt.Fprintf(w, "Back Needles Holding : %d\n", len(m.BackLoops()))
}

// printTraceSummary writes the per-op distribution of a trace.
func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Traced Instructions  : %d\n", s.TotalInstructions)
	fmt.Fprintf(w, "Failed               : %d\n", s.FailedCount)
	fmt.Fprintf(w, "Diagnostics          : %d\n", s.DiagnosticCount)
	ops := make([]string, 0, len(s.OpDistribution))
	for op := range s.OpDistribution {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		fmt.Fprintf(w, "  %-12s: %d\n", op, s.OpDistribution[op])
	}
}

// writeMetricsText dumps every gathered metric family in the Prometheus text format.
func writeMetricsText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
