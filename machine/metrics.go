// Tracks run-wide machine statistics such as loops formed, transfers and diagnostics.

package machine

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates statistics about a machine run for final reporting.
// The same events are exported as Prometheus collectors.
type Metrics struct {
	Instructions     int // Number of instructions executed
	FailedOps        int // Instructions that returned an error
	LoopsFormed      int // New loops formed by knit, tuck and split
	LoopsDropped     int // Loops released from needles
	LoopsTransferred int // Loops moved between beds
	PeakActiveLoops  int // Max number of loops held at once
	MinRack, MaxRack int // Racking range used

	Diagnostics map[DiagnosticKind]int // kind → count

	sampled bool

	instructions *prometheus.CounterVec
	loops        *prometheus.CounterVec
	diagnostics  *prometheus.CounterVec
	rack         prometheus.Gauge
	activeLoops  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Diagnostics: make(map[DiagnosticKind]int),
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vknit",
			Subsystem: "machine",
			Name:      "instructions_total",
			Help:      "Instructions executed, by op and outcome",
		}, []string{"op", "outcome"}),
		loops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vknit",
			Subsystem: "machine",
			Name:      "loops_total",
			Help:      "Loop events, by event (formed, dropped, transferred)",
		}, []string{"event"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vknit",
			Subsystem: "machine",
			Name:      "diagnostics_total",
			Help:      "Advisory diagnostics, by kind",
		}, []string{"kind"}),
		rack: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vknit",
			Subsystem: "machine",
			Name:      "rack",
			Help:      "Current racking between the beds",
		}),
		activeLoops: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vknit",
			Subsystem: "machine",
			Name:      "active_loops",
			Help:      "Loops currently held on needles and sliders",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.instructions, m.loops, m.diagnostics, m.rack, m.activeLoops} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering machine metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveInstruction counts one executed instruction.
func (m *Metrics) ObserveInstruction(op string, err error) {
	m.Instructions++
	outcome := "ok"
	if err != nil {
		m.FailedOps++
		outcome = "error"
	}
	m.instructions.WithLabelValues(op, outcome).Inc()
}

// ObserveEffect counts the loop events of one instruction.
func (m *Metrics) ObserveEffect(e Effect) {
	m.LoopsFormed += e.Formed
	m.LoopsDropped += e.Dropped
	m.LoopsTransferred += e.Transferred
	m.loops.WithLabelValues("formed").Add(float64(e.Formed))
	m.loops.WithLabelValues("dropped").Add(float64(e.Dropped))
	m.loops.WithLabelValues("transferred").Add(float64(e.Transferred))
}

// ObserveDiagnostic counts one diagnostic. Install it with Diagnostics.OnRecord.
func (m *Metrics) ObserveDiagnostic(d Diagnostic) {
	m.Diagnostics[d.Kind]++
	m.diagnostics.WithLabelValues(string(d.Kind)).Inc()
}

// ObserveState samples the rack and held loops of a machine state.
func (m *Metrics) ObserveState(s State) {
	rack := s.Rack()
	if !m.sampled || rack < m.MinRack {
		m.MinRack = rack
	}
	if !m.sampled || rack > m.MaxRack {
		m.MaxRack = rack
	}
	m.sampled = true
	active := len(s.ActiveLoops())
	if active > m.PeakActiveLoops {
		m.PeakActiveLoops = active
	}
	m.rack.Set(float64(rack))
	m.activeLoops.Set(float64(active))
}

// Print writes aggregated metrics at the end of a run.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Machine Metrics ===")
	fmt.Fprintf(w, "Instructions         : %d\n", m.Instructions)
	fmt.Fprintf(w, "Failed Instructions  : %d\n", m.FailedOps)
	fmt.Fprintf(w, "Loops Formed         : %d\n", m.LoopsFormed)
	fmt.Fprintf(w, "Loops Dropped        : %d\n", m.LoopsDropped)
	fmt.Fprintf(w, "Loops Transferred    : %d\n", m.LoopsTransferred)
	fmt.Fprintf(w, "Peak Active Loops    : %d\n", m.PeakActiveLoops)
	fmt.Fprintf(w, "Rack Range           : [%d, %d]\n", m.MinRack, m.MaxRack)
	if len(m.Diagnostics) > 0 {
		kinds := make([]string, 0, len(m.Diagnostics))
		for k := range m.Diagnostics {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		fmt.Fprintln(w, "Diagnostics:")
		for _, k := range kinds {
			fmt.Fprintf(w, "  %-28s: %d\n", k, m.Diagnostics[DiagnosticKind(k)])
		}
	}
}
