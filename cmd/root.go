package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/vknit/machine"
	"github.com/inference-sim/vknit/machine/swatch"
	"github.com/inference-sim/vknit/machine/trace"
)

var (
	// CLI flags for the swatch program
	swatchName    string // Swatch pattern to knit
	swatchWidth   int    // Needles per row
	swatchRows    int    // Knitting passes after the cast-on
	swatchCarrier int    // Carrier feeding the yarn

	// CLI flags for machine configuration
	specPath   string // Machine specification YAML
	policyPath string // Violation policy YAML
	logLevel   string // Log verbosity level

	// CLI flags for reporting
	traceLevel  string // Instruction trace verbosity
	metricsText bool   // Dump Prometheus text exposition after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vknit",
	Short: "State simulator for V-bed weft knitting machines",
}

// runOptions holds everything a swatch run needs, resolved from flags.
type runOptions struct {
	Pattern    swatch.Pattern
	Width      int
	Rows       int
	Carrier    int
	SpecPath   string
	PolicyPath string
	TraceLevel trace.TraceLevel
	Metrics    bool
}

// runCmd knits a swatch program on a simulated machine
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Knit a swatch program on a simulated machine",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		opts := runOptions{
			Pattern:    swatch.Pattern(swatchName),
			Width:      swatchWidth,
			Rows:       swatchRows,
			Carrier:    swatchCarrier,
			SpecPath:   specPath,
			PolicyPath: policyPath,
			TraceLevel: trace.TraceLevel(traceLevel),
			Metrics:    metricsText,
		}
		if err := runSwatch(opts, os.Stdout); err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		logrus.Info("Run complete.")
	},
}

// loadMachine builds a machine from optional spec and policy files.
func loadMachine(specFile, policyFile string) (*machine.Machine, error) {
	spec := machine.DefaultSpecification()
	if specFile != "" {
		loaded, err := machine.LoadSpecification(specFile)
		if err != nil {
			return nil, err
		}
		spec = loaded
	}
	var opts []machine.Option
	if policyFile != "" {
		bundle, err := machine.LoadPolicyBundle(policyFile)
		if err != nil {
			return nil, err
		}
		policy, err := bundle.Policy()
		if err != nil {
			return nil, fmt.Errorf("invalid policy config: %w", err)
		}
		opts = append(opts, machine.WithPolicy(policy))
	}
	return machine.New(spec, opts...), nil
}

// runSwatch builds the swatch program, runs it and writes the reports to out.
// Aggregated metrics are always printed; the trace summary and Prometheus text
// only when requested.
func runSwatch(opts runOptions, out io.Writer) error {
	program, err := swatch.Build(opts.Pattern, opts.Width, opts.Rows, opts.Carrier)
	if err != nil {
		return err
	}
	m, err := loadMachine(opts.SpecPath, opts.PolicyPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := machine.NewMetrics(reg)
	if err != nil {
		return err
	}
	tr := trace.NewInstructionTrace(trace.TraceConfig{Level: opts.TraceLevel})

	logrus.Infof("Knitting %s swatch: width=%d rows=%d carrier=%d, %d instructions",
		opts.Pattern, opts.Width, opts.Rows, opts.Carrier, len(program))

	runner := machine.NewRunner(m, metrics, tr)
	runErr := runner.Run(program)

	printRunReport(out, m, metrics)
	if tr.Config.Enabled() {
		printTraceSummary(out, trace.Summarize(tr))
	}
	if opts.Metrics {
		if err := writeMetricsText(out, reg); err != nil {
			return err
		}
	}
	return runErr
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&swatchName, "swatch", string(swatch.PatternStockinette), "Swatch pattern (tuck, stockinette, rib, seed, cable)")
	runCmd.Flags().IntVar(&swatchWidth, "width", 10, "Needles per row")
	runCmd.Flags().IntVar(&swatchRows, "rows", 8, "Knitting passes after the cast-on")
	runCmd.Flags().IntVar(&swatchCarrier, "carrier", 1, "Carrier feeding the yarn")

	runCmd.Flags().StringVar(&specPath, "spec", "", "Machine specification YAML (default: 15 gauge SWG091N2)")
	runCmd.Flags().StringVar(&policyPath, "policy", "", "Violation policy YAML (default: raise on every violation)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Instruction trace level (none, instructions)")
	runCmd.Flags().BoolVar(&metricsText, "metrics", false, "Print Prometheus text exposition of the run metrics")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
