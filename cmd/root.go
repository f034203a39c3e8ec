package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/choice-sim/choice-sim/sim"
	"github.com/choice-sim/choice-sim/sim/density"
	"github.com/choice-sim/choice-sim/sim/report"
)

var (
	// CLI flags for the load study
	seed     int64  // Master seed for all random streams
	servers  int    // Number of simulated servers per trial
	maxK     int    // Largest subset size in the sweep
	trials   int    // Trials per subset size
	workers  int    // Parallel trial workers
	logLevel string // Log verbosity level

	// CLI flags for the offered-load density
	densityType   string    // Density family (uniform, polynomial, smooth)
	coefficients  []float64 // Polynomial coefficients c0,c1,...
	controlPoints int       // Control points of the smooth density
	smoothing     string    // Interpolation mode (linear, akima)

	// CLI flags for inputs and outputs
	specPath string // Study spec YAML, flags override its values
	csvPath  string // CSV output path
	htmlPath string // HTML report output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "choice-sim",
	Short: "Monte Carlo simulator for randomized k-choices load balancing",
}

// runCmd sweeps the subset size k and reports the load of the chosen server
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the expected-load sweep",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		spec, err := studyFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("Loading study failed: %v", err)
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid study: %v", err)
		}

		s, err := sim.NewSimulator(spec.Config(), spec.Density)
		if err != nil {
			logrus.Fatalf("Simulator setup failed: %v", err)
		}
		table, err := s.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		report.WriteLoadTable(os.Stdout, table)
		if spec.Output.CSV != "" {
			if err := report.WriteLoadCSV(spec.Output.CSV, table); err != nil {
				logrus.Fatalf("CSV export failed: %v", err)
			}
			logrus.Infof("Wrote %s", spec.Output.CSV)
		}
		if spec.Output.HTML != "" {
			if err := report.RenderLoadChart(spec.Output.HTML, table, s.Density()); err != nil {
				logrus.Fatalf("Chart export failed: %v", err)
			}
			logrus.Infof("Wrote %s", spec.Output.HTML)
		}
	},
}

// studyFromFlags assembles the study to run: flag values only, or the YAML
// spec named by --spec with explicitly set flags overriding its values.
func studyFromFlags(cmd *cobra.Command) (*sim.StudySpec, error) {
	if specPath == "" {
		return &sim.StudySpec{
			Seed:    seed,
			Servers: servers,
			MaxK:    maxK,
			Trials:  trials,
			Workers: workers,
			Density: density.Spec{
				Type:          densityType,
				Coefficients:  coefficients,
				ControlPoints: controlPoints,
				Smoothing:     smoothing,
			},
			Output: sim.OutputSpec{CSV: csvPath, HTML: htmlPath},
		}, nil
	}

	spec, err := sim.LoadStudySpec(specPath)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cmd, spec)
	return spec, nil
}

// applyFlagOverrides copies explicitly set CLI flags over YAML spec values,
// so a study file can be replayed with a different seed or output target.
func applyFlagOverrides(cmd *cobra.Command, spec *sim.StudySpec) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		spec.Seed = seed
	}
	if flags.Changed("servers") {
		spec.Servers = servers
	}
	if flags.Changed("max-k") {
		spec.MaxK = maxK
	}
	if flags.Changed("trials") {
		spec.Trials = trials
	}
	if flags.Changed("workers") {
		spec.Workers = workers
	}
	if flags.Changed("density") {
		spec.Density.Type = densityType
	}
	if flags.Changed("coefficients") {
		spec.Density.Coefficients = coefficients
	}
	if flags.Changed("control-points") {
		spec.Density.ControlPoints = controlPoints
	}
	if flags.Changed("smoothing") {
		spec.Density.Smoothing = smoothing
	}
	if flags.Changed("csv") {
		spec.Output.CSV = csvPath
	}
	if flags.Changed("html") {
		spec.Output.HTML = htmlPath
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all random streams")
	runCmd.Flags().IntVar(&servers, "servers", 10000, "Number of simulated servers per trial")
	runCmd.Flags().IntVar(&maxK, "max-k", 10, "Largest subset size in the sweep")
	runCmd.Flags().IntVar(&trials, "trials", 100, "Trials per subset size")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Parallel trial workers")

	// Offered-load density configs
	runCmd.Flags().StringVar(&densityType, "density", density.TypeUniform, "Density family (uniform, polynomial, smooth)")
	runCmd.Flags().Float64SliceVar(&coefficients, "coefficients", []float64{0.02, 0.15, 1}, "Comma-separated polynomial coefficients c0,c1,...")
	runCmd.Flags().IntVar(&controlPoints, "control-points", density.DefaultControlPoints, "Control points of the smooth density")
	runCmd.Flags().StringVar(&smoothing, "smoothing", density.SmoothingLinear, "Smooth density interpolation (linear, akima)")

	// Inputs and outputs
	runCmd.Flags().StringVar(&specPath, "spec", "", "Study spec YAML; explicitly set flags override its values")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "Write the result table to this CSV file")
	runCmd.Flags().StringVar(&htmlPath, "html", "", "Write an HTML chart report to this path")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
