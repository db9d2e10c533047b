// Package cmd implements the simmc cobra CLI: run, validate, and report.
package cmd

import (
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/inference-sim/sim"
	"github.com/inference-sim/inference-sim/sim/trace"
)

var (
	configFile       string
	transitionsFile  string
	originState      string
	age0             uint32
	durState0        uint32
	durSinceB0       uint32
	steps            int
	moment           int
	simulations      int
	seed             int64
	lutBuckets       int
	payoffConfigFile string
	emitPath         string
	logLevel         string
	traceLevel       string
	tracePathFilter  int

	payoffKind      string
	payoffAmount    float64
	payoffWaiting   uint32
	payoffBase      float64
	payoffMoment    int
	payoffDeadState string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "simmc",
	Short: "Monte Carlo cashflow simulator over semi-Markov state processes",
}

// runCmd runs a Monte Carlo cashflow simulation from a run config
// and/or CLI flags.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Monte Carlo cashflow simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level %q: %v", logLevel, err)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("invalid trace level %q", traceLevel)
		}

		cfg := loadRunConfig(configFile)
		applyRunFlagOverrides(cmd, cfg)

		if cfg.TransitionsFile == "" {
			logrus.Fatal("no transitions file given (use --transitions or --config)")
		}
		if cfg.Origin.State == "" {
			logrus.Fatal("no origin state given (use --origin-state or --config)")
		}

		tt, err := sim.LoadTransitionTable(cfg.TransitionsFile)
		if err != nil {
			logrus.Fatalf("failed to load transitions: %v", err)
		}

		payoff, err := cfg.Payoff.Build()
		if err != nil {
			logrus.Fatalf("failed to build payoff: %v", err)
		}

		key := sim.NewSimulationKey(cfg.Engine.Seed)
		if cfg.Engine.Seed == 0 {
			key = sim.NewEntropySimulationKey()
		}
		engine := sim.NewEngine(tt, payoff, cfg.Engine.Simulations, key)

		if tl := trace.TraceLevel(traceLevel); tl != trace.TraceLevelNone && tl != "" {
			engine.Trace = trace.NewStepTrace(trace.TraceConfig{
				Level:      trace.TraceLevel(traceLevel),
				PathFilter: tracePathFilter,
			})
		}

		origin := sim.Origin{
			State:     cfg.Origin.State,
			Age:       cfg.Origin.Age,
			DurState:  cfg.Origin.DurState,
			DurSinceB: cfg.Origin.DurSinceB,
		}

		var stepper sim.Stepper = sim.NewExactStepper(tt)
		if cfg.Engine.LUTBuckets > 0 {
			stepper = sim.NewLUTStepper(tt, sim.BuildLUT(tt, cfg.Engine.LUTBuckets))
		}

		logrus.Infof("running: M=%d T=%d moment=%d origin=%s lutBuckets=%d parallel=%v",
			cfg.Engine.Simulations, cfg.Engine.Steps, cfg.Engine.Moment, cfg.Origin.State,
			cfg.Engine.LUTBuckets, cfg.Engine.Parallel)

		var cashflows map[string][]float64
		if cfg.Engine.Parallel && engine.Trace == nil {
			workers := cfg.Engine.Workers
			if workers < 1 {
				workers = runtime.GOMAXPROCS(0)
			}
			cashflows, err = engine.GetCashflowParallel(cfg.Engine.Moment, cfg.Engine.Steps, origin, stepper, workers)
		} else {
			if cfg.Engine.Parallel {
				logrus.Warn("ignoring engine.parallel: step tracing only records on the sequential path")
			}
			cashflows, err = engine.GetCashflow(cfg.Engine.Moment, cfg.Engine.Steps, origin, stepper)
		}
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		if cfg.EmitPath != "" {
			if err := sim.EmitCashflow(cfg.EmitPath, cashflows); err != nil {
				logrus.Fatalf("failed to emit cashflow: %v", err)
			}
			logrus.Infof("wrote cashflow matrix to %s", cfg.EmitPath)
		}

		sim.Summarize(cashflows).Print()

		if engine.Trace != nil {
			summary := trace.Summarize(engine.Trace)
			logrus.Infof("trace: %d steps recorded across %d distinct target states",
				summary.TotalSteps, summary.UniqueStates)
		}
	},
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML run config, layered under CLI flags")
	runCmd.Flags().StringVar(&transitionsFile, "transitions", "", "Path to the ';'-delimited transition table file")
	runCmd.Flags().StringVar(&originState, "origin-state", "", "Name of the state every path starts in")
	runCmd.Flags().Uint32Var(&age0, "age0", 0, "Initial age duration")
	runCmd.Flags().Uint32Var(&durState0, "dur-state0", 0, "Initial dur-in-state duration")
	runCmd.Flags().Uint32Var(&durSinceB0, "dur-since-b0", 0, "Initial dur-since-B duration")
	runCmd.Flags().IntVar(&steps, "steps", 0, "Number of discrete time steps T")
	runCmd.Flags().IntVar(&moment, "moment", 0, "Exponent applied to payoffs for t >= 1")
	runCmd.Flags().IntVar(&simulations, "simulations", 0, "Number of independent simulated paths M")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed; 0 uses entropy")
	runCmd.Flags().IntVar(&lutBuckets, "lut-buckets", 0, "Bucket count for the LUT stepper; 0 uses the exact stepper")
	runCmd.Flags().StringVar(&payoffConfigFile, "payoff-config", "", "Path to a standalone YAML PayoffSpec document")
	runCmd.Flags().StringVar(&emitPath, "emit", "", "Path to write the cashflow matrix to")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Step trace level (none|steps)")
	runCmd.Flags().IntVar(&tracePathFilter, "trace-path", -1, "Restrict step trace to one path index; -1 records all paths")

	runCmd.Flags().StringVar(&payoffKind, "payoff-kind", "", "Payoff kind (constant|threshold|power)")
	runCmd.Flags().Float64Var(&payoffAmount, "payoff-amount", 0, "Payoff amount (constant/threshold)")
	runCmd.Flags().Uint32Var(&payoffWaiting, "payoff-waiting-periods", 0, "Waiting periods before a threshold payoff activates")
	runCmd.Flags().Float64Var(&payoffBase, "payoff-base", 0, "Payoff base (power)")
	runCmd.Flags().IntVar(&payoffMoment, "payoff-moment", 0, "Payoff's own exponent (power)")
	runCmd.Flags().StringVar(&payoffDeadState, "payoff-dead-state", "", "State that always pays 0 (power)")

	rootCmd.AddCommand(runCmd)
}
