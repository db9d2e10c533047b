package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/inference-sim/sim"
)

// loadRunConfig loads a RunConfig from a YAML file when configPath is
// non-empty, otherwise starts from sim.DefaultEngineConfig() so a run
// driven purely by CLI flags still gets sane defaults.
func loadRunConfig(configPath string) *sim.RunConfig {
	if configPath == "" {
		return &sim.RunConfig{Engine: sim.DefaultEngineConfig()}
	}
	cfg, err := sim.LoadRunConfig(configPath)
	if err != nil {
		logrus.Fatalf("failed to load run config %s: %v", configPath, err)
	}
	return cfg
}

// loadPayoffSpec reads a standalone YAML PayoffSpec document, for callers
// who want the payoff defined separately from the rest of a run config.
func loadPayoffSpec(path string) sim.PayoffSpec {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("failed to read payoff config %s: %v", path, err)
	}
	var spec sim.PayoffSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		logrus.Fatalf("failed to parse payoff config %s: %v", path, err)
	}
	return spec
}

// applyRunFlagOverrides layers explicitly-set CLI flags on top of cfg,
// which may have come from --config, from defaults, or both. Only flags
// the user actually set (Flags().Changed) override the config document,
// so a partially-specified YAML run config plus a couple of ad hoc flags
// compose cleanly.
func applyRunFlagOverrides(cmd *cobra.Command, cfg *sim.RunConfig) {
	flags := cmd.Flags()

	if flags.Changed("transitions") {
		cfg.TransitionsFile = transitionsFile
	}
	if flags.Changed("origin-state") {
		cfg.Origin.State = originState
	}
	if flags.Changed("age0") {
		cfg.Origin.Age = age0
	}
	if flags.Changed("dur-state0") {
		cfg.Origin.DurState = durState0
	}
	if flags.Changed("dur-since-b0") {
		cfg.Origin.DurSinceB = durSinceB0
	}
	if flags.Changed("steps") {
		cfg.Engine.Steps = steps
	}
	if flags.Changed("moment") {
		cfg.Engine.Moment = moment
	}
	if flags.Changed("simulations") {
		cfg.Engine.Simulations = simulations
	}
	if flags.Changed("seed") {
		cfg.Engine.Seed = seed
	}
	if flags.Changed("lut-buckets") {
		cfg.Engine.LUTBuckets = lutBuckets
	}
	if flags.Changed("emit") {
		cfg.EmitPath = emitPath
	}

	if payoffConfigFile != "" {
		cfg.Payoff = loadPayoffSpec(payoffConfigFile)
	}
	if flags.Changed("payoff-kind") {
		cfg.Payoff.Kind = sim.PayoffKind(payoffKind)
	}
	if flags.Changed("payoff-amount") {
		cfg.Payoff.Amount = payoffAmount
	}
	if flags.Changed("payoff-waiting-periods") {
		cfg.Payoff.WaitingPeriods = payoffWaiting
	}
	if flags.Changed("payoff-base") {
		cfg.Payoff.Base = payoffBase
	}
	if flags.Changed("payoff-moment") {
		cfg.Payoff.Moment = payoffMoment
	}
	if flags.Changed("payoff-dead-state") {
		cfg.Payoff.DeadState = payoffDeadState
	}
}
