package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/inference-sim/inference-sim/sim"
)

func TestLoadRunConfig_EmptyPath_ReturnsDefaults(t *testing.T) {
	cfg := loadRunConfig("")
	if cfg.Engine != sim.DefaultEngineConfig() {
		t.Errorf("Engine = %+v, want defaults", cfg.Engine)
	}
	if cfg.TransitionsFile != "" {
		t.Errorf("TransitionsFile = %q, want empty", cfg.TransitionsFile)
	}
}

func TestLoadPayoffSpec_ReadsYAMLDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payoff.yaml")
	body := "kind: threshold\namount: 7\nwaitingPeriods: 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	spec := loadPayoffSpec(path)
	if spec.Kind != sim.PayoffThreshold || spec.Amount != 7 || spec.WaitingPeriods != 2 {
		t.Errorf("spec = %+v", spec)
	}
}

// newChangedOnly builds a *cobra.Command with an independent flag set
// (never shared with the package-level runCmd) where exactly the named
// flags report Changed() == true. applyRunFlagOverrides only consults
// Changed() on this command; the override values themselves come from
// the package-level flag-bound variables, which the caller sets directly.
func newChangedOnly(names ...string) *cobra.Command {
	c := &cobra.Command{Use: "run"}
	for _, n := range names {
		c.Flags().String(n, "", "")
		_ = c.Flags().Set(n, "x")
	}
	return c
}

func TestApplyRunFlagOverrides_OnlyChangedFlagsOverride(t *testing.T) {
	cfg := &sim.RunConfig{
		TransitionsFile: "from-config.csv",
		Engine:          sim.DefaultEngineConfig(),
	}
	cfg.Engine.Steps = 50

	oldSteps := steps
	steps = 10
	defer func() { steps = oldSteps }()

	applyRunFlagOverrides(newChangedOnly("steps"), cfg)

	if cfg.Engine.Steps != 10 {
		t.Errorf("Engine.Steps = %d, want 10 (flag explicitly set)", cfg.Engine.Steps)
	}
	if cfg.TransitionsFile != "from-config.csv" {
		t.Errorf("TransitionsFile = %q, want unchanged (flag not set)", cfg.TransitionsFile)
	}
}

func TestApplyRunFlagOverrides_PayoffConfigFileOverridesWholePayoff(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payoff.yaml")
	body := "kind: constant\namount: 3\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	oldPayoffConfigFile := payoffConfigFile
	payoffConfigFile = path
	defer func() { payoffConfigFile = oldPayoffConfigFile }()

	cfg := &sim.RunConfig{Engine: sim.DefaultEngineConfig()}
	cfg.Payoff = sim.PayoffSpec{Kind: sim.PayoffThreshold, Amount: 99}

	applyRunFlagOverrides(newChangedOnly(), cfg)

	if cfg.Payoff.Kind != sim.PayoffConstant || cfg.Payoff.Amount != 3 {
		t.Errorf("Payoff = %+v, want constant/3 from --payoff-config", cfg.Payoff)
	}
}
