package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig groups the numeric parameters of a single Monte Carlo run.
type EngineConfig struct {
	Moment      int   `yaml:"moment"`      // exponent applied to payoffs for t >= 1
	Steps       int   `yaml:"steps"`       // horizon T
	Simulations int   `yaml:"simulations"` // M, number of independent paths
	Seed        int64 `yaml:"seed"`        // master seed; 0 means "use entropy"
	LUTBuckets  int   `yaml:"lutBuckets"`  // 0 disables the LUT stepper
	Parallel    bool  `yaml:"parallel"`    // shard the M dimension across workers
	Workers     int   `yaml:"workers"`     // 0 means GOMAXPROCS
}

// OriginConfig groups the identical starting point every path resets to.
type OriginConfig struct {
	State     string `yaml:"state"`
	Age       uint32 `yaml:"age"`
	DurState  uint32 `yaml:"durState"`
	DurSinceB uint32 `yaml:"durSinceB"`
}

// PayoffKind selects a PayoffSpec's concrete Payoff variant.
type PayoffKind string

const (
	PayoffConstant  PayoffKind = "constant"
	PayoffThreshold PayoffKind = "threshold"
	PayoffPower     PayoffKind = "power"
)

// PayoffSpec is a YAML-decodable tagged union over the concrete Payoff
// variants of payoff.go, letting a run's payoff be fully specified in
// config rather than wired in Go code.
type PayoffSpec struct {
	Kind PayoffKind `yaml:"kind"`

	Amount         float64 `yaml:"amount,omitempty"`
	WaitingPeriods uint32  `yaml:"waitingPeriods,omitempty"`
	Base           float64 `yaml:"base,omitempty"`
	Moment         int     `yaml:"moment,omitempty"`
	DeadState      string  `yaml:"deadState,omitempty"`
}

// Build materializes the configured Payoff.
func (s PayoffSpec) Build() (Payoff, error) {
	switch s.Kind {
	case PayoffConstant:
		return ConstantPayoff{Amount: s.Amount}, nil
	case PayoffThreshold:
		return ThresholdPayoff{Amount: s.Amount, WaitingPeriods: s.WaitingPeriods}, nil
	case PayoffPower:
		return PowerPayoff{Base: s.Base, Moment: s.Moment, DeadState: s.DeadState}, nil
	default:
		return nil, fmt.Errorf("unknown payoff kind %q", s.Kind)
	}
}

// RunConfig is the full YAML document a `simmc run` invocation can be
// driven from, layering over any CLI flags the caller also supplies.
type RunConfig struct {
	TransitionsFile string       `yaml:"transitionsFile"`
	Origin          OriginConfig `yaml:"origin"`
	Engine          EngineConfig `yaml:"engine"`
	Payoff          PayoffSpec   `yaml:"payoff"`
	EmitPath        string       `yaml:"emitPath,omitempty"`
}

// DefaultEngineConfig returns the conservative defaults used when a run
// config omits the engine block entirely.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Moment:      1,
		Steps:       120,
		Simulations: 10000,
		Seed:        0,
		LUTBuckets:  0,
		Parallel:    false,
		Workers:     0,
	}
}

// LoadRunConfig reads a RunConfig from a YAML file, filling in
// DefaultEngineConfig for any engine fields the document omits. Fields
// the document sets explicitly, including to zero, keep that value.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config %s: %w", path, err)
	}

	cfg := &RunConfig{Engine: DefaultEngineConfig()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, nil
}
