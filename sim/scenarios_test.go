package sim

import (
	"errors"
	"testing"

	"github.com/inference-sim/inference-sim/sim/internal/testutil"
)

// TestRunScenarios_IsolatesUniformStreamPerScenario confirms the doc
// comment's own claim: running the same parameters twice through
// RunScenarios at different indices draws from independent RNG
// subsystems (SubsystemInstance(0) vs SubsystemInstance(1)), so the two
// results diverge even though every input is identical. It also checks
// that each result matches calling getCashflowWithSubsystem directly
// with the same SubsystemInstance key, confirming RunScenarios doesn't
// silently share state across scenarios.
func TestRunScenarios_IsolatesUniformStreamPerScenario(t *testing.T) {
	csv := "A;A\nA;B\nstate;state\n0.5;0.5\n"
	path := testutil.WriteTransitionsFile(t, csv)
	tt, err := LoadTransitionTable(path)
	if err != nil {
		t.Fatalf("LoadTransitionTable: %v", err)
	}

	engine := NewEngine(tt, ConstantPayoff{Amount: 1}, 200, NewSimulationKey(99))

	sc := Scenario{Moment: 1, Steps: 5, Origin: Origin{State: "A"}, Stepper: NewExactStepper(tt)}
	results := engine.RunScenarios([]Scenario{sc, sc})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("scenario %q: unexpected error %v", r.Name, r.Err)
		}
	}

	if floatSlicesEqual(results[0].Cashflows["B"], results[1].Cashflows["B"]) {
		t.Fatal("expected identical scenarios at different indices to diverge (isolated uniform streams), got identical cashflows")
	}

	for i, r := range results {
		direct, err := engine.getCashflowWithSubsystem(SubsystemInstance(i), sc.Moment, sc.Steps, sc.Origin, sc.Stepper)
		if err != nil {
			t.Fatalf("getCashflowWithSubsystem(%d): %v", i, err)
		}
		for name, wantVec := range direct {
			gotVec, ok := r.Cashflows[name]
			if !ok {
				t.Fatalf("scenario %d: missing state %q", i, name)
			}
			for j, w := range wantVec {
				testutil.AssertFloat64Equal(t, name, w, gotVec[j], 1e-12)
			}
		}
	}
}

// TestRunScenarios_EachScenarioKeepsItsOwnParameters confirms distinct
// per-scenario moment/steps/origin aren't conflated across the sweep.
func TestRunScenarios_EachScenarioKeepsItsOwnParameters(t *testing.T) {
	path := testutil.WriteTransitionsFile(t, "A\nA\nstate\n1.0\n")
	tt, err := LoadTransitionTable(path)
	if err != nil {
		t.Fatalf("LoadTransitionTable: %v", err)
	}

	engine := NewEngine(tt, durationPlusOnePayoff{}, 1, NewSimulationKey(1))

	scenarios := []Scenario{
		{Name: "short", Moment: 1, Steps: 2, Origin: Origin{State: "A"}, Stepper: NewExactStepper(tt)},
		{Name: "long", Moment: 1, Steps: 5, Origin: Origin{State: "A"}, Stepper: NewExactStepper(tt)},
	}
	results := engine.RunScenarios(scenarios)

	if len(results[0].Cashflows["A"]) != 3 {
		t.Errorf("scenario %q: expected 3 steps, got %d", results[0].Name, len(results[0].Cashflows["A"]))
	}
	if len(results[1].Cashflows["A"]) != 6 {
		t.Errorf("scenario %q: expected 6 steps, got %d", results[1].Name, len(results[1].Cashflows["A"]))
	}
	if results[0].Name != "short" || results[1].Name != "long" {
		t.Errorf("expected result names to preserve scenario order, got %q, %q", results[0].Name, results[1].Name)
	}
}

// TestRunScenarios_PropagatesPerScenarioError confirms one scenario's
// unknown origin surfaces as that result's Err without aborting the
// rest of the sweep.
func TestRunScenarios_PropagatesPerScenarioError(t *testing.T) {
	path := testutil.WriteTransitionsFile(t, "A\nB\nstate\n1.0\n")
	tt, err := LoadTransitionTable(path)
	if err != nil {
		t.Fatalf("LoadTransitionTable: %v", err)
	}

	engine := NewEngine(tt, ConstantPayoff{Amount: 1}, 1, NewSimulationKey(1))

	scenarios := []Scenario{
		{Name: "bad", Moment: 1, Steps: 1, Origin: Origin{State: "Z"}, Stepper: NewExactStepper(tt)},
		{Name: "good", Moment: 1, Steps: 1, Origin: Origin{State: "A"}, Stepper: NewExactStepper(tt)},
	}
	results := engine.RunScenarios(scenarios)

	if !errors.Is(results[0].Err, ErrUnknownState) {
		t.Errorf("expected ErrUnknownState for scenario %q, got %v", results[0].Name, results[0].Err)
	}
	if results[1].Err != nil {
		t.Errorf("expected no error for scenario %q, got %v", results[1].Name, results[1].Err)
	}
	if results[1].Cashflows == nil {
		t.Errorf("expected cashflows for scenario %q", results[1].Name)
	}
}

func floatSlicesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
