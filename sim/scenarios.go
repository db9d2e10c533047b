package sim

import "math"

// Scenario is one named parameter combination to evaluate in a sweep.
type Scenario struct {
	Name    string
	Moment  int
	Steps   int
	Origin  Origin
	Stepper Stepper
}

// ScenarioResult pairs a Scenario's name with its cashflow matrix.
type ScenarioResult struct {
	Name      string
	Cashflows map[string][]float64
	Err       error
}

// RunScenarios runs GetCashflow once per scenario, giving each scenario
// its own RNG subsystem (derived from the Engine's master key) so
// scenario sweeps don't perturb each other's uniform matrices. This is
// a convenience orchestration layer, not a change to the single-run
// contract.
func (e *Engine) RunScenarios(scenarios []Scenario) []ScenarioResult {
	results := make([]ScenarioResult, len(scenarios))

	for i, sc := range scenarios {
		scoped := &Engine{
			TT:     e.TT,
			Payoff: e.Payoff,
			M:      e.M,
			RNG:    e.RNG,
		}
		cashflows, err := scoped.getCashflowWithSubsystem(
			SubsystemInstance(i), sc.Moment, sc.Steps, sc.Origin, sc.Stepper)
		results[i] = ScenarioResult{Name: sc.Name, Cashflows: cashflows, Err: err}
	}

	return results
}

// getCashflowWithSubsystem is GetCashflow generalized over the RNG
// subsystem name, so RunScenarios can isolate each scenario's uniform
// matrix while GetCashflow itself keeps the simple, backward-compatible
// single-subsystem path.
func (e *Engine) getCashflowWithSubsystem(subsystem string, moment, steps int, origin Origin, stepper Stepper) (map[string][]float64, error) {
	sid, ok := e.TT.Lookup(origin.State)
	if !ok {
		return nil, makeErr(ErrUnknownState, "%q", origin.State)
	}

	bs := NewBatchState(e.M)
	bs.Initialize(sid, origin.Age, origin.DurState, origin.DurSinceB)

	uniforms := e.RNG.GenerateUniforms(subsystem, steps, e.M)

	sums := make(map[string][]float64)
	totalSums := make([]float64, steps+1)

	accumulate := func(t int) {
		for i := 0; i < e.M; i++ {
			name := e.TT.StateName(bs.CurState[i])
			pv := e.Payoff.Evaluate(name, bs.DurInState[i])
			if t >= 1 {
				pv = math.Pow(pv, float64(moment))
			}
			vec, ok := sums[name]
			if !ok {
				vec = make([]float64, steps+1)
				sums[name] = vec
			}
			vec[t] += pv
			totalSums[t] += pv
		}
	}

	accumulate(0)
	for t := 1; t <= steps; t++ {
		stepper.Step(bs, uniforms[t-1])
		if e.Trace != nil {
			e.recordStep(t, bs, uniforms[t-1])
		}
		accumulate(t)
	}

	cashflows := make(map[string][]float64, len(sums)+1)
	for name, vec := range sums {
		avg := make([]float64, steps+1)
		for t := range avg {
			avg[t] = vec[t] / float64(e.M)
		}
		cashflows[name] = avg
	}

	totalAvg := make([]float64, steps+1)
	for t := range totalAvg {
		totalAvg[t] = totalSums[t] / float64(e.M)
	}
	cashflows[TotalKey] = totalAvg

	return cashflows, nil
}
