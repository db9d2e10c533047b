package sim

import "math"

// Payoff is a pure observer from (state name, time-in-state duration) to
// a real-valued cashflow contribution. The engine passes the path's
// dur-in-state counter, never the absolute step index. Implementations
// MUST be pure and thread-safe for use under a parallel stepper.
type Payoff interface {
	Evaluate(stateName string, duration uint32) float64
}

// ConstantPayoff returns a fixed Amount regardless of state or duration.
type ConstantPayoff struct {
	Amount float64
}

// Evaluate implements Payoff.
func (p ConstantPayoff) Evaluate(string, uint32) float64 {
	return p.Amount
}

// ThresholdPayoff is the "constant-above-waiting" variant: it pays a
// fixed Amount once duration reaches WaitingPeriods, and 0 before that.
type ThresholdPayoff struct {
	Amount         float64
	WaitingPeriods uint32
}

// Evaluate implements Payoff.
func (p ThresholdPayoff) Evaluate(_ string, duration uint32) float64 {
	if duration < p.WaitingPeriods {
		return 0
	}
	return p.Amount
}

// PowerPayoff returns Base^Moment for every state except DeadState,
// which always pays 0. A Moment of 0 or less pays 0 in every state
// (not Base^0). Moment here is the payoff's own configured
// exponent, independent of the moment the engine itself raises the
// returned value to in GetCashflow (see DESIGN.md for how this was
// decided).
type PowerPayoff struct {
	Base      float64
	Moment    int
	DeadState string
}

// Evaluate implements Payoff.
func (p PowerPayoff) Evaluate(stateName string, _ uint32) float64 {
	if p.Moment <= 0 {
		return 0
	}
	if stateName == p.DeadState {
		return 0
	}
	return math.Pow(p.Base, float64(p.Moment))
}

// MultiPayoff dispatches to a per-state Payoff, falling back to Default
// for any state not present in ByState. It lets one engine mix payoff
// kinds across states, per the "Polymorphic payoff" design note.
type MultiPayoff struct {
	ByState map[string]Payoff
	Default Payoff
}

// Evaluate implements Payoff.
func (p MultiPayoff) Evaluate(stateName string, duration uint32) float64 {
	if po, ok := p.ByState[stateName]; ok {
		return po.Evaluate(stateName, duration)
	}
	if p.Default != nil {
		return p.Default.Evaluate(stateName, duration)
	}
	return 0
}
