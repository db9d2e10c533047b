// Package sim implements a batched Monte Carlo simulator for a
// duration-dependent (semi-Markov) discrete-time state process, plus the
// cashflow evaluator that turns simulated paths into expected payoffs.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - transition_table.go: the loaded, immutable transition specification
//   - batch_state.go: per-path current state and duration counters
//   - stepper.go: the exact stepping algorithm (cumulative search)
//   - lut.go: the bucketed lookup-table stepping algorithm
//   - engine.go: the Monte Carlo driver that ties everything together
//
// # Architecture
//
// A TransitionTable is loaded once from a delimited file and never
// mutated again. An Engine owns a BatchState for the duration of a single
// run, drives it with a Stepper (Exact or LUT), and accumulates payoffs
// into a cashflow matrix. Payoff is the single extension point consumers
// implement to plug in their own cashflow logic.
//
// Sub-packages:
//   - sim/trace/: optional per-step decision recording
//
package sim
