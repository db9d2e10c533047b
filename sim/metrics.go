package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunStatistics summarizes a finished cashflow matrix: per-column (i.e.
// per time step) mean and variance across states, echoing the original
// source's ExecutionStats.h mean/variance reporting but applied to the
// cashflow matrix rather than wall-clock timings.
type RunStatistics struct {
	States         []string
	MeanByStep     []float64
	VarianceByStep []float64
}

// Summarize computes RunStatistics over every column of cashflows except
// the reserved TotalKey, using gonum/stat for the moment computations.
func Summarize(cashflows map[string][]float64) *RunStatistics {
	states := make([]string, 0, len(cashflows))
	for name := range cashflows {
		if name == TotalKey {
			continue
		}
		states = append(states, name)
	}
	sort.Strings(states)

	if len(states) == 0 {
		return &RunStatistics{States: states}
	}

	steps := len(cashflows[states[0]])
	mean := make([]float64, steps)
	variance := make([]float64, steps)

	column := make([]float64, len(states))
	for t := 0; t < steps; t++ {
		for i, name := range states {
			column[i] = cashflows[name][t]
		}
		mean[t] = stat.Mean(column, nil)
		variance[t] = stat.Variance(column, nil)
	}

	return &RunStatistics{States: states, MeanByStep: mean, VarianceByStep: variance}
}

// Print displays a compact summary of the run: state count, step count,
// and the mean/variance of the final time step's cross-state payoffs.
func (rs *RunStatistics) Print() {
	fmt.Println("=== Cashflow Run Statistics ===")
	fmt.Printf("States observed       : %d\n", len(rs.States))
	if len(rs.MeanByStep) == 0 {
		return
	}
	last := len(rs.MeanByStep) - 1
	fmt.Printf("Steps                 : %d\n", last)
	fmt.Printf("Final-step mean       : %.6f\n", rs.MeanByStep[last])
	fmt.Printf("Final-step variance   : %.6f\n", rs.VarianceByStep[last])
}
