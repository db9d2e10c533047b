package trace

// TraceSummary aggregates statistics from a StepTrace.
type TraceSummary struct {
	TotalSteps        int
	UniqueStates      int
	StateDistribution map[string]int // target state name -> count of arrivals
}

// Summarize computes aggregate statistics from a StepTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *StepTrace) *TraceSummary {
	summary := &TraceSummary{
		StateDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalSteps = len(st.Steps)
	for _, s := range st.Steps {
		summary.StateDistribution[s.ToState]++
	}
	summary.UniqueStates = len(summary.StateDistribution)

	return summary
}
