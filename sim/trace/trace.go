// Package trace provides per-step decision recording for the semi-Markov
// simulation engine. It has no dependency on the sim package — it stores
// pure data types and is useful for debugging a single deterministic
// path, or for the testable-property tests that assert on exact
// transition sequences.
package trace

// TraceLevel controls the verbosity of step recording.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps captures every path's transition at every step.
	TraceLevelSteps TraceLevel = "steps"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is recognized.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level      TraceLevel
	PathFilter int // if >= 0, only record this path index; -1 records all
}

// StepTrace collects StepRecords during a single Engine.GetCashflow run.
type StepTrace struct {
	Config TraceConfig
	Steps  []StepRecord
}

// NewStepTrace creates a StepTrace ready for recording.
func NewStepTrace(config TraceConfig) *StepTrace {
	return &StepTrace{
		Config: config,
		Steps:  make([]StepRecord, 0),
	}
}

// RecordStep appends a StepRecord, honoring Config.PathFilter.
func (st *StepTrace) RecordStep(record StepRecord) {
	if st.Config.PathFilter >= 0 && record.Path != st.Config.PathFilter {
		return
	}
	st.Steps = append(st.Steps, record)
}
