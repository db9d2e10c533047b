package trace

// StepRecord captures one path's post-step state at a single time step.
type StepRecord struct {
	Path      int
	Step      int
	ToState   string
	Age       uint32
	DurState  uint32
	DurSinceB uint32
	Uniform   float64
}
