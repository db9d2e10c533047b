package sim

// BatchState holds, for M independent simulated paths, the current state
// and the three duration counters. It is owned exclusively by an Engine
// for the lifetime of a single run and is reinitialized at the start of
// every call to GetCashflow.
type BatchState struct {
	CurState   []StateID
	Age        []uint32
	DurInState []uint32
	DurSinceB  []uint32
}

// NewBatchState allocates a BatchState for M paths.
func NewBatchState(m int) *BatchState {
	return &BatchState{
		CurState:   make([]StateID, m),
		Age:        make([]uint32, m),
		DurInState: make([]uint32, m),
		DurSinceB:  make([]uint32, m),
	}
}

// Len returns M, the number of paths.
func (bs *BatchState) Len() int {
	return len(bs.CurState)
}

// Initialize sets every path to identical origin values.
func (bs *BatchState) Initialize(origin StateID, age, durState, durSinceB uint32) {
	for i := range bs.CurState {
		bs.CurState[i] = origin
		bs.Age[i] = age
		bs.DurInState[i] = durState
		bs.DurSinceB[i] = durSinceB
	}
}
