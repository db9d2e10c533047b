package sim

// Stepper advances a BatchState by one discrete time step, consuming one
// uniform draw per path from uniforms (len(uniforms) == bs.Len()).
//
// Exact and LUT are deliberately distinct algorithms and a caller must
// pick one explicitly; neither silently substitutes for the other.
type Stepper interface {
	Step(bs *BatchState, uniforms []float64)
}

// ExactStepper implements the cumulative-search algorithm against a
// TransitionTable.
type ExactStepper struct {
	TT *TransitionTable
}

// NewExactStepper returns a Stepper bound to tt.
func NewExactStepper(tt *TransitionTable) *ExactStepper {
	return &ExactStepper{TT: tt}
}

// Step implements Stepper.
func (st *ExactStepper) Step(bs *BatchState, uniforms []float64) {
	tt := st.TT
	for i := 0; i < bs.Len(); i++ {
		s := bs.CurState[i] // pre-update value
		b, e := tt.Outgoing(s)

		if b == e {
			// Absorbing: still advance age and dur-in-state.
			updateCounters(bs, i, tt, s, s)
			continue
		}

		dt := tt.StateDType[s]
		d := durationValue(bs, i, dt)

		u := uniforms[i]
		cum := 0.0
		to := s // residual probability: stay, per §4.3 step 5
		for j := b; j < e; j++ {
			cum += tt.ProbAt(j, d)
			if u <= cum {
				to = tt.Transitions[j].To
				break
			}
		}

		updateCounters(bs, i, tt, s, to)
	}
}

// durationValue selects age/dur-in-state/dur-since-B per dt.
func durationValue(bs *BatchState, i int, dt DurationType) uint32 {
	switch dt {
	case DurationAge:
		return bs.Age[i]
	case DurationState:
		return bs.DurInState[i]
	case DurationVisit:
		return bs.DurSinceB[i]
	default:
		return 0
	}
}

// updateCounters advances age, dur-in-state, and dur-since-B in order,
// using the pre-update current SID s. Shared by ExactStepper and
// LUTStepper.
func updateCounters(bs *BatchState, i int, tt *TransitionTable, s, to StateID) {
	bs.Age[i]++

	if to == s {
		bs.DurInState[i]++
	} else {
		bs.DurInState[i] = 0
	}

	if tt.HasB {
		if s == tt.BID || bs.DurSinceB[i] > 0 {
			bs.DurSinceB[i]++
		}
		if to == tt.BID && s != tt.BID {
			bs.DurSinceB[i] = 0
		}
	}

	bs.CurState[i] = to
}
