package sim

// LUT is a precomputed bucketed inverse-CDF table that collapses the
// inner cumulative search of the exact stepper to a single index lookup.
// It ignores the duration dimension beyond duration index 0 by
// construction — see the LUTStepper doc comment on how it diverges from
// ExactStepper.
type LUT struct {
	Buckets int
	// Table is flat, indexed (s*MaxDurationType+dt)*Buckets+bucket.
	Table []StateID
}

// BuildLUT computes the bucketed arrow table for every non-absorbing
// state of tt.
func BuildLUT(tt *TransitionTable, buckets int) *LUT {
	lut := &LUT{
		Buckets: buckets,
		Table:   make([]StateID, tt.NumStates()*MaxDurationType*buckets),
	}

	for s := 0; s < tt.NumStates(); s++ {
		sid := StateID(s)
		b, e := tt.Outgoing(sid)
		if b == e {
			continue // absorbing: no row to build
		}

		dt := tt.StateDType[sid]
		n := e - b

		probs := make([]float64, n)
		total := 0.0
		for k := 0; k < n; k++ {
			p := tt.ProbAt(b+k, 0)
			probs[k] = p
			total += p
		}

		cdf := make([]float64, n)
		running := 0.0
		for k := 0; k < n; k++ {
			p := probs[k]
			if total > 0 {
				p /= total
			}
			running += p
			cdf[k] = running
		}

		base := (s*MaxDurationType + int(dt)) * buckets
		for u := 0; u < buckets; u++ {
			ru := float64(u+1) / float64(buckets)
			chosen := tt.Transitions[e-1].To // fallback: last, if none satisfy
			for k := 0; k < n; k++ {
				if ru <= cdf[k] {
					chosen = tt.Transitions[b+k].To
					break
				}
			}
			lut.Table[base+u] = chosen
		}
	}

	return lut
}

// LUTStepper implements the bucketed-lookup algorithm. It is NOT a
// drop-in substitute for ExactStepper when outgoing probabilities vary
// by duration: it always reads the duration-0 slice.
type LUTStepper struct {
	TT  *TransitionTable
	LUT *LUT
}

// NewLUTStepper binds a precomputed LUT to its source table.
func NewLUTStepper(tt *TransitionTable, lut *LUT) *LUTStepper {
	return &LUTStepper{TT: tt, LUT: lut}
}

// Step implements Stepper.
func (st *LUTStepper) Step(bs *BatchState, uniforms []float64) {
	tt := st.TT
	lut := st.LUT
	buckets := lut.Buckets

	for i := 0; i < bs.Len(); i++ {
		s := bs.CurState[i]
		b, e := tt.Outgoing(s)
		if b == e {
			updateCounters(bs, i, tt, s, s)
			continue
		}

		idx := int(uniforms[i] * float64(buckets))
		if idx < 0 {
			idx = 0
		}
		if idx >= buckets {
			idx = buckets - 1
		}

		dt := tt.StateDType[s]
		base := (int(s)*MaxDurationType + int(dt)) * buckets
		to := lut.Table[base+idx]

		updateCounters(bs, i, tt, s, to)
	}
}
