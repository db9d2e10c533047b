package sim

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/inference-sim/sim/trace"
)

// TotalKey is the reserved output key for the aggregate cashflow column.
// It MUST NOT collide with any state name in the loaded transition table
// (LoadTransitionTable rejects it at load time).
const TotalKey = "Total"

// Origin fixes the identical starting point every simulated path is
// reinitialized to at the start of a run.
type Origin struct {
	State     string
	Age       uint32
	DurState  uint32
	DurSinceB uint32
}

// Engine orchestrates batch initialization, uniform generation, stepping,
// payoff accumulation, and cashflow assembly.
type Engine struct {
	TT     *TransitionTable
	Payoff Payoff
	M      int

	RNG   *PartitionedRNG
	Trace *trace.StepTrace // optional; nil disables recording
}

// NewEngine constructs an Engine over an already-loaded TransitionTable.
// key seeds the RNG deterministically; pass NewEntropySimulationKey() for
// a non-deterministic run.
func NewEngine(tt *TransitionTable, payoff Payoff, m int, key SimulationKey) *Engine {
	return &Engine{
		TT:     tt,
		Payoff: payoff,
		M:      m,
		RNG:    NewPartitionedRNG(key),
	}
}

// GetCashflow runs the Monte Carlo simulation and returns a map from
// state name to a length-(steps+1) sequence of moment-adjusted mean
// payoffs, plus a reserved TotalKey aggregate.
func (e *Engine) GetCashflow(moment, steps int, origin Origin, stepper Stepper) (map[string][]float64, error) {
	cashflows, err := e.getCashflowWithSubsystem(SubsystemUniforms, moment, steps, origin, stepper)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("getCashflow: %d states populated over %d steps, M=%d", len(cashflows)-1, steps, e.M)
	return cashflows, nil
}

// GetCashflowParallel is the sharded-path variant of GetCashflow: each
// of the given number of workers steps a disjoint, contiguous slice of
// paths and accumulates into a private partial sum merged after every
// time step. Results match GetCashflow given the same uniforms matrix,
// because per-path stepping is independent within a step; only the
// floating-point summation order of the per-step sums differs.
func (e *Engine) GetCashflowParallel(moment, steps int, origin Origin, stepper Stepper, workers int) (map[string][]float64, error) {
	if workers < 1 {
		workers = 1
	}

	sid, ok := e.TT.Lookup(origin.State)
	if !ok {
		return nil, makeErr(ErrUnknownState, "%q", origin.State)
	}

	bs := NewBatchState(e.M)
	bs.Initialize(sid, origin.Age, origin.DurState, origin.DurSinceB)

	uniforms := e.RNG.GenerateUniforms(SubsystemUniforms, steps, e.M)

	sums := make(map[string][]float64)
	totalSums := make([]float64, steps+1)

	ranges := partitionRange(e.M, workers)

	accumulate := func(t int) {
		partials := make([]map[string][]float64, len(ranges))
		partialTotals := make([][]float64, len(ranges))

		var wg sync.WaitGroup
		for w, rg := range ranges {
			wg.Add(1)
			go func(w int, lo, hi int) {
				defer wg.Done()
				local := make(map[string][]float64)
				localTotal := 0.0
				for i := lo; i < hi; i++ {
					name := e.TT.StateName(bs.CurState[i])
					pv := e.Payoff.Evaluate(name, bs.DurInState[i])
					if t >= 1 {
						pv = math.Pow(pv, float64(moment))
					}
					vec, ok := local[name]
					if !ok {
						vec = make([]float64, 1)
						local[name] = vec
					}
					vec[0] += pv
					localTotal += pv
				}
				partials[w] = local
				partialTotals[w] = []float64{localTotal}
			}(w, rg[0], rg[1])
		}
		wg.Wait()

		for w := range ranges {
			for name, vec := range partials[w] {
				full, ok := sums[name]
				if !ok {
					full = make([]float64, steps+1)
					sums[name] = full
				}
				full[t] += vec[0]
			}
			totalSums[t] += partialTotals[w][0]
		}
	}

	accumulate(0)

	for t := 1; t <= steps; t++ {
		var wg sync.WaitGroup
		for _, rg := range ranges {
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				stepper.Step(&BatchState{
					CurState:   bs.CurState[lo:hi],
					Age:        bs.Age[lo:hi],
					DurInState: bs.DurInState[lo:hi],
					DurSinceB:  bs.DurSinceB[lo:hi],
				}, uniforms[t-1][lo:hi])
			}(rg[0], rg[1])
		}
		wg.Wait()
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

// partitionRange splits [0, m) into up to workers contiguous, roughly
// equal half-open ranges.
func partitionRange(m, workers int) [][2]int {
	if workers > m {
		workers = m
	}
	if workers < 1 {
		workers = 1
	}
	ranges := make([][2]int, 0, workers)
	base := m / workers
	rem := m % workers
	lo := 0
	for w := 0; w < workers; w++ {
		size := base
		if w < rem {
			size++
		}
		hi := lo + size
		ranges = append(ranges, [2]int{lo, hi})
		lo = hi
	}
	return ranges
}

// recordStep appends one StepTrace entry per path for time step t, when
// tracing is enabled. Gated on a nil check in getCashflowWithSubsystem to keep
// zero-overhead when disabled.
func (e *Engine) recordStep(t int, bs *BatchState, uniforms []float64) {
	for i := 0; i < e.M; i++ {
		e.Trace.RecordStep(trace.StepRecord{
			Path:      i,
			Step:      t,
			ToState:   e.TT.StateName(bs.CurState[i]),
			Age:       bs.Age[i],
			DurState:  bs.DurInState[i],
			DurSinceB: bs.DurSinceB[i],
			Uniform:   uniforms[i],
		})
	}
}
