package sim

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

// StateID is a dense unsigned integer assigned in order of first
// occurrence across the from/to columns of the transition file.
type StateID uint32

// TransitionRecord describes one outgoing transition column: (from, to,
// dtype, probs). Probabilities are not stored inline — they live in the
// table's packed AllProbs buffer at [Offset, Offset+Length).
type TransitionRecord struct {
	From   StateID
	To     StateID
	DType  DurationType
	Offset uint32
	Length uint32
}

// TransitionTable is the immutable, post-load semi-Markov specification.
// It is safe for concurrent read-only use once LoadTransitionTable
// returns successfully.
type TransitionTable struct {
	Names []string // SID -> state name, dense in [0, len(Names))
	index map[string]StateID

	AllProbs    []float64
	Transitions []TransitionRecord

	// StateBegin[s], StateEnd[s] give the half-open range of Transitions
	// indices whose From == s. A state with StateBegin == StateEnd is
	// absorbing.
	StateBegin []int
	StateEnd   []int

	// StateDType[s] is the shared duration type of s's outgoing
	// transitions (zero-value for absorbing states, where it is unused).
	StateDType []DurationType

	// BID is the SID of the literal state "B", and HasB reports whether
	// it exists in this table. The visit counter is inert when !HasB.
	BID  StateID
	HasB bool
}

// NumStates returns the number of distinct states, S.
func (tt *TransitionTable) NumStates() int {
	return len(tt.Names)
}

// StateName returns the name for a SID. Never hash on the hot path:
// callers that need the reverse mapping should use Lookup once at setup.
func (tt *TransitionTable) StateName(s StateID) string {
	return tt.Names[s]
}

// Lookup returns the SID for a state name, and whether it exists.
func (tt *TransitionTable) Lookup(name string) (StateID, bool) {
	id, ok := tt.index[name]
	return id, ok
}

// Outgoing returns the half-open transition-index range [b, e) for state s.
func (tt *TransitionTable) Outgoing(s StateID) (int, int) {
	return tt.StateBegin[s], tt.StateEnd[s]
}

// ProbAt returns probs[d] for transition index j, with the convention
// that d >= length contributes 0.
func (tt *TransitionTable) ProbAt(j int, d uint32) float64 {
	tr := tt.Transitions[j]
	if uint32(d) >= tr.Length {
		return 0
	}
	return tt.AllProbs[tr.Offset+d]
}

type pendingColumn struct {
	from, to StateID
	dtype    DurationType
	probs    []float64
}

// LoadTransitionTable reads a three-header-row, ';'-delimited
// transition file and builds the packed, read-only TransitionTable layout.
func LoadTransitionTable(path string) (*TransitionTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, makeErr(ErrFileUnopenable, "%s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1 // headers/rows validated by hand below

	fromRow, err := r.Read()
	if err != nil {
		return nil, makeErr(ErrMalformedHeader, "reading from-state row: %v", err)
	}
	toRow, err := r.Read()
	if err != nil {
		return nil, makeErr(ErrMalformedHeader, "reading to-state row: %v", err)
	}
	dtRow, err := r.Read()
	if err != nil {
		return nil, makeErr(ErrMalformedHeader, "reading dtype row: %v", err)
	}

	cols := len(fromRow)
	if len(toRow) != cols || len(dtRow) != cols {
		return nil, makeErr(ErrMalformedHeader,
			"column counts differ: from=%d to=%d dtype=%d", cols, len(toRow), len(dtRow))
	}

	tt := &TransitionTable{index: make(map[string]StateID)}
	columns := make([]pendingColumn, cols)
	for i := 0; i < cols; i++ {
		from := tt.internState(fromRow[i])
		to := tt.internState(toRow[i])
		dt, err := parseDurationType(dtRow[i])
		if err != nil {
			return nil, err
		}
		columns[i] = pendingColumn{from: from, to: to, dtype: dt}
	}

	rowIdx := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, makeErr(ErrMalformedRow, "row %d: %v", rowIdx, err)
		}
		if len(row) != cols {
			return nil, makeErr(ErrMalformedRow,
				"row %d has %d fields, want %d", rowIdx, len(row), cols)
		}
		for i, field := range row {
			p, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, makeErr(ErrNonNumericProbability,
					"row %d col %d %q: %v", rowIdx, i, field, err)
			}
			columns[i].probs = append(columns[i].probs, p)
		}
		rowIdx++
	}

	if err := tt.build(columns); err != nil {
		return nil, err
	}

	if id, ok := tt.index["B"]; ok {
		tt.BID, tt.HasB = id, true
	}

	logrus.Debugf("loaded transition table: %d states, %d transitions, %d duration rows",
		tt.NumStates(), len(tt.Transitions), rowIdx)

	return tt, nil
}

// internState assigns a SID to a state name on first occurrence.
func (tt *TransitionTable) internState(name string) StateID {
	if id, ok := tt.index[name]; ok {
		return id
	}
	id := StateID(len(tt.Names))
	tt.index[name] = id
	tt.Names = append(tt.Names, name)
	return id
}

// build packs the parsed columns into the flat AllProbs buffer, sorts
// transitions stably by From (preserving file order within a From, which
// is the tie-break the stepper relies on), and computes the
// StateBegin/StateEnd/StateDType auxiliary arrays. It also enforces the
// MixedDurationTypes and ErrReservedStateName invariants.
func (tt *TransitionTable) build(columns []pendingColumn) error {
	if _, ok := tt.index["Total"]; ok {
		return makeErr(ErrReservedStateName, `"Total" is a reserved output key`)
	}

	tt.Transitions = make([]TransitionRecord, len(columns))
	for i, c := range columns {
		off := uint32(len(tt.AllProbs))
		tt.AllProbs = append(tt.AllProbs, c.probs...)
		tt.Transitions[i] = TransitionRecord{
			From:   c.from,
			To:     c.to,
			DType:  c.dtype,
			Offset: off,
			Length: uint32(len(c.probs)),
		}
	}

	sort.SliceStable(tt.Transitions, func(i, j int) bool {
		return tt.Transitions[i].From < tt.Transitions[j].From
	})

	S := tt.NumStates()
	tt.StateBegin = make([]int, S)
	tt.StateEnd = make([]int, S)
	tt.StateDType = make([]DurationType, S)
	seenDType := make([]bool, S)

	for i, tr := range tt.Transitions {
		s := tr.From
		if i == 0 || tt.Transitions[i-1].From != s {
			tt.StateBegin[s] = i
		}
		tt.StateEnd[s] = i + 1

		if !seenDType[s] {
			tt.StateDType[s] = tr.DType
			seenDType[s] = true
		} else if tt.StateDType[s] != tr.DType {
			return makeErr(ErrMixedDurationTypes,
				"state %q has both %s and %s outgoing transitions",
				tt.Names[s], tt.StateDType[s], tr.DType)
		}
	}

	return nil
}
