// Package testutil provides shared test infrastructure for the
// semi-Markov simulator: golden scenario fixtures and tolerance-based
// float assertions used across sim/ test files.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is one deterministic Monte Carlo scenario with its
// expected cashflow matrix.
type GoldenScenario struct {
	Name             string               `json:"name"`
	TransitionsCSV   string               `json:"transitions_csv"`
	OriginState      string               `json:"origin_state"`
	OriginAge        uint32               `json:"origin_age"`
	OriginDurState   uint32               `json:"origin_dur_state"`
	OriginDurSinceB  uint32               `json:"origin_dur_since_b"`
	Simulations      int                  `json:"simulations"`
	Steps            int                  `json:"steps"`
	Moment           int                  `json:"moment"`
	PayoffAmount     float64              `json:"payoff_amount"`
	ExpectedCashflow map[string][]float64 `json:"expected_cashflow"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to sim/testdata/.
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", "golden.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// WriteTransitionsFile writes a transition table CSV to a temp file
// under t's test directory and returns its path.
func WriteTransitionsFile(t *testing.T, csvBody string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "transitions.csv")
	if err := os.WriteFile(path, []byte(csvBody), 0o644); err != nil {
		t.Fatalf("failed to write transitions file: %v", err)
	}
	return path
}
