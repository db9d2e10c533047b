package sim

import "testing"

func TestSummarize_ExcludesTotalKey(t *testing.T) {
	cashflows := map[string][]float64{
		"A":      {1, 2},
		"B":      {3, 4},
		TotalKey: {4, 6},
	}
	rs := Summarize(cashflows)
	for _, name := range rs.States {
		if name == TotalKey {
			t.Fatal("Summarize must exclude TotalKey from States")
		}
	}
	if len(rs.States) != 2 {
		t.Fatalf("got %d states, want 2", len(rs.States))
	}
}

func TestSummarize_MeanAcrossStatesPerStep(t *testing.T) {
	cashflows := map[string][]float64{
		"A":      {0, 10},
		"B":      {0, 20},
		TotalKey: {0, 30},
	}
	rs := Summarize(cashflows)
	if rs.MeanByStep[1] != 15 {
		t.Errorf("mean at step 1 = %v, want 15", rs.MeanByStep[1])
	}
}

func TestSummarize_EmptyCashflows_ReturnsEmptyStatistics(t *testing.T) {
	rs := Summarize(map[string][]float64{TotalKey: {0}})
	if len(rs.States) != 0 {
		t.Errorf("expected no states, got %v", rs.States)
	}
	if len(rs.MeanByStep) != 0 {
		t.Errorf("expected no mean values, got %v", rs.MeanByStep)
	}
}
