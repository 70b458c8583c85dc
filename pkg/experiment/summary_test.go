package experiment

import (
	"math"
	"testing"

	"github.com/persuasionlab/beliefshift/pkg/debate"
)

func TestSummarize(t *testing.T) {
	records := []ResultRecord{
		{Proposition: "a", GroundTruth: GroundTruthFalse, Side: "true", Style: debate.StyleDefault, Shift: 10},
		{Proposition: "b", GroundTruth: GroundTruthFalse, Side: "true", Style: debate.StyleDefault, Shift: 20},
		{Proposition: "c", GroundTruth: GroundTruthUnknown, Side: "false", Style: debate.StyleAggressive, Shift: 5},
		{Proposition: "d", GroundTruth: GroundTruthFalse, Side: "true", Style: debate.StyleDefault, Err: "debate on d: 503 overloaded"},
	}

	summaries := Summarize(records)
	if len(summaries) != 2 {
		t.Fatalf("got %d groups, want 2", len(summaries))
	}

	// Sorted by key: "false" sorts before "unknown".
	first := summaries[0]
	if first.GroundTruth != GroundTruthFalse || first.Side != "true" || first.Style != debate.StyleDefault {
		t.Errorf("first group key = (%s, %s, %s)", first.GroundTruth, first.Side, first.Style)
	}
	if first.Count != 2 {
		t.Errorf("first group count = %d, want 2 (failed record excluded)", first.Count)
	}
	if first.MeanShift != 15.0 {
		t.Errorf("first group mean = %v, want 15", first.MeanShift)
	}
	// Sample stddev of {10, 20}.
	if want := math.Sqrt(50); math.Abs(first.StdDev-want) > 1e-9 {
		t.Errorf("first group stddev = %v, want %v", first.StdDev, want)
	}

	second := summaries[1]
	if second.GroundTruth != GroundTruthUnknown || second.Count != 1 {
		t.Errorf("second group = (%s, count=%d), want (unknown, 1)", second.GroundTruth, second.Count)
	}
	if second.MeanShift != 5.0 {
		t.Errorf("second group mean = %v, want 5", second.MeanShift)
	}
	if second.StdDev != 0.0 {
		t.Errorf("singleton group stddev = %v, want 0", second.StdDev)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("Summarize(nil) returned %d groups, want 0", len(got))
	}

	failed := []ResultRecord{{Proposition: "a", Err: "boom"}}
	if got := Summarize(failed); len(got) != 0 {
		t.Errorf("all-failed records produced %d groups, want 0", len(got))
	}
}
