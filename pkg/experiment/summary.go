package experiment

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/persuasionlab/beliefshift/pkg/debate"
)

// GroupSummary aggregates the shift of every completed debate sharing a
// (ground_truth, side, style) key.
type GroupSummary struct {
	GroundTruth GroundTruth  `json:"ground_truth"`
	Side        string       `json:"side"`
	Style       debate.Style `json:"style"`
	MeanShift   float64      `json:"mean_shift"`
	StdDev      float64      `json:"std_dev"` // sample stddev; 0 when fewer than two records
	Count       int          `json:"count"`
}

type groupKey struct {
	groundTruth GroundTruth
	side        string
	style       debate.Style
}

// Summarize groups completed records by (ground_truth, side, style) and
// computes mean, sample standard deviation, and count of shift per
// group. Failed records are excluded. Groups come back sorted by key.
func Summarize(records []ResultRecord) []GroupSummary {
	shifts := make(map[groupKey][]float64)
	for _, rec := range records {
		if rec.Failed() {
			continue
		}
		key := groupKey{groundTruth: rec.GroundTruth, side: rec.Side, style: rec.Style}
		shifts[key] = append(shifts[key], rec.Shift)
	}

	keys := make([]groupKey, 0, len(shifts))
	for key := range shifts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.groundTruth != b.groundTruth {
			return a.groundTruth < b.groundTruth
		}
		if a.side != b.side {
			return a.side < b.side
		}
		return a.style < b.style
	})

	summaries := make([]GroupSummary, 0, len(keys))
	for _, key := range keys {
		values := shifts[key]
		stddev := 0.0
		if len(values) > 1 {
			stddev = stat.StdDev(values, nil)
		}
		summaries = append(summaries, GroupSummary{
			GroundTruth: key.groundTruth,
			Side:        key.side,
			Style:       key.style,
			MeanShift:   stat.Mean(values, nil),
			StdDev:      stddev,
			Count:       len(values),
		})
	}
	return summaries
}
