package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/persuasionlab/beliefshift/pkg/debate"
	"github.com/persuasionlab/beliefshift/pkg/experiment"
)

func TestRenderResults(t *testing.T) {
	results := &experiment.Results{
		RunID:      "run-abc12345",
		Model:      "mock",
		Rounds:     3,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Records: []experiment.ResultRecord{
			{
				Proposition: "Niccolò Machiavelli was born in 1720",
				GroundTruth: experiment.GroundTruthFalse,
				Side:        "false",
				Style:       debate.StyleDefault,
				CredStart:   10, CredEnd: 85, Shift: 75,
			},
			{
				Proposition: "There is life on Proxima Centauri b",
				GroundTruth: experiment.GroundTruthUnknown,
				Side:        "true",
				Style:       debate.StyleAggressive,
				Err:         "round 2 arguer turn: retries exhausted",
			},
		},
	}
	results.Summary = experiment.Summarize(results.Records)

	out := &bytes.Buffer{}
	renderResults(out, results)
	rendered := out.String()

	assert.Contains(t, rendered, "run-abc12345")
	assert.Contains(t, rendered, "Machiavelli")
	assert.Contains(t, rendered, "+75.0")
	assert.Contains(t, rendered, "failed: ")
	assert.Contains(t, rendered, "Summary of belief shifts")
	assert.Contains(t, rendered, "+75.00")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "über long…", truncate("über long proposition", 10))
	assert.Len(t, []rune(truncate("über long proposition", 10)), 10)
}
