package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/persuasionlab/beliefshift/pkg/debate"
	"github.com/persuasionlab/beliefshift/pkg/llm"
)

// Driver iterates the proposition grid and collects results. Debates
// run strictly sequentially; each one replays its own transcript, so
// nothing is shared between them except the results slice, which is
// appended to only after a debate fully completes.
type Driver struct {
	config       Config
	orchestrator *debate.Orchestrator
	log          *logrus.Entry
}

// NewDriver wires a driver for one run. The client and config are
// passed in explicitly; the driver owns no process-wide state.
func NewDriver(client llm.Client, config Config, log *logrus.Entry) *Driver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	retry := llm.RetryOptions{
		MaxAttempts: config.MaxAttempts,
		Backoff:     config.Backoff(),
	}
	return &Driver{
		config:       config,
		orchestrator: debate.NewOrchestrator(client, retry, log),
		log:          log,
	}
}

// Run executes the full experiment: for each proposition (shuffled),
// for each style, for each side, one debate. With ContinueOnError a
// failed debate is recorded and skipped; otherwise the first failure
// aborts the run, returning the partial results alongside the error so
// the trace collected so far is not lost.
func (d *Driver) Run(ctx context.Context, corpus *Corpus) (*Results, error) {
	results := &Results{
		RunID:     "run-" + uuid.New().String()[:8],
		Model:     d.config.Model,
		Rounds:    d.config.Rounds,
		StartedAt: time.Now(),
	}

	log := d.log.WithField("run_id", results.RunID)
	log.WithFields(logrus.Fields{
		"model":        d.config.Model,
		"rounds":       d.config.Rounds,
		"propositions": len(corpus.Propositions),
	}).Info("Starting experiment run")

	props := d.shuffled(corpus.Propositions)

	for _, prop := range props {
		for _, style := range []debate.Style{debate.StyleDefault, debate.StyleAggressive} {
			for _, side := range []bool{true, false} {
				result, err := d.orchestrator.Run(ctx, debate.Config{
					PropositionText: prop.Text,
					Side:            side,
					Style:           style,
					Rounds:          d.config.Rounds,
				})
				if err != nil {
					if !d.config.ContinueOnError {
						results.Summary = Summarize(results.Records)
						results.FinishedAt = time.Now()
						return results, fmt.Errorf("debate on %q (side=%s, style=%s): %w",
							prop.Text, debate.SideLabel(side), style, err)
					}
					log.WithFields(logrus.Fields{
						"proposition": prop.Text,
						"side":        debate.SideLabel(side),
						"style":       style,
						"error":       err.Error(),
					}).Error("Debate failed, continuing with next combination")
					results.Records = append(results.Records, ResultRecord{
						Proposition: prop.Text,
						GroundTruth: prop.GroundTruth,
						Side:        debate.SideLabel(side),
						Style:       style,
						Err:         err.Error(),
					})
					continue
				}

				results.Records = append(results.Records, ResultRecord{
					Proposition: prop.Text,
					GroundTruth: prop.GroundTruth,
					Side:        debate.SideLabel(side),
					Style:       style,
					CredStart:   result.CredStart,
					CredEnd:     result.CredEnd,
					Shift:       result.Shift(),
				})
			}
		}
	}

	results.Summary = Summarize(results.Records)
	results.FinishedAt = time.Now()
	log.WithFields(logrus.Fields{
		"records": len(results.Records),
		"groups":  len(results.Summary),
	}).Info("Experiment run complete")

	return results, nil
}

// shuffled returns a shuffled copy of the propositions. A zero seed
// derives one from the clock; a fixed seed makes the order reproducible
// for test harnesses.
func (d *Driver) shuffled(props []Proposition) []Proposition {
	seed := d.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	out := make([]Proposition, len(props))
	copy(out, props)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
