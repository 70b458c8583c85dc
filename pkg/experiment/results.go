package experiment

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/persuasionlab/beliefshift/pkg/debate"
)

// ResultRecord is the outcome of one debate. Created once per
// (proposition, style, side) combination and never mutated.
type ResultRecord struct {
	Proposition string       `json:"proposition"`
	GroundTruth GroundTruth  `json:"ground_truth"`
	Side        string       `json:"side"`
	Style       debate.Style `json:"style"`
	CredStart   float64      `json:"cred_start"`
	CredEnd     float64      `json:"cred_end"`
	Shift       float64      `json:"shift"`
	Err         string       `json:"error,omitempty"`
}

// Failed reports whether this record holds a failure instead of a
// measurement (continue-on-error mode only).
func (r ResultRecord) Failed() bool {
	return r.Err != ""
}

// Results is the full document of one experiment run: every record in
// debate order plus the grouped summary. This is the run's sole
// deliverable.
type Results struct {
	RunID      string         `json:"run_id"`
	Model      string         `json:"model"`
	Rounds     int            `json:"rounds"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Records    []ResultRecord `json:"records"`
	Summary    []GroupSummary `json:"summary"`
}

// WriteFile exports the results document as indented JSON.
func (r *Results) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results file: %w", err)
	}
	return nil
}
