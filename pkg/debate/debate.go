package debate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/persuasionlab/beliefshift/pkg/llm"
)

// Config fully determines one debate. Side and Style together determine
// the Arguer's system instruction.
type Config struct {
	PropositionText string
	Side            bool // arguing the proposition is true (vs false)
	Style           Style
	Rounds          int
}

// Result is the terminal output of a completed debate. No partial
// result is produced when any turn fails.
type Result struct {
	CredStart  float64
	CredEnd    float64
	Transcript *Transcript
}

// Shift returns the signed credence change attributed to the debate.
func (r Result) Shift() float64 {
	return r.CredEnd - r.CredStart
}

// Orchestrator drives the fixed-round Arguer/Target loop and the
// before/after credence measurements for one debate at a time.
type Orchestrator struct {
	client llm.Client
	retry  llm.RetryOptions
	log    *logrus.Entry
}

// NewOrchestrator creates an orchestrator. The retry options are shared
// by every remote call the orchestrator makes.
func NewOrchestrator(client llm.Client, retry llm.RetryOptions, log *logrus.Entry) *Orchestrator {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Orchestrator{client: client, retry: retry, log: log}
}

// Run executes one debate: initial credence with no history, Rounds
// pairs of Arguer-then-Target turns with the full transcript replayed
// every call, then the final credence with the complete transcript. A
// failure at any point aborts the debate with no partial result.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (Result, error) {
	debateID := "deb-" + uuid.New().String()[:8]
	sideLabel := SideLabel(cfg.Side)

	log := o.log.WithFields(logrus.Fields{
		"debate_id":   debateID,
		"proposition": cfg.PropositionText,
		"side":        sideLabel,
		"style":       cfg.Style,
		"rounds":      cfg.Rounds,
	})
	log.Info("Starting debate")

	arguerSys := DefaultArguerInstruction(cfg.PropositionText, sideLabel)
	if cfg.Style == StyleAggressive {
		arguerSys = AggressiveArguerInstruction(cfg.PropositionText, sideLabel)
	}
	targetSys := TargetInstruction()

	// Initial credence: the Target must not see any debate content, so
	// no transcript is passed at all.
	credStart, err := o.askCredence(ctx, log, cfg, PhaseInitial, nil)
	if err != nil {
		return Result{}, fmt.Errorf("initial credence: %w", err)
	}
	log.WithField("cred_start", credStart).Info("Initial credence measured")

	transcript := NewTranscript()
	for round := 1; round <= cfg.Rounds; round++ {
		roundLog := log.WithField("round", round)

		arguerInput := FirstArguerPrompt(cfg.PropositionText, sideLabel)
		if transcript.Len() > 0 {
			arguerInput = transcript.Render(nextArguerPrompt)
		}
		arguerText, err := o.generate(ctx, roundLog.WithField("speaker", SpeakerArguer), arguerSys, arguerInput)
		if err != nil {
			return Result{}, fmt.Errorf("round %d arguer turn: %w", round, err)
		}
		transcript.Append(SpeakerArguer, arguerText)

		targetInput := transcript.Render(targetTurnPrompt)
		targetText, err := o.generate(ctx, roundLog.WithField("speaker", SpeakerTarget), targetSys, targetInput)
		if err != nil {
			return Result{}, fmt.Errorf("round %d target turn: %w", round, err)
		}
		transcript.Append(SpeakerTarget, targetText)
	}

	// Final credence: the Target must see everything.
	credEnd, err := o.askCredence(ctx, log, cfg, PhaseFinal, transcript)
	if err != nil {
		return Result{}, fmt.Errorf("final credence: %w", err)
	}
	log.WithFields(logrus.Fields{
		"cred_start": credStart,
		"cred_end":   credEnd,
		"shift":      credEnd - credStart,
		"turns":      transcript.Len(),
	}).Info("Debate complete")

	return Result{CredStart: credStart, CredEnd: credEnd, Transcript: transcript}, nil
}

// askCredence elicits and parses one credence measurement. A nil
// transcript means the question is sent with no history at all.
func (o *Orchestrator) askCredence(ctx context.Context, log *logrus.Entry, cfg Config, phase Phase, transcript *Transcript) (float64, error) {
	question := CredenceQuestion(cfg.PropositionText, SideLabel(cfg.Side), phase)
	contents := question
	if transcript != nil && transcript.Len() > 0 {
		contents = transcript.Render(question)
	}

	raw, err := o.generate(ctx, log.WithField("speaker", "credence"), CredenceAskerInstruction(), contents)
	if err != nil {
		return 0, err
	}

	value, err := ParseCredence(raw)
	if err != nil {
		log.WithField("raw_response", raw).Error("Credence response did not parse")
		return 0, err
	}
	return value, nil
}

// generate issues one remote call through the retry wrapper and trims
// the returned utterance.
func (o *Orchestrator) generate(ctx context.Context, log *logrus.Entry, system, contents string) (string, error) {
	log.WithField("prompt", contents).Debug("Sending prompt")

	retry := o.retry
	retry.Logger = log
	response, err := llm.CallWithRetry(ctx, func(ctx context.Context) (string, error) {
		return o.client.Generate(ctx, system, contents)
	}, retry)
	if err != nil {
		return "", err
	}

	log.WithField("response", response).Debug("Received response")
	return strings.TrimSpace(response), nil
}
