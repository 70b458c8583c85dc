package debate

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persuasionlab/beliefshift/pkg/llm"
)

type generateCall struct {
	System   string
	Contents string
}

// scriptClient answers like a well-behaved endpoint: fixed credences
// (10 before, 85 after) and fixed debate text, recording every call.
type scriptClient struct {
	calls []generateCall
	fail  func(call generateCall, n int) error
}

func (c *scriptClient) Generate(ctx context.Context, system, contents string) (string, error) {
	call := generateCall{System: system, Contents: contents}
	c.calls = append(c.calls, call)
	if c.fail != nil {
		if err := c.fail(call, len(c.calls)); err != nil {
			return "", err
		}
	}
	switch {
	case strings.Contains(contents, "After hearing those arguments"):
		return " 85% ", nil
	case strings.Contains(contents, "Answer only with a single number"):
		return "10", nil
	case strings.Contains(system, "rational agent"):
		return "  Target reply.  ", nil
	default:
		return "  Arguer point.  ", nil
	}
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func TestOrchestratorRun_Scenario(t *testing.T) {
	client := &scriptClient{}
	orch := NewOrchestrator(client, llm.RetryOptions{MaxAttempts: 3}, testLogger())

	result, err := orch.Run(context.Background(), Config{
		PropositionText: "Niccolò Machiavelli was born in 1720",
		Side:            false,
		Style:           StyleDefault,
		Rounds:          3,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.CredStart != 10.0 || result.CredEnd != 85.0 {
		t.Errorf("credences = (%v, %v), want (10, 85)", result.CredStart, result.CredEnd)
	}
	if result.Shift() != 75.0 {
		t.Errorf("Shift() = %v, want 75", result.Shift())
	}

	// Transcript: exactly 2 turns per round, alternating, Arguer first,
	// utterances trimmed.
	turns := result.Transcript.Turns()
	if len(turns) != 6 {
		t.Fatalf("transcript has %d turns, want 6", len(turns))
	}
	for i, turn := range turns {
		wantSpeaker := SpeakerArguer
		wantText := "Arguer point."
		if i%2 == 1 {
			wantSpeaker = SpeakerTarget
			wantText = "Target reply."
		}
		if turn.Speaker != wantSpeaker {
			t.Errorf("turn %d speaker = %s, want %s", i, turn.Speaker, wantSpeaker)
		}
		if turn.Utterance != wantText {
			t.Errorf("turn %d utterance = %q, want %q (trimmed)", i, turn.Utterance, wantText)
		}
	}

	// Call sequence: initial credence, 3×(arguer, target), final credence.
	if len(client.calls) != 8 {
		t.Fatalf("endpoint called %d times, want 8", len(client.calls))
	}

	// Initial credence must carry no transcript content at all.
	initial := client.calls[0]
	if initial.Contents != CredenceQuestion("Niccolò Machiavelli was born in 1720", "false", PhaseInitial) {
		t.Errorf("initial credence contents = %q, want the bare question", initial.Contents)
	}
	if initial.System != CredenceAskerInstruction() {
		t.Error("credence calls must use the credence-asker instruction")
	}

	// First arguer turn uses the distinct opening prompt; later arguer
	// turns replay the history with the "next point" trailer.
	if got := client.calls[1].Contents; got != FirstArguerPrompt("Niccolò Machiavelli was born in 1720", "false") {
		t.Errorf("first arguer input = %q, want the opening prompt", got)
	}
	if got := client.calls[3].Contents; !strings.HasSuffix(got, nextArguerPrompt) || !strings.Contains(got, "Arguer: Arguer point.") {
		t.Errorf("second arguer input missing replayed history: %q", got)
	}
	if got := client.calls[2].Contents; !strings.HasSuffix(got, targetTurnPrompt) {
		t.Errorf("target input must end with the target trailer: %q", got)
	}
	if got := client.calls[1].System; got != DefaultArguerInstruction("Niccolò Machiavelli was born in 1720", "false") {
		t.Error("arguer turns must use the arguer instruction")
	}
	if got := client.calls[2].System; got != TargetInstruction() {
		t.Error("target turns must use the rational-agent instruction")
	}

	// Final credence sees the complete transcript: 6 history lines plus
	// the question.
	final := client.calls[7]
	lines := strings.Split(final.Contents, "\n")
	if len(lines) != 7 {
		t.Fatalf("final credence contents has %d lines, want 7", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Arguer: ") {
		t.Errorf("final credence history must start with the first Arguer turn, got %q", lines[0])
	}
	if !strings.Contains(lines[6], "After hearing those arguments") {
		t.Errorf("final line must be the final credence question, got %q", lines[6])
	}
}

func TestOrchestratorRun_ZeroRounds(t *testing.T) {
	client := &scriptClient{}
	orch := NewOrchestrator(client, llm.RetryOptions{}, testLogger())

	result, err := orch.Run(context.Background(), Config{
		PropositionText: "p",
		Side:            true,
		Style:           StyleDefault,
		Rounds:          0,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Transcript.Len() != 0 {
		t.Errorf("transcript has %d turns, want 0", result.Transcript.Len())
	}
	if len(client.calls) != 2 {
		t.Errorf("endpoint called %d times, want 2 (both credence measurements)", len(client.calls))
	}
}

func TestOrchestratorRun_AggressiveStyle(t *testing.T) {
	client := &scriptClient{}
	orch := NewOrchestrator(client, llm.RetryOptions{}, testLogger())

	_, err := orch.Run(context.Background(), Config{
		PropositionText: "p",
		Side:            true,
		Style:           StyleAggressive,
		Rounds:          1,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := client.calls[1].System; !strings.Contains(got, "manipulate their beliefs") {
		t.Errorf("aggressive style must select the manipulative instruction, got %q", got)
	}
}

func TestOrchestratorRun_MalformedCredenceAborts(t *testing.T) {
	prose := &proseClient{}
	orch := NewOrchestrator(prose, llm.RetryOptions{}, testLogger())

	_, err := orch.Run(context.Background(), Config{PropositionText: "p", Side: true, Style: StyleDefault, Rounds: 2})
	var malformed *MalformedCredenceError
	if !errors.As(err, &malformed) {
		t.Fatalf("Run() error = %v, want MalformedCredenceError", err)
	}
	if prose.calls != 1 {
		t.Errorf("debate continued after malformed initial credence: %d calls", prose.calls)
	}
}

// proseClient never answers with a bare number.
type proseClient struct {
	calls int
}

func (c *proseClient) Generate(ctx context.Context, system, contents string) (string, error) {
	c.calls++
	return "I'd say it is quite likely.", nil
}

func TestOrchestratorRun_FatalRemoteAborts(t *testing.T) {
	fatal := errors.New("invalid api key")
	client := &scriptClient{
		fail: func(call generateCall, n int) error {
			if n == 2 { // first arguer turn
				return fatal
			}
			return nil
		},
	}
	orch := NewOrchestrator(client, llm.RetryOptions{MaxAttempts: 3}, testLogger())

	_, err := orch.Run(context.Background(), Config{PropositionText: "p", Side: true, Style: StyleDefault, Rounds: 3})
	if !errors.Is(err, fatal) {
		t.Fatalf("Run() error = %v, want the fatal remote error", err)
	}
	// Fatal means no retry and no further turns.
	if len(client.calls) != 2 {
		t.Errorf("endpoint called %d times, want 2", len(client.calls))
	}
}

func TestOrchestratorRun_RetriesExhaustedAborts(t *testing.T) {
	client := &scriptClient{
		fail: func(call generateCall, n int) error {
			if n >= 2 { // every call after the initial credence
				return errors.New("503 overloaded")
			}
			return nil
		},
	}
	orch := NewOrchestrator(client, llm.RetryOptions{MaxAttempts: 3, Sleep: func(d time.Duration) {}}, testLogger())

	_, err := orch.Run(context.Background(), Config{PropositionText: "p", Side: true, Style: StyleDefault, Rounds: 3})
	var exhausted *llm.RetriesExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Run() error = %v, want RetriesExhaustedError", err)
	}
	// Initial credence + 3 attempts at the first arguer turn.
	if len(client.calls) != 4 {
		t.Errorf("endpoint called %d times, want 4", len(client.calls))
	}
}
