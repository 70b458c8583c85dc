package debate

// Speaker identifies which role produced a turn.
type Speaker string

const (
	SpeakerArguer Speaker = "Arguer"
	SpeakerTarget Speaker = "Target"
)

// Turn is one utterance in a debate. Immutable once appended.
type Turn struct {
	Speaker   Speaker `json:"speaker"`
	Utterance string  `json:"utterance"`
}

// Transcript is the append-only conversation history of a single
// debate. The remote endpoint is stateless between calls, so the whole
// transcript is replayed on every turn after the first; nothing is ever
// truncated or summarized away, since the Target must have seen
// everything the Arguer said for the final credence to mean anything.
type Transcript struct {
	turns []Turn
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a turn. Growth is strictly monotonic; there is no way to
// remove or rewrite a turn.
func (t *Transcript) Append(speaker Speaker, utterance string) {
	t.turns = append(t.turns, Turn{Speaker: speaker, Utterance: utterance})
}

// Len returns the number of turns so far.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Turns returns a copy of the turns in insertion order.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Render joins the history and appends the role-specific trailing
// prompt for the next call.
func (t *Transcript) Render(trailingPrompt string) string {
	return RenderTranscript(t.turns, trailingPrompt)
}
