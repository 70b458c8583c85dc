package llm

import (
	"fmt"
	"strings"
)

// Kind tags a remote failure for the retry wrapper.
type Kind int

const (
	// KindFatal failures are propagated immediately without retry.
	KindFatal Kind = iota
	// KindTransient failures are retried with fixed backoff.
	KindTransient
)

func (k Kind) String() string {
	if k == KindTransient {
		return "transient"
	}
	return "fatal"
}

// transientMarkers is the fixed substring heuristic for rate-limit and
// overload failures. Matching is case-insensitive against the full
// error text, including any wrapping added along the way.
var transientMarkers = []string{"rate limit", "429", "503", "overloaded"}

// Classify tags a remote error as transient or fatal. Anything that
// does not look like a rate limit or overload is fatal: auth errors,
// invalid arguments, and the like never resolve by waiting.
func Classify(err error) Kind {
	if err == nil {
		return KindFatal
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return KindTransient
		}
	}
	return KindFatal
}

// RetriesExhaustedError reports that every attempt failed transiently.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}
