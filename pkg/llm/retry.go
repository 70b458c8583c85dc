package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryOptions configures CallWithRetry. A zero Backoff is honored as
// requested: retries proceed with no wait at all.
type RetryOptions struct {
	MaxAttempts int // total attempts, default 3
	Backoff     time.Duration
	Sleep       func(time.Duration)
	Logger      *logrus.Entry
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	if o.Logger == nil {
		o.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return o
}

// CallWithRetry invokes op, retrying on transient failures with a fixed
// (non-exponential) backoff. Fatal failures propagate immediately.
// After MaxAttempts transient failures it returns RetriesExhaustedError
// wrapping the last failure. The wrapper knows nothing about what op
// does; any remote call shape can be bound into it.
func CallWithRetry[T any](ctx context.Context, op func(context.Context) (T, error), opts RetryOptions) (T, error) {
	opts = opts.withDefaults()

	var zero T
	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if Classify(err) == KindFatal {
			return zero, err
		}

		lastErr = err
		if attempt < opts.MaxAttempts {
			opts.Logger.WithFields(logrus.Fields{
				"attempt":      attempt,
				"max_attempts": opts.MaxAttempts,
				"backoff":      opts.Backoff.String(),
				"error":        err.Error(),
			}).Warn("Transient remote failure, backing off before retry")
			opts.Sleep(opts.Backoff)
		}
	}

	return zero, &RetriesExhaustedError{Attempts: opts.MaxAttempts, Last: lastErr}
}
