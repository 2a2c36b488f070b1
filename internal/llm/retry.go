package llm

import (
	"context"
	"time"
)

// Retry configuration defaults
const (
	DefaultMaxRetries       = 3
	DefaultInitialBackoffMs = 100
	DefaultMaxBackoffMs     = 5000
	DefaultMultiplier       = 2.0
)

// RetryConfig configures exponential backoff retry behavior
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
}

// DefaultRetryConfig returns sensible defaults for retrying completion calls
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultInitialBackoffMs * time.Millisecond,
		MaxDelay:   DefaultMaxBackoffMs * time.Millisecond,
		Multiplier: DefaultMultiplier,
	}
}

// Retry executes fn with exponential backoff. Only retryable (transport)
// failures are attempted again; auth and unknown-model errors return
// immediately, as does context cancellation.
func Retry[T any](ctx context.Context, config RetryConfig, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T
	backoff := config.BaseDelay

	for attempt := 0; attempt < config.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !IsRetryable(err) {
			return zero, err
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if attempt < config.MaxRetries-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * config.Multiplier)
				if backoff > config.MaxDelay {
					backoff = config.MaxDelay
				}
			}
		}
	}

	return zero, lastErr
}
