package util

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RetryConfig controls backoff behavior for Retry.
type RetryConfig struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	ShouldRetryFunc func(error) bool
}

// Retry runs operation with exponential backoff. Only errors accepted by
// ShouldRetryFunc are retried; any other error is returned immediately.
func Retry(ctx context.Context, config RetryConfig, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(config.BaseDelay) * math.Pow(2, float64(attempt-1)))
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}

			// Jitter to avoid retrying in lockstep
			jitter := time.Duration(rand.Float64() * float64(delay) * 0.1)
			delay = delay + jitter

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if config.ShouldRetryFunc != nil && config.ShouldRetryFunc(err) {
			continue
		}

		return err
	}

	return fmt.Errorf("operation failed after %d retries, last error: %w", config.MaxRetries, lastErr)
}
