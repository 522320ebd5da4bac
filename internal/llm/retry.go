// File path: internal/llm/retry.go
package llm

import (
	"context"
	"time"

	"github.com/nicodishanthj/Prodigen_phase1/internal/common"
)

// Retry runs fn up to maxAttempts times with exponential backoff between
// attempts, doubling from base up to cap. Context cancellation stops the wait
// early and returns the context error.
func Retry(ctx context.Context, operation string, maxAttempts int, base, cap time.Duration, fn func(ctx context.Context) error) error {
	logger := common.Logger()
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delay := base
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		logger.Warn("llm: attempt failed, retrying", "operation", operation, "attempt", attempt, "delay", delay, "error", lastErr)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
		if cap > 0 && delay > cap {
			delay = cap
		}
	}
	return lastErr
}
