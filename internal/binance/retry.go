package binance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderpulse/internal/logger"
)

// doWithRetry runs op up to maxAttempts times, sleeping between attempts when
// op reports a rate limit. Any other error is a hard failure returned
// immediately. Exhausting the attempt budget returns the last rate-limit
// error wrapped so callers can tell the two failure modes apart.
func doWithRetry(ctx context.Context, maxAttempts int, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		var rl *RateLimitError
		if !errors.As(err, &rl) {
			return err
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		logger.Info("Rate limit exceeded on %s, waiting %v before retrying (attempt %d/%d)",
			rl.Endpoint, rl.RetryAfter, attempt, maxAttempts)
		if err := sleep(ctx, rl.RetryAfter); err != nil {
			return err
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxAttempts, lastErr)
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
