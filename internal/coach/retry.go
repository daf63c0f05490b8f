package coach

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RetryConfig bounds the backoff used when a provider rate-limits us.
type RetryConfig struct {
	MaxRetries        int           // retries after the first attempt
	InitialBackoff    time.Duration // wait before the first retry
	MaxBackoff        time.Duration // 0 means uncapped
	BackoffMultiplier float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    2 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// retryWithBackoff runs fn until it succeeds, fails with anything other than a
// rate limit, or MaxRetries is spent. Cancelling ctx aborts the wait.
func retryWithBackoff(ctx context.Context, cfg RetryConfig, log *zap.Logger, operation string, fn func(context.Context) error) error {
	backoff := cfg.InitialBackoff
	mult := cfg.BackoffMultiplier
	if mult <= 0 {
		mult = 2.0
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				log.Debug("coach request recovered", zap.String("op", operation), zap.Int("retries", attempt))
			}
			return nil
		}
		lastErr = err

		if !isRateLimited(err) {
			return err
		}
		if attempt == cfg.MaxRetries {
			break
		}

		log.Warn("rate limit hit, backing off",
			zap.String("op", operation),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", cfg.MaxRetries+1),
			zap.Duration("backoff", backoff))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s failed: context canceled during backoff: %w", operation, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * mult)
		if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operation, cfg.MaxRetries+1, lastErr)
}
