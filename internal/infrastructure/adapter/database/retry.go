package database

import (
	"context"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // Factor to add randomness to retry intervals (0.0-1.0)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    5,
		RetryInterval: 50 * time.Millisecond,
		MaxInterval:   time.Second,
		JitterFactor:  0.2,
	}
}

// RetryOnTransientError retries an operation when a transient error occurs.
// Business rejections are returned on the first attempt.
func RetryOnTransientError(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	logger coreport.Logger,
) error {
	if config.MaxRetries < 1 {
		config.MaxRetries = 1
	}

	var err error
	var attempt int

	for attempt = 0; attempt < config.MaxRetries; attempt++ {
		err = operation()
		if err == nil {
			return nil
		}

		if !isTransientError(err) {
			return err
		}
		if attempt == config.MaxRetries-1 {
			break
		}

		backoff := calculateBackoffWithJitter(attempt, config)
		logger.Warn("Transient database error, retrying operation", map[string]any{
			"attempt":    attempt + 1,
			"maxRetries": config.MaxRetries,
			"error":      err.Error(),
			"retryAfter": backoff.String(),
		})

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			logger.Warn("Retry operation canceled by context", map[string]any{
				"attempts": attempt + 1,
				"error":    ctx.Err().Error(),
			})
			return err
		}
	}

	logger.Error("All retry attempts failed", map[string]any{
		"attempts":   attempt + 1,
		"maxRetries": config.MaxRetries,
		"error":      err.Error(),
	})
	return err
}

// calculateBackoffWithJitter computes the backoff duration with exponential increase and jitter
func calculateBackoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.RetryInterval * (1 << uint(attempt))
	if backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		jitter := time.Duration(float64(backoff) * config.JitterFactor * (float64(time.Now().UnixNano()%100) / 100.0))
		backoff = backoff + jitter
	}
	return backoff
}

// isTransientError checks if an error is transient and the unit can be rerun
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errs.IsRetryable(err) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "could not serialize") ||
		strings.Contains(errMsg, "serialization failure") ||
		strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "lock timeout")
}
