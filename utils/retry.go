package utils

import (
	"errors"
	"fmt"
	"math/rand"
	"net"
	"strings"
	"time"

	"linkstats/middlewares"
)

func isRecoverableError(err error) bool {
	// Check if the error is a network error that is temporary or due to a timeout.
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporarily unavailable") ||
		strings.Contains(msg, "database is locked") {
		return true
	}
	return false
}

// RetryWithExponentialBackoff retries operation on recoverable errors,
// doubling the delay each attempt with jitter on top.
func RetryWithExponentialBackoff(operation func() error, maxRetries int, initialDelay time.Duration) error {
	delay := initialDelay
	var err error

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if !isRecoverableError(err) {
			return err
		}

		middlewares.AuditLogger.Printf("Attempt %d failed: %v. Retrying in %v...", i+1, err, delay)

		// Apply jitter: add a random duration between 0 and half the current delay.
		jitter := time.Duration(rand.Int63n(int64(delay / 2)))
		time.Sleep(delay + jitter)
		delay *= 2 // Exponential backoff.
	}
	// After exhausting retries, return an error wrapping the last failure.
	middlewares.AuditLogger.Printf("operation failed after %d attempts: %v", maxRetries, err)
	return fmt.Errorf("operation failed after %d attempts: %w", maxRetries, err)
}
