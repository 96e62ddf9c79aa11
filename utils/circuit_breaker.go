package utils

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker is refusing calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker opens after maxFailures consecutive failures and lets
// a trial call through once resetAfter has elapsed.
type CircuitBreaker struct {
	mu          sync.Mutex
	failures    int
	maxFailures int
	resetAfter  time.Duration
	openedAt    time.Time
}

func NewCircuitBreaker(maxFailures int, resetAfter time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures: maxFailures,
		resetAfter:  resetAfter,
	}
}

// Call runs operation unless the breaker is open.
func (cb *CircuitBreaker) Call(operation func() error) error {
	cb.mu.Lock()
	if cb.failures >= cb.maxFailures {
		if time.Since(cb.openedAt) < cb.resetAfter {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		// Half-open: allow one trial call.
		cb.failures = cb.maxFailures - 1
	}
	cb.mu.Unlock()

	err := operation()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		if cb.failures >= cb.maxFailures {
			cb.openedAt = time.Now()
		}
		return err
	}
	cb.failures = 0
	return nil
}

// RetryWithCircuitBreaker combines the breaker with exponential
// backoff: each attempt goes through the breaker, and an open breaker
// fails fast instead of piling retries onto a struggling database.
func RetryWithCircuitBreaker(cb *CircuitBreaker, operation func() error, maxRetries int, initialDelay time.Duration) error {
	return RetryWithExponentialBackoff(func() error {
		return cb.Call(operation)
	}, maxRetries, initialDelay)
}
