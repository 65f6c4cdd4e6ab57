// Package circuitbreaker provides a defensive mechanism that stops quote
// traffic to the upstream aggregator after repeated failures, instead of
// hammering a degraded service.
package circuitbreaker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State represents the current state of the circuit breaker
type State int

// Circuit breaker states
const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Tripped, quote traffic blocked
	StateHalfOpen              // Testing if the upstream has recovered
)

// ErrOpen is returned by Allow while the circuit is open.
var ErrOpen = errors.New("circuit breaker open: upstream protection engaged")

// CircuitBreaker implements the circuit breaker pattern over upstream quote
// calls. Consecutive failures trip it open; after a cooldown it lets probe
// requests through and closes again once enough of them succeed.
type CircuitBreaker struct {
	// Consecutive failures that trip the circuit
	failureThreshold int

	// Duration before a half-open probe is allowed
	cooldown time.Duration

	// Successful probes required to close the circuit again
	successThreshold int

	// Event callback for monitoring/alerting
	onTripCallback func(reason string)

	mu           sync.RWMutex
	state        State
	failureCount int
	successCount int
	lastTrip     time.Time
}

// New creates a CircuitBreaker that trips after failureThreshold
// consecutive upstream failures and probes again after cooldown.
func New(failureThreshold int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		successThreshold: 3,
		state:            StateClosed,
	}
}

// WithSuccessThreshold sets the number of successful probes needed to close the circuit
func (cb *CircuitBreaker) WithSuccessThreshold(threshold int) *CircuitBreaker {
	cb.successThreshold = threshold
	return cb
}

// WithTripCallback sets a callback function that is called when the circuit trips
func (cb *CircuitBreaker) WithTripCallback(callback func(reason string)) *CircuitBreaker {
	cb.onTripCallback = callback
	return cb
}

// Allow reports whether a quote request may proceed. While open it returns
// ErrOpen until the cooldown elapses, then transitions to half-open and
// admits probe traffic.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.RLock()
	state := cb.state
	lastTrip := cb.lastTrip
	cb.mu.RUnlock()

	if state == StateOpen {
		if time.Since(lastTrip) < cb.cooldown {
			return ErrOpen
		}
		cb.transitionToHalfOpen()
	}
	return nil
}

// RecordSuccess notes a successful upstream call. In half-open state it
// counts toward closing the circuit; in closed state it resets the failure
// streak.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	if cb.state == StateHalfOpen {
		cb.successCount++
		if cb.successCount >= cb.successThreshold {
			cb.state = StateClosed
			cb.successCount = 0
			logrus.Info("Circuit breaker closed: upstream has recovered")
		}
	}
}

// RecordFailure notes a failed upstream call. A failure in half-open state
// re-opens immediately; in closed state the circuit trips once the
// consecutive-failure threshold is reached.
func (cb *CircuitBreaker) RecordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.trip(fmt.Sprintf("probe failed: %v", err))
		return
	}

	cb.failureCount++
	if cb.failureCount >= cb.failureThreshold {
		cb.trip(fmt.Sprintf("%d consecutive upstream failures, last: %v", cb.failureCount, err))
	}
}

// GetState returns the current state of the circuit breaker
func (cb *CircuitBreaker) GetState() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Reset forcibly resets the circuit breaker to closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = StateClosed
	cb.failureCount = 0
	cb.successCount = 0
	logrus.Info("Circuit breaker manually reset to closed state")
}

// transitionToHalfOpen changes the circuit state to half-open for testing recovery
func (cb *CircuitBreaker) transitionToHalfOpen() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateOpen {
		cb.state = StateHalfOpen
		cb.successCount = 0
		logrus.Info("Circuit breaker half-open: testing upstream recovery")
	}
}

// trip sets the circuit breaker to open state with the current time.
// Caller must hold the write lock.
func (cb *CircuitBreaker) trip(reason string) {
	cb.state = StateOpen
	cb.failureCount = 0
	cb.lastTrip = time.Now()
	logrus.Warnf("Circuit breaker tripped: %s", reason)

	if cb.onTripCallback != nil {
		go cb.onTripCallback(reason)
	}
}
