package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream timeout")

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	cb := New(3, time.Minute)
	assert.Equal(t, StateClosed, cb.GetState(), "Circuit breaker should start closed")

	cb.RecordFailure(errUpstream)
	cb.RecordFailure(errUpstream)
	assert.Equal(t, StateClosed, cb.GetState(), "Circuit should stay closed below the threshold")
	assert.NoError(t, cb.Allow())

	cb.RecordFailure(errUpstream)
	assert.Equal(t, StateOpen, cb.GetState(), "Circuit should open at the failure threshold")
	assert.ErrorIs(t, cb.Allow(), ErrOpen, "Open circuit should reject traffic")
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	cb := New(3, time.Minute)

	cb.RecordFailure(errUpstream)
	cb.RecordFailure(errUpstream)
	cb.RecordSuccess()
	cb.RecordFailure(errUpstream)
	cb.RecordFailure(errUpstream)

	assert.Equal(t, StateClosed, cb.GetState(), "Non-consecutive failures should not trip the circuit")
}

func TestCircuitBreaker_HalfOpenAfterCooldown(t *testing.T) {
	cb := New(1, 30*time.Millisecond)

	cb.RecordFailure(errUpstream)
	require.Equal(t, StateOpen, cb.GetState())
	require.ErrorIs(t, cb.Allow(), ErrOpen)

	time.Sleep(50 * time.Millisecond)

	assert.NoError(t, cb.Allow(), "Allow should admit a probe after the cooldown")
	assert.Equal(t, StateHalfOpen, cb.GetState(), "Circuit should be half-open after cooldown")
}

func TestCircuitBreaker_ProbeFailureReopens(t *testing.T) {
	cb := New(1, 30*time.Millisecond)

	cb.RecordFailure(errUpstream)
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, cb.Allow())
	require.Equal(t, StateHalfOpen, cb.GetState())

	cb.RecordFailure(errUpstream)
	assert.Equal(t, StateOpen, cb.GetState(), "A failed probe should re-open the circuit immediately")
	assert.ErrorIs(t, cb.Allow(), ErrOpen)
}

func TestCircuitBreaker_ClosesAfterSuccessThreshold(t *testing.T) {
	cb := New(1, 30*time.Millisecond).WithSuccessThreshold(2)

	cb.RecordFailure(errUpstream)
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, cb.Allow())

	cb.RecordSuccess()
	assert.Equal(t, StateHalfOpen, cb.GetState(), "One probe success should not close the circuit yet")

	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.GetState(), "Circuit should close after enough probe successes")
	assert.NoError(t, cb.Allow())
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := New(1, time.Hour)

	cb.RecordFailure(errUpstream)
	require.Equal(t, StateOpen, cb.GetState())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.GetState(), "Reset should force the circuit closed")
	assert.NoError(t, cb.Allow())
}

func TestCircuitBreaker_TripCallback(t *testing.T) {
	var (
		mu     sync.Mutex
		reason string
		fired  = make(chan struct{})
	)

	cb := New(2, time.Minute).WithTripCallback(func(r string) {
		mu.Lock()
		reason = r
		mu.Unlock()
		close(fired)
	})

	cb.RecordFailure(errUpstream)
	cb.RecordFailure(errUpstream)

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("trip callback was not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, reason, "2 consecutive upstream failures")
	assert.Contains(t, reason, errUpstream.Error())
}
