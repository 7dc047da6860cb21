// Package circuitbreaker guards calls to flaky dependencies. After a
// run of consecutive failures the breaker opens and rejects calls
// outright until a cool-down elapses, then lets one probe through.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

var ErrOpen = errors.New("circuit breaker open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

type Settings struct {
	Name             string
	FailureThreshold int
	CoolDown         time.Duration
}

type CircuitBreaker struct {
	name      string
	threshold int
	coolDown  time.Duration

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
}

func New(settings Settings) *CircuitBreaker {
	if settings.FailureThreshold <= 0 {
		settings.FailureThreshold = 5
	}
	if settings.CoolDown <= 0 {
		settings.CoolDown = 30 * time.Second
	}
	return &CircuitBreaker{
		name:      settings.Name,
		threshold: settings.FailureThreshold,
		coolDown:  settings.CoolDown,
	}
}

// Execute runs fn unless the breaker is open. The fn error is returned
// as-is so callers can still inspect it.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.state == StateOpen {
		if time.Since(cb.lastFailure) < cb.coolDown {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.state = StateHalfOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.failures >= cb.threshold || cb.state == StateHalfOpen {
			cb.state = StateOpen
		}
		return err
	}
	cb.state = StateClosed
	cb.failures = 0
	return nil
}

// State reports the current breaker state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
