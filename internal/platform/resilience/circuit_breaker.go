package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// CircuitBreaker is a small stateful breaker protecting the upstream
// results/schedule pages from being hammered while they are failing.
//
// Closed counts consecutive failures and trips at the threshold. Open rejects
// everything until the timeout elapses, then admits up to halfOpenMaxReq
// probe requests; the breaker closes once that many probes succeed, and any
// probe failure reopens it.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int

	state          CircuitState
	failures       int
	openedAt       time.Time
	probesInFlight int
	probesPassed   int
	now            func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{
		FailureThreshold: failureThreshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	})
	return &CircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		halfOpenMaxReq:   cfg.HalfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Allow reports whether a request may proceed, reserving a probe slot when the
// breaker is half-open.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.tick() {
	case CircuitStateOpen:
		return ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.probesInFlight >= b.halfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probesInFlight++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.tick() {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.probeDone()
		b.probesPassed++
		if b.probesPassed >= b.halfOpenMaxReq && b.probesInFlight == 0 {
			b.reset()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.tick() {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.trip()
		}
	case CircuitStateHalfOpen:
		b.probeDone()
		b.trip()
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tick()
}

// tick applies the open -> half-open transition once the timeout has elapsed
// and returns the current state. Callers must hold b.mu.
func (b *CircuitBreaker) tick() CircuitState {
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		b.state = CircuitStateHalfOpen
		b.probesInFlight = 0
		b.probesPassed = 0
	}
	return b.state
}

func (b *CircuitBreaker) probeDone() {
	if b.probesInFlight > 0 {
		b.probesInFlight--
	}
}

func (b *CircuitBreaker) reset() {
	b.state = CircuitStateClosed
	b.failures = 0
	b.probesInFlight = 0
	b.probesPassed = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.probesInFlight = 0
	b.probesPassed = 0
}
