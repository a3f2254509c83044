package resilience

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
)

// Key identifies one protected dependency: a subject (account, event,
// signer) and the operation performed against it
type Key struct {
	Subject string
	Op      string
}

// KeyState is a point-in-time view of one breaker entry
type KeyState struct {
	Failures    int       `json:"failures"`
	Open        bool      `json:"open"`
	RetryAt     time.Time `json:"retry_at,omitempty"`
	LastFailure time.Time `json:"last_failure,omitempty"`
}

type entry struct {
	failures    int
	openedUntil time.Time
	lastTouched time.Time
}

// Config holds breaker tuning
type Config struct {
	FailureThreshold int
	CoolDown         time.Duration
	MaxEntries       int
}

// Breaker is a per-key circuit breaker. After FailureThreshold consecutive
// failures a key opens and calls are rejected until the cool-down elapses;
// the first call after that is a trial which fully re-opens the key on
// failure.
type Breaker struct {
	mu      sync.Mutex
	entries map[Key]*entry

	clock            adapter.Clock
	failureThreshold int
	coolDown         time.Duration
	maxEntries       int
}

// NewBreaker creates a breaker. Zero config values fall back to a threshold
// of 5 failures, a 5 minute cool-down and 1024 tracked keys.
func NewBreaker(clock adapter.Clock, cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.CoolDown <= 0 {
		cfg.CoolDown = 5 * time.Minute
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1024
	}

	return &Breaker{
		entries:          make(map[Key]*entry),
		clock:            clock,
		failureThreshold: cfg.FailureThreshold,
		coolDown:         cfg.CoolDown,
		maxEntries:       cfg.MaxEntries,
	}
}

// Allow reports whether a call for key may proceed. It returns
// domain.ErrCircuitOpen while the key is open and inside its cool-down.
func (b *Breaker) Allow(key Key) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return nil
	}

	if e.failures >= b.failureThreshold && b.clock.Now().Before(e.openedUntil) {
		return domain.ErrCircuitOpen
	}
	return nil
}

// RecordFailure counts a failure against key, opening it when the threshold
// is reached
func (b *Breaker) RecordFailure(key Key) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	e, ok := b.entries[key]
	if !ok {
		b.sweepLocked(now)
		e = &entry{}
		b.entries[key] = e
	}

	e.failures++
	e.lastTouched = now
	if e.failures >= b.failureThreshold {
		e.openedUntil = now.Add(b.coolDown)
		logger.Warn("circuit opened",
			zap.String("subject", key.Subject),
			zap.String("op", key.Op),
			zap.Int("failures", e.failures),
			zap.Time("retry_at", e.openedUntil))
	}
}

// RecordSuccess clears the failure count for key
func (b *Breaker) RecordSuccess(key Key) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.entries, key)
}

// State returns the current view of one key
func (b *Breaker) State(key Key) KeyState {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return KeyState{}
	}
	return b.stateLocked(e)
}

// Snapshot returns the current view of every tracked key
func (b *Breaker) Snapshot() map[Key]KeyState {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make(map[Key]KeyState, len(b.entries))
	for key, e := range b.entries {
		snapshot[key] = b.stateLocked(e)
	}
	return snapshot
}

func (b *Breaker) stateLocked(e *entry) KeyState {
	state := KeyState{
		Failures:    e.failures,
		LastFailure: e.lastTouched,
	}
	if e.failures >= b.failureThreshold && b.clock.Now().Before(e.openedUntil) {
		state.Open = true
		state.RetryAt = e.openedUntil
	}
	return state
}

// sweepLocked evicts stale entries once the map is full, keeping the memory
// footprint bounded no matter how many subjects come and go
func (b *Breaker) sweepLocked(now time.Time) {
	if len(b.entries) < b.maxEntries {
		return
	}

	cutoff := now.Add(-b.coolDown)
	for key, e := range b.entries {
		if e.lastTouched.Before(cutoff) && now.After(e.openedUntil) {
			delete(b.entries, key)
		}
	}

	// Still full after evicting stale keys: drop arbitrary closed entries
	if len(b.entries) >= b.maxEntries {
		for key, e := range b.entries {
			if e.failures < b.failureThreshold {
				delete(b.entries, key)
			}
			if len(b.entries) < b.maxEntries {
				break
			}
		}
	}
}
