package resilience_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
	"github.com/checkmint/checkmint/internal/mocks"
	"github.com/checkmint/checkmint/internal/resilience"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// manualClock drives breaker time from the test
type manualClock struct {
	*mocks.MockClock
	now time.Time
}

func newManualClock(ctrl *gomock.Controller) *manualClock {
	c := &manualClock{
		MockClock: mocks.NewMockClock(ctrl),
		now:       time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
	}
	c.EXPECT().Now().DoAndReturn(func() time.Time { return c.now }).AnyTimes()
	return c
}

func (c *manualClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	breaker := resilience.NewBreaker(clock, resilience.Config{
		FailureThreshold: 3,
		CoolDown:         time.Minute,
	})

	key := resilience.Key{Subject: "acct-1", Op: "sync_events"}

	for range 2 {
		breaker.RecordFailure(key)
		assert.NoError(t, breaker.Allow(key))
	}

	breaker.RecordFailure(key)
	assert.ErrorIs(t, breaker.Allow(key), domain.ErrCircuitOpen)

	state := breaker.State(key)
	assert.True(t, state.Open)
	assert.Equal(t, 3, state.Failures)
	assert.Equal(t, clock.now.Add(time.Minute), state.RetryAt)
}

func TestBreakerKeysAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	breaker := resilience.NewBreaker(clock, resilience.Config{FailureThreshold: 1, CoolDown: time.Minute})

	open := resilience.Key{Subject: "acct-1", Op: "sync_events"}
	other := resilience.Key{Subject: "acct-2", Op: "sync_events"}
	sameSubjectOtherOp := resilience.Key{Subject: "acct-1", Op: "sync_checkins"}

	breaker.RecordFailure(open)
	assert.ErrorIs(t, breaker.Allow(open), domain.ErrCircuitOpen)
	assert.NoError(t, breaker.Allow(other))
	assert.NoError(t, breaker.Allow(sameSubjectOtherOp))
}

func TestBreakerCoolDownAndTrial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	breaker := resilience.NewBreaker(clock, resilience.Config{FailureThreshold: 2, CoolDown: time.Minute})

	key := resilience.Key{Subject: "signer", Op: "mint"}
	breaker.RecordFailure(key)
	breaker.RecordFailure(key)
	require.ErrorIs(t, breaker.Allow(key), domain.ErrCircuitOpen)

	// Cool-down elapsed: trial call allowed
	clock.advance(time.Minute + time.Second)
	assert.NoError(t, breaker.Allow(key))

	// Failed trial re-opens immediately
	breaker.RecordFailure(key)
	assert.ErrorIs(t, breaker.Allow(key), domain.ErrCircuitOpen)

	// Successful trial resets the key entirely
	clock.advance(time.Minute + time.Second)
	require.NoError(t, breaker.Allow(key))
	breaker.RecordSuccess(key)
	assert.Equal(t, resilience.KeyState{}, breaker.State(key))
}

func TestBreakerBoundedEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	breaker := resilience.NewBreaker(clock, resilience.Config{
		FailureThreshold: 10,
		CoolDown:         time.Minute,
		MaxEntries:       8,
	})

	for i := 0; i < 32; i++ {
		breaker.RecordFailure(resilience.Key{Subject: string(rune('a' + i)), Op: "sync"})
		clock.advance(time.Minute)
	}

	assert.LessOrEqual(t, len(breaker.Snapshot()), 9)
}

func TestRunnerDoRecordsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	breaker := resilience.NewBreaker(clock, resilience.Config{FailureThreshold: 2, CoolDown: time.Minute})
	runner := resilience.NewRunner(breaker, clock)

	key := resilience.Key{Subject: "acct-1", Op: "sync_events"}
	ctx := context.Background()

	boom := errors.New("connection refused")
	require.Error(t, runner.Do(ctx, key, func(context.Context) error { return boom }))
	require.Error(t, runner.Do(ctx, key, func(context.Context) error { return boom }))

	// Breaker open: op must not run
	ran := false
	err := runner.Do(ctx, key, func(context.Context) error { ran = true; return nil })
	assert.ErrorIs(t, err, domain.ErrCircuitOpen)
	assert.False(t, ran)
}

func TestRunnerValidationErrorsDoNotTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	breaker := resilience.NewBreaker(clock, resilience.Config{FailureThreshold: 1, CoolDown: time.Minute})
	runner := resilience.NewRunner(breaker, clock)

	key := resilience.Key{Subject: "acct-1", Op: "sync_events"}
	ctx := context.Background()

	vErr := domain.NewValidationError("recipient", "not a hex address")
	require.Error(t, runner.Do(ctx, key, func(context.Context) error { return vErr }))

	assert.NoError(t, breaker.Allow(key))
	assert.Equal(t, 0, breaker.State(key).Failures)
}

func TestRunnerDoWithRetryStopsOnTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	closed := make(chan time.Time)
	close(closed)
	clock.EXPECT().After(gomock.Any()).Return(closed).AnyTimes()

	breaker := resilience.NewBreaker(clock, resilience.Config{FailureThreshold: 100, CoolDown: time.Minute})
	runner := resilience.NewRunner(breaker, clock)

	key := resilience.Key{Subject: "signer", Op: "mint"}
	ctx := context.Background()

	calls := 0
	terminal := domain.NewChainError("mint", errors.New("execution reverted"), false)
	err := runner.DoWithRetry(ctx, key, func(context.Context) error {
		calls++
		return terminal
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	// Transient failures walk the whole schedule before giving up
	calls = 0
	transient := domain.NewTransientError("sync", errors.New("timeout"))
	err = runner.DoWithRetry(ctx, key, func(context.Context) error {
		calls++
		return transient
	})
	require.Error(t, err)
	assert.Equal(t, 4, calls)
}

func TestRunnerDoWithRetryEventualSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	closed := make(chan time.Time)
	close(closed)
	clock.EXPECT().After(gomock.Any()).Return(closed).AnyTimes()

	breaker := resilience.NewBreaker(clock, resilience.Config{FailureThreshold: 100, CoolDown: time.Minute})
	runner := resilience.NewRunner(breaker, clock)

	ctx := context.Background()
	calls := 0
	err := runner.DoWithRetry(ctx, resilience.Key{Subject: "acct-1", Op: "sync"}, func(context.Context) error {
		calls++
		if calls < 3 {
			return domain.NewTransientError("sync", errors.New("timeout"))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryDelaySchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newManualClock(ctrl)
	breaker := resilience.NewBreaker(clock, resilience.Config{})
	runner := resilience.NewRunner(breaker, clock)

	// Base steps 1s, 5s, 15s with up to 1s of jitter
	for attempt, base := range map[int]time.Duration{
		1: time.Second,
		2: 5 * time.Second,
		3: 15 * time.Second,
		4: 15 * time.Second, // beyond the schedule reuses the last step
	} {
		delay := runner.RetryDelay(attempt)
		assert.GreaterOrEqual(t, delay, base, "attempt %d", attempt)
		assert.Less(t, delay, base+time.Second, "attempt %d", attempt)
	}
}
