package resilience

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
)

// defaultRetrySchedule spaces the attempts of one in-process retry ladder
var defaultRetrySchedule = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	15 * time.Second,
}

// maxJitter is added uniformly to every retry delay to spread out herds
const maxJitter = 1 * time.Second

// Runner executes operations guarded by a circuit breaker. Do performs a
// single guarded call; DoWithRetry walks the stepped retry schedule for
// transient failures.
type Runner struct {
	breaker *Breaker
	clock   adapter.Clock

	mu   sync.Mutex
	rand *rand.Rand

	schedule []time.Duration
}

// NewRunner creates a runner over the given breaker
func NewRunner(breaker *Breaker, clock adapter.Clock) *Runner {
	return &Runner{
		breaker:  breaker,
		clock:    clock,
		rand:     rand.New(rand.NewSource(clock.Now().UnixNano())),
		schedule: defaultRetrySchedule,
	}
}

// Breaker exposes the underlying breaker for pre-flight checks
func (r *Runner) Breaker() *Breaker {
	return r.breaker
}

// RetryDelay returns the delay before retrying after the given 1-based
// attempt, including jitter. Attempts beyond the schedule reuse its last
// step.
func (r *Runner) RetryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > len(r.schedule) {
		attempt = len(r.schedule)
	}

	r.mu.Lock()
	jitter := time.Duration(r.rand.Int63n(int64(maxJitter)))
	r.mu.Unlock()

	return r.schedule[attempt-1] + jitter
}

// Do executes op once, guarded by the breaker. A rejected call returns
// domain.ErrCircuitOpen without invoking op. Validation errors do not count
// as infrastructure failures.
func (r *Runner) Do(ctx context.Context, key Key, op func(context.Context) error) error {
	if err := r.breaker.Allow(key); err != nil {
		return err
	}

	err := op(ctx)
	if err == nil {
		r.breaker.RecordSuccess(key)
		return nil
	}

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		r.breaker.RecordFailure(key)
	}
	return err
}

// DoWithRetry executes op under the breaker, retrying transient failures
// along the stepped schedule. Terminal errors and open circuits return
// immediately.
func (r *Runner) DoWithRetry(ctx context.Context, key Key, op func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= len(r.schedule)+1; attempt++ {
		err = r.Do(ctx, key, op)
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrCircuitOpen) || !domain.IsRetryable(err) {
			return err
		}
		if attempt > len(r.schedule) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(r.RetryDelay(attempt)):
		}
	}
	return err
}
