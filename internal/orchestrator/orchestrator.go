package orchestrator

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
	"github.com/checkmint/checkmint/internal/mintqueue"
	"github.com/checkmint/checkmint/internal/providers/ethereum"
	"github.com/checkmint/checkmint/internal/reconciler"
	"github.com/checkmint/checkmint/internal/resilience"
	"github.com/checkmint/checkmint/internal/store"
	"github.com/checkmint/checkmint/internal/store/schema"
)

var ErrAlreadyRunning = errors.New("sync already running")

const restartDelay = time.Second

// Config holds the scheduling knobs of the sync loops
type Config struct {
	EventsInterval   time.Duration
	CheckInsInterval time.Duration
	StaggerDelay     time.Duration
	MinSignerWei     *big.Int
}

// Intervals is the runtime-adjustable loop cadence
type Intervals struct {
	Events   time.Duration `json:"events"`
	CheckIns time.Duration `json:"checkins"`
}

// BreakerState is one circuit's state for status reporting
type BreakerState struct {
	Subject string `json:"subject"`
	Op      string `json:"op"`
	resilience.KeyState
}

// AccountStatus reports one account's sync progress
type AccountStatus struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	LastEventsSync   *time.Time `json:"last_events_sync,omitempty"`
	LastCheckInsSync *time.Time `json:"last_checkins_sync,omitempty"`
	SyncError        *string    `json:"sync_error,omitempty"`
}

// Status is the full service status surface
type Status struct {
	Running   bool                  `json:"running"`
	Intervals Intervals             `json:"intervals"`
	Accounts  []AccountStatus       `json:"accounts"`
	Breakers  []BreakerState        `json:"breakers"`
	Queue     *mintqueue.QueueStats `json:"queue"`
}

// Health is the liveness report of the service's dependencies. The poller
// flags are informational: stopped loops are an operator choice, not a
// failure, so they do not affect Healthy.
type Health struct {
	Healthy        bool   `json:"healthy"`
	Database       string `json:"database"`
	Ledger         string `json:"ledger"`
	EventsPoller   bool   `json:"events_poller"`
	CheckInsPoller bool   `json:"checkins_poller"`
	SignerBalance  string `json:"signer_balance,omitempty"`
	LowBalance     bool   `json:"low_balance,omitempty"`
}

// TriggerOptions selects which sync phases a manual trigger runs
type TriggerOptions struct {
	Events   bool
	CheckIns bool
}

// PhaseResult reports one phase of a manual trigger. A failed phase lands
// here as Success false, never as an error from Trigger itself.
type PhaseResult struct {
	Success bool              `json:"success"`
	Result  domain.SyncResult `json:"result"`
	Error   string            `json:"error,omitempty"`
}

// TriggerResult collects the per-phase outcomes of a manual trigger
type TriggerResult struct {
	AccountID string       `json:"account_id,omitempty"`
	Events    *PhaseResult `json:"events,omitempty"`
	CheckIns  *PhaseResult `json:"checkins,omitempty"`
}

// Orchestrator schedules the reconciliation loops and exposes control
// and status operations over them
type Orchestrator struct {
	config     Config
	store      store.Store
	reconciler *reconciler.Reconciler
	queue      *mintqueue.Manager
	ledger     ethereum.Ledger
	runner     *resilience.Runner
	clock      adapter.Clock

	running      atomic.Bool
	eventsLoop   atomic.Bool
	checkinsLoop atomic.Bool
	mu           sync.Mutex
	stopChan     chan struct{}
	wg           sync.WaitGroup

	intervalMu       sync.RWMutex
	eventsInterval   time.Duration
	checkinsInterval time.Duration
	reloadChans      []chan struct{}
}

func New(
	config Config,
	st store.Store,
	rec *reconciler.Reconciler,
	queue *mintqueue.Manager,
	ledger ethereum.Ledger,
	runner *resilience.Runner,
	clock adapter.Clock,
) *Orchestrator {
	if config.EventsInterval <= 0 {
		config.EventsInterval = 10 * time.Second
	}
	if config.CheckInsInterval <= 0 {
		config.CheckInsInterval = 5 * time.Second
	}
	if config.StaggerDelay < 0 {
		config.StaggerDelay = 0
	}

	return &Orchestrator{
		config:           config,
		store:            st,
		reconciler:       rec,
		queue:            queue,
		ledger:           ledger,
		runner:           runner,
		clock:            clock,
		eventsInterval:   config.EventsInterval,
		checkinsInterval: config.CheckInsInterval,
	}
}

// Start launches the two sync loops. The check-ins loop starts after the
// stagger delay so the first passes do not hit the source API at once.
func (o *Orchestrator) Start(ctx context.Context) error {
	if !o.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	o.mu.Lock()
	o.stopChan = make(chan struct{})
	stop := o.stopChan
	o.mu.Unlock()

	logger.InfoCtx(ctx, "sync loops starting",
		zap.Duration("events_interval", o.interval(domain.SyncEvents)),
		zap.Duration("checkins_interval", o.interval(domain.SyncCheckIns)))

	o.wg.Add(2)
	go o.runLoop(ctx, domain.SyncEvents, 0, stop)
	go o.runLoop(ctx, domain.SyncCheckIns, o.config.StaggerDelay, stop)
	return nil
}

// Stop halts both loops and waits for in-flight passes to finish
func (o *Orchestrator) Stop() {
	if !o.running.CompareAndSwap(true, false) {
		return
	}

	o.mu.Lock()
	if o.stopChan != nil {
		close(o.stopChan)
		o.stopChan = nil
	}
	o.mu.Unlock()

	o.wg.Wait()
	logger.Info("sync loops stopped")
}

// Restart stops the loops, pauses briefly, and starts them again
func (o *Orchestrator) Restart(ctx context.Context) error {
	o.Stop()
	o.clock.Sleep(restartDelay)
	return o.Start(ctx)
}

// Running reports whether the sync loops are active
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

func (o *Orchestrator) runLoop(ctx context.Context, kind domain.SyncKind, delay time.Duration, stop chan struct{}) {
	defer o.wg.Done()

	flag := &o.eventsLoop
	if kind == domain.SyncCheckIns {
		flag = &o.checkinsLoop
	}
	flag.Store(true)
	defer flag.Store(false)

	if delay > 0 {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-o.clock.After(delay):
		}
	}

	o.runOnce(ctx, kind)

	reload := o.registerReload()
	defer o.unregisterReload(reload)

	ticker := o.clock.NewTicker(o.interval(kind))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-reload:
			ticker.Reset(o.interval(kind))
		case <-ticker.C:
			o.runOnce(ctx, kind)
		}
	}
}

func (o *Orchestrator) runOnce(ctx context.Context, kind domain.SyncKind) {
	start := o.clock.Now()
	result, err := o.reconciler.SyncAllAccounts(ctx, kind)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("kind", string(kind)))
		return
	}

	logger.InfoCtx(ctx, "sync pass finished",
		zap.String("kind", string(kind)),
		zap.Int("new", result.New),
		zap.Int("updated", result.Updated),
		zap.Int("errors", result.Errors),
		zap.Duration("elapsed", o.clock.Since(start)))

	if kind == domain.SyncCheckIns {
		// Fresh check-ins may be waiting in the queue
		o.queue.Kick()
	}
}

// Trigger runs immediate sync passes outside the regular schedule. An
// empty account ID covers all active accounts. Phase failures land in the
// per-phase results; the returned error only covers the account lookup.
func (o *Orchestrator) Trigger(ctx context.Context, accountID string, opts TriggerOptions) (*TriggerResult, error) {
	var account *schema.Account
	if accountID != "" {
		var err error
		account, err = o.store.GetAccountByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
	}

	out := &TriggerResult{AccountID: accountID}
	if opts.Events {
		out.Events = o.runPhase(ctx, domain.SyncEvents, account)
	}
	if opts.CheckIns {
		out.CheckIns = o.runPhase(ctx, domain.SyncCheckIns, account)
	}
	return out, nil
}

func (o *Orchestrator) runPhase(ctx context.Context, kind domain.SyncKind, account *schema.Account) *PhaseResult {
	var result domain.SyncResult
	var err error
	switch {
	case account == nil:
		result, err = o.reconciler.SyncAllAccounts(ctx, kind)
	case kind == domain.SyncCheckIns:
		result, err = o.reconciler.SyncAccountCheckIns(ctx, account)
	default:
		result, err = o.reconciler.SyncAccountEvents(ctx, account)
	}

	phase := &PhaseResult{Success: err == nil, Result: result}
	if err != nil {
		phase.Error = err.Error()
		logger.ErrorCtx(ctx, err, zap.String("kind", string(kind)))
	}
	return phase
}

// UpdateIntervals changes the loop cadence at runtime. Zero values keep
// the current interval.
func (o *Orchestrator) UpdateIntervals(intervals Intervals) Intervals {
	o.intervalMu.Lock()
	if intervals.Events > 0 {
		o.eventsInterval = intervals.Events
	}
	if intervals.CheckIns > 0 {
		o.checkinsInterval = intervals.CheckIns
	}
	current := Intervals{Events: o.eventsInterval, CheckIns: o.checkinsInterval}
	reloads := make([]chan struct{}, len(o.reloadChans))
	copy(reloads, o.reloadChans)
	o.intervalMu.Unlock()

	for _, ch := range reloads {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	logger.Info("sync intervals updated",
		zap.Duration("events", current.Events),
		zap.Duration("checkins", current.CheckIns))
	return current
}

func (o *Orchestrator) interval(kind domain.SyncKind) time.Duration {
	o.intervalMu.RLock()
	defer o.intervalMu.RUnlock()
	if kind == domain.SyncCheckIns {
		return o.checkinsInterval
	}
	return o.eventsInterval
}

func (o *Orchestrator) registerReload() chan struct{} {
	ch := make(chan struct{}, 1)
	o.intervalMu.Lock()
	o.reloadChans = append(o.reloadChans, ch)
	o.intervalMu.Unlock()
	return ch
}

func (o *Orchestrator) unregisterReload(ch chan struct{}) {
	o.intervalMu.Lock()
	defer o.intervalMu.Unlock()
	for i, c := range o.reloadChans {
		if c == ch {
			o.reloadChans = append(o.reloadChans[:i], o.reloadChans[i+1:]...)
			return
		}
	}
}

// Status reports the current state of the loops, accounts, circuits and
// mint queue
func (o *Orchestrator) Status(ctx context.Context) (*Status, error) {
	accounts, err := o.store.ListActiveAccounts(ctx)
	if err != nil {
		return nil, err
	}

	accountStatuses := make([]AccountStatus, 0, len(accounts))
	for _, account := range accounts {
		accountStatuses = append(accountStatuses, AccountStatus{
			ID:               account.ID,
			Name:             account.Name,
			LastEventsSync:   account.LastEventsSyncAt,
			LastCheckInsSync: account.LastCheckInsSyncAt,
			SyncError:        account.SyncError,
		})
	}

	breakers := make([]BreakerState, 0)
	for key, state := range o.runner.Breaker().Snapshot() {
		breakers = append(breakers, BreakerState{
			Subject:  key.Subject,
			Op:       key.Op,
			KeyState: state,
		})
	}

	queueStats, err := o.queue.Stats(ctx)
	if err != nil {
		return nil, err
	}

	o.intervalMu.RLock()
	intervals := Intervals{Events: o.eventsInterval, CheckIns: o.checkinsInterval}
	o.intervalMu.RUnlock()

	return &Status{
		Running:   o.Running(),
		Intervals: intervals,
		Accounts:  accountStatuses,
		Breakers:  breakers,
		Queue:     queueStats,
	}, nil
}

// CheckHealth checks the database and the ledger signer, and reports
// whether the two sync loops are running
func (o *Orchestrator) CheckHealth(ctx context.Context) *Health {
	health := &Health{
		Healthy:        true,
		Database:       "ok",
		Ledger:         "ok",
		EventsPoller:   o.eventsLoop.Load(),
		CheckInsPoller: o.checkinsLoop.Load(),
	}

	if _, err := o.store.ListActiveAccounts(ctx); err != nil {
		health.Healthy = false
		health.Database = err.Error()
	}

	balance, err := o.ledger.SignerBalance(ctx)
	if err != nil {
		health.Healthy = false
		health.Ledger = err.Error()
		return health
	}

	health.SignerBalance = balance.String()
	if o.config.MinSignerWei != nil && balance.Cmp(o.config.MinSignerWei) < 0 {
		health.LowBalance = true
		logger.WarnCtx(ctx, "signer balance below threshold",
			zap.String("balance", balance.String()),
			zap.String("min", o.config.MinSignerWei.String()))
	}
	return health
}
