package orchestrator_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
	"github.com/checkmint/checkmint/internal/mintqueue"
	"github.com/checkmint/checkmint/internal/mocks"
	"github.com/checkmint/checkmint/internal/orchestrator"
	"github.com/checkmint/checkmint/internal/providers/luma"
	"github.com/checkmint/checkmint/internal/reconciler"
	"github.com/checkmint/checkmint/internal/resilience"
	"github.com/checkmint/checkmint/internal/store"
	"github.com/checkmint/checkmint/internal/store/schema"
)

var testDBCounter int64

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type orchestratorFixture struct {
	orchestrator *orchestrator.Orchestrator
	store        store.Store
	client       *mocks.MockLumaClient
	ledger       *mocks.MockLedger
	account      *schema.Account
}

func newFixture(t *testing.T, ctrl *gomock.Controller, cfg orchestrator.Config) *orchestratorFixture {
	counter := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:orchestrator%d?mode=memory&cache=shared", counter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	st := store.NewPGStore(db)

	ctx := context.Background()
	account := &schema.Account{Name: "Org", APIKey: fmt.Sprintf("key-%d", counter), Active: true}
	require.NoError(t, st.CreateAccount(ctx, account))

	clock := adapter.NewClock()
	breaker := resilience.NewBreaker(clock, resilience.Config{FailureThreshold: 100, CoolDown: time.Minute})
	runner := resilience.NewRunner(breaker, clock)

	ledger := mocks.NewMockLedger(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	queue := mintqueue.NewManager(mintqueue.Config{}, st, ledger, notifier, runner, clock)

	client := mocks.NewMockLumaClient(ctrl)
	clients := mocks.NewMockLumaClientFactory(ctrl)
	clients.EXPECT().New(gomock.Any()).Return(client).AnyTimes()

	rec := reconciler.New(reconciler.Config{}, st, clients, queue, runner, clock)
	orch := orchestrator.New(cfg, st, rec, queue, ledger, runner, clock)

	return &orchestratorFixture{
		orchestrator: orch,
		store:        st,
		client:       client,
		ledger:       ledger,
		account:      account,
	}
}

func (f *orchestratorFixture) expectIdleSource() {
	f.client.EXPECT().
		ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&luma.EventsPage{}, nil).
		AnyTimes()
	f.client.EXPECT().
		ListCheckIns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&luma.CheckInsPage{}, nil).
		AnyTimes()
}

func TestStartStopRestart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{
		EventsInterval:   time.Hour,
		CheckInsInterval: time.Hour,
	})
	f.expectIdleSource()
	ctx := context.Background()

	require.NoError(t, f.orchestrator.Start(ctx))
	assert.True(t, f.orchestrator.Running())
	assert.ErrorIs(t, f.orchestrator.Start(ctx), orchestrator.ErrAlreadyRunning)

	f.orchestrator.Stop()
	assert.False(t, f.orchestrator.Running())

	// Stop on a stopped orchestrator is a no-op
	f.orchestrator.Stop()

	require.NoError(t, f.orchestrator.Start(ctx))
	f.orchestrator.Stop()
}

func TestLoopsRecordSyncTimes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{
		EventsInterval:   time.Hour,
		CheckInsInterval: time.Hour,
		StaggerDelay:     10 * time.Millisecond,
	})
	f.expectIdleSource()
	ctx := context.Background()

	require.NoError(t, f.orchestrator.Start(ctx))
	defer f.orchestrator.Stop()

	require.Eventually(t, func() bool {
		account, err := f.store.GetAccountByID(ctx, f.account.ID)
		if err != nil {
			return false
		}
		return account.LastEventsSyncAt != nil && account.LastCheckInsSyncAt != nil
	}, 10*time.Second, 20*time.Millisecond)
}

func TestUpdateIntervals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{
		EventsInterval:   5 * time.Minute,
		CheckInsInterval: 2 * time.Minute,
	})

	current := f.orchestrator.UpdateIntervals(orchestrator.Intervals{Events: time.Minute})
	assert.Equal(t, time.Minute, current.Events)
	assert.Equal(t, 2*time.Minute, current.CheckIns)

	current = f.orchestrator.UpdateIntervals(orchestrator.Intervals{CheckIns: 30 * time.Second})
	assert.Equal(t, time.Minute, current.Events)
	assert.Equal(t, 30*time.Second, current.CheckIns)
}

func TestTriggerAccountSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{})
	ctx := context.Background()

	f.client.EXPECT().
		ListEvents(gomock.Any(), "", gomock.Any()).
		Return(&luma.EventsPage{
			Events: []luma.Event{{APIID: "evt-1", Name: "GopherCon"}},
		}, nil)

	result, err := f.orchestrator.Trigger(ctx, f.account.ID, orchestrator.TriggerOptions{Events: true})
	require.NoError(t, err)
	assert.Equal(t, f.account.ID, result.AccountID)
	require.NotNil(t, result.Events)
	assert.True(t, result.Events.Success)
	assert.Equal(t, 1, result.Events.Result.New)
	assert.Nil(t, result.CheckIns)

	_, err = f.orchestrator.Trigger(ctx, "missing", orchestrator.TriggerOptions{Events: true})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTriggerRunsBothPhases(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{})
	f.expectIdleSource()
	ctx := context.Background()

	result, err := f.orchestrator.Trigger(ctx, "", orchestrator.TriggerOptions{Events: true, CheckIns: true})
	require.NoError(t, err)
	require.NotNil(t, result.Events)
	require.NotNil(t, result.CheckIns)
	assert.True(t, result.Events.Success)
	assert.True(t, result.CheckIns.Success)
}

func TestTriggerReportsPhaseFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{})
	ctx := context.Background()

	f.client.EXPECT().
		ListEvents(gomock.Any(), "", gomock.Any()).
		Return(nil, errors.New("invalid api key"))
	f.client.EXPECT().
		VerifyCredentials(gomock.Any()).
		Return(errors.New("invalid api key"))

	// A failing phase shows up in the result, never as an error return
	result, err := f.orchestrator.Trigger(ctx, f.account.ID, orchestrator.TriggerOptions{Events: true})
	require.NoError(t, err)
	require.NotNil(t, result.Events)
	assert.False(t, result.Events.Success)
	assert.Contains(t, result.Events.Error, "invalid api key")
}

func TestStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{
		EventsInterval:   5 * time.Minute,
		CheckInsInterval: 2 * time.Minute,
	})
	ctx := context.Background()

	status, err := f.orchestrator.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Equal(t, 5*time.Minute, status.Intervals.Events)
	require.Len(t, status.Accounts, 1)
	assert.Equal(t, f.account.ID, status.Accounts[0].ID)
	require.NotNil(t, status.Queue)
}

func TestCheckHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{
		MinSignerWei: big.NewInt(1_000_000),
	})
	ctx := context.Background()

	f.ledger.EXPECT().SignerBalance(gomock.Any()).Return(big.NewInt(2_000_000), nil)
	health := f.orchestrator.CheckHealth(ctx)
	assert.True(t, health.Healthy)
	assert.False(t, health.LowBalance)
	assert.Equal(t, "2000000", health.SignerBalance)
	assert.False(t, health.EventsPoller)
	assert.False(t, health.CheckInsPoller)

	f.ledger.EXPECT().SignerBalance(gomock.Any()).Return(big.NewInt(500), nil)
	health = f.orchestrator.CheckHealth(ctx)
	assert.True(t, health.Healthy)
	assert.True(t, health.LowBalance)
}

func TestCheckHealthReportsPollerState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, orchestrator.Config{
		EventsInterval:   time.Hour,
		CheckInsInterval: time.Hour,
	})
	f.expectIdleSource()
	f.ledger.EXPECT().SignerBalance(gomock.Any()).Return(big.NewInt(2_000_000), nil).AnyTimes()
	ctx := context.Background()

	require.NoError(t, f.orchestrator.Start(ctx))
	require.Eventually(t, func() bool {
		health := f.orchestrator.CheckHealth(ctx)
		return health.EventsPoller && health.CheckInsPoller
	}, 5*time.Second, 10*time.Millisecond)

	f.orchestrator.Stop()
	require.Eventually(t, func() bool {
		health := f.orchestrator.CheckHealth(ctx)
		return !health.EventsPoller && !health.CheckInsPoller
	}, 5*time.Second, 10*time.Millisecond)
}
