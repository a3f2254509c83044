package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/api/middleware"
	"github.com/checkmint/checkmint/internal/api/rest"
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

const testAPIKey = "admin-key"

var testDBCounter int64

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

type apiFixture struct {
	router   *gin.Engine
	store    store.Store
	ledger   *mocks.MockLedger
	notifier *mocks.MockNotifier
	event    *schema.Event
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *apiFixture {
	counter := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:api%d?mode=memory&cache=shared", counter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	st := store.NewPGStore(db)

	ctx := context.Background()
	account := &schema.Account{Name: "Org", APIKey: fmt.Sprintf("key-%d", counter), Active: true}
	require.NoError(t, st.CreateAccount(ctx, account))

	event := &schema.Event{
		AccountID:   account.ID,
		ExternalID:  fmt.Sprintf("evt-%d", counter),
		Name:        "GopherCon",
		MintEnabled: true,
	}
	_, err = st.UpsertEvent(ctx, event)
	require.NoError(t, err)

	clock := adapter.NewClock()
	breaker := resilience.NewBreaker(clock, resilience.Config{FailureThreshold: 100, CoolDown: time.Minute})
	runner := resilience.NewRunner(breaker, clock)

	ledger := mocks.NewMockLedger(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	queue := mintqueue.NewManager(mintqueue.Config{}, st, ledger, notifier, runner, clock)

	client := mocks.NewMockLumaClient(ctrl)
	clients := mocks.NewMockLumaClientFactory(ctrl)
	clients.EXPECT().New(gomock.Any()).Return(client).AnyTimes()
	client.EXPECT().
		ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&luma.EventsPage{}, nil).
		AnyTimes()
	client.EXPECT().
		ListCheckIns(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&luma.CheckInsPage{}, nil).
		AnyTimes()

	rec := reconciler.New(reconciler.Config{}, st, clients, queue, runner, clock)
	orch := orchestrator.New(orchestrator.Config{
		EventsInterval:   time.Hour,
		CheckInsInterval: time.Hour,
	}, st, rec, queue, ledger, runner, clock)

	router := gin.New()
	handler := rest.NewHandler(orch, queue, st)
	rest.SetupRoutes(router, handler, middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return &apiFixture{
		router:   router,
		store:    st,
		ledger:   ledger,
		notifier: notifier,
		event:    event,
	}
}

func (f *apiFixture) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Authorization", "ApiKey wrong")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(t, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.ledger.EXPECT().SignerBalance(gomock.Any()).Return(big.NewInt(1), nil)

	// No API key needed
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var health orchestrator.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.True(t, health.Healthy)
	assert.False(t, health.EventsPoller)
	assert.False(t, health.CheckInsPoller)
}

func TestHealthCheckUnhealthyLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.ledger.EXPECT().SignerBalance(gomock.Any()).Return(nil, fmt.Errorf("rpc unreachable"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSyncLifecycleRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	w := f.request(t, http.MethodPost, "/api/v1/sync/start", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Second start conflicts
	w = f.request(t, http.MethodPost, "/api/v1/sync/start", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.request(t, http.MethodPost, "/api/v1/sync/stop", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTriggerSyncValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	// At least one phase has to be selected
	w := f.request(t, http.MethodPost, "/api/v1/sync/trigger", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(t, http.MethodPost, "/api/v1/sync/trigger", `{"events":false,"checkins":false}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(t, http.MethodPost, "/api/v1/sync/trigger", `{"events":true,"account_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.request(t, http.MethodPost, "/api/v1/sync/trigger", `{"events":true,"checkins":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result orchestrator.TriggerResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Events)
	require.NotNil(t, result.CheckIns)
	assert.True(t, result.Events.Success)
	assert.True(t, result.CheckIns.Success)

	// A single phase leaves the other out of the response
	w = f.request(t, http.MethodPost, "/api/v1/sync/trigger", `{"events":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	result = orchestrator.TriggerResult{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Events)
	assert.Nil(t, result.CheckIns)
}

func TestUpdateIntervals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	w := f.request(t, http.MethodPut, "/api/v1/sync/intervals", `{"events_seconds":60}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 60, resp["events_seconds"])
	assert.Equal(t, 3600, resp["checkins_seconds"])

	w = f.request(t, http.MethodPut, "/api/v1/sync/intervals", `{"events_seconds":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRetryMintRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	ctx := context.Background()

	w := f.request(t, http.MethodPost, "/api/v1/nfts/missing/retry", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	nft := &schema.NFT{
		EventID:          f.event.ID,
		RecipientAddress: "0x1234567890123456789012345678901234567890",
	}
	_, _, err := f.store.EnqueueNFT(ctx, nft)
	require.NoError(t, err)

	// Pending rows are not retryable
	w = f.request(t, http.MethodPost, "/api/v1/nfts/"+nft.ID+"/retry", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	ok, err := f.store.MarkNFTProcessing(ctx, nft.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, f.store.FailNFT(ctx, nft.ID, "execution reverted"))

	w = f.request(t, http.MethodPost, "/api/v1/nfts/"+nft.ID+"/retry", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestBulkMintRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	ctx := context.Background()

	w := f.request(t, http.MethodPost, "/api/v1/events/missing/bulk-mint", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	wallet := "0x1234567890123456789012345678901234567890"
	_, err := f.store.UpsertCheckIn(ctx, &schema.CheckIn{
		EventID:       f.event.ID,
		ExternalID:    "guest-1",
		AttendeeName:  "Ada",
		WalletAddress: &wallet,
	})
	require.NoError(t, err)
	_, err = f.store.UpsertCheckIn(ctx, &schema.CheckIn{
		EventID:      f.event.ID,
		ExternalID:   "guest-2",
		AttendeeName: "Grace",
	})
	require.NoError(t, err)

	f.notifier.EXPECT().NotifyOrganizerSummary(gomock.Any(), gomock.Any()).Return(nil)

	w = f.request(t, http.MethodPost, "/api/v1/events/"+f.event.ID+"/bulk-mint", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary domain.OrganizerSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.TotalAttendees)
	assert.Equal(t, 1, summary.Queued)
	assert.Equal(t, 1, summary.Skipped)
}

func TestListEventNFTsRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	ctx := context.Background()

	nft := &schema.NFT{
		EventID:          f.event.ID,
		RecipientAddress: "0x1234567890123456789012345678901234567890",
	}
	_, _, err := f.store.EnqueueNFT(ctx, nft)
	require.NoError(t, err)

	w := f.request(t, http.MethodGet, "/api/v1/events/"+f.event.ID+"/nfts", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		EventID string       `json:"event_id"`
		NFTs    []schema.NFT `json:"nfts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, f.event.ID, resp.EventID)
	require.Len(t, resp.NFTs, 1)

	w = f.request(t, http.MethodGet, "/api/v1/events/missing/nfts", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueueRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	ctx := context.Background()

	_, _, err := f.store.EnqueueNFT(ctx, &schema.NFT{
		EventID:          f.event.ID,
		RecipientAddress: "0x1234567890123456789012345678901234567890",
	})
	require.NoError(t, err)

	w := f.request(t, http.MethodGet, "/api/v1/queue", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats mintqueue.QueueStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Pending)
}
