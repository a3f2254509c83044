package notifier_test

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
	"github.com/checkmint/checkmint/internal/mocks"
	"github.com/checkmint/checkmint/internal/notifier"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func newTestNotifier(t *testing.T, ctrl *gomock.Controller) (notifier.Notifier, *mocks.MockJetStream) {
	mockNatsJS := mocks.NewMockNatsJetStream(ctrl)
	mockConn := mocks.NewMockNatsConn(ctrl)
	mockJS := mocks.NewMockJetStream(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	mockClock.EXPECT().Now().Return(time.Now()).AnyTimes()
	mockNatsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).
		Return(mockConn, mockJS, nil)
	mockJS.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg natsjs.StreamConfig) (natsjs.Stream, error) {
			assert.Equal(t, "NOTIFY", cfg.Name)
			assert.Equal(t, []string{"notify.mint.>"}, cfg.Subjects)
			return nil, nil
		})

	n, err := notifier.NewJetStream(context.Background(), notifier.Config{
		URL:        "nats://localhost:4222",
		StreamName: "NOTIFY",
	}, mockNatsJS, mockClock, adapter.NewJSON())
	require.NoError(t, err)

	return n, mockJS
}

func TestNotifyMintedPublishesEnvelope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	n, mockJS := newTestNotifier(t, ctrl)

	var published []byte
	mockJS.EXPECT().
		Publish(gomock.Any(), "notify.mint.minted", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			published = data
			return &natsjs.PubAck{}, nil
		})

	tokenID := uint64(42)
	err := n.NotifyMinted(context.Background(), domain.MintNotification{
		EventID:   "evt-1",
		EventName: "GopherCon",
		NFTID:     "nft-1",
		Recipient: "0xabc",
		TxHash:    "0xdead",
		TokenID:   &tokenID,
	})
	require.NoError(t, err)

	var envelope struct {
		ID      string                  `json:"id"`
		Kind    string                  `json:"kind"`
		Payload domain.MintNotification `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(published, &envelope))

	_, err = ulid.Parse(envelope.ID)
	assert.NoError(t, err)
	assert.Equal(t, "minted", envelope.Kind)
	assert.Equal(t, "evt-1", envelope.Payload.EventID)
	assert.Equal(t, "0xdead", envelope.Payload.TxHash)
}

func TestNotificationIDsAreUnique(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	n, mockJS := newTestNotifier(t, ctrl)

	seen := make(map[string]bool)
	mockJS.EXPECT().
		Publish(gomock.Any(), "notify.mint.failed", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var envelope struct {
				ID string `json:"id"`
			}
			require.NoError(t, json.Unmarshal(data, &envelope))
			assert.False(t, seen[envelope.ID])
			seen[envelope.ID] = true
			return &natsjs.PubAck{}, nil
		}).Times(3)

	for range 3 {
		require.NoError(t, n.NotifyFailed(context.Background(), domain.MintNotification{NFTID: "nft-1"}))
	}
	assert.Len(t, seen, 3)
}

func TestConcurrentPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	n, mockJS := newTestNotifier(t, ctrl)

	const workers = 8
	var mu sync.Mutex
	seen := make(map[string]bool)
	mockJS.EXPECT().
		Publish(gomock.Any(), "notify.mint.failed", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var envelope struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(data, &envelope); err != nil {
				return nil, err
			}
			mu.Lock()
			seen[envelope.ID] = true
			mu.Unlock()
			return &natsjs.PubAck{}, nil
		}).Times(workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, n.NotifyFailed(context.Background(), domain.MintNotification{NFTID: "nft-1"}))
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers)
}

func TestNotifyOrganizerSummarySubject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	n, mockJS := newTestNotifier(t, ctrl)

	mockJS.EXPECT().
		Publish(gomock.Any(), "notify.mint.organizerSummary", gomock.Any()).
		Return(&natsjs.PubAck{}, nil)

	err := n.NotifyOrganizerSummary(context.Background(), domain.OrganizerSummary{
		EventID: "evt-1",
		Queued:  5,
	})
	require.NoError(t, err)
}
