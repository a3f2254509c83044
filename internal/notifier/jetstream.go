package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
)

// subjectPrefix is the root of all notification subjects, one leaf per
// notification kind: notify.mint.minted, notify.mint.retry, ...
const subjectPrefix = "notify.mint."

// Config holds the configuration for the NATS JetStream notifier
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

// envelope wraps every published notification with a unique, sortable ID
type envelope struct {
	ID          string      `json:"id"`
	Kind        string      `json:"kind"`
	Payload     interface{} `json:"payload"`
	PublishedAt time.Time   `json:"published_at"`
}

type jetStreamNotifier struct {
	nc    adapter.NatsConn
	js    adapter.JetStream
	clock adapter.Clock
	json  adapter.JSON
}

// NewJetStream creates a notifier publishing to NATS JetStream. The stream
// is created on first use when it does not exist yet.
func NewJetStream(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, clock adapter.Clock, jsonAdapter adapter.JSON) (Notifier, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{subjectPrefix + ">"},
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create notification stream: %w", err)
	}

	return &jetStreamNotifier{
		nc:    nc,
		js:    js,
		clock: clock,
		json:  jsonAdapter,
	}, nil
}

func (n *jetStreamNotifier) publish(ctx context.Context, kind domain.NotificationKind, payload interface{}) error {
	now := n.clock.Now()
	msg := envelope{
		ID:          ulid.MustNewDefault(now).String(),
		Kind:        string(kind),
		Payload:     payload,
		PublishedAt: now,
	}

	data, err := n.json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	subject := subjectPrefix + string(kind)
	if _, err := n.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	logger.DebugCtx(ctx, "notification published",
		zap.String("subject", subject),
		zap.String("id", msg.ID))
	return nil
}

func (n *jetStreamNotifier) NotifyMinted(ctx context.Context, notification domain.MintNotification) error {
	return n.publish(ctx, domain.NotifyMinted, notification)
}

func (n *jetStreamNotifier) NotifyRetry(ctx context.Context, notification domain.MintNotification) error {
	return n.publish(ctx, domain.NotifyRetry, notification)
}

func (n *jetStreamNotifier) NotifyFailed(ctx context.Context, notification domain.MintNotification) error {
	return n.publish(ctx, domain.NotifyFailed, notification)
}

func (n *jetStreamNotifier) NotifyOrganizerSummary(ctx context.Context, summary domain.OrganizerSummary) error {
	return n.publish(ctx, domain.NotifyOrganizerSummary, summary)
}

func (n *jetStreamNotifier) Close() {
	if n.nc == nil {
		return
	}
	n.nc.Close()
}
