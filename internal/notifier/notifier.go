package notifier

import (
	"context"

	"github.com/checkmint/checkmint/internal/domain"
)

// Notifier defines the downstream notification contract. Each method fires
// one message on the corresponding trigger point of the mint lifecycle.
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	// NotifyMinted fires after a mint reached finality
	NotifyMinted(ctx context.Context, notification domain.MintNotification) error

	// NotifyRetry fires when a failed attempt is scheduled for retry
	NotifyRetry(ctx context.Context, notification domain.MintNotification) error

	// NotifyFailed fires when a mint is given up on
	NotifyFailed(ctx context.Context, notification domain.MintNotification) error

	// NotifyOrganizerSummary fires after a bulk mint run completes
	NotifyOrganizerSummary(ctx context.Context, summary domain.OrganizerSummary) error

	// Close releases the underlying connection
	Close()
}
