package mintqueue

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
	"github.com/checkmint/checkmint/internal/notifier"
	"github.com/checkmint/checkmint/internal/providers/ethereum"
	"github.com/checkmint/checkmint/internal/resilience"
	"github.com/checkmint/checkmint/internal/store"
	"github.com/checkmint/checkmint/internal/store/schema"
)

// Config holds mint queue drain configuration
type Config struct {
	DrainInterval time.Duration // Time between drain cycles
	BatchSize     int           // Rows claimed per drain cycle
	ItemDelay     time.Duration // Pause between items within a cycle
	MaxAttempts   int           // Mint attempts before giving up
	MinSignerWei  *big.Int      // Signer balance floor, nil disables the check
}

// QueueStats summarizes queue depth per lifecycle state
type QueueStats struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
	Skipped    int64 `json:"skipped"`
}

// Manager owns the mint queue: idempotent enqueue, the periodic drain loop
// that submits mints serially, and manual retry.
type Manager struct {
	config   Config
	store    store.Store
	ledger   ethereum.Ledger
	notifier notifier.Notifier
	runner   *resilience.Runner
	clock    adapter.Clock

	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
	kickChan  chan struct{}
	retryWG   sync.WaitGroup
}

// NewManager creates a mint queue manager. Zero config values fall back to
// a 3 second drain cadence, batches of 10, 1 second between items and 3
// attempts per mint.
func NewManager(
	config Config,
	st store.Store,
	ledger ethereum.Ledger,
	n notifier.Notifier,
	runner *resilience.Runner,
	clock adapter.Clock,
) *Manager {
	if config.DrainInterval <= 0 {
		config.DrainInterval = 3 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	if config.ItemDelay < 0 {
		config.ItemDelay = 0
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}

	return &Manager{
		config:    config,
		store:     st,
		ledger:    ledger,
		notifier:  n,
		runner:    runner,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
		kickChan:  make(chan struct{}, 1),
	}
}

// Enqueue inserts a mint request into the queue. A check-in without a
// wallet is marked SKIPPED on the check-in itself and produces no token
// row; a malformed wallet is rejected; a check-in that already has a
// token, or an active row for the same event and recipient, is returned
// as-is.
func (m *Manager) Enqueue(ctx context.Context, req domain.MintRequest) (*schema.NFT, bool, error) {
	if req.EventID == "" {
		return nil, false, domain.NewValidationError("event_id", "must not be empty")
	}

	if req.Recipient == "" {
		if req.CheckInID == "" {
			return nil, false, domain.NewValidationError("recipient", "must not be empty")
		}
		created, err := m.markCheckInSkipped(ctx, req.CheckInID)
		return nil, created, err
	}

	if !ethereum.IsValidAddress(req.Recipient) {
		return nil, false, domain.NewValidationError("recipient", "not a hex address")
	}

	// A check-in only ever gets one token, whatever state it ended in
	if req.CheckInID != "" {
		existing, err := m.store.GetNFTByCheckInID(ctx, req.CheckInID)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, domain.ErrNFTNotFound) {
			return nil, false, err
		}
	}

	nft, created, err := m.store.EnqueueNFT(ctx, &schema.NFT{
		EventID:          req.EventID,
		CheckInID:        optional(req.CheckInID),
		RecipientAddress: req.Recipient,
		AttendeeName:     req.AttendeeName,
		AttendeeEmail:    req.AttendeeEmail,
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		logger.InfoCtx(ctx, "mint enqueued",
			zap.String("nft_id", nft.ID),
			zap.String("event_id", req.EventID),
			zap.String("recipient", req.Recipient))
		m.mirrorCheckIn(ctx, nft.CheckInID, store.CheckInMintState{
			Status: domain.MintStatusPending,
			NFTID:  &nft.ID,
		})
	}
	return nft, created, nil
}

// markCheckInSkipped records on the check-in that it can never mint.
// Returns true only the first time; repeat calls for the same check-in
// are a no-op.
func (m *Manager) markCheckInSkipped(ctx context.Context, checkInID string) (bool, error) {
	checkIn, err := m.store.GetCheckInByID(ctx, checkInID)
	if err != nil {
		return false, err
	}
	if checkIn.MintStatus != "" {
		return false, nil
	}

	if err := m.store.SetCheckInMintState(ctx, checkInID, store.CheckInMintState{
		Status: domain.MintStatusSkipped,
	}); err != nil {
		return false, err
	}

	logger.InfoCtx(ctx, "check-in skipped, no wallet registered",
		zap.String("checkin_id", checkInID),
		zap.String("event_id", checkIn.EventID))
	return true, nil
}

// mirrorCheckIn writes the token's mint state onto its source check-in.
// Direct mints have no check-in and nothing to mirror.
func (m *Manager) mirrorCheckIn(ctx context.Context, checkInID *string, state store.CheckInMintState) {
	if checkInID == nil {
		return
	}
	if err := m.store.SetCheckInMintState(ctx, *checkInID, state); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("checkin_id", *checkInID))
	}
}

// Run begins the drain loop. It blocks until Stop is called or ctx is
// canceled; only one loop can run at a time.
func (m *Manager) Run(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return fmt.Errorf("mint queue already running")
	}
	defer func() {
		m.running.Store(false)
		m.retryWG.Wait()
		close(m.stoppedCh)
	}()

	logger.InfoCtx(ctx, "starting mint queue",
		zap.Duration("drain_interval", m.config.DrainInterval),
		zap.Int("batch_size", m.config.BatchSize),
		zap.Int("max_attempts", m.config.MaxAttempts))

	ticker := m.clock.NewTicker(m.config.DrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "mint queue stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-m.stopChan:
			logger.InfoCtx(ctx, "mint queue stop requested")
			return nil
		case <-ticker.C:
			m.drain(ctx)
		case <-m.kickChan:
			m.drain(ctx)
		}
	}
}

// Stop requests the drain loop to exit and waits for it
func (m *Manager) Stop() {
	if !m.running.Load() {
		return
	}
	close(m.stopChan)
	<-m.stoppedCh
}

// Kick triggers an immediate drain cycle without waiting for the ticker
func (m *Manager) Kick() {
	select {
	case m.kickChan <- struct{}{}:
	default:
	}
}

// drain claims one batch of pending rows and mints them serially
func (m *Manager) drain(ctx context.Context) {
	pending, err := m.store.ListPendingNFTs(ctx, m.config.BatchSize)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		return
	}
	if len(pending) == 0 {
		return
	}

	logger.DebugCtx(ctx, "draining mint queue", zap.Int("claimed", len(pending)))

	for i, nft := range pending {
		select {
		case <-ctx.Done():
			return
		case <-m.stopChan:
			return
		default:
		}

		m.mintOne(ctx, nft)

		if i < len(pending)-1 && m.config.ItemDelay > 0 {
			m.clock.Sleep(m.config.ItemDelay)
		}
	}
}

// mintOne performs one mint attempt for one row
func (m *Manager) mintOne(ctx context.Context, nft schema.NFT) {
	key := resilience.Key{Subject: nft.EventID, Op: "mint"}

	// A rejected call leaves the row PENDING without consuming an attempt
	if err := m.runner.Breaker().Allow(key); err != nil {
		logger.DebugCtx(ctx, "mint skipped, circuit open",
			zap.String("nft_id", nft.ID),
			zap.String("event_id", nft.EventID))
		return
	}

	if m.config.MinSignerWei != nil {
		balance, balErr := m.ledger.SignerBalance(ctx)
		if balErr != nil {
			logger.ErrorCtx(ctx, balErr, zap.String("nft_id", nft.ID))
		} else if balance.Cmp(m.config.MinSignerWei) < 0 {
			cause := domain.NewChainError("balance_check",
				fmt.Errorf("signer balance %s below minimum %s", balance, m.config.MinSignerWei), false)
			m.giveUp(ctx, nft, nil, nft.Attempts, cause)
			return
		}
	}

	claimed, err := m.store.MarkNFTProcessing(ctx, nft.ID)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		return
	}
	if !claimed {
		// Row moved on since the batch was listed
		return
	}
	attempt := nft.Attempts + 1
	m.mirrorCheckIn(ctx, nft.CheckInID, store.CheckInMintState{
		Status:   domain.MintStatusProcessing,
		NFTID:    &nft.ID,
		Attempts: attempt,
	})

	event, err := m.store.GetEventByID(ctx, nft.EventID)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("nft_id", nft.ID))
		m.giveUp(ctx, nft, nil, attempt, err)
		return
	}

	metadata, err := buildMetadata(event, &nft)
	if err != nil {
		m.giveUp(ctx, nft, event, attempt, err)
		return
	}
	if err := m.store.SetNFTMetadata(ctx, nft.ID, metadata); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("nft_id", nft.ID))
	}

	var receipt *domain.MintReceipt
	err = m.runner.Do(ctx, key, func(ctx context.Context) error {
		var mintErr error
		receipt, mintErr = m.ledger.SubmitMint(ctx, event.ExternalID, nft.RecipientAddress, string(metadata))
		return mintErr
	})
	if err == nil {
		m.complete(ctx, nft, event, attempt, receipt)
		return
	}

	if errors.Is(err, domain.ErrCircuitOpen) {
		// Raced another consumer of the same key: put the row back intact
		if dbErr := m.store.ReturnNFTToPending(ctx, nft.ID, err.Error()); dbErr != nil {
			logger.ErrorCtx(ctx, dbErr, zap.String("nft_id", nft.ID))
		}
		m.mirrorCheckIn(ctx, nft.CheckInID, store.CheckInMintState{
			Status:   domain.MintStatusPending,
			NFTID:    &nft.ID,
			Attempts: attempt,
		})
		return
	}

	if domain.IsRetryable(err) && attempt < m.config.MaxAttempts {
		m.scheduleRetry(ctx, nft, event, attempt, err)
		return
	}

	m.giveUp(ctx, nft, event, attempt, err)
}

func (m *Manager) complete(ctx context.Context, nft schema.NFT, event *schema.Event, attempt int, receipt *domain.MintReceipt) {
	mintedAt := m.clock.Now()
	if err := m.store.CompleteNFT(ctx, nft.ID, *receipt, mintedAt); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("nft_id", nft.ID))
		return
	}
	m.mirrorCheckIn(ctx, nft.CheckInID, store.CheckInMintState{
		Status:   domain.MintStatusCompleted,
		NFTID:    &nft.ID,
		Attempts: attempt,
	})

	logger.InfoCtx(ctx, "mint completed",
		zap.String("nft_id", nft.ID),
		zap.String("tx_hash", receipt.TxHash),
		zap.Uint64("token_id", receipt.TokenID))

	tokenID := receipt.TokenID
	if err := m.notifier.NotifyMinted(ctx, domain.MintNotification{
		EventID:       nft.EventID,
		EventName:     event.Name,
		NFTID:         nft.ID,
		Recipient:     nft.RecipientAddress,
		AttendeeName:  nft.AttendeeName,
		AttendeeEmail: nft.AttendeeEmail,
		TxHash:        receipt.TxHash,
		TokenID:       &tokenID,
		Timestamp:     mintedAt,
		MintedAt:      &mintedAt,
	}); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("nft_id", nft.ID))
	}
}

// scheduleRetry returns the row to PENDING after the stepped delay for this
// attempt, so a later drain cycle picks it up again
func (m *Manager) scheduleRetry(ctx context.Context, nft schema.NFT, event *schema.Event, attempt int, cause error) {
	delay := m.runner.RetryDelay(attempt)
	logger.WarnCtx(ctx, "mint attempt failed, retry scheduled",
		zap.String("nft_id", nft.ID),
		zap.Int("attempt", attempt),
		zap.Duration("delay", delay),
		zap.Error(cause))

	if err := m.notifier.NotifyRetry(ctx, domain.MintNotification{
		EventID:       nft.EventID,
		EventName:     event.Name,
		NFTID:         nft.ID,
		Recipient:     nft.RecipientAddress,
		AttendeeName:  nft.AttendeeName,
		AttendeeEmail: nft.AttendeeEmail,
		Attempts:      attempt,
		Error:         cause.Error(),
		Timestamp:     m.clock.Now(),
	}); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("nft_id", nft.ID))
	}

	m.retryWG.Add(1)
	go func() {
		defer m.retryWG.Done()

		select {
		case <-ctx.Done():
		case <-m.stopChan:
		case <-m.clock.After(delay):
		}

		bg := context.WithoutCancel(ctx)
		if err := m.store.ReturnNFTToPending(bg, nft.ID, cause.Error()); err != nil {
			logger.Error(err, zap.String("nft_id", nft.ID))
		}
		m.mirrorCheckIn(bg, nft.CheckInID, store.CheckInMintState{
			Status:   domain.MintStatusPending,
			NFTID:    &nft.ID,
			Error:    optional(cause.Error()),
			Attempts: attempt,
		})
	}()
}

func (m *Manager) giveUp(ctx context.Context, nft schema.NFT, event *schema.Event, attempt int, cause error) {
	if err := m.store.FailNFT(ctx, nft.ID, cause.Error()); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("nft_id", nft.ID))
		return
	}
	m.mirrorCheckIn(ctx, nft.CheckInID, store.CheckInMintState{
		Status:   domain.MintStatusFailed,
		NFTID:    &nft.ID,
		Error:    optional(cause.Error()),
		Attempts: attempt,
	})

	logger.WarnCtx(ctx, "mint failed permanently",
		zap.String("nft_id", nft.ID),
		zap.Int("attempts", attempt),
		zap.Error(cause))

	eventName := ""
	if event != nil {
		eventName = event.Name
	}
	if err := m.notifier.NotifyFailed(ctx, domain.MintNotification{
		EventID:       nft.EventID,
		EventName:     eventName,
		NFTID:         nft.ID,
		Recipient:     nft.RecipientAddress,
		AttendeeName:  nft.AttendeeName,
		AttendeeEmail: nft.AttendeeEmail,
		Attempts:      attempt,
		Error:         cause.Error(),
		Timestamp:     m.clock.Now(),
	}); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("nft_id", nft.ID))
	}
}

// RetryMint returns a FAILED row to the queue with a fresh attempt budget
// and triggers a drain
func (m *Manager) RetryMint(ctx context.Context, nftID string) error {
	nft, err := m.store.GetNFTByID(ctx, nftID)
	if err != nil {
		return err
	}
	if nft.MintStatus != domain.MintStatusFailed {
		return domain.ErrNotRetryable
	}

	if err := m.store.ResetNFTForRetry(ctx, nftID); err != nil {
		return err
	}
	m.mirrorCheckIn(ctx, nft.CheckInID, store.CheckInMintState{
		Status: domain.MintStatusPending,
		NFTID:  &nft.ID,
	})

	logger.InfoCtx(ctx, "mint queued for manual retry", zap.String("nft_id", nftID))
	m.Kick()
	return nil
}

// BulkMintForEvent enqueues mints for every checked-in guest of an event
// and publishes a summary for the organizer
func (m *Manager) BulkMintForEvent(ctx context.Context, eventID string) (*domain.OrganizerSummary, error) {
	event, err := m.store.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	checkIns, err := m.store.ListCheckInsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary := &domain.OrganizerSummary{
		EventID:        event.ID,
		EventName:      event.Name,
		TotalAttendees: len(checkIns),
		Timestamp:      m.clock.Now(),
	}

	for _, checkIn := range checkIns {
		recipient := ""
		if checkIn.WalletAddress != nil {
			recipient = *checkIn.WalletAddress
		}

		nft, created, err := m.Enqueue(ctx, domain.MintRequest{
			EventID:         event.ID,
			ExternalEventID: event.ExternalID,
			Recipient:       recipient,
			CheckInID:       checkIn.ID,
			AttendeeName:    checkIn.AttendeeName,
			AttendeeEmail:   checkIn.AttendeeEmail,
		})
		switch {
		case err != nil:
			summary.Errors++
			logger.ErrorCtx(ctx, err, zap.String("checkin_id", checkIn.ID))
		case nft == nil:
			summary.Skipped++
		case created:
			summary.Queued++
		default:
			summary.Duplicates++
		}
	}

	if err := m.notifier.NotifyOrganizerSummary(ctx, *summary); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("event_id", eventID))
	}

	m.Kick()
	return summary, nil
}

// Stats returns queue depth per lifecycle state. Skipped counts
// check-ins, since walletless attendees never get a token row.
func (m *Manager) Stats(ctx context.Context) (*QueueStats, error) {
	counts, err := m.store.CountNFTsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	checkInCounts, err := m.store.CountCheckInsByMintStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &QueueStats{
		Pending:    counts[domain.MintStatusPending],
		Processing: counts[domain.MintStatusProcessing],
		Completed:  counts[domain.MintStatusCompleted],
		Failed:     counts[domain.MintStatusFailed],
		Skipped:    checkInCounts[domain.MintStatusSkipped],
	}, nil
}

// Running reports whether the drain loop is active
func (m *Manager) Running() bool {
	return m.running.Load()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
