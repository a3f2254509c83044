package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/checkmint/checkmint/internal/adapter"
	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/logger"
	"github.com/checkmint/checkmint/internal/providers/luma"
	"github.com/checkmint/checkmint/internal/resilience"
	"github.com/checkmint/checkmint/internal/store"
	"github.com/checkmint/checkmint/internal/store/schema"
)

// Enqueuer is the slice of the mint queue the reconciler needs
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/enqueuer.go -package=mocks -mock_names=Enqueuer=MockEnqueuer
type Enqueuer interface {
	Enqueue(ctx context.Context, req domain.MintRequest) (*schema.NFT, bool, error)
}

// Config holds reconciliation caps and pacing
type Config struct {
	MaxEventsPerRun   int           // Events processed per pass per account
	MaxCheckInsPerRun int           // Check-ins processed per pass per event
	EventBatchSize    int           // Events upserted between pauses
	CheckInBatchSize  int           // Events whose guests are fetched between pauses
	BatchDelay        time.Duration // Pause between batches
	PageSize          int           // Source API page size
}

// Reconciler mirrors events and check-ins from the source API into the
// local store, and feeds fresh check-ins into the mint queue
type Reconciler struct {
	config   Config
	store    store.Store
	clients  luma.ClientFactory
	enqueuer Enqueuer
	runner   *resilience.Runner
	clock    adapter.Clock
}

// New creates a reconciler. Zero caps fall back to the service defaults:
// 200 events and 500 check-ins per run, batches of 3 and 2, pages of 50.
func New(
	config Config,
	st store.Store,
	clients luma.ClientFactory,
	enqueuer Enqueuer,
	runner *resilience.Runner,
	clock adapter.Clock,
) *Reconciler {
	if config.MaxEventsPerRun <= 0 {
		config.MaxEventsPerRun = 200
	}
	if config.MaxCheckInsPerRun <= 0 {
		config.MaxCheckInsPerRun = 500
	}
	if config.EventBatchSize <= 0 {
		config.EventBatchSize = 3
	}
	if config.CheckInBatchSize <= 0 {
		config.CheckInBatchSize = 2
	}
	if config.BatchDelay < 0 {
		config.BatchDelay = 0
	}
	if config.PageSize <= 0 {
		config.PageSize = 50
	}

	return &Reconciler{
		config:   config,
		store:    st,
		clients:  clients,
		enqueuer: enqueuer,
		runner:   runner,
		clock:    clock,
	}
}

// SyncAllAccounts runs one reconciliation pass of the given kind for every
// active account. A failing account does not stop the others.
func (r *Reconciler) SyncAllAccounts(ctx context.Context, kind domain.SyncKind) (domain.SyncResult, error) {
	accounts, err := r.store.ListActiveAccounts(ctx)
	if err != nil {
		return domain.SyncResult{}, err
	}

	batch := r.config.EventBatchSize
	if kind == domain.SyncCheckIns {
		batch = r.config.CheckInBatchSize
	}

	var total domain.SyncResult
	for i, account := range accounts {
		if i > 0 && i%batch == 0 && r.config.BatchDelay > 0 {
			r.clock.Sleep(r.config.BatchDelay)
		}

		var result domain.SyncResult
		var syncErr error
		switch kind {
		case domain.SyncCheckIns:
			result, syncErr = r.SyncAccountCheckIns(ctx, &account)
		default:
			result, syncErr = r.SyncAccountEvents(ctx, &account)
		}

		total.Add(result)
		if syncErr != nil {
			total.Errors++
			if !errors.Is(syncErr, domain.ErrCircuitOpen) {
				logger.ErrorCtx(ctx, syncErr,
					zap.String("account_id", account.ID),
					zap.String("kind", string(kind)))
			}
		}

		if ctx.Err() != nil {
			return total, ctx.Err()
		}
	}
	return total, nil
}

// SyncAccountEvents mirrors the account's calendar into the store
func (r *Reconciler) SyncAccountEvents(ctx context.Context, account *schema.Account) (domain.SyncResult, error) {
	var result domain.SyncResult
	key := resilience.Key{Subject: account.ID, Op: "sync_events"}
	client := r.clients.New(account.APIKey)

	cursor := ""
	var events []luma.Event
	for {
		var page *luma.EventsPage
		err := r.runner.DoWithRetry(ctx, key, func(ctx context.Context) error {
			var apiErr error
			page, apiErr = client.ListEvents(ctx, cursor, r.config.PageSize)
			return apiErr
		})
		if err != nil {
			r.recordAccountSyncError(ctx, client, account, err)
			return result, err
		}

		events = append(events, page.Events...)
		if !page.HasMore || len(events) >= r.config.MaxEventsPerRun {
			break
		}
		cursor = page.NextCursor
	}
	if len(events) > r.config.MaxEventsPerRun {
		events = events[:r.config.MaxEventsPerRun]
	}

	for i, event := range events {
		if i > 0 && i%r.config.EventBatchSize == 0 && r.config.BatchDelay > 0 {
			r.clock.Sleep(r.config.BatchDelay)
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		outcome, err := r.upsertEvent(ctx, account, event)
		result.Processed++
		switch {
		case err != nil:
			result.Errors++
			logger.ErrorCtx(ctx, err,
				zap.String("account_id", account.ID),
				zap.String("external_id", event.APIID))
		case outcome == store.UpsertCreated:
			result.New++
		case outcome == store.UpsertUpdated:
			result.Updated++
		}
	}

	if err := r.store.UpdateAccountSyncTime(ctx, account.ID, domain.SyncEvents, r.clock.Now()); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("account_id", account.ID))
	}
	if account.SyncError != nil {
		if err := r.store.SetAccountSyncError(ctx, account.ID, nil); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("account_id", account.ID))
		}
	}

	logger.InfoCtx(ctx, "events reconciled",
		zap.String("account_id", account.ID),
		zap.Int("new", result.New),
		zap.Int("updated", result.Updated),
		zap.Int("errors", result.Errors))
	return result, nil
}

func (r *Reconciler) upsertEvent(ctx context.Context, account *schema.Account, event luma.Event) (store.UpsertOutcome, error) {
	if event.APIID == "" {
		return store.UpsertUnchanged, domain.NewValidationError("api_id", "must not be empty")
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return store.UpsertUnchanged, err
	}

	row := &schema.Event{
		AccountID:   account.ID,
		ExternalID:  event.APIID,
		Name:        event.Name,
		Description: event.Description,
		StartAt:     event.StartAt,
		EndAt:       event.EndAt,
		Timezone:    event.Timezone,
		URL:         event.URL,
		CoverURL:    event.CoverURL,
		Location:    event.Location(),
		MintEnabled: true,
		Raw:         datatypes.JSON(raw),
	}
	return r.store.UpsertEvent(ctx, row)
}

// recordAccountSyncError persists the failure on the account row so an
// operator can see why a source stopped syncing. Terminal failures are
// followed by a credential check to separate revoked keys from outages.
func (r *Reconciler) recordAccountSyncError(ctx context.Context, client luma.Client, account *schema.Account, syncErr error) {
	if errors.Is(syncErr, domain.ErrCircuitOpen) {
		return
	}

	msg := syncErr.Error()
	if !domain.IsRetryable(syncErr) {
		if credErr := client.VerifyCredentials(ctx); credErr != nil {
			msg = fmt.Sprintf("credential check failed: %v", credErr)
		}
	}
	if err := r.store.SetAccountSyncError(ctx, account.ID, &msg); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("account_id", account.ID))
	}
}

// SyncAccountCheckIns mirrors guest check-ins for the account's mintable
// events and enqueues mints for fresh ones
func (r *Reconciler) SyncAccountCheckIns(ctx context.Context, account *schema.Account) (domain.SyncResult, error) {
	var result domain.SyncResult
	client := r.clients.New(account.APIKey)

	events, err := r.store.ListMintableEvents(ctx, account.ID, r.config.MaxEventsPerRun)
	if err != nil {
		return result, err
	}

	for i, event := range events {
		if i > 0 && i%r.config.CheckInBatchSize == 0 && r.config.BatchDelay > 0 {
			r.clock.Sleep(r.config.BatchDelay)
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		eventResult, err := r.syncEventCheckIns(ctx, client, account, &event)
		result.Add(eventResult)
		if err != nil {
			result.Errors++
			if errors.Is(err, domain.ErrCircuitOpen) {
				// Account-wide condition: no point hitting the rest
				break
			}
			logger.ErrorCtx(ctx, err,
				zap.String("account_id", account.ID),
				zap.String("event_id", event.ID))
			msg := err.Error()
			if serr := r.store.SetEventSyncError(ctx, event.ID, &msg); serr != nil {
				logger.ErrorCtx(ctx, serr, zap.String("event_id", event.ID))
			}
			continue
		}
		if event.SyncError != nil {
			if serr := r.store.SetEventSyncError(ctx, event.ID, nil); serr != nil {
				logger.ErrorCtx(ctx, serr, zap.String("event_id", event.ID))
			}
		}
	}

	if err := r.store.UpdateAccountSyncTime(ctx, account.ID, domain.SyncCheckIns, r.clock.Now()); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("account_id", account.ID))
	}

	logger.InfoCtx(ctx, "check-ins reconciled",
		zap.String("account_id", account.ID),
		zap.Int("new", result.New),
		zap.Int("updated", result.Updated),
		zap.Int("errors", result.Errors))
	return result, nil
}

func (r *Reconciler) syncEventCheckIns(ctx context.Context, client luma.Client, account *schema.Account, event *schema.Event) (domain.SyncResult, error) {
	var result domain.SyncResult
	key := resilience.Key{Subject: account.ID, Op: "sync_checkins"}

	cursor := ""
	var guests []luma.Guest
	for {
		var page *luma.CheckInsPage
		err := r.runner.DoWithRetry(ctx, key, func(ctx context.Context) error {
			var apiErr error
			page, apiErr = client.ListCheckIns(ctx, event.ExternalID, cursor, r.config.PageSize)
			return apiErr
		})
		if err != nil {
			return result, err
		}

		guests = append(guests, page.Guests...)
		if !page.HasMore || len(guests) >= r.config.MaxCheckInsPerRun {
			break
		}
		cursor = page.NextCursor
	}
	if len(guests) > r.config.MaxCheckInsPerRun {
		guests = guests[:r.config.MaxCheckInsPerRun]
	}

	for _, guest := range guests {
		outcome, checkIn, err := r.upsertCheckIn(ctx, event, guest)
		result.Processed++
		if err != nil {
			result.Errors++
			logger.ErrorCtx(ctx, err,
				zap.String("event_id", event.ID),
				zap.String("external_id", guest.APIID))
			continue
		}
		if outcome != store.UpsertCreated {
			if outcome == store.UpsertUpdated {
				result.Updated++
			}
			continue
		}
		result.New++

		// Fresh check-in on a mintable event: feed the queue
		if !event.MintEnabled {
			continue
		}
		if _, _, err := r.enqueuer.Enqueue(ctx, domain.MintRequest{
			EventID:         event.ID,
			ExternalEventID: event.ExternalID,
			Recipient:       guest.WalletAddress(),
			CheckInID:       checkIn.ID,
			AttendeeName:    guest.Name,
			AttendeeEmail:   guest.Email,
		}); err != nil {
			result.Errors++
			logger.ErrorCtx(ctx, err, zap.String("checkin_id", checkIn.ID))
		}
	}

	return result, nil
}

func (r *Reconciler) upsertCheckIn(ctx context.Context, event *schema.Event, guest luma.Guest) (store.UpsertOutcome, *schema.CheckIn, error) {
	if guest.APIID == "" {
		return store.UpsertUnchanged, nil, domain.NewValidationError("api_id", "must not be empty")
	}

	raw, err := json.Marshal(guest)
	if err != nil {
		return store.UpsertUnchanged, nil, err
	}

	var wallet *string
	if addr := guest.WalletAddress(); addr != "" {
		wallet = &addr
	}

	row := &schema.CheckIn{
		EventID:       event.ID,
		ExternalID:    guest.APIID,
		AttendeeName:  guest.Name,
		AttendeeEmail: guest.Email,
		WalletAddress: wallet,
		CheckedInAt:   guest.CheckedInAt,
		Raw:           datatypes.JSON(raw),
	}
	outcome, err := r.store.UpsertCheckIn(ctx, row)
	if err != nil {
		return store.UpsertUnchanged, nil, err
	}
	return outcome, row, nil
}
