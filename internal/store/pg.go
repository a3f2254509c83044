package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the schema for all tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&schema.Account{},
		&schema.Event{},
		&schema.CheckIn{},
		&schema.NFT{},
	); err != nil {
		return err
	}

	// Partial unique index guarding one active token per (event, recipient).
	// gorm index tags cannot carry a WHERE clause with commas in it, so the
	// index is created with raw SQL. The statement is valid on both Postgres
	// and sqlite.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_nfts_active_recipient
		 ON nfts (event_id, recipient_address)
		 WHERE mint_status IN ('PENDING','PROCESSING','COMPLETED')`,
	).Error; err != nil {
		return fmt.Errorf("failed to create active recipient index: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to safe defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

func (s *pgStore) CreateAccount(ctx context.Context, account *schema.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *pgStore) GetAccountByID(ctx context.Context, id string) (*schema.Account, error) {
	var account schema.Account
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (s *pgStore) ListActiveAccounts(ctx context.Context) ([]schema.Account, error) {
	var accounts []schema.Account
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active accounts: %w", err)
	}
	return accounts, nil
}

func (s *pgStore) UpdateAccountSyncTime(ctx context.Context, id string, kind domain.SyncKind, t time.Time) error {
	column := "last_events_sync_at"
	if kind == domain.SyncCheckIns {
		column = "last_checkins_sync_at"
	}

	result := s.db.WithContext(ctx).Model(&schema.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       t,
			"updated_at": t,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update account sync time: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (s *pgStore) SetAccountActive(ctx context.Context, id string, active bool) error {
	result := s.db.WithContext(ctx).Model(&schema.Account{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to set account active: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (s *pgStore) SetAccountSyncError(ctx context.Context, id string, message *string) error {
	result := s.db.WithContext(ctx).Model(&schema.Account{}).
		Where("id = ?", id).
		Update("sync_error", message)
	if result.Error != nil {
		return fmt.Errorf("failed to set account sync error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (s *pgStore) UpsertEvent(ctx context.Context, event *schema.Event) (UpsertOutcome, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	// ON CONFLICT DO NOTHING keyed on external_id; the re-select tells
	// apart the insert from the pre-existing row
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(event).Error; err != nil {
		return UpsertUnchanged, fmt.Errorf("failed to create event: %w", err)
	}

	var existing schema.Event
	if err := s.db.WithContext(ctx).
		Where("external_id = ?", event.ExternalID).
		First(&existing).Error; err != nil {
		return UpsertUnchanged, fmt.Errorf("failed to get event after upsert: %w", err)
	}

	if existing.ID == event.ID {
		return UpsertCreated, nil
	}

	if !eventChanged(&existing, event) {
		*event = existing
		return UpsertUnchanged, nil
	}

	// Row existed with stale fields: refresh them from the source payload
	updates := map[string]interface{}{
		"name":        event.Name,
		"description": event.Description,
		"start_at":    event.StartAt,
		"end_at":      event.EndAt,
		"timezone":    event.Timezone,
		"url":         event.URL,
		"cover_url":   event.CoverURL,
		"location":    event.Location,
		"raw":         event.Raw,
		"updated_at":  time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(&schema.Event{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return UpsertUnchanged, fmt.Errorf("failed to update event: %w", err)
	}

	*event = existing
	return UpsertUpdated, nil
}

// eventChanged reports whether any synced event field differs between the
// stored row and the incoming payload. Raw is deliberately excluded: the
// source API shuffles payload ordering between pages, which must not count
// as a change.
func eventChanged(existing, incoming *schema.Event) bool {
	return existing.Name != incoming.Name ||
		existing.Description != incoming.Description ||
		!timePtrEqual(existing.StartAt, incoming.StartAt) ||
		!timePtrEqual(existing.EndAt, incoming.EndAt) ||
		existing.Timezone != incoming.Timezone ||
		existing.URL != incoming.URL ||
		existing.CoverURL != incoming.CoverURL ||
		existing.Location != incoming.Location
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *pgStore) GetEventByID(ctx context.Context, id string) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (s *pgStore) GetEventByExternalID(ctx context.Context, externalID string) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (s *pgStore) ListEventsByAccount(ctx context.Context, accountID string, limit int) ([]schema.Event, error) {
	var events []schema.Event
	query := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("start_at DESC NULLS LAST")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *pgStore) ListMintableEvents(ctx context.Context, accountID string, limit int) ([]schema.Event, error) {
	var events []schema.Event
	query := s.db.WithContext(ctx).
		Where("account_id = ? AND mint_enabled = ?", accountID, true).
		Order("start_at DESC NULLS LAST")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list mintable events: %w", err)
	}
	return events, nil
}

func (s *pgStore) SetEventSyncError(ctx context.Context, id string, message *string) error {
	result := s.db.WithContext(ctx).Model(&schema.Event{}).
		Where("id = ?", id).
		Update("sync_error", message)
	if result.Error != nil {
		return fmt.Errorf("failed to set event sync error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (s *pgStore) UpsertCheckIn(ctx context.Context, checkIn *schema.CheckIn) (UpsertOutcome, error) {
	if checkIn.ID == "" {
		checkIn.ID = uuid.NewString()
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "external_id"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(checkIn).Error; err != nil {
		return UpsertUnchanged, fmt.Errorf("failed to create check-in: %w", err)
	}

	var existing schema.CheckIn
	if err := s.db.WithContext(ctx).
		Where("event_id = ? AND external_id = ?", checkIn.EventID, checkIn.ExternalID).
		First(&existing).Error; err != nil {
		return UpsertUnchanged, fmt.Errorf("failed to get check-in after upsert: %w", err)
	}

	if existing.ID == checkIn.ID {
		return UpsertCreated, nil
	}

	if !checkInChanged(&existing, checkIn) {
		*checkIn = existing
		return UpsertUnchanged, nil
	}

	// Mint state columns belong to the queue and stay untouched here
	updates := map[string]interface{}{
		"attendee_name":  checkIn.AttendeeName,
		"attendee_email": checkIn.AttendeeEmail,
		"wallet_address": checkIn.WalletAddress,
		"checked_in_at":  checkIn.CheckedInAt,
		"raw":            checkIn.Raw,
		"updated_at":     time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(&schema.CheckIn{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return UpsertUnchanged, fmt.Errorf("failed to update check-in: %w", err)
	}

	*checkIn = existing
	return UpsertUpdated, nil
}

// checkInChanged reports whether any synced check-in field differs between
// the stored row and the incoming payload.
func checkInChanged(existing, incoming *schema.CheckIn) bool {
	return existing.AttendeeName != incoming.AttendeeName ||
		existing.AttendeeEmail != incoming.AttendeeEmail ||
		!strPtrEqual(existing.WalletAddress, incoming.WalletAddress) ||
		!timePtrEqual(existing.CheckedInAt, incoming.CheckedInAt)
}

func (s *pgStore) GetCheckInByID(ctx context.Context, id string) (*schema.CheckIn, error) {
	var checkIn schema.CheckIn
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	return &checkIn, nil
}

func (s *pgStore) ListCheckInsByEvent(ctx context.Context, eventID string) ([]schema.CheckIn, error) {
	var checkIns []schema.CheckIn
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&checkIns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkIns, nil
}

func (s *pgStore) SetCheckInMintState(ctx context.Context, id string, state CheckInMintState) error {
	result := s.db.WithContext(ctx).Model(&schema.CheckIn{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"mint_status":   state.Status,
			"nft_id":        state.NFTID,
			"mint_error":    state.Error,
			"mint_attempts": state.Attempts,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set check-in mint state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCheckInNotFound
	}
	return nil
}

func (s *pgStore) CountCheckInsByMintStatus(ctx context.Context) (map[domain.MintStatus]int64, error) {
	type row struct {
		MintStatus domain.MintStatus
		Count      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&schema.CheckIn{}).
		Where("mint_status <> ''").
		Select("mint_status, count(*) as count").
		Group("mint_status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count check-ins by mint status: %w", err)
	}

	counts := make(map[domain.MintStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.MintStatus] = r.Count
	}
	return counts, nil
}

func (s *pgStore) EnqueueNFT(ctx context.Context, nft *schema.NFT) (*schema.NFT, bool, error) {
	if nft.ID == "" {
		nft.ID = uuid.NewString()
	}
	if nft.MintStatus == "" {
		nft.MintStatus = domain.MintStatusPending
	}

	// The partial unique index on (event_id, recipient_address) rejects
	// the insert when an active row already exists; DO NOTHING turns the
	// conflict into a no-op so the existing row can be returned instead.
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "recipient_address"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "mint_status IN ('PENDING','PROCESSING','COMPLETED')"},
		}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(nft).Error; err != nil {
		return nil, false, fmt.Errorf("failed to enqueue nft: %w", err)
	}

	var row schema.NFT
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND recipient_address = ? AND mint_status IN ?",
			nft.EventID, nft.RecipientAddress, domain.ActiveMintStatuses).
		First(&row).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to get nft after enqueue: %w", err)
	}

	return &row, row.ID == nft.ID, nil
}

func (s *pgStore) GetNFTByID(ctx context.Context, id string) (*schema.NFT, error) {
	var nft schema.NFT
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&nft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNFTNotFound
		}
		return nil, fmt.Errorf("failed to get nft: %w", err)
	}
	return &nft, nil
}

func (s *pgStore) GetNFTByCheckInID(ctx context.Context, checkInID string) (*schema.NFT, error) {
	var nft schema.NFT
	err := s.db.WithContext(ctx).
		Where("checkin_id = ?", checkInID).
		Order("created_at ASC").
		First(&nft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNFTNotFound
		}
		return nil, fmt.Errorf("failed to get nft by check-in: %w", err)
	}
	return &nft, nil
}

func (s *pgStore) SetNFTMetadata(ctx context.Context, id string, metadata datatypes.JSON) error {
	result := s.db.WithContext(ctx).Model(&schema.NFT{}).
		Where("id = ?", id).
		Update("metadata", metadata)
	if result.Error != nil {
		return fmt.Errorf("failed to set nft metadata: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNFTNotFound
	}
	return nil
}

func (s *pgStore) ListPendingNFTs(ctx context.Context, limit int) ([]schema.NFT, error) {
	var nfts []schema.NFT
	query := s.db.WithContext(ctx).
		Where("mint_status = ?", domain.MintStatusPending).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&nfts).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending nfts: %w", err)
	}
	return nfts, nil
}

func (s *pgStore) ListNFTsByEvent(ctx context.Context, eventID string) ([]schema.NFT, error) {
	var nfts []schema.NFT
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&nfts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list nfts: %w", err)
	}
	return nfts, nil
}

func (s *pgStore) MarkNFTProcessing(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&schema.NFT{}).
		Where("id = ? AND mint_status = ?", id, domain.MintStatusPending).
		Updates(map[string]interface{}{
			"mint_status": domain.MintStatusProcessing,
			"attempts":    gorm.Expr("attempts + 1"),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark nft processing: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *pgStore) CompleteNFT(ctx context.Context, id string, receipt domain.MintReceipt, mintedAt time.Time) error {
	result := s.db.WithContext(ctx).Model(&schema.NFT{}).
		Where("id = ? AND mint_status = ?", id, domain.MintStatusProcessing).
		Updates(map[string]interface{}{
			"mint_status":  domain.MintStatusCompleted,
			"tx_hash":      receipt.TxHash,
			"token_id":     receipt.TokenID,
			"block_number": receipt.BlockNumber,
			"last_error":   nil,
			"minted_at":    mintedAt,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete nft: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNFTNotFound
	}
	return nil
}

func (s *pgStore) ReturnNFTToPending(ctx context.Context, id string, lastError string) error {
	result := s.db.WithContext(ctx).Model(&schema.NFT{}).
		Where("id = ? AND mint_status = ?", id, domain.MintStatusProcessing).
		Updates(map[string]interface{}{
			"mint_status": domain.MintStatusPending,
			"last_error":  lastError,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to return nft to pending: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNFTNotFound
	}
	return nil
}

func (s *pgStore) FailNFT(ctx context.Context, id string, lastError string) error {
	result := s.db.WithContext(ctx).Model(&schema.NFT{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"mint_status": domain.MintStatusFailed,
			"last_error":  lastError,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to fail nft: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNFTNotFound
	}
	return nil
}

func (s *pgStore) ResetNFTForRetry(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Model(&schema.NFT{}).
		Where("id = ? AND mint_status = ?", id, domain.MintStatusFailed).
		Updates(map[string]interface{}{
			"mint_status": domain.MintStatusPending,
			"attempts":    0,
			"last_error":  nil,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to reset nft for retry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotRetryable
	}
	return nil
}

func (s *pgStore) CountNFTsByStatus(ctx context.Context) (map[domain.MintStatus]int64, error) {
	type row struct {
		MintStatus domain.MintStatus
		Count      int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&schema.NFT{}).
		Select("mint_status, count(*) as count").
		Group("mint_status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count nfts by status: %w", err)
	}

	counts := make(map[domain.MintStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.MintStatus] = r.Count
	}
	return counts, nil
}
