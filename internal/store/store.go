package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/checkmint/checkmint/internal/domain"
	"github.com/checkmint/checkmint/internal/store/schema"
)

// UpsertOutcome reports what an upsert did to the row.
type UpsertOutcome int

const (
	// UpsertCreated means the row did not exist and was inserted
	UpsertCreated UpsertOutcome = iota
	// UpsertUpdated means the row existed and at least one field changed
	UpsertUpdated
	// UpsertUnchanged means the row existed and the incoming data matched it
	UpsertUnchanged
)

// CheckInMintState is the mint-side snapshot written onto a check-in
// row. All four columns are overwritten on every call.
type CheckInMintState struct {
	Status   domain.MintStatus
	NFTID    *string
	Error    *string
	Attempts int
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateAccount creates a new account row
	CreateAccount(ctx context.Context, account *schema.Account) error
	// GetAccountByID retrieves an account by its UUID
	GetAccountByID(ctx context.Context, id string) (*schema.Account, error)
	// ListActiveAccounts retrieves all accounts the reconciler should sync
	ListActiveAccounts(ctx context.Context) ([]schema.Account, error)
	// UpdateAccountSyncTime records the completion of a reconciliation pass
	UpdateAccountSyncTime(ctx context.Context, id string, kind domain.SyncKind, t time.Time) error
	// SetAccountActive toggles whether the account is synced
	SetAccountActive(ctx context.Context, id string, active bool) error
	// SetAccountSyncError records or clears the account-level sync failure
	SetAccountSyncError(ctx context.Context, id string, message *string) error

	// UpsertEvent creates or updates an event by its external ID. An
	// existing row is only written when a synced field actually changed.
	UpsertEvent(ctx context.Context, event *schema.Event) (UpsertOutcome, error)
	// GetEventByID retrieves an event by its UUID
	GetEventByID(ctx context.Context, id string) (*schema.Event, error)
	// GetEventByExternalID retrieves an event by its source API identifier
	GetEventByExternalID(ctx context.Context, externalID string) (*schema.Event, error)
	// ListEventsByAccount retrieves events for an account, newest first
	ListEventsByAccount(ctx context.Context, accountID string, limit int) ([]schema.Event, error)
	// ListMintableEvents retrieves events whose check-ins should produce mints
	ListMintableEvents(ctx context.Context, accountID string, limit int) ([]schema.Event, error)
	// SetEventSyncError records or clears the event's check-in sync failure
	SetEventSyncError(ctx context.Context, id string, message *string) error

	// UpsertCheckIn creates or updates a check-in by (event, external ID).
	// An existing row is only written when a synced field actually changed;
	// mint state columns are never touched by the upsert.
	UpsertCheckIn(ctx context.Context, checkIn *schema.CheckIn) (UpsertOutcome, error)
	// GetCheckInByID retrieves a check-in by its UUID
	GetCheckInByID(ctx context.Context, id string) (*schema.CheckIn, error)
	// ListCheckInsByEvent retrieves all check-ins for an event
	ListCheckInsByEvent(ctx context.Context, eventID string) ([]schema.CheckIn, error)
	// SetCheckInMintState mirrors mint progress onto the check-in row
	SetCheckInMintState(ctx context.Context, id string, state CheckInMintState) error
	// CountCheckInsByMintStatus returns check-in counts grouped by mint status
	CountCheckInsByMintStatus(ctx context.Context) (map[domain.MintStatus]int64, error)

	// EnqueueNFT inserts a PENDING NFT row. When an active row already
	// exists for the same event and recipient, the existing row is
	// returned instead and created is false.
	EnqueueNFT(ctx context.Context, nft *schema.NFT) (*schema.NFT, bool, error)
	// GetNFTByID retrieves an NFT by its UUID
	GetNFTByID(ctx context.Context, id string) (*schema.NFT, error)
	// GetNFTByCheckInID retrieves the NFT enqueued for a check-in,
	// regardless of mint status
	GetNFTByCheckInID(ctx context.Context, checkInID string) (*schema.NFT, error)
	// SetNFTMetadata stores the prepared token document on the row
	SetNFTMetadata(ctx context.Context, id string, metadata datatypes.JSON) error
	// ListPendingNFTs retrieves up to limit PENDING NFTs, oldest first
	ListPendingNFTs(ctx context.Context, limit int) ([]schema.NFT, error)
	// ListNFTsByEvent retrieves all NFTs for an event
	ListNFTsByEvent(ctx context.Context, eventID string) ([]schema.NFT, error)
	// MarkNFTProcessing transitions PENDING to PROCESSING and increments
	// the attempt counter. Returns false when the row was not PENDING.
	MarkNFTProcessing(ctx context.Context, id string) (bool, error)
	// CompleteNFT transitions PROCESSING to COMPLETED with the receipt
	CompleteNFT(ctx context.Context, id string, receipt domain.MintReceipt, mintedAt time.Time) error
	// ReturnNFTToPending transitions PROCESSING back to PENDING after a
	// retryable failure
	ReturnNFTToPending(ctx context.Context, id string, lastError string) error
	// FailNFT transitions the row to FAILED with the final error
	FailNFT(ctx context.Context, id string, lastError string) error
	// ResetNFTForRetry transitions FAILED back to PENDING with a fresh
	// attempt budget
	ResetNFTForRetry(ctx context.Context, id string) error
	// CountNFTsByStatus returns row counts grouped by mint status
	CountNFTsByStatus(ctx context.Context) (map[domain.MintStatus]int64, error)
}
