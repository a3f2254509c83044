package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/checkmint/checkmint/internal/domain"
)

// NFT represents the nfts table - one row per attendance token, carrying
// the mint lifecycle state.
//
// The idx_nfts_active_recipient partial unique index on
// (event_id, recipient_address) only covers active statuses, so a FAILED
// row never blocks a fresh mint for the same recipient. gorm's tag parser
// cannot express a WHERE clause containing commas, so Store.AutoMigrate
// creates that index with raw SQL.
type NFT struct {
	// ID is the internal UUID primary key
	ID string `gorm:"column:id;primaryKey;type:text"`
	// EventID links the token to its event
	EventID string `gorm:"column:event_id;not null;type:text;index"`
	// CheckInID links the token to the check-in that triggered it, nil for direct mints
	CheckInID *string `gorm:"column:checkin_id;type:text;uniqueIndex"`
	// RecipientAddress is the wallet receiving the token
	RecipientAddress string `gorm:"column:recipient_address;not null;type:text"`
	// AttendeeName is carried for notification payloads
	AttendeeName string `gorm:"column:attendee_name;type:text"`
	// AttendeeEmail is carried for notification payloads
	AttendeeEmail string `gorm:"column:attendee_email;type:text"`
	// MintStatus is the lifecycle state
	MintStatus domain.MintStatus `gorm:"column:mint_status;not null;type:text;index;default:'PENDING'"`
	// Attempts counts mint attempts made so far
	Attempts int `gorm:"column:attempts;not null;default:0"`
	// LastError records the most recent failure, nil when none
	LastError *string `gorm:"column:last_error;type:text"`
	// Metadata is the token document prepared for the mint
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// TxHash is the mint transaction hash once submitted
	TxHash *string `gorm:"column:tx_hash;type:text"`
	// TokenID is the on-chain token number once minted
	TokenID *uint64 `gorm:"column:token_id"`
	// BlockNumber is the block the mint transaction landed in
	BlockNumber *uint64 `gorm:"column:block_number"`
	// MintedAt is when the mint transaction was confirmed
	MintedAt *time.Time `gorm:"column:minted_at"`
	// CreatedAt is the timestamp when this record was enqueued
	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP;index"`
	// UpdatedAt is the timestamp of the last state transition
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for the NFT model
func (NFT) TableName() string {
	return "nfts"
}
