package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/checkmint/checkmint/internal/domain"
)

// CheckIn represents the checkins table - one row per attendee check-in
// mirrored from the event source API
type CheckIn struct {
	// ID is the internal UUID primary key
	ID string `gorm:"column:id;primaryKey;type:text"`
	// EventID links the check-in to its event
	EventID string `gorm:"column:event_id;not null;type:text;uniqueIndex:idx_checkins_event_external,priority:1"`
	// ExternalID is the guest identifier in the source API
	ExternalID string `gorm:"column:external_id;not null;type:text;uniqueIndex:idx_checkins_event_external,priority:2"`
	// AttendeeName is the guest's display name
	AttendeeName string `gorm:"column:attendee_name;type:text"`
	// AttendeeEmail is the guest's email address
	AttendeeEmail string `gorm:"column:attendee_email;type:text"`
	// WalletAddress is the guest's wallet, nil when none was registered
	WalletAddress *string `gorm:"column:wallet_address;type:text"`
	// CheckedInAt is when the guest checked in at the venue
	CheckedInAt *time.Time `gorm:"column:checked_in_at"`
	// MintStatus mirrors the mint lifecycle of this check-in's token,
	// empty until the queue has looked at it
	MintStatus domain.MintStatus `gorm:"column:mint_status;type:text;index"`
	// MintError records the most recent mint failure, nil when none
	MintError *string `gorm:"column:mint_error;type:text"`
	// MintAttempts counts mint attempts made for this check-in
	MintAttempts int `gorm:"column:mint_attempts;not null;default:0"`
	// NFTID links to the token row once one was enqueued, nil for
	// walletless check-ins
	NFTID *string `gorm:"column:nft_id;type:text"`
	// Raw preserves the source API payload for auditing
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was first synced
	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	// UpdatedAt is the timestamp of the last sync that touched this row
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for the CheckIn model
func (CheckIn) TableName() string {
	return "checkins"
}
